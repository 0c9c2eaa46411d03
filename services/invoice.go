package services

import (
	"fmt"
	"regexp"
	"strconv"
)

const DefaultInvoicePrefix = "INV-"

var invoiceSuffix = regexp.MustCompile(`(\d+)$`)

// NextInvoiceCode picks the next sequential code from the vendor's existing
// ones: max trailing numeric suffix plus one, zero-padded to 4 digits.
// Max-plus-one rather than count-plus-one, so deleted orders never cause a
// code to be reissued.
func NextInvoiceCode(existing []string, prefix string) string {
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	max := 0
	for _, code := range existing {
		m := invoiceSuffix.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1)
}
