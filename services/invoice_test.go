package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextInvoiceCodeMaxPlusOne(t *testing.T) {
	// max-plus-one, not count-plus-one
	code := NextInvoiceCode([]string{"INV-0001", "INV-0003"}, "INV-")
	assert.Equal(t, "INV-0004", code)
}

func TestNextInvoiceCodeEmpty(t *testing.T) {
	assert.Equal(t, "INV-0001", NextInvoiceCode(nil, ""))
}

func TestNextInvoiceCodeCustomPrefix(t *testing.T) {
	code := NextInvoiceCode([]string{"ACME-0009"}, "ACME-")
	assert.Equal(t, "ACME-0010", code)
}

func TestNextInvoiceCodeIgnoresNonNumericSuffixes(t *testing.T) {
	code := NextInvoiceCode([]string{"DRAFT", "INV-0002", "INV-xyz"}, "INV-")
	assert.Equal(t, "INV-0003", code)
}

func TestNextInvoiceCodeBeyondPadding(t *testing.T) {
	code := NextInvoiceCode([]string{"INV-9999"}, "INV-")
	assert.Equal(t, "INV-10000", code)
}

func TestNextInvoiceCodeMixedPrefixes(t *testing.T) {
	// codes from before a prefix change still count toward the sequence
	code := NextInvoiceCode([]string{"OLD-0007", "INV-0002"}, "INV-")
	assert.Equal(t, "INV-0008", code)
}
