package litle

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/kevin07696/litle-gateway/pkg/errors"
)

var centsPerUnit = decimal.NewFromInt(100)

// AmountFromDecimal converts a major-unit amount (e.g. dollars) to the
// minor currency units the wire protocol carries. Negative amounts and
// amounts with fractional cents are rejected.
func AmountFromDecimal(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, pkgerrors.NewValidationError("amount", "must not be negative")
	}
	cents := d.Mul(centsPerUnit)
	if !cents.IsInteger() {
		return 0, pkgerrors.NewValidationError("amount", "must not carry fractional cents")
	}
	return cents.IntPart(), nil
}

// Amount is a convenience for the optional-amount fields on reversal
// inputs
func Amount(v int64) *int64 {
	return &v
}
