package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Transfer fee policy: 0.5% of the amount, floored at 2.00 and capped
// at 50.00 currency units. The same rule is applied server-side when a
// transfer executes and client-side when a preview is rendered, so the
// two can never disagree.
var (
	transferFeeRate  = decimal.NewFromFloat(0.005)
	transferFeeFloor = decimal.NewFromInt(2)
	transferFeeCap   = decimal.NewFromInt(50)
)

var (
	cardNumberPattern   = regexp.MustCompile(`^\d{19}$`)
	cardPasswordPattern = regexp.MustCompile(`^\d{6}$`)
	cvvPattern          = regexp.MustCompile(`^\d{3}$`)
)

// MaxTransferNotesLen bounds the free-text note attached to a transfer.
const MaxTransferNotesLen = 50

// TransferFee computes the fee charged for transferring amount.
func TransferFee(amount decimal.Decimal) decimal.Decimal {
	fee := amount.Mul(transferFeeRate)
	if fee.LessThan(transferFeeFloor) {
		return transferFeeFloor
	}
	if fee.GreaterThan(transferFeeCap) {
		return transferFeeCap
	}
	return fee
}

// EstimatedFeeRevenue approximates the fees collected on a given
// transfer volume at the base rate. Per-transfer floors and caps are
// not reconstructable from the aggregate, so this stays an estimate.
func EstimatedFeeRevenue(transferVolume decimal.Decimal) decimal.Decimal {
	return transferVolume.Mul(transferFeeRate).Round(2)
}

// ValidateTransferAmount reports whether a transfer of amount may be
// submitted against sourceBalance. The balance must cover the amount
// plus the actual computed fee; the fee floor alone is not enough once
// the fee scales past it.
func ValidateTransferAmount(amount, sourceBalance decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if amount.Add(TransferFee(amount)).GreaterThan(sourceBalance) {
		return ErrInsufficientReserve
	}
	return nil
}

// MaxTransferAmount returns the largest amount whose amount+fee total
// still fits within balance. Used to render the submission ceiling.
func MaxTransferAmount(balance decimal.Decimal) decimal.Decimal {
	if balance.LessThanOrEqual(transferFeeFloor) {
		return decimal.Zero
	}
	// Below the floor boundary the fee is a flat 2.00.
	floorBoundary := transferFeeFloor.Div(transferFeeRate) // 400.00
	if balance.LessThanOrEqual(floorBoundary.Add(transferFeeFloor)) {
		return balance.Sub(transferFeeFloor)
	}
	// Above the cap boundary the fee is a flat 50.00.
	capBoundary := transferFeeCap.Div(transferFeeRate) // 10000.00
	if balance.GreaterThan(capBoundary.Add(transferFeeCap)) {
		return balance.Sub(transferFeeCap)
	}
	// Proportional region: amount * (1 + rate) <= balance.
	return balance.Div(decimal.NewFromInt(1).Add(transferFeeRate)).RoundDown(2)
}

// ValidCardNumber reports whether s is a well-formed 19-digit card number.
func ValidCardNumber(s string) bool {
	return cardNumberPattern.MatchString(s)
}

// ValidCardPassword reports whether s is a well-formed 6-digit card PIN.
func ValidCardPassword(s string) bool {
	return cardPasswordPattern.MatchString(s)
}

// ValidVerificationCode reports whether s is a well-formed 6-digit
// password-reset verification code. Codes share the PIN format.
func ValidVerificationCode(s string) bool {
	return cardPasswordPattern.MatchString(s)
}

// ValidCVV reports whether s is a well-formed 3-digit CVV.
func ValidCVV(s string) bool {
	return cvvPattern.MatchString(s)
}

// TransferIntent is a proposed transfer before it reaches the backend.
// It is constructed per request and discarded after submission.
type TransferIntent struct {
	FromCardNumber string
	ToCardNumber   string
	Password       string
	Amount         decimal.Decimal
	Notes          string
}

// Validate runs every local precondition that can be checked without
// network access. sourceBalance is the last fetched balance snapshot of
// the source account.
func (t *TransferIntent) Validate(sourceBalance decimal.Decimal) error {
	if !ValidCardNumber(t.FromCardNumber) || !ValidCardNumber(t.ToCardNumber) {
		return ErrInvalidCardNumber
	}
	if !ValidCardPassword(t.Password) {
		return ErrInvalidPassword
	}
	if t.FromCardNumber == t.ToCardNumber {
		return ErrSameAccount
	}
	if len(t.Notes) > MaxTransferNotesLen {
		return ErrNotesTooLong
	}
	return ValidateTransferAmount(t.Amount, sourceBalance)
}
