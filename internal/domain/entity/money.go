package entity

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places an amount may carry.
const AmountScale = 2

// MaxAmount is the largest amount the DECIMAL(15,2) columns hold.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

// AmountProblem reports why an amount cannot be stored, or "" when it can.
func AmountProblem(amount decimal.Decimal) string {
	switch {
	case !amount.IsPositive():
		return "Amount must be positive"
	case !amount.Equal(amount.Round(AmountScale)):
		return "Amount must have at most 2 decimal places"
	case amount.GreaterThan(MaxAmount):
		return "Amount must not exceed " + MaxAmount.String()
	default:
		return ""
	}
}
