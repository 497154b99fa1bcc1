package entity

// Currency is display metadata only; amounts are never converted.
type Currency struct {
	Code   string
	Symbol string
}

// SupportedCurrencies returns the static list of currencies offered to clients.
func SupportedCurrencies() []Currency {
	return []Currency{
		{Code: "USD", Symbol: "$"},
		{Code: "EUR", Symbol: "€"},
		{Code: "INR", Symbol: "₹"},
		{Code: "GBP", Symbol: "£"},
		{Code: "JPY", Symbol: "¥"},
	}
}
