package domain

// CurrencyCode is an ISO 4217 currency code.
type CurrencyCode string

// currencyInfo describes how amounts in a currency are rendered.
type currencyInfo struct {
	Symbol       string
	Exponent     int32  // decimal places shown
	Thousand     string // separator inserted every 3 digits
	SymbolBefore bool   // "$1.00" vs "1.00 kr"
}

// currencies is the closed set of currencies the formatter knows about.
// Unknown codes fall back to "CODE 1,234.56".
var currencies = map[CurrencyCode]currencyInfo{
	"GBP": {Symbol: "£", Exponent: 2, Thousand: ",", SymbolBefore: true},
	"USD": {Symbol: "$", Exponent: 2, Thousand: ",", SymbolBefore: true},
	"EUR": {Symbol: "€", Exponent: 2, Thousand: ",", SymbolBefore: true},
	"JPY": {Symbol: "¥", Exponent: 0, Thousand: ",", SymbolBefore: true},
	"CHF": {Symbol: "Fr.", Exponent: 2, Thousand: ",", SymbolBefore: false},
	"AUD": {Symbol: "A$", Exponent: 2, Thousand: ",", SymbolBefore: true},
	"CAD": {Symbol: "C$", Exponent: 2, Thousand: ",", SymbolBefore: true},
}

// KnownCurrency reports whether the formatter has metadata for code.
func KnownCurrency(code CurrencyCode) bool {
	_, ok := currencies[code]
	return ok
}
