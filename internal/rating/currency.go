package rating

// CurrencyUSD marks benefit limits that settle against the daily CRC rate.
const CurrencyUSD = "USD"

// NormalizeLimit converts a benefit coverage limit into colones using the
// supplied exchange rate. Limits already in colones pass through unchanged.
// The returned flag reports whether a conversion occurred so the caller can
// disclose which rate was used. No rounding is performed here; consumers
// format for display.
func NormalizeLimit(limit float64, currency string, exchangeRate float64) (float64, bool) {
	if currency == CurrencyUSD {
		return limit * exchangeRate, true
	}
	return limit, false
}
