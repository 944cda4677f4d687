package rating

// ExcessTax applies the tax rule to the customer-billed amount. Tax is never
// charged on the covered portion, only on what the customer ultimately pays,
// and only under an excess-only rule.
func ExcessTax(clientPays float64, rule TaxRule) float64 {
	if clientPays <= 0 || !rule.ExcessOnly() {
		return 0
	}
	return clientPays * rule.Rate
}
