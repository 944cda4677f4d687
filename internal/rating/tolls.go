package rating

// tollTotal sums the prices of the selected toll ids for the given vehicle
// class. A referenced id missing from the table contributes zero; the skip is
// recorded in the breakdown so the quote trail shows it.
func tollTotal(ids []string, tolls []Toll, class VehicleClass, lines *[]string) float64 {
	var sum float64
	for _, id := range ids {
		toll, ok := findToll(tolls, id)
		if !ok {
			*lines = append(*lines, "Peaje omitido: "+id)
			continue
		}
		sum += toll.PriceFor(class)
	}
	return sum
}

func findToll(tolls []Toll, id string) (Toll, bool) {
	for _, t := range tolls {
		if t.ID == id {
			return t, true
		}
	}
	return Toll{}, false
}

// TollNames returns the names of the selected tolls in selection order, used
// by the CRM note. Unresolvable ids are skipped.
func TollNames(ids []string, tolls []Toll) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := findToll(tolls, id); ok {
			names = append(names, t.Name)
		}
	}
	return names
}
