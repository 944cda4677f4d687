package rating

import "strconv"

// num renders a number without trailing zeros for breakdown lines.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// crc renders a colón amount for breakdown lines.
func crc(v float64) string {
	return "₡" + num(v)
}

// FormatCRC renders a colón amount with thousands grouping and two decimals
// for the CRM notes.
func FormatCRC(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart := s[:len(s)-3]
	frac := s[len(s)-2:]
	grouped := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, c)
	}
	out := "₡" + string(grouped) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}
