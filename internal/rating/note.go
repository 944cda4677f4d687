package rating

import (
	"fmt"
	"strings"
)

// Notes are plain text pasted manually into the CRM. Field order and labels
// are fixed; downstream text parsing depends on them. Absent fields render an
// explicit placeholder, never an omitted line.

const (
	noPartnerPlaceholder = "SIN BENEFICIO"
	noPlanPlaceholder    = "N/A"
	noTollsPlaceholder   = "NINGUNO"
)

// NoteInput carries the fields of a towing or heavy towing CRM note.
type NoteInput struct {
	PartnerName string
	PlanName    string
	PSKm        float64
	SDKm        float64
	Maneuver    float64
	TollNames   []string
	Total       float64
}

// TowingNote renders the note for standard and heavy towing quotes.
func TowingNote(in NoteInput) string {
	partner := strings.TrimSpace(in.PartnerName)
	if partner == "" {
		partner = noPartnerPlaceholder
	}
	plan := strings.TrimSpace(in.PlanName)
	if plan == "" {
		plan = noPlanPlaceholder
	}
	tolls := noTollsPlaceholder
	if len(in.TollNames) > 0 {
		tolls = strings.Join(in.TollNames, ", ")
	}
	totalKm := in.PSKm + in.SDKm

	var b strings.Builder
	fmt.Fprintf(&b, "SOCIO: %s\n", strings.ToUpper(partner))
	fmt.Fprintf(&b, "PLAN: %s\n", strings.ToUpper(plan))
	fmt.Fprintf(&b, "RECORRIDO: %s KM (PS: %s | SD: %s)\n", num(totalKm), num(in.PSKm), num(in.SDKm))
	fmt.Fprintf(&b, "MANIOBRA: %s\n", FormatCRC(in.Maneuver))
	fmt.Fprintf(&b, "PEAJES (%d): %s\n", len(in.TollNames), tolls)
	fmt.Fprintf(&b, "TOTAL CLIENTE: %s", FormatCRC(in.Total))
	return b.String()
}

// AirportNote renders the note for airport taxi quotes.
func AirportNote(route *AirportRoute, benefit *Benefit, d AirportDetail) string {
	partner := noPartnerPlaceholder
	plan := noPlanPlaceholder
	benefitLabel := noPartnerPlaceholder
	if benefit != nil {
		partner = strings.ToUpper(benefit.PartnerName)
		plan = strings.ToUpper(benefit.PlanName)
		if cov, ok := benefit.Coverage.(MonetaryCap); ok {
			if cov.Currency == CurrencyUSD && d.RateUsed != nil {
				benefitLabel = fmt.Sprintf("$%s USD (T.C. %s)", num(cov.Limit), num(*d.RateUsed))
			} else {
				benefitLabel = FormatCRC(d.BenefitApplied)
			}
		}
	}

	location := noPlanPlaceholder
	airport := noPlanPlaceholder
	if route != nil {
		location = strings.ToUpper(fmt.Sprintf("%s, %s, %s",
			route.Location.Province, route.Location.Canton, route.Location.District))
		airport = route.AirportID
	}
	trip := "SOLO IDA"
	if d.RoundTrip {
		trip = "IDA Y VUELTA"
	}
	feeText := "(Sin Fee, Inc. Parqueo)"
	if d.FeeApplied {
		feeText = "(Inc. Fee y Parqueo)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TAXI AEROPUERTO: %s - %s\n", partner, plan)
	fmt.Fprintf(&b, "COTIZACIÓN: %s\n", location)
	fmt.Fprintf(&b, "AEROPUERTO: %s (%s)\n\n", airport, trip)
	fmt.Fprintf(&b, "COSTO PROVEEDOR: %s\n", FormatCRC(d.ProviderCost))
	fmt.Fprintf(&b, "COSTO CLIENTE: %s %s\n", FormatCRC(d.ClientCostBase), feeText)
	fmt.Fprintf(&b, "BENEFICIO APLICADO: %s\n\n", benefitLabel)
	fmt.Fprintf(&b, "EXCEDENTE POR TRAYECTO: %s + IVA\n", FormatCRC(d.ExcedentPerLeg))
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "TOTAL A COBRAR CLIENTE: %s", FormatCRC(d.GrandTotal))
	return b.String()
}
