package rating_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rodasol/cotizador-api/internal/rating"
)

func TestTowingNoteFieldOrder(t *testing.T) {
	note := rating.TowingNote(rating.NoteInput{
		PartnerName: "INS",
		PlanName:    "Hogar Plus",
		SDKm:        25,
		Maneuver:    5000,
		TollNames:   []string{"Naranjo", "Zurquí"},
		Total:       36160,
	})

	want := strings.Join([]string{
		"SOCIO: INS",
		"PLAN: HOGAR PLUS",
		"RECORRIDO: 25 KM (PS: 0 | SD: 25)",
		"MANIOBRA: ₡5,000.00",
		"PEAJES (2): Naranjo, Zurquí",
		"TOTAL CLIENTE: ₡36,160.00",
	}, "\n")
	require.Equal(t, want, note)
}

func TestTowingNotePlaceholders(t *testing.T) {
	note := rating.TowingNote(rating.NoteInput{SDKm: 10, Total: 15000})

	// Absent fields still render a line with an explicit placeholder so the
	// downstream text parsing stays stable.
	require.Contains(t, note, "SOCIO: SIN BENEFICIO")
	require.Contains(t, note, "PLAN: N/A")
	require.Contains(t, note, "PEAJES (0): NINGUNO")
	require.Len(t, strings.Split(note, "\n"), 6)
}

func TestAirportNote(t *testing.T) {
	route := airportRoute()
	benefit := &rating.Benefit{
		PartnerName: "ASSA",
		PlanName:    "Viajero",
		Coverage:    rating.MonetaryCap{Limit: 50, Currency: rating.CurrencyUSD},
	}
	snap := airportSnapshot()
	snap.ExchangeRate = 520
	_, detail := rating.QuoteAirport(rating.AirportInput{Route: route, Benefit: benefit, RoundTrip: true}, snap)

	note := rating.AirportNote(route, benefit, detail)
	require.Contains(t, note, "TAXI AEROPUERTO: ASSA - VIAJERO")
	require.Contains(t, note, "COTIZACIÓN: ALAJUELA, ALAJUELA, RÍO SEGUNDO")
	require.Contains(t, note, "AEROPUERTO: SJO (IDA Y VUELTA)")
	require.Contains(t, note, "BENEFICIO APLICADO: $50 USD (T.C. 520)")
	require.Contains(t, note, "(Inc. Fee y Parqueo)")
	require.Contains(t, note, "TOTAL A COBRAR CLIENTE: ")
}

func TestAirportNoteWithoutBenefit(t *testing.T) {
	route := airportRoute()
	_, detail := rating.QuoteAirport(rating.AirportInput{Route: route}, airportSnapshot())

	note := rating.AirportNote(route, nil, detail)
	require.Contains(t, note, "TAXI AEROPUERTO: SIN BENEFICIO - N/A")
	require.Contains(t, note, "BENEFICIO APLICADO: SIN BENEFICIO")
	require.Contains(t, note, "AEROPUERTO: SJO (SOLO IDA)")
}

func TestFormatCRC(t *testing.T) {
	require.Equal(t, "₡36,160.00", rating.FormatCRC(36160))
	require.Equal(t, "₡3,581.50", rating.FormatCRC(3581.5))
	require.Equal(t, "₡0.00", rating.FormatCRC(0))
	require.Equal(t, "₡1,234,567.89", rating.FormatCRC(1234567.89))
}
