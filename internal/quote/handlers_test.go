package quote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := newService(t, fixtureRates(), stubExchange{rate: 520})
	h := &Handler{Svc: svc, Validate: validator.New(), Logger: zerolog.Nop()}
	r := chi.NewRouter()
	r.Route("/v1", func(v chi.Router) { h.Routes(v) })
	return r
}

func TestRoutesWrapOnlyQuotePosts(t *testing.T) {
	svc := newService(t, fixtureRates(), stubExchange{rate: 520})
	h := &Handler{Svc: svc, Validate: validator.New(), Logger: zerolog.Nop()}

	var wrapped int
	counting := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped++
			next.ServeHTTP(w, r)
		})
	}
	r := chi.NewRouter()
	r.Route("/v1", func(v chi.Router) { h.Routes(v, counting) })

	rec := postJSON(t, r, "/v1/quotes/towing", `{"sdKm":8}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, wrapped)

	req := httptest.NewRequest(http.MethodGet, "/v1/rates/tolls", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, wrapped)
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTowingEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/quotes/towing", `{"sdKm":8}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data QuoteResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.InDelta(t, 16950, payload.Data.Quote.FinalTotal, 1e-9)
	require.Contains(t, payload.Data.Note, "SOCIO: SIN BENEFICIO")
}

func TestTowingEndpointRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/quotes/towing", `{"sdKm":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTowingEndpointRejectsNegativeDistance(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/quotes/towing", `{"sdKm":-5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "VALIDATION")
}

func TestHeavyEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/quotes/heavy", `{"psKm":6,"sdKm":4,"tollIds":["r27"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data QuoteResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.InDelta(t, 50300, payload.Data.Quote.ServiceSubtotal, 1e-9)
}

func TestAirportEndpointUnknownBenefit(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/quotes/airport",
		`{"airportId":"SJO","province":"San José","canton":"Escazú","district":"San Rafael","benefitId":"missing"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "BENEFIT_NOT_FOUND")
}

func TestAirportEndpointRequiresDestination(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/quotes/airport", `{"airportId":"SJO"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTollsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/rates/tolls", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Ruta 27")
}

func TestBenefitsEndpointRequiresCategory(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/rates/benefits", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExchangeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/rates/exchange", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data struct {
			Rate     float64 `json:"rate"`
			Fallback bool    `json:"fallback"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.InDelta(t, 520, payload.Data.Rate, 1e-9)
	require.False(t, payload.Data.Fallback)
}
