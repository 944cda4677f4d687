package quote

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rodasol/cotizador-api/internal/common"
	"github.com/rodasol/cotizador-api/internal/rating"
)

// Handler wires the quote service to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Logger   zerolog.Logger
}

// Routes mounts the quote and rate-catalogue endpoints. quoteMiddleware wraps
// only the quote POST routes, leaving the read-only catalogue unthrottled.
func (h *Handler) Routes(r chi.Router, quoteMiddleware ...func(http.Handler) http.Handler) {
	r.Group(func(g chi.Router) {
		g.Use(quoteMiddleware...)
		g.Post("/quotes/towing", h.Towing)
		g.Post("/quotes/heavy", h.Heavy)
		g.Post("/quotes/airport", h.Airport)
	})
	r.Get("/rates/tolls", h.Tolls)
	r.Get("/rates/benefits", h.Benefits)
	r.Get("/rates/airport-routes", h.AirportRoutes)
	r.Get("/rates/exchange", h.Exchange)
}

// Towing computes a standard towing quote.
func (h *Handler) Towing(w http.ResponseWriter, r *http.Request) {
	var req TowingRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.Svc.Towing(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": resp})
}

// Heavy computes a heavy towing quote.
func (h *Handler) Heavy(w http.ResponseWriter, r *http.Request) {
	var req HeavyRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.Svc.Heavy(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": resp})
}

// Airport computes an airport taxi quote.
func (h *Handler) Airport(w http.ResponseWriter, r *http.Request) {
	var req AirportRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.Svc.Airport(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": resp})
}

// Tolls lists the toll catalogue.
func (h *Handler) Tolls(w http.ResponseWriter, r *http.Request) {
	tolls, err := h.Svc.Tolls(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": tolls})
}

// Benefits lists benefits, filtered by the category query parameter.
func (h *Handler) Benefits(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "category query parameter is required", nil)
		return
	}
	views, err := h.Svc.Benefits(r.Context(), category)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views})
}

// AirportRoutes lists the airport route catalogue, optionally filtered by
// province.
func (h *Handler) AirportRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Svc.AirportRoutes(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if province := strings.TrimSpace(r.URL.Query().Get("province")); province != "" {
		filtered := make([]rating.AirportRoute, 0, len(routes))
		for _, route := range routes {
			if strings.EqualFold(route.Location.Province, province) {
				filtered = append(filtered, route)
			}
		}
		routes = filtered
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": routes})
}

// Exchange returns the current CRC/USD rate.
func (h *Handler) Exchange(w http.ResponseWriter, r *http.Request) {
	rate, fallback := h.Svc.ExchangeRate(r.Context())
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"rate":     rate,
		"fallback": fallback,
	}})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(dst); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload", validationDetails(err))
			return false
		}
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	h.Logger.Error().Err(err).Msg("quote request failed")
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, map[string]string{
			"field": fe.Field(),
			"rule":  fe.Tag(),
		})
	}
	return map[string]any{"fields": fields}
}
