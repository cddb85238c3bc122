package server

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/paradigma/diagnostico/internal/diagnostic"
	"github.com/paradigma/diagnostico/internal/domain"
)

// allocationTolerance is how far the allocation percentages may drift from
// 100% before the request is rejected. Covers rounding in the client UI.
const allocationTolerance = 0.5

// DiagnosticRequest is the payload for a diagnostic generation request.
type DiagnosticRequest struct {
	Allocation []domain.AssetAllocation `json:"allocation" validate:"required,min=1"`
	Profile    domain.InvestorProfile   `json:"profile"`
}

// DiagnosticHandlers handles diagnostic generation requests
type DiagnosticHandlers struct {
	service  *diagnostic.Service
	validate *validator.Validate
	log      zerolog.Logger
}

// NewDiagnosticHandlers creates a new diagnostic handlers instance
func NewDiagnosticHandlers(service *diagnostic.Service, log zerolog.Logger) *DiagnosticHandlers {
	return &DiagnosticHandlers{
		service:  service,
		validate: validator.New(),
		log:      log.With().Str("handler", "diagnostic").Logger(),
	}
}

// HandleGenerate validates the request and produces a full portfolio
// diagnostic. Validation failures return 400 with a message the client
// shows verbatim.
func (h *DiagnosticHandlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req DiagnosticRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "Invalid allocation data")
		return
	}

	total := 0.0
	for _, item := range req.Allocation {
		total += item.Percentage
	}
	if math.Abs(total-100) > allocationTolerance {
		writeJSON(w, h.log, http.StatusBadRequest, map[string]interface{}{
			"error":        "Allocation percentages must sum to 100%",
			"currentTotal": total,
		})
		return
	}

	if field, ok := missingProfileField(req.Profile); !ok {
		writeError(w, h.log, http.StatusBadRequest, "Missing required profile field: "+field)
		return
	}

	result, err := h.service.Generate(r.Context(), req.Allocation, req.Profile)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate diagnostic")
		writeJSON(w, h.log, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to generate diagnostic",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}

// missingProfileField reports the first unset required profile field, using
// the JSON field names the client sends.
func missingProfileField(profile domain.InvestorProfile) (string, bool) {
	if profile.Horizon == "" {
		return "horizon", false
	}
	if profile.RiskTolerance == "" {
		return "riskTolerance", false
	}
	if len(profile.Objectives) == 0 {
		return "objective", false
	}
	return "", true
}
