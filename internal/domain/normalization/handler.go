package normalization

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler provides REST endpoints for the normalization operations.
type Handler struct {
	svc *Service
}

// NewHandler creates a new normalization handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers normalization routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	group := api.Group("/normalization")
	group.POST("/suggestions", h.NormalizeMentions)
	group.POST("/procedures", h.MatchProcedures)
}

// SuggestionBatchResponse wraps a normalization run. ID identifies the
// batch for the persistence layer; it carries no meaning inside the
// core.
type SuggestionBatchResponse struct {
	ID          string                    `json:"id"`
	Suggestions []NormalizationSuggestion `json:"suggestions"`
}

// ProcedureMatchResponse wraps a procedure matching run.
type ProcedureMatchResponse struct {
	ID         string               `json:"id"`
	Procedures []TussProcedureMatch `json:"procedures"`
}

// NormalizeMentions handles POST /api/v1/normalization/suggestions.
func (h *Handler) NormalizeMentions(c echo.Context) error {
	var batch MentionBatch
	if err := c.Bind(&batch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}

	suggestions := h.svc.NormalizeAll(c.Request().Context(), batch)
	return c.JSON(http.StatusOK, SuggestionBatchResponse{
		ID:          uuid.New().String(),
		Suggestions: suggestions,
	})
}

// MatchProceduresRequest is the payload for procedure matching.
type MatchProceduresRequest struct {
	Procedures []DetectedProcedure `json:"procedures"`
}

// MatchProcedures handles POST /api/v1/normalization/procedures.
func (h *Handler) MatchProcedures(c echo.Context) error {
	var req MatchProceduresRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}

	procedures := h.svc.MatchProcedures(c.Request().Context(), req.Procedures)
	return c.JSON(http.StatusOK, ProcedureMatchResponse{
		ID:         uuid.New().String(),
		Procedures: procedures,
	})
}
