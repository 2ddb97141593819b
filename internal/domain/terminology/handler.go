package terminology

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler provides REST endpoints for catalog search and lookup.
type Handler struct {
	svc *Service
}

// NewHandler creates a new terminology handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers terminology routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	termGroup := api.Group("/terminology")
	termGroup.GET("/cid10", h.SearchCID10)
	termGroup.GET("/cid10/:code", h.LookupCID10)
	termGroup.GET("/dcb", h.SearchDCB)
	termGroup.GET("/dcb/:name", h.LookupDCB)
	termGroup.GET("/tuss", h.SearchTUSS)
	termGroup.GET("/tuss/:code", h.LookupTUSS)
}

func getLimit(c echo.Context) int {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return limit
}

// SearchCID10 handles GET /api/v1/terminology/cid10?q=...
func (h *Handler) SearchCID10(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}
	results, err := h.svc.SearchCID10(c.Request().Context(), query, getLimit(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, results)
}

// LookupCID10 handles GET /api/v1/terminology/cid10/:code
func (h *Handler) LookupCID10(c echo.Context) error {
	entry, err := h.svc.LookupCID10(c.Request().Context(), c.Param("code"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, entry)
}

// SearchDCB handles GET /api/v1/terminology/dcb?q=...
func (h *Handler) SearchDCB(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}
	results, err := h.svc.SearchDCB(c.Request().Context(), query, getLimit(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, results)
}

// LookupDCB handles GET /api/v1/terminology/dcb/:name
func (h *Handler) LookupDCB(c echo.Context) error {
	entry, err := h.svc.LookupDCB(c.Request().Context(), c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, entry)
}

// SearchTUSS handles GET /api/v1/terminology/tuss?q=...
func (h *Handler) SearchTUSS(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}
	results, err := h.svc.SearchTUSS(c.Request().Context(), query, getLimit(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, results)
}

// LookupTUSS handles GET /api/v1/terminology/tuss/:code
func (h *Handler) LookupTUSS(c echo.Context) error {
	entry, err := h.svc.LookupTUSS(c.Request().Context(), c.Param("code"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, entry)
}
