package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"photofolio/internal/models"
	"photofolio/internal/service/search"
	"photofolio/internal/store"
	"photofolio/internal/util"
)

// SearchHandler answers photo search. With Elasticsearch configured it runs
// a weighted multi-field query; without it the document store's regex
// matching serves the same endpoint.
type SearchHandler struct {
	Store  store.Store
	Search *search.Service
}

func (h *SearchHandler) Photos(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return errorResponse(c, http.StatusBadRequest, "query parameter q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	_, from, limit := util.Calculate(page, size)

	ctx := c.Request().Context()

	if h.Search != nil {
		total, photos, err := h.Search.Search(ctx, q, from, limit)
		if err != nil {
			return errorResponse(c, http.StatusInternalServerError, "search failed")
		}
		return c.JSON(http.StatusOK, echo.Map{"total": total, "photos": photos})
	}

	items, total, err := h.Store.ListPhotos(ctx, store.PhotoFilter{
		Search: q,
		Offset: from,
		Limit:  limit,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "search failed")
	}

	photos := make([]models.Photo, len(items))
	for i, p := range items {
		photos[i] = *p
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "photos": photos})
}
