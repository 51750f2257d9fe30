package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"photofolio/internal/middleware/auth"
	"photofolio/internal/models"
	"photofolio/internal/store"
	"photofolio/internal/util"
)

type AlbumHandler struct {
	Store store.Store
}

func (h *AlbumHandler) List(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	page, offset, limit := util.Calculate(page, size)

	items, total, err := h.Store.ListAlbums(c.Request().Context(), store.AlbumFilter{
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list albums")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": pageMeta(page, limit, total, offset),
	})
}

// Featured lists featured, non-hidden albums. The limit is capped low,
// the endpoint feeds the landing page.
func (h *AlbumHandler) Featured(c echo.Context) error {
	limit := util.ParseIntDefault(c.QueryParam("limit"), 5)
	if limit < 1 || limit > 10 {
		limit = 5
	}

	items, _, err := h.Store.ListAlbums(c.Request().Context(), store.AlbumFilter{
		FeaturedOnly: true,
		Limit:        limit,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list albums")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *AlbumHandler) Get(c echo.Context) error {
	album, err := h.Store.GetAlbumByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load album")
	}
	if album == nil || (album.IsHidden && !auth.IsAdmin(c)) {
		return errorResponse(c, http.StatusNotFound, "album not found")
	}
	return c.JSON(http.StatusOK, album)
}

func (h *AlbumHandler) Create(c echo.Context) error {
	var req struct {
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		CoverImageURL string   `json:"coverImageUrl"`
		PhotoIDs      []string `json:"photos"`
		Tags          string   `json:"tags"`
		IsFeatured    bool     `json:"isFeatured"`
		IsHidden      bool     `json:"isHidden"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return errorResponse(c, http.StatusBadRequest, "title is required")
	}

	ctx := c.Request().Context()
	if existing, err := h.Store.GetAlbumByTitle(ctx, req.Title); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to create album")
	} else if existing != nil {
		return errorResponse(c, http.StatusBadRequest, "an album with this title already exists")
	}

	now := time.Now().UTC()
	album := &models.Album{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   strings.TrimSpace(req.Description),
		CoverImageURL: req.CoverImageURL,
		PhotoIDs:      req.PhotoIDs,
		Tags:          util.ParseTags(req.Tags),
		IsFeatured:    req.IsFeatured,
		IsHidden:      req.IsHidden,
		CreatedBy:     auth.UserID(c),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.Store.CreateAlbum(ctx, album); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return errorResponse(c, http.StatusBadRequest, "an album with this title already exists")
		}
		return errorResponse(c, http.StatusInternalServerError, "failed to create album")
	}
	return c.JSON(http.StatusCreated, album)
}

func (h *AlbumHandler) Update(c echo.Context) error {
	var req struct {
		Title         *string   `json:"title"`
		Description   *string   `json:"description"`
		CoverImageURL *string   `json:"coverImageUrl"`
		PhotoIDs      *[]string `json:"photos"`
		Tags          *string   `json:"tags"`
		IsFeatured    *bool     `json:"isFeatured"`
		IsHidden      *bool     `json:"isHidden"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	album, err := h.Store.GetAlbumByID(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load album")
	}
	if album == nil {
		return errorResponse(c, http.StatusNotFound, "album not found")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return errorResponse(c, http.StatusBadRequest, "title cannot be empty")
		}
		album.Title = title
	}
	if req.Description != nil {
		album.Description = strings.TrimSpace(*req.Description)
	}
	if req.CoverImageURL != nil {
		album.CoverImageURL = *req.CoverImageURL
	}
	if req.PhotoIDs != nil {
		album.PhotoIDs = *req.PhotoIDs
	}
	if req.Tags != nil {
		album.Tags = util.ParseTags(*req.Tags)
	}
	if req.IsFeatured != nil {
		album.IsFeatured = *req.IsFeatured
	}
	if req.IsHidden != nil {
		album.IsHidden = *req.IsHidden
	}
	album.UpdatedAt = time.Now().UTC()

	if err := h.Store.UpdateAlbum(ctx, album); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to update album")
	}
	return c.JSON(http.StatusOK, album)
}

// AddPhoto attaches a photo id to the album, validating the photo exists.
func (h *AlbumHandler) AddPhoto(c echo.Context) error {
	ctx := c.Request().Context()
	album, err := h.Store.GetAlbumByID(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load album")
	}
	if album == nil {
		return errorResponse(c, http.StatusNotFound, "album not found")
	}

	photoID := c.Param("photoId")
	photo, err := h.Store.GetPhotoByID(ctx, photoID)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load photo")
	}
	if photo == nil {
		return errorResponse(c, http.StatusNotFound, "photo not found")
	}

	if !containsID(album.PhotoIDs, photoID) {
		album.PhotoIDs = append(album.PhotoIDs, photoID)
	}
	album.UpdatedAt = time.Now().UTC()
	if err := h.Store.UpdateAlbum(ctx, album); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to update album")
	}
	return c.JSON(http.StatusOK, album)
}

func (h *AlbumHandler) RemovePhoto(c echo.Context) error {
	ctx := c.Request().Context()
	album, err := h.Store.GetAlbumByID(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load album")
	}
	if album == nil {
		return errorResponse(c, http.StatusNotFound, "album not found")
	}

	album.PhotoIDs = removeID(album.PhotoIDs, c.Param("photoId"))
	album.UpdatedAt = time.Now().UTC()
	if err := h.Store.UpdateAlbum(ctx, album); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to update album")
	}
	return c.JSON(http.StatusOK, album)
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (h *AlbumHandler) Delete(c echo.Context) error {
	err := h.Store.DeleteAlbum(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, "album not found")
		}
		return errorResponse(c, http.StatusInternalServerError, "failed to delete album")
	}
	return c.NoContent(http.StatusNoContent)
}
