package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"photofolio/internal/events"
	"photofolio/internal/middleware/auth"
	"photofolio/internal/models"
	"photofolio/internal/service/search"
	"photofolio/internal/store"
	"photofolio/internal/upload"
	"photofolio/internal/util"
)

type PhotoHandler struct {
	Store    store.Store
	Uploads  *upload.Service
	Search   *search.Service // nil when Elasticsearch is not configured
	Producer events.Publisher
}

// List is the public gallery: hidden photos are excluded, results filter by
// tag and free-text search, and pagination is clamped.
func (h *PhotoHandler) List(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	page, offset, limit := util.Calculate(page, size)

	filter := store.PhotoFilter{
		Tag:          strings.ToLower(strings.TrimSpace(c.QueryParam("tag"))),
		Search:       strings.TrimSpace(c.QueryParam("search")),
		FeaturedOnly: util.ParseBool(c.QueryParam("featured"), false),
		Offset:       offset,
		Limit:        limit,
	}

	items, total, err := h.Store.ListPhotos(c.Request().Context(), filter)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list photos")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": pageMeta(page, limit, total, offset),
	})
}

func (h *PhotoHandler) Featured(c echo.Context) error {
	items, _, err := h.Store.ListPhotos(c.Request().Context(), store.PhotoFilter{
		FeaturedOnly: true,
		Limit:        util.DefaultPageSize,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to list photos")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *PhotoHandler) Get(c echo.Context) error {
	photo, err := h.Store.GetPhotoByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load photo")
	}
	if photo == nil || (photo.IsHidden && !auth.IsAdmin(c)) {
		return errorResponse(c, http.StatusNotFound, "photo not found")
	}
	return c.JSON(http.StatusOK, photo)
}

// FullRes hands out the original image URL; it sits behind the guard so
// only authenticated users reach the full-resolution asset.
func (h *PhotoHandler) FullRes(c echo.Context) error {
	photo, err := h.Store.GetPhotoByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load photo")
	}
	if photo == nil || (photo.IsHidden && !auth.IsAdmin(c)) {
		return errorResponse(c, http.StatusNotFound, "photo not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"url": photo.ImageURL})
}

// Create stores the uploaded asset first and the document second. If the
// document write fails the stored asset is deleted again so no orphan
// remains.
func (h *PhotoHandler) Create(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return errorResponse(c, http.StatusBadRequest, "title is required")
	}

	ctx := c.Request().Context()

	if existing, err := h.Store.GetPhotoByTitle(ctx, title); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to create photo")
	} else if existing != nil {
		return errorResponse(c, http.StatusBadRequest, "a photo with this title already exists")
	}

	data, err := readFormFile(c, "image")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "image file is required")
	}

	res, err := h.Uploads.Store(ctx, data, upload.Hints{
		Title:     title,
		Watermark: util.ParseBool(c.FormValue("watermark"), false),
	})
	if err != nil {
		if errors.Is(err, upload.ErrEmptyFile) {
			return errorResponse(c, http.StatusBadRequest, "image file is empty")
		}
		return errorResponse(c, http.StatusBadGateway, "image upload failed")
	}

	now := time.Now().UTC()
	photo := &models.Photo{
		ID:           uuid.NewString(),
		Title:        title,
		ImageURL:     res.URL,
		ThumbnailURL: res.ThumbnailURL,
		StorageKey:   res.StorageKey,
		Provider:     res.Provider,
		Description:  strings.TrimSpace(c.FormValue("description")),
		Tags:         util.ParseTags(c.FormValue("tags")),
		IsFeatured:   util.ParseBool(c.FormValue("isFeatured"), false),
		IsHidden:     util.ParseBool(c.FormValue("isHidden"), false),
		Metadata: models.PhotoMetadata{
			Width:        res.Width,
			Height:       res.Height,
			Format:       res.Format,
			SizeKB:       res.SizeKB,
			Location:     strings.TrimSpace(c.FormValue("location")),
			Photographer: strings.TrimSpace(c.FormValue("photographer")),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Store.CreatePhoto(ctx, photo); err != nil {
		h.Uploads.Delete(ctx, res.StorageKey, res.Provider)
		if errors.Is(err, store.ErrDuplicate) {
			return errorResponse(c, http.StatusBadRequest, "a photo with this title already exists")
		}
		return errorResponse(c, http.StatusInternalServerError, "failed to create photo")
	}

	if h.Search != nil {
		h.Search.IndexPhoto(ctx, photo)
	}

	publish(c, h.Producer, events.TopicPhotoEvents, photo.ID, map[string]any{
		"type":    "photo_created",
		"photoID": photo.ID,
		"title":   photo.Title,
	})

	return c.JSON(http.StatusCreated, photo)
}

// Update edits the document only. The stored asset is immutable: imageUrl,
// storage key and provider never change after upload.
func (h *PhotoHandler) Update(c echo.Context) error {
	var req struct {
		Title        *string  `json:"title"`
		Description  *string  `json:"description"`
		Tags         *string  `json:"tags"`
		IsFeatured   *bool    `json:"isFeatured"`
		IsHidden     *bool    `json:"isHidden"`
		Location     *string  `json:"location"`
		Photographer *string  `json:"photographer"`
		DateTaken    *string  `json:"dateTaken"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	photo, err := h.Store.GetPhotoByID(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load photo")
	}
	if photo == nil {
		return errorResponse(c, http.StatusNotFound, "photo not found")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return errorResponse(c, http.StatusBadRequest, "title cannot be empty")
		}
		photo.Title = title
	}
	if req.Description != nil {
		photo.Description = strings.TrimSpace(*req.Description)
	}
	if req.Tags != nil {
		photo.Tags = util.ParseTags(*req.Tags)
	}
	if req.IsFeatured != nil {
		photo.IsFeatured = *req.IsFeatured
	}
	if req.IsHidden != nil {
		photo.IsHidden = *req.IsHidden
	}
	if req.Location != nil {
		photo.Metadata.Location = strings.TrimSpace(*req.Location)
	}
	if req.Photographer != nil {
		photo.Metadata.Photographer = strings.TrimSpace(*req.Photographer)
	}
	if req.DateTaken != nil {
		if t, err := time.Parse(time.RFC3339, *req.DateTaken); err == nil {
			photo.Metadata.DateTaken = &t
		}
	}
	photo.UpdatedAt = time.Now().UTC()

	if err := h.Store.UpdatePhoto(ctx, photo); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return errorResponse(c, http.StatusBadRequest, "a photo with this title already exists")
		}
		return errorResponse(c, http.StatusInternalServerError, "failed to update photo")
	}

	if h.Search != nil {
		h.Search.IndexPhoto(ctx, photo)
	}

	return c.JSON(http.StatusOK, photo)
}

// Delete removes the document and then the stored asset. The asset delete
// is best effort: a backend failure is logged but the photo is still gone.
func (h *PhotoHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	photo, err := h.Store.GetPhotoByID(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to load photo")
	}
	if photo == nil {
		return errorResponse(c, http.StatusNotFound, "photo not found")
	}

	if err := h.Store.DeletePhoto(ctx, photo.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, "photo not found")
		}
		return errorResponse(c, http.StatusInternalServerError, "failed to delete photo")
	}

	h.Uploads.Delete(ctx, photo.StorageKey, photo.Provider)

	if h.Search != nil {
		h.Search.DeletePhoto(ctx, photo.ID)
	}

	publish(c, h.Producer, events.TopicPhotoEvents, photo.ID, map[string]any{
		"type":    "photo_deleted",
		"photoID": photo.ID,
	})

	return c.NoContent(http.StatusNoContent)
}

func readFormFile(c echo.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
