package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhotoCreateRequiresAdmin(t *testing.T) {
	env := newEnv(t)
	_, userTok := env.newUser("alice", "user")

	fields := map[string]string{"title": "sunrise"}

	rec := env.multipart("/api/v1/admin/photos", "", fields, "image", pngBytes(t))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.multipart("/api/v1/admin/photos", userTok, fields, "image", pngBytes(t))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "insufficient permissions")
	require.Zero(t, env.provider.storeCalls)
}

func TestPhotoCreate(t *testing.T) {
	env := newEnv(t)
	_, adminTok := env.newUser("admin", "admin")

	rec := env.multipart("/api/v1/admin/photos", adminTok, map[string]string{
		"title":       "sunrise",
		"description": "first light",
		"tags":        " Nature , SUNSET, nature ",
		"isFeatured":  "true",
	}, "image", pngBytes(t))
	require.Equal(t, http.StatusCreated, rec.Code)

	var photo struct {
		ID           string   `json:"id"`
		Title        string   `json:"title"`
		ImageURL     string   `json:"imageUrl"`
		ThumbnailURL string   `json:"thumbnailUrl"`
		Tags         []string `json:"tags"`
		IsFeatured   bool     `json:"isFeatured"`
		Metadata     struct {
			Width  int    `json:"width"`
			Height int    `json:"height"`
			Format string `json:"format"`
		} `json:"metadata"`
	}
	decodeJSON(t, rec, &photo)
	require.Equal(t, "sunrise", photo.Title)
	require.NotEmpty(t, photo.ImageURL)
	require.NotEmpty(t, photo.ThumbnailURL)
	require.Equal(t, []string{"nature", "sunset"}, photo.Tags, "tags are normalized and deduplicated")
	require.True(t, photo.IsFeatured)
	require.Equal(t, 32, photo.Metadata.Width)
	require.Equal(t, "png", photo.Metadata.Format)
	require.Equal(t, 1, env.provider.storeCalls)

	// storage key and provider stay out of the API payload
	require.NotContains(t, rec.Body.String(), "photos/test/")
	require.Len(t, env.pub.byType("photo_created"), 1)
}

func TestPhotoCreateEmptyFileFailsBeforeBackend(t *testing.T) {
	env := newEnv(t)
	_, adminTok := env.newUser("admin", "admin")

	rec := env.multipart("/api/v1/admin/photos", adminTok, map[string]string{
		"title": "sunrise",
	}, "image", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, env.provider.storeCalls)
}

func TestPhotoCreateDuplicateTitle(t *testing.T) {
	env := newEnv(t)
	_, adminTok := env.newUser("admin", "admin")
	env.seedPhoto("sunrise", false, false)

	rec := env.multipart("/api/v1/admin/photos", adminTok, map[string]string{
		"title": "sunrise",
	}, "image", pngBytes(t))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, env.provider.storeCalls, "duplicate is rejected before uploading")
}

func TestPhotoListHidesHidden(t *testing.T) {
	env := newEnv(t)
	env.seedPhoto("visible", false, false, "nature")
	env.seedPhoto("hidden", true, false, "nature")

	rec := env.request(http.MethodGet, "/api/v1/photos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "visible", resp.Data[0].Title)
	require.EqualValues(t, 1, resp.Meta.Total)
}

func TestPhotoListTagFilter(t *testing.T) {
	env := newEnv(t)
	env.seedPhoto("forest", false, false, "nature", "green")
	env.seedPhoto("city", false, false, "urban")

	rec := env.request(http.MethodGet, "/api/v1/photos?tag=urban", "", nil)
	var resp struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "city", resp.Data[0].Title)
}

func TestPhotoListPaginationClamped(t *testing.T) {
	env := newEnv(t)
	for _, title := range []string{"a", "b", "c"} {
		env.seedPhoto(title, false, false)
	}

	rec := env.request(http.MethodGet, "/api/v1/photos?page=-1&size=5000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Meta struct {
			Page int `json:"page"`
			Size int `json:"size"`
		} `json:"meta"`
	}
	decodeJSON(t, rec, &resp)
	require.Equal(t, 1, resp.Meta.Page, "meta reports the page actually served")
	require.Equal(t, 10, resp.Meta.Size, "oversized page size clamps to the default")
}

func TestPhotoFeatured(t *testing.T) {
	env := newEnv(t)
	env.seedPhoto("plain", false, false)
	env.seedPhoto("star", false, true)

	rec := env.request(http.MethodGet, "/api/v1/photos/featured", "", nil)
	var resp struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "star", resp.Data[0].Title)
}

func TestPhotoGetHidden(t *testing.T) {
	env := newEnv(t)
	_, adminTok := env.newUser("admin", "admin")
	photo := env.seedPhoto("secret", true, false)

	rec := env.request(http.MethodGet, "/api/v1/photos/"+photo.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(http.MethodGet, "/api/v1/photos/"+photo.ID, adminTok, nil)
	require.Equal(t, http.StatusNotFound, rec.Code, "public route has no guard, so no admin context")
}

func TestPhotoFullResRequiresAuth(t *testing.T) {
	env := newEnv(t)
	_, tok := env.newUser("alice", "user")
	photo := env.seedPhoto("sunrise", false, false)

	rec := env.request(http.MethodGet, "/api/v1/photos/"+photo.ID+"/full", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(http.MethodGet, "/api/v1/photos/"+photo.ID+"/full", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), photo.ImageURL)
}

func TestPhotoUpdate(t *testing.T) {
	env := newEnv(t)
	_, adminTok := env.newUser("admin", "admin")
	photo := env.seedPhoto("sunrise", false, false)

	rec := env.request(http.MethodPatch, "/api/v1/admin/photos/"+photo.ID, adminTok, map[string]any{
		"title":    "sunrise v2",
		"isHidden": true,
		"tags":     "Golden, HOUR",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := env.store.GetPhotoByID(context.Background(), photo.ID)
	require.NoError(t, err)
	require.Equal(t, "sunrise v2", stored.Title)
	require.True(t, stored.IsHidden)
	require.Equal(t, []string{"golden", "hour"}, stored.Tags)
	require.Equal(t, photo.ImageURL, stored.ImageURL, "image url is immutable")
	require.Equal(t, photo.StorageKey, stored.StorageKey, "storage key is immutable")
}

func TestPhotoDeleteSurvivesBackendFailure(t *testing.T) {
	env := newEnv(t)
	_, adminTok := env.newUser("admin", "admin")
	photo := env.seedPhoto("sunrise", false, false)
	env.provider.failDelete = true

	rec := env.request(http.MethodDelete, "/api/v1/admin/photos/"+photo.ID, adminTok, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, "asset delete failure does not fail the request")
	require.Equal(t, 1, env.provider.deleteCalls)

	stored, err := env.store.GetPhotoByID(context.Background(), photo.ID)
	require.NoError(t, err)
	require.Nil(t, stored)
	require.Len(t, env.pub.byType("photo_deleted"), 1)
}

func TestSearchFallback(t *testing.T) {
	env := newEnv(t)
	env.seedPhoto("mountain lake", false, false, "landscape")
	env.seedPhoto("city night", false, false, "urban")
	env.seedPhoto("hidden lake", true, false, "landscape")

	rec := env.request(http.MethodGet, "/api/v1/search/photos?q=lake", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total  int64 `json:"total"`
		Photos []struct {
			Title string `json:"title"`
		} `json:"photos"`
	}
	decodeJSON(t, rec, &resp)
	require.EqualValues(t, 1, resp.Total, "hidden photos stay out of search results")
	require.Equal(t, "mountain lake", resp.Photos[0].Title)

	missing := env.request(http.MethodGet, "/api/v1/search/photos", "", nil)
	require.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestPhotoCreateWatermarkOptIn(t *testing.T) {
	env := newEnv(t)
	_, adminTok := env.newUser("admin", "admin")

	// without the form field the image is stored unmarked
	rec := env.multipart("/api/v1/admin/photos", adminTok, map[string]string{
		"title": "plain",
	}, "image", pngBytes(t))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.False(t, env.provider.lastHints.Watermark)

	rec = env.multipart("/api/v1/admin/photos", adminTok, map[string]string{
		"title":     "marked",
		"watermark": "true",
	}, "image", pngBytes(t))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.provider.lastHints.Watermark)
}
