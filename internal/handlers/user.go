package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"photofolio/internal/middleware/auth"
	"photofolio/internal/models"
	"photofolio/internal/store"
)

type UserHandler struct {
	Store store.Store
}

func (h *UserHandler) currentUser(c echo.Context) (*models.User, error) {
	user, err := h.Store.GetUserByID(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return nil, errorResponse(c, http.StatusInternalServerError, "failed to load account")
	}
	if user == nil {
		// valid token for a deleted account
		return nil, errorResponse(c, http.StatusNotFound, "account not found")
	}
	return user, nil
}

func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.currentUser(c)
	if user == nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUsername(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return errorResponse(c, http.StatusBadRequest, "username is required")
	}

	user, err := h.currentUser(c)
	if user == nil {
		return err
	}
	user.Username = req.Username
	return h.saveUser(c, user)
}

func (h *UserHandler) UpdateFirstName(c echo.Context) error {
	return h.updateNameField(c, "firstName", func(u *models.User, v string) { u.FirstName = v })
}

func (h *UserHandler) UpdateLastName(c echo.Context) error {
	return h.updateNameField(c, "lastName", func(u *models.User, v string) { u.LastName = v })
}

func (h *UserHandler) updateNameField(c echo.Context, field string, set func(*models.User, string)) error {
	var req map[string]string
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	value := strings.TrimSpace(req[field])
	if value == "" {
		return errorResponse(c, http.StatusBadRequest, field+" is required")
	}

	user, err := h.currentUser(c)
	if user == nil {
		return err
	}
	set(user, value)
	return h.saveUser(c, user)
}

// UpdateProfilePicture accepts an absolute http(s) URL to an externally
// hosted image; the backend stores the reference, not the asset.
func (h *UserHandler) UpdateProfilePicture(c echo.Context) error {
	var req struct {
		ProfilePicture string `json:"profilePicture"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if !validPictureURL(strings.TrimSpace(req.ProfilePicture)) {
		return errorResponse(c, http.StatusBadRequest, "profilePicture must be a valid URL")
	}

	user, err := h.currentUser(c)
	if user == nil {
		return err
	}
	user.ProfilePicture = strings.TrimSpace(req.ProfilePicture)
	return h.saveUser(c, user)
}

func validPictureURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// UpdatePassword requires the current password before accepting a new one.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.NewPassword == "" {
		return errorResponse(c, http.StatusBadRequest, "newPassword is required")
	}

	user, err := h.currentUser(c)
	if user == nil {
		return err
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return errorResponse(c, http.StatusUnauthorized, "invalid credentials")
	}

	user.SetPassword(req.NewPassword)
	if err := user.HashPassword(); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "failed to update password")
	}
	return h.saveUser(c, user)
}

func (h *UserHandler) saveUser(c echo.Context, user *models.User) error {
	if err := h.Store.UpdateUser(c.Request().Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return errorResponse(c, http.StatusBadRequest, "username or email already taken")
		}
		return errorResponse(c, http.StatusInternalServerError, "failed to update account")
	}
	return c.JSON(http.StatusOK, user)
}

// ---- favorites ----

func (h *UserHandler) ListFavorites(c echo.Context) error {
	user, err := h.currentUser(c)
	if user == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"photos":   emptyIfNil(user.FavoritePhotos),
		"products": emptyIfNil(user.FavoriteProducts),
	})
}

func (h *UserHandler) AddFavoritePhoto(c echo.Context) error {
	return h.editFavorites(c, func(u *models.User, id string) {
		u.FavoritePhotos = models.AddFavorite(u.FavoritePhotos, id)
	})
}

func (h *UserHandler) RemoveFavoritePhoto(c echo.Context) error {
	return h.editFavorites(c, func(u *models.User, id string) {
		u.FavoritePhotos = models.RemoveFavorite(u.FavoritePhotos, id)
	})
}

func (h *UserHandler) AddFavoriteProduct(c echo.Context) error {
	return h.editFavorites(c, func(u *models.User, id string) {
		u.FavoriteProducts = models.AddFavorite(u.FavoriteProducts, id)
	})
}

func (h *UserHandler) RemoveFavoriteProduct(c echo.Context) error {
	return h.editFavorites(c, func(u *models.User, id string) {
		u.FavoriteProducts = models.RemoveFavorite(u.FavoriteProducts, id)
	})
}

func (h *UserHandler) editFavorites(c echo.Context, edit func(*models.User, string)) error {
	id := c.Param("id")
	if id == "" {
		return errorResponse(c, http.StatusBadRequest, "id is required")
	}
	user, err := h.currentUser(c)
	if user == nil {
		return err
	}
	edit(user, id)
	return h.saveUser(c, user)
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
