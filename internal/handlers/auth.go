package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"photofolio/internal/events"
	"photofolio/internal/middleware/auth"
	"photofolio/internal/models"
	"photofolio/internal/service/token"
	"photofolio/internal/store"
)

type AuthHandler struct {
	Store    store.Store
	Tokens   *token.Service
	Producer events.Publisher
}

// Register creates an account and issues a token, so signup logs the user
// straight in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return errorResponse(c, http.StatusBadRequest, "username, email and password are required")
	}

	ctx := c.Request().Context()

	if existing, err := h.Store.GetUserByUsername(ctx, req.Username); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "registration failed")
	} else if existing != nil {
		return errorResponse(c, http.StatusBadRequest, "username already taken")
	}
	if existing, err := h.Store.GetUserByEmail(ctx, req.Email); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "registration failed")
	} else if existing != nil {
		return errorResponse(c, http.StatusBadRequest, "email already registered")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.SetPassword(req.Password)
	if err := user.HashPassword(); err != nil {
		return errorResponse(c, http.StatusInternalServerError, "registration failed")
	}

	if err := h.Store.CreateUser(ctx, user); err != nil {
		// unique index may still trip under concurrent signups
		if errors.Is(err, store.ErrDuplicate) {
			return errorResponse(c, http.StatusBadRequest, "username or email already registered")
		}
		return errorResponse(c, http.StatusInternalServerError, "registration failed")
	}

	tok, err := h.Tokens.Issue(user.ID, user.Role, user.Username, user.Email)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "registration failed")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusCreated, echo.Map{"token": tok, "user": user})
}

// Login authenticates by email. An unknown account and a wrong password get
// the same response so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.Store.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "login failed")
	}
	if user == nil || !user.CheckPassword(req.Password) {
		return errorResponse(c, http.StatusUnauthorized, "invalid credentials")
	}

	tok, err := h.Tokens.Issue(user.ID, user.Role, user.Username, user.Email)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "login failed")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{"token": tok, "user": user})
}

// Check reports the identity the guard decoded; it exists so clients can
// validate a stored token.
func (h *AuthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"userID":   auth.UserID(c),
		"role":     auth.Role(c),
		"username": c.Get(auth.CtxUsername),
		"email":    c.Get(auth.CtxEmail),
	})
}
