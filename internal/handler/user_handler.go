package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"libraryhub/internal/auth"
	apperrors "libraryhub/internal/errors"
	"libraryhub/internal/logger"
	"libraryhub/internal/model"
	"libraryhub/internal/service"
)

// ClaimsContextKey is where the auth middleware stores the verified claims.
const ClaimsContextKey = "user"

// UserHandler handles signup, login and logout.
type UserHandler struct {
	userService service.UserService
	jwtService  *auth.JWTService
	tokens      auth.TokenStoreInterface
	log         zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, jwtService *auth.JWTService, tokens auth.TokenStoreInterface, log zerolog.Logger) *UserHandler {
	return &UserHandler{userService: userService, jwtService: jwtService, tokens: tokens, log: log}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,libname"`
	Email    string `json:"email" validate:"required,libemail"`
	Password string `json:"password" validate:"required,libpassword"`
	Year     string `json:"year" validate:"required,libyear"`
	Branch   string `json:"branch" validate:"required,libbranch"`
	Role     string `json:"role" validate:"required,librole"`
}

func (r *SignupRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Password = strings.TrimSpace(r.Password)
	r.Year = strings.TrimSpace(r.Year)
	r.Branch = strings.TrimSpace(r.Branch)
	r.Role = strings.TrimSpace(r.Role)
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,libemail"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Password = strings.TrimSpace(r.Password)
}

// Signup godoc
// @Summary Register a new user
// @Tags user
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} Envelope{data=TokenResponse}
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Year:     req.Year,
		Branch:   strings.ToUpper(req.Branch),
		Role:     model.RoleUser,
	}
	if _, err := h.userService.SignupUser(c.Request().Context(), user); err != nil {
		h.log.Warn().Err(err).Fields(logger.Redact(map[string]interface{}{"email": req.Email, "password": req.Password})).Msg("signup failed")
		return err
	}

	token, err := h.jwtService.CreateToken(user.ID, user.Role)
	if err != nil {
		return err
	}

	h.log.Info().Str("user_id", user.ID).Msg("user signed up")
	return success(c, http.StatusCreated, "user signed up successfully", TokenResponse{Token: token, Role: user.Role})
}

// Login godoc
// @Summary Login user
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope{data=TokenResponse}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.userService.LoginUser(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn().Err(err).Fields(logger.Redact(map[string]interface{}{"email": req.Email, "password": req.Password})).Msg("login failed")
		return err
	}

	token, err := h.jwtService.CreateToken(user.ID, user.Role)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "login successful", TokenResponse{Token: token, Role: user.Role})
}

// Logout godoc
// @Summary Revoke the current access token
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return apperrors.ErrTokenMissing
	}

	ttl := h.jwtService.Expiry()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := h.tokens.Revoke(c.Request().Context(), claims.ID, ttl); err != nil {
		return err
	}

	return success(c, http.StatusOK, "logged out successfully", nil)
}
