package delivery

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/moviebase/internal/domain/reviews"
	"github.com/martinmanurung/moviebase/internal/domain/users"
	"github.com/martinmanurung/moviebase/pkg/jwt"
	"github.com/martinmanurung/moviebase/pkg/middleware"
	"github.com/martinmanurung/moviebase/pkg/response"
)

type UserUsecase interface {
	RegisterUser(ctx context.Context, payload users.UserRegisterRequest) (*users.UserRegisterResponse, error)
	LoginUser(ctx context.Context, payload users.UserLoginRequest) (*users.UserLoginResponse, error)
	GetUserProfile(ctx context.Context, userExtID string) (*users.UserProfile, error)
	UpdateProfile(ctx context.Context, callerExtID, userExtID string, payload users.UpdateProfileRequest) (*users.UserProfile, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*users.RefreshTokenResponse, error)
}

// ReviewLister supplies the review history shown on the profile view
type ReviewLister interface {
	ListByUser(ctx context.Context, userExtID string) ([]reviews.UserReviewResponse, error)
}

type Handler struct {
	ctx          context.Context
	usecase      UserUsecase
	reviewLister ReviewLister
}

func NewHandler(ctx context.Context, usecase UserUsecase, reviewLister ReviewLister) *Handler {
	return &Handler{
		ctx:          ctx,
		usecase:      usecase,
		reviewLister: reviewLister,
	}
}

func (h *Handler) RegisterUser(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := h.ctx

	logger.Info().Msg("Starting user registration")

	var req users.UserRegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error().Err(err).Msg("Failed to bind request")
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		logger.Warn().Err(err).Msg("Validation failed")
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.RegisterUser(ctx, req)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			logger.Error().Err(err).Msg("Failed to register user")
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		logger.Error().Err(err).Msg("Internal server error during registration")
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	logger.Info().Msg("User registered successfully")

	return response.Success(c, http.StatusCreated, "user_registered_successfully", result)
}

func (h *Handler) LoginUser(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := h.ctx

	logger.Info().Msg("User login attempt")

	var req users.UserLoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error().Err(err).Msg("Failed to bind login request")
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		logger.Warn().Err(err).Msg("Login validation failed")
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.LoginUser(ctx, req)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			logger.Warn().Msg("Login failed")
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		logger.Error().Err(err).Msg("Internal server error during login")
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	logger.Info().Msg("User logged in successfully")

	return response.Success(c, http.StatusOK, "login_successful", result)
}

// GetMe returns the authenticated user's own profile
// GET /api/v1/users/me
func (h *Handler) GetMe(c echo.Context) error {
	ctx := h.ctx

	extID, err := jwt.GetUserExtIDFromContext(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", "invalid token")
	}

	result, err := h.usecase.GetUserProfile(ctx, extID)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// GetUserProfile returns a user's public profile with their review history
// GET /api/v1/users/:id
func (h *Handler) GetUserProfile(c echo.Context) error {
	ctx := h.ctx

	userExtID := c.Param("id")

	user, err := h.usecase.GetUserProfile(ctx, userExtID)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	userReviews, err := h.reviewLister.ListByUser(ctx, userExtID)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return response.Success(c, http.StatusOK, "success", map[string]interface{}{
		"user":    user,
		"reviews": userReviews,
	})
}

// UpdateProfile updates a user's own profile (self only)
// PUT /api/v1/users/:id
func (h *Handler) UpdateProfile(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := h.ctx

	callerExtID, err := jwt.GetUserExtIDFromContext(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	userExtID := c.Param("id")

	var req users.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.UpdateProfile(ctx, callerExtID, userExtID, req)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		logger.Error().Err(err).Msg("Failed to update profile")
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return response.Success(c, http.StatusOK, "profile_updated_successfully", result)
}

func (h *Handler) Logout(c echo.Context) error {
	ctx := h.ctx

	var req users.LogoutRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := h.usecase.Logout(ctx, req.RefreshToken); err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return response.Success(c, http.StatusOK, "logged_out_successfully", nil)
}

func (h *Handler) RefreshToken(c echo.Context) error {
	ctx := h.ctx

	var req users.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return response.Success(c, http.StatusOK, "token_refreshed_successfully", result)
}
