package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/martinmanurung/moviebase/internal/domain/users"
	"github.com/martinmanurung/moviebase/pkg/constant"
	"github.com/martinmanurung/moviebase/pkg/jwt"
	"github.com/martinmanurung/moviebase/pkg/response"
	"github.com/segmentio/ksuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateNewUser(ctx context.Context, user users.User) error
	FindUserByEmail(ctx context.Context, email string) (*users.User, error)
	FindUserByUsername(ctx context.Context, username string) (*users.User, error)
	FindUserByExtID(ctx context.Context, extID string) (*users.User, error)
	UpdateUser(ctx context.Context, extID string, updates map[string]interface{}) error
	CreateRefreshToken(ctx context.Context, token users.UserRefreshToken) error
	FindRefreshToken(ctx context.Context, tokenHash string) (*users.UserRefreshToken, error)
	DeleteRefreshToken(ctx context.Context, tokenHash string) error
}

type Usecase struct {
	repo       UserRepository
	jwtService *jwt.JWTService
}

func NewUsecase(repo UserRepository, jwtService *jwt.JWTService) *Usecase {
	return &Usecase{
		repo:       repo,
		jwtService: jwtService,
	}
}

func (u Usecase) RegisterUser(ctx context.Context, payload users.UserRegisterRequest) (*users.UserRegisterResponse, error) {
	existing, err := u.repo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if existing != nil {
		return nil, response.NewError(http.StatusBadRequest, "email_already_taken", nil)
	}

	existing, err = u.repo.FindUserByUsername(ctx, payload.Username)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if existing != nil {
		return nil, response.NewError(http.StatusBadRequest, "username_already_taken", nil)
	}

	hashPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	extID := "user_" + ksuid.New().String()

	user := users.User{
		ExtID:     extID,
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  string(hashPassword),
		Role:      constant.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := u.repo.CreateNewUser(ctx, user); err != nil {
		return nil, response.InternalServerError(err)
	}

	return &users.UserRegisterResponse{
		ExtID:    extID,
		Username: payload.Username,
		Email:    payload.Email,
	}, nil
}

func (u Usecase) LoginUser(ctx context.Context, payload users.UserLoginRequest) (*users.UserLoginResponse, error) {
	// Find user by email
	user, err := u.repo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	if user == nil {
		return nil, response.NewError(http.StatusUnauthorized, "invalid_credentials", nil)
	}

	// Compare password
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password))
	if err != nil {
		return nil, response.NewError(http.StatusUnauthorized, "invalid_credentials", nil)
	}

	// Generate JWT access token
	token, err := u.jwtService.GenerateToken(user.ExtID, user.Role)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	// Generate refresh token (32 bytes random string)
	refreshTokenBytes := make([]byte, 32)
	if _, err := rand.Read(refreshTokenBytes); err != nil {
		return nil, response.InternalServerError(err)
	}
	refreshToken := hex.EncodeToString(refreshTokenBytes)

	// Hash refresh token using SHA256 for storage
	hash := sha256.Sum256([]byte(refreshToken))
	tokenHash := hex.EncodeToString(hash[:])

	// Store refresh token with 7 days expiry
	expiresAt := time.Now().Add(7 * 24 * time.Hour)
	refreshTokenRecord := users.UserRefreshToken{
		UserExtID: user.ExtID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := u.repo.CreateRefreshToken(ctx, refreshTokenRecord); err != nil {
		return nil, response.InternalServerError(err)
	}

	return &users.UserLoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         toProfile(user),
	}, nil
}

// GetUserProfile returns a user's public profile by ext_id
func (u Usecase) GetUserProfile(ctx context.Context, userExtID string) (*users.UserProfile, error) {
	user, err := u.repo.FindUserByExtID(ctx, userExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	if user == nil {
		return nil, response.NewError(http.StatusNotFound, "user_not_found", nil)
	}

	profile := toProfile(user)
	return &profile, nil
}

// UpdateProfile updates a user's own profile. Only the owner may update it,
// and username/email must stay unique across the collection.
func (u Usecase) UpdateProfile(ctx context.Context, callerExtID, userExtID string, payload users.UpdateProfileRequest) (*users.UserProfile, error) {
	if callerExtID != userExtID {
		return nil, response.NewError(http.StatusForbidden, "can_only_update_own_profile", nil)
	}

	user, err := u.repo.FindUserByExtID(ctx, userExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if user == nil {
		return nil, response.NewError(http.StatusNotFound, "user_not_found", nil)
	}

	updates := make(map[string]interface{})

	if payload.Email != "" && payload.Email != user.Email {
		existing, err := u.repo.FindUserByEmail(ctx, payload.Email)
		if err != nil {
			return nil, response.InternalServerError(err)
		}
		if existing != nil {
			return nil, response.NewError(http.StatusBadRequest, "email_already_taken", nil)
		}
		updates["email"] = payload.Email
	}

	if payload.Username != "" && payload.Username != user.Username {
		existing, err := u.repo.FindUserByUsername(ctx, payload.Username)
		if err != nil {
			return nil, response.InternalServerError(err)
		}
		if existing != nil {
			return nil, response.NewError(http.StatusBadRequest, "username_already_taken", nil)
		}
		updates["username"] = payload.Username
	}

	if payload.ProfilePicture != nil {
		updates["profile_picture"] = *payload.ProfilePicture
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := u.repo.UpdateUser(ctx, userExtID, updates); err != nil {
			return nil, response.InternalServerError(err)
		}
	}

	updated, err := u.repo.FindUserByExtID(ctx, userExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	profile := toProfile(updated)
	return &profile, nil
}

func (u Usecase) Logout(ctx context.Context, refreshToken string) error {
	// Hash the incoming refresh token to match stored hash
	hash := sha256.Sum256([]byte(refreshToken))
	tokenHash := hex.EncodeToString(hash[:])

	// Verify token exists and not expired
	storedToken, err := u.repo.FindRefreshToken(ctx, tokenHash)
	if err != nil {
		return response.InternalServerError(err)
	}

	if storedToken == nil {
		return response.NewError(http.StatusUnauthorized, "invalid_refresh_token", nil)
	}

	// Delete the refresh token
	if err := u.repo.DeleteRefreshToken(ctx, tokenHash); err != nil {
		return response.InternalServerError(err)
	}

	return nil
}

func (u Usecase) RefreshToken(ctx context.Context, refreshToken string) (*users.RefreshTokenResponse, error) {
	// Hash the incoming refresh token to match stored hash
	hash := sha256.Sum256([]byte(refreshToken))
	tokenHash := hex.EncodeToString(hash[:])

	// Find and verify token exists and not expired
	storedToken, err := u.repo.FindRefreshToken(ctx, tokenHash)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	if storedToken == nil {
		return nil, response.NewError(http.StatusUnauthorized, "invalid_or_expired_refresh_token", nil)
	}

	// Get user data to generate new access token
	user, err := u.repo.FindUserByExtID(ctx, storedToken.UserExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	if user == nil {
		return nil, response.NewError(http.StatusNotFound, "user_not_found", nil)
	}

	accessToken, err := u.jwtService.GenerateToken(user.ExtID, user.Role)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	return &users.RefreshTokenResponse{
		AccessToken: accessToken,
	}, nil
}

func toProfile(user *users.User) users.UserProfile {
	return users.UserProfile{
		ExtID:          user.ExtID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		ProfilePicture: user.ProfilePicture,
		JoinDate:       user.CreatedAt,
	}
}
