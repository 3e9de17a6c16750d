package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/martinmanurung/moviebase/internal/domain/users"
	"github.com/martinmanurung/moviebase/pkg/constant"
	"github.com/martinmanurung/moviebase/pkg/jwt"
	"github.com/martinmanurung/moviebase/pkg/response"
)

type fakeUserRepo struct {
	users  map[string]*users.User
	tokens map[string]users.UserRefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*users.User),
		tokens: make(map[string]users.UserRefreshToken),
	}
}

func (f *fakeUserRepo) CreateNewUser(_ context.Context, user users.User) error {
	f.users[user.ExtID] = &user
	return nil
}

func (f *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*users.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindUserByUsername(_ context.Context, username string) (*users.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindUserByExtID(_ context.Context, extID string) (*users.User, error) {
	u, ok := f.users[extID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, extID string, updates map[string]interface{}) error {
	u, ok := f.users[extID]
	if !ok {
		return nil
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["username"]; ok {
		u.Username = v.(string)
	}
	if v, ok := updates["profile_picture"]; ok {
		u.ProfilePicture = v.(string)
	}
	return nil
}

func (f *fakeUserRepo) CreateRefreshToken(_ context.Context, token users.UserRefreshToken) error {
	f.tokens[token.TokenHash] = token
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(_ context.Context, tokenHash string) (*users.UserRefreshToken, error) {
	token, ok := f.tokens[tokenHash]
	if !ok || token.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return &token, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(_ context.Context, tokenHash string) error {
	delete(f.tokens, tokenHash)
	return nil
}

func newTestUsecase() (*Usecase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewUsecase(repo, jwtService), repo
}

func apiErrOf(t *testing.T, err error) *response.APIError {
	t.Helper()
	apiErr, ok := err.(*response.APIError)
	if !ok {
		t.Fatalf("expected *response.APIError, got %T: %v", err, err)
	}
	return apiErr
}

func registerAlice(t *testing.T, uc *Usecase) *users.UserRegisterResponse {
	t.Helper()
	result, err := uc.RegisterUser(context.Background(), users.UserRegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return result
}

func TestRegisterUser_Success(t *testing.T) {
	uc, repo := newTestUsecase()

	result := registerAlice(t, uc)
	if !strings.HasPrefix(result.ExtID, "user_") {
		t.Fatalf("unexpected ext id format: %s", result.ExtID)
	}

	stored := repo.users[result.ExtID]
	if stored == nil {
		t.Fatal("user not stored")
	}
	if stored.Role != constant.RoleUser {
		t.Fatalf("expected role %s, got %s", constant.RoleUser, stored.Role)
	}
	if stored.Password == "secret123" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	uc, _ := newTestUsecase()
	registerAlice(t, uc)

	_, err := uc.RegisterUser(context.Background(), users.UserRegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err == nil {
		t.Fatal("expected duplicate email to fail")
	}
	apiErr := apiErrOf(t, err)
	if apiErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", apiErr.Code)
	}
	if apiErr.Message != "email_already_taken" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	uc, _ := newTestUsecase()
	registerAlice(t, uc)

	_, err := uc.RegisterUser(context.Background(), users.UserRegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	if err == nil {
		t.Fatal("expected duplicate username to fail")
	}
	if apiErr := apiErrOf(t, err); apiErr.Message != "username_already_taken" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestLoginUser_Success(t *testing.T) {
	uc, repo := newTestUsecase()
	registerAlice(t, uc)

	result, err := uc.LoginUser(context.Background(), users.UserLoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected access token")
	}
	if result.RefreshToken == "" {
		t.Fatal("expected refresh token")
	}
	if result.User.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", result.User)
	}
	if len(repo.tokens) != 1 {
		t.Fatalf("expected 1 stored refresh token, got %d", len(repo.tokens))
	}
	// Stored hash must not be the raw token
	if _, ok := repo.tokens[result.RefreshToken]; ok {
		t.Fatal("refresh token stored unhashed")
	}
}

func TestLoginUser_WrongPassword(t *testing.T) {
	uc, _ := newTestUsecase()
	registerAlice(t, uc)

	_, err := uc.LoginUser(context.Background(), users.UserLoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	if err == nil {
		t.Fatal("expected wrong password to fail")
	}
	apiErr := apiErrOf(t, err)
	if apiErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.Code)
	}
	if apiErr.Message != "invalid_credentials" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.LoginUser(context.Background(), users.UserLoginRequest{
		Email:    "ghost@example.com",
		Password: "secret123",
	})
	if err == nil {
		t.Fatal("expected unknown email to fail")
	}
	if apiErr := apiErrOf(t, err); apiErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.Code)
	}
}

func TestRefreshToken_Roundtrip(t *testing.T) {
	uc, _ := newTestUsecase()
	registerAlice(t, uc)
	ctx := context.Background()

	login, err := uc.LoginUser(ctx, users.UserLoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := uc.RefreshToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("expected new access token")
	}

	if err := uc.Logout(ctx, login.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// Token is gone after logout
	_, err = uc.RefreshToken(ctx, login.RefreshToken)
	if err == nil {
		t.Fatal("expected refresh after logout to fail")
	}
	if apiErr := apiErrOf(t, err); apiErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.Code)
	}
}

func TestLogout_UnknownToken(t *testing.T) {
	uc, _ := newTestUsecase()

	err := uc.Logout(context.Background(), "bogus")
	if err == nil {
		t.Fatal("expected unknown refresh token to fail")
	}
	if apiErr := apiErrOf(t, err); apiErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.Code)
	}
}

func TestGetUserProfile_NotFound(t *testing.T) {
	uc, _ := newTestUsecase()

	_, err := uc.GetUserProfile(context.Background(), "user_missing")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apiErr := apiErrOf(t, err); apiErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", apiErr.Code)
	}
}

func TestUpdateProfile_OtherUserForbidden(t *testing.T) {
	uc, _ := newTestUsecase()
	alice := registerAlice(t, uc)

	_, err := uc.UpdateProfile(context.Background(), "user_other", alice.ExtID, users.UpdateProfileRequest{Username: "hacked"})
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	apiErr := apiErrOf(t, err)
	if apiErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", apiErr.Code)
	}
	if apiErr.Message != "can_only_update_own_profile" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	uc, _ := newTestUsecase()
	alice := registerAlice(t, uc)
	ctx := context.Background()

	if _, err := uc.RegisterUser(ctx, users.UserRegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("register bob failed: %v", err)
	}

	_, err := uc.UpdateProfile(ctx, alice.ExtID, alice.ExtID, users.UpdateProfileRequest{Username: "bob"})
	if err == nil {
		t.Fatal("expected taken username to fail")
	}
	if apiErr := apiErrOf(t, err); apiErr.Message != "username_already_taken" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	uc, _ := newTestUsecase()
	alice := registerAlice(t, uc)
	ctx := context.Background()

	picture := "http://example.com/alice.png"
	result, err := uc.UpdateProfile(ctx, alice.ExtID, alice.ExtID, users.UpdateProfileRequest{
		Username:       "alice_new",
		ProfilePicture: &picture,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if result.Username != "alice_new" {
		t.Fatalf("expected updated username, got %s", result.Username)
	}
	if result.ProfilePicture != picture {
		t.Fatalf("expected updated picture, got %s", result.ProfilePicture)
	}
	// Email untouched
	if result.Email != "alice@example.com" {
		t.Fatalf("email should be unchanged, got %s", result.Email)
	}
}
