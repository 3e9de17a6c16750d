package users

import "time"

type User struct {
	ID             int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ExtID          string    `json:"ext_id" gorm:"type:varchar(64);uniqueIndex"`
	Username       string    `json:"username" gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Password       string    `json:"-" gorm:"type:varchar(255);not null"`
	Role           string    `json:"role" gorm:"type:varchar(20);not null;default:USER"`
	ProfilePicture string    `json:"profile_picture,omitempty" gorm:"type:varchar(512)"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

type UserRefreshToken struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserExtID string    `json:"user_ext_id" gorm:"column:user_ext_id;not null;index"`
	TokenHash string    `json:"token_hash" gorm:"type:varchar(64);unique"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for UserRefreshToken
func (UserRefreshToken) TableName() string {
	return "user_refresh_tokens"
}

type UserRegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type UserLoginResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         UserProfile `json:"user"`
}

// UpdateProfileRequest updates a user's own profile. ProfilePicture is a
// pointer so an explicit empty string clears the picture.
type UpdateProfileRequest struct {
	Username       string  `json:"username" validate:"omitempty,min=3,max=100"`
	Email          string  `json:"email" validate:"omitempty,email"`
	ProfilePicture *string `json:"profile_picture"`
}

type UserProfile struct {
	ExtID          string    `json:"ext_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	JoinDate       time.Time `json:"join_date"`
}

type UserRegisterResponse struct {
	ExtID    string `json:"ext_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
