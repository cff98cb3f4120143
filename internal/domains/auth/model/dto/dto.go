package dto

import (
	"strings"
	"time"

	"github.com/lucasaveiro/service-scheduler/infras/jwt"
	businessDto "github.com/lucasaveiro/service-scheduler/internal/domains/business/model/dto"
	userModel "github.com/lucasaveiro/service-scheduler/internal/domains/user/model"
	userDto "github.com/lucasaveiro/service-scheduler/internal/domains/user/model/dto"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gModel "github.com/lucasaveiro/service-scheduler/shared/model"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email        string `json:"email"         validate:"required,email"`
	Password     string `json:"password"      validate:"required,min=8"`
	FullName     string `json:"full_name"     validate:"required,max=100"`
	BusinessName string `json:"business_name" validate:"required,max=150"`
	BusinessType string `json:"business_type" validate:"omitempty,oneof=housekeeping landscaping personal_care professional_services other"`
}

// ToUserModel builds a business owner account; self registration never grants another role.
func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Role:     constant.RoleBusinessOwner,
		FullName: strings.TrimSpace(r.FullName),
		Active:   true,
		Metadata: gModel.NewMetadata(constant.ContextGuest, now),
	}
}

func (r *RegisterRequest) ToBusinessRequest(ownerID string) businessDto.CreateBusinessRequest {
	return businessDto.CreateBusinessRequest{
		OwnerID:      ownerID,
		BusinessName: strings.TrimSpace(r.BusinessName),
		BusinessType: r.BusinessType,
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
	Password  string    `db:"password"   json:"-"`
}

type LoginResponse struct {
	AccessToken  string                `json:"access_token"`
	RefreshToken string                `json:"refresh_token"`
	TokenType    string                `json:"token_type"`
	ExpiresIn    int64                 `json:"expires_in"`
	User         *userDto.UserResponse `json:"user,omitempty"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
