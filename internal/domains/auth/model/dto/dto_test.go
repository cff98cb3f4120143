package dto_test

import (
	"testing"

	"github.com/lucasaveiro/service-scheduler/infras/jwt"
	"github.com/lucasaveiro/service-scheduler/internal/domains/auth/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Nil(t, response.User)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    " Owner@Example.com ",
		FullName: " Jo Owner ",
	}

	user := req.ToUserModel("hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, "Jo Owner", user.FullName)
	assert.Equal(t, constant.RoleBusinessOwner, user.Role)
	assert.True(t, user.Active)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
}

func TestRegisterRequest_ToBusinessRequest(t *testing.T) {
	req := dto.RegisterRequest{BusinessName: " Green Lawns ", BusinessType: model.TypeLandscaping}

	business := req.ToBusinessRequest("user-1")

	assert.Equal(t, "user-1", business.OwnerID)
	assert.Equal(t, "Green Lawns", business.BusinessName)
	assert.Equal(t, model.TypeLandscaping, business.BusinessType)
}
