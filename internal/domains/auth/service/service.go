package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/lucasaveiro/service-scheduler/infras/jwt"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/internal/domains/auth/model/dto"
	businessModel "github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	businessRepo "github.com/lucasaveiro/service-scheduler/internal/domains/business/repository"
	businessService "github.com/lucasaveiro/service-scheduler/internal/domains/business/service"
	userModel "github.com/lucasaveiro/service-scheduler/internal/domains/user/model"
	userDto "github.com/lucasaveiro/service-scheduler/internal/domains/user/model/dto"
	userRepo "github.com/lucasaveiro/service-scheduler/internal/domains/user/repository"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	"github.com/lucasaveiro/service-scheduler/shared"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	"github.com/lucasaveiro/service-scheduler/shared/password"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/rs/zerolog/log"
)

const messageInvalidCredentials = "invalid email or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.LoginResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Me(ctx context.Context) (userDto.UserResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo     userRepo.User
	businessRepo businessRepo.Business
	business     businessService.Business
	identity     identity.Identity
	otel         otel.Otel
	jwtService   jwt.JWT
}

func New(
	userRepo userRepo.User,
	businessRepo businessRepo.Business,
	business businessService.Business,
	identity identity.Identity,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		business:     business,
		identity:     identity,
		otel:         otel,
		jwtService:   jwt,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(strings.TrimSpace(email)),
				Table:    userModel.TableName,
			},
		},
	}
}

// Register creates a business owner together with the business they own and signs them in.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	businessID, err := s.business.Create(ctx, req.ToBusinessRequest(user.ID))
	if err != nil {
		if delErr := s.userRepo.Delete(ctx, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); delErr != nil {
			log.Error().Err(delErr).Str("user_id", user.ID).Msg("failed to remove user after business creation failed")
		}

		return res, err //nolint:wrapcheck
	}

	return s.signIn(user, businessID)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := emailFilter(req.Email)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString(messageInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString(messageInvalidCredentials) // nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.BadRequestFromString("user account is deactivated") // nolint:wrapcheck
	}

	businessID, err := s.ownedBusiness(ctx, user)
	if err != nil {
		return res, err
	}

	res, err = s.signIn(user, businessID)
	if err != nil {
		return res, err
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}

	if password.NeedsRehash(user.Password, password.DefaultCost) {
		if lastLogin.Password, err = password.Hash(req.Password); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to upgrade password hash")
		}
	}

	if err = s.userRepo.Update(ctx, shared.ChangedFields(lastLogin, user.ID), filter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	return res, nil
}

func (s *serviceImpl) ownedBusiness(ctx context.Context, user userModel.User) (string, error) {
	if user.Role != constant.RoleBusinessOwner {
		return constant.Empty, nil
	}

	business, err := s.businessRepo.Get(ctx,
		shared.FilterByBusiness(user.ID, businessModel.FieldOwnerID, businessModel.TableName),
		businessModel.FieldID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to get owned business")

		return constant.Empty, fmt.Errorf("failed to get owned business: %w", err)
	}

	return business.ID, nil
}

func (s *serviceImpl) signIn(user userModel.User, businessID string) (res dto.LoginResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(jwt.Subject{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		BusinessID: businessID,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	res.User = &userDto.UserResponse{}
	res.User.FromModel(user, businessID)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Me(ctx context.Context) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, user, err := s.currentUser(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(user, current.BusinessID)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, user, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	if err = password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}
	filter := shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)

	if err = s.userRepo.Update(ctx, shared.ChangedFields(updatePassword, user.ID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) currentUser(ctx context.Context) (*identity.User, userModel.User, error) {
	current, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, userModel.User{}, err //nolint:wrapcheck
	}

	if current == nil {
		return nil, userModel.User{}, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(current.ID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return nil, user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return nil, user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return current, user, nil
}
