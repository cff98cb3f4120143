// Package identity resolves who is calling. Anonymous callers resolve to a nil user.
package identity

//go:generate go run go.uber.org/mock/mockgen -source=./identity.go -destination=./mocks/identity_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
	businessModel "github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	businessRepo "github.com/lucasaveiro/service-scheduler/internal/domains/business/repository"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/rs/zerolog/log"
)

type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	BusinessID string `json:"business_id,omitempty"`
}

// Actor is the value recorded in created_by and modified_by columns.
func Actor(u *User) string {
	if u == nil || u.ID == constant.Empty {
		return constant.ContextGuest
	}

	return u.ID
}

type Identity interface {
	CurrentUser(ctx context.Context) (*User, error)
}

type claimsImpl struct {
	business businessRepo.Business
	otel     otel.Otel
}

// New reads the caller from the token claims the auth middleware stored on the context.
// Owners whose token predates their business are resolved through the business table.
func New(business businessRepo.Business, otel otel.Otel) Identity {
	return &claimsImpl{
		business: business,
		otel:     otel,
	}
}

func (i *claimsImpl) CurrentUser(ctx context.Context) (res *User, err error) {
	ctx, scope := i.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".identity.CurrentUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return nil, nil
	}

	res = &User{ID: userID}
	res.Email, _ = ctx.Value(constant.ContextKeyUserEmail).(string)
	res.Role, _ = ctx.Value(constant.ContextKeyUserRole).(string)
	res.BusinessID, _ = ctx.Value(constant.ContextKeyBusinessID).(string)

	if res.BusinessID != constant.Empty || res.Role != constant.RoleBusinessOwner {
		return res, nil
	}

	owned, err := i.business.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    businessModel.FieldOwnerID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    businessModel.TableName,
			},
		},
	}, businessModel.FieldID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to resolve owned business")

		return nil, failure.Collaborator(fmt.Errorf("failed to resolve owned business: %w", err))
	}

	res.BusinessID = owned.ID

	return res, nil
}

// RequireBusiness returns the business the caller acts for, or a failure when there is none.
func RequireBusiness(ctx context.Context, id Identity) (*User, error) {
	user, err := id.CurrentUser(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if user == nil {
		return nil, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if user.BusinessID == constant.Empty {
		return nil, failure.Forbidden("no business is linked to this account") // nolint:wrapcheck
	}

	return user, nil
}
