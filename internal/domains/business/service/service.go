package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/infras/s3"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	"github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/business/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/business/repository"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	"github.com/lucasaveiro/service-scheduler/shared"
	"github.com/lucasaveiro/service-scheduler/shared/cache"
	"github.com/lucasaveiro/service-scheduler/shared/constant"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Business interface {
	Create(ctx context.Context, req dto.CreateBusinessRequest) (string, error)
	GetPublic(ctx context.Context, id string) (dto.PublicBusinessResponse, error)
	GetMine(ctx context.Context) (dto.BusinessResponse, error)
	Update(ctx context.Context, req dto.UpdateBusinessRequest) error
}

type serviceImpl struct {
	repo      repository.Business
	directory directory.Directory
	identity  identity.Identity
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(
	repo repository.Business,
	directory directory.Directory,
	identity identity.Identity,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Business {
	return &serviceImpl{
		repo:      repo,
		directory: directory,
		identity:  identity,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBusinessRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".business.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	business := req.ToModel(req.OwnerID)

	if err = s.repo.Insert(ctx, business); err != nil {
		log.Error().Err(err).Msg("failed to create business")

		return constant.Empty, fmt.Errorf("failed to create business: %w", err)
	}

	return business.ID, nil
}

func (s *serviceImpl) GetPublic(ctx context.Context, id string) (res dto.PublicBusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".business.GetPublic")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	business, err := s.directory.GetBusiness(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(business)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".business.GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	business, err := s.directory.GetBusiness(ctx, user.BusinessID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(business)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBusinessRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".business.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return err //nolint:wrapcheck
	}

	current, err := s.directory.GetBusiness(ctx, user.BusinessID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	logoURL := constant.Empty
	uploadedKey := constant.Empty

	if req.Logo != nil {
		key := s3.ObjectKey(model.EntityName, uuid.NewString(), req.Logo.Filename)

		url, err := s.s3.Put(ctx, key, req.LogoFile, req.Logo.Size, req.Logo.Header.Get(constant.RequestHeaderContentType))
		if err != nil {
			return fmt.Errorf("failed to upload logo: %w", err)
		}

		logoURL = url
		uploadedKey = key
	}

	err = s.repo.Update(ctx, req.ToUpdate(identity.Actor(user), logoURL), shared.FilterByID(user.BusinessID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update business")

		if uploadedKey != constant.Empty {
			_ = s.s3.Delete(ctx, uploadedKey)
		}

		return fmt.Errorf("failed to update business: %w", err)
	}

	if uploadedKey != constant.Empty {
		s.removeLogo(ctx, current.LogoURL)
	}

	directory.InvalidateCatalog(ctx, s.cache, user.BusinessID)

	return nil
}

// removeLogo deletes a replaced logo. Logos hosted elsewhere are left alone, failures are only logged.
func (s *serviceImpl) removeLogo(ctx context.Context, url string) {
	key, ok := s.s3.KeyFromURL(url)
	if !ok {
		return
	}

	if err := s.s3.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete previous logo")
	}
}
