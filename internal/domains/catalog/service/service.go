package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	"github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/catalog/repository"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	"github.com/lucasaveiro/service-scheduler/shared"
	"github.com/lucasaveiro/service-scheduler/shared/cache"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllService = "service:gets"
	cacheCountService  = "service:count"
)

type Catalog interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (dto.ServiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetServicesResponse, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (dto.ServiceResponse, error)
	Delete(ctx context.Context, id string) error
	GetPublic(ctx context.Context, businessID string) ([]dto.ServiceResponse, error)
}

type serviceImpl struct {
	repo      repository.Service
	directory directory.Directory
	identity  identity.Identity
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Service,
	directory directory.Directory,
	identity identity.Identity,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Catalog {
	return &serviceImpl{
		repo:      repo,
		directory: directory,
		identity:  identity,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = req.Validate(); err != nil {
		return res, err //nolint:wrapcheck
	}

	svc := req.ToModel(user.BusinessID, identity.Actor(user))

	if err = s.repo.Insert(ctx, svc); err != nil {
		log.Error().Err(err).Msg("failed to create service")

		return res, fmt.Errorf("failed to create service: %w", err)
	}

	s.invalidate(ctx, user.BusinessID)
	res.FromModel(svc)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := shared.FilterByBusiness(user.BusinessID, model.FieldBusinessID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllService, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountService, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	svc, err := s.get(ctx, id, user.BusinessID)
	if err != nil {
		return res, err
	}

	res.FromModel(svc)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id, businessID string) (model.Service, error) {
	svc, err := s.repo.Get(ctx, shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.FieldBusinessID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return svc, fmt.Errorf("failed to get service: %w", err)
	}

	if svc.ID == constant.Empty {
		return svc, failure.NotFound("service not found") // nolint:wrapcheck
	}

	return svc, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	current, err := s.get(ctx, id, user.BusinessID)
	if err != nil {
		return res, err
	}

	next, err := req.Apply(current)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	err = s.repo.Update(ctx, dto.ToUpdate(next, identity.Actor(user)), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update service")

		return res, fmt.Errorf("failed to update service: %w", err)
	}

	s.invalidate(ctx, user.BusinessID)
	res.FromModel(next)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if _, err = s.get(ctx, id, user.BusinessID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeFkViolation {
			return failure.StateViolation("service has bookings, deactivate it instead") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete service")

		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.invalidate(ctx, user.BusinessID)

	return nil
}

// GetPublic lists the services customers can book, newest first.
func (s *serviceImpl) GetPublic(ctx context.Context, businessID string) (res []dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.GetPublic")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.directory.GetBusiness(ctx, businessID); err != nil {
		return nil, err //nolint:wrapcheck
	}

	services, err := s.directory.GetServices(ctx, businessID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return dto.FromModels(directory.ActiveServices(services)), nil
}

func (s *serviceImpl) invalidate(ctx context.Context, businessID string) {
	directory.InvalidateCatalog(ctx, s.cache, businessID)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()
}
