package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	"github.com/lucasaveiro/service-scheduler/internal/domains/client/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/client/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/client/repository"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	"github.com/lucasaveiro/service-scheduler/shared"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/rs/zerolog/log"
)

type Client interface {
	Create(ctx context.Context, req dto.ClientRequest) (dto.ClientResponse, error)
	GetAll(ctx context.Context) (dto.GetClientsResponse, error)
	Get(ctx context.Context, id string) (dto.ClientResponse, error)
	Update(ctx context.Context, req dto.ClientRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Client
	directory directory.Directory
	identity  identity.Identity
	otel      otel.Otel
}

func New(repo repository.Client, directory directory.Directory, identity identity.Identity, otel otel.Otel) Client {
	return &serviceImpl{
		repo:      repo,
		directory: directory,
		identity:  identity,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.ClientRequest) (res dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	client := req.ToModel(user.BusinessID, identity.Actor(user))

	if err = s.repo.Insert(ctx, client); err != nil {
		log.Error().Err(err).Msg("failed to create client")

		return res, fmt.Errorf("failed to create client: %w", err)
	}

	res.FromModel(client)

	return res, nil
}

// GetAll lists the caller's clients ordered by name.
func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetClientsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	clients, err := s.directory.GetClients(ctx, user.BusinessID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModels(clients, len(clients), len(clients))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	client, err := s.get(ctx, id, user.BusinessID)
	if err != nil {
		return res, err
	}

	res.FromModel(client)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id, businessID string) (model.Client, error) {
	client, err := s.repo.Get(ctx, shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.FieldBusinessID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get client")

		return client, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ID == constant.Empty {
		return client, failure.NotFound("client not found") // nolint:wrapcheck
	}

	return client, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.ClientRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if _, err = s.get(ctx, id, user.BusinessID); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, req.ToUpdate(identity.Actor(user)), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update client")

		return fmt.Errorf("failed to update client: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Delete")
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
		log.Error().Err(err).Msg("failed to delete client")

		return fmt.Errorf("failed to delete client: %w", err)
	}

	return nil
}
