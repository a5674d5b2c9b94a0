package service

import (
	"context"

	"github.com/google/uuid"

	"keywordapi/internal/models"
)

// SubnicheRepository is the storage the subniche service needs.
type SubnicheRepository interface {
	CreateSubniche(ctx context.Context, in models.SubnicheCreate, actorID uuid.UUID) (*models.Subniche, error)
	GetSubnicheByID(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Subniche, error)
	GetAllSubniches(ctx context.Context) ([]models.Subniche, error)
	GetFilteredSubniches(ctx context.Context, filter models.SubnicheFilter, page models.PageRequest, fetch models.FetchStrategy) ([]models.Subniche, int64, error)
	UpdateSubniche(ctx context.Context, id uuid.UUID, in models.SubnicheUpdate, actorID uuid.UUID) (*models.Subniche, error)
	DeleteSubniche(ctx context.Context, id uuid.UUID) error
}

// SubnicheService exposes subniche operations in response form.
type SubnicheService struct {
	repo SubnicheRepository
}

// NewSubnicheService creates a SubnicheService backed by repo.
func NewSubnicheService(repo SubnicheRepository) *SubnicheService {
	return &SubnicheService{repo: repo}
}

func (s *SubnicheService) Create(ctx context.Context, in models.SubnicheCreate, actorID uuid.UUID) (*SubnicheResponse, error) {
	sub, err := s.repo.CreateSubniche(ctx, in, actorID)
	if err != nil {
		return nil, err
	}
	return newSubnicheResponse(sub), nil
}

func (s *SubnicheService) Get(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*SubnicheResponse, error) {
	sub, err := s.repo.GetSubnicheByID(ctx, id, fetch)
	if err != nil {
		return nil, err
	}
	return newSubnicheResponse(sub), nil
}

func (s *SubnicheService) All(ctx context.Context) ([]SubnicheResponse, error) {
	subs, err := s.repo.GetAllSubniches(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(subs, newSubnicheResponse), nil
}

func (s *SubnicheService) List(ctx context.Context, filter models.SubnicheFilter, page models.PageRequest, fetch models.FetchStrategy) (*models.ListResponse[SubnicheResponse], error) {
	subs, total, err := s.repo.GetFilteredSubniches(ctx, filter, page, fetch)
	if err != nil {
		return nil, err
	}
	resp := models.NewListResponse(mapAll(subs, newSubnicheResponse), total, page)
	return &resp, nil
}

func (s *SubnicheService) Update(ctx context.Context, id uuid.UUID, in models.SubnicheUpdate, actorID uuid.UUID) (*SubnicheResponse, error) {
	sub, err := s.repo.UpdateSubniche(ctx, id, in, actorID)
	if err != nil {
		return nil, err
	}
	return newSubnicheResponse(sub), nil
}

func (s *SubnicheService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSubniche(ctx, id)
}
