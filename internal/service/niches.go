package service

import (
	"context"

	"github.com/google/uuid"

	"keywordapi/internal/models"
)

// NicheRepository is the storage the niche service needs.
type NicheRepository interface {
	CreateNiche(ctx context.Context, in models.NicheCreate, actorID uuid.UUID) (*models.Niche, error)
	GetNicheByID(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Niche, error)
	GetAllNiches(ctx context.Context) ([]models.Niche, error)
	GetFilteredNiches(ctx context.Context, filter models.NicheFilter, page models.PageRequest, fetch models.FetchStrategy) ([]models.Niche, int64, error)
	UpdateNiche(ctx context.Context, id uuid.UUID, in models.NicheUpdate, actorID uuid.UUID) (*models.Niche, error)
	DeleteNiche(ctx context.Context, id uuid.UUID) error
}

// NicheService exposes niche operations in response form.
type NicheService struct {
	repo NicheRepository
}

// NewNicheService creates a NicheService backed by repo.
func NewNicheService(repo NicheRepository) *NicheService {
	return &NicheService{repo: repo}
}

func (s *NicheService) Create(ctx context.Context, in models.NicheCreate, actorID uuid.UUID) (*NicheResponse, error) {
	n, err := s.repo.CreateNiche(ctx, in, actorID)
	if err != nil {
		return nil, err
	}
	return newNicheResponse(n), nil
}

func (s *NicheService) Get(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*NicheResponse, error) {
	n, err := s.repo.GetNicheByID(ctx, id, fetch)
	if err != nil {
		return nil, err
	}
	return newNicheResponse(n), nil
}

func (s *NicheService) All(ctx context.Context) ([]NicheResponse, error) {
	niches, err := s.repo.GetAllNiches(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(niches, newNicheResponse), nil
}

func (s *NicheService) List(ctx context.Context, filter models.NicheFilter, page models.PageRequest, fetch models.FetchStrategy) (*models.ListResponse[NicheResponse], error) {
	niches, total, err := s.repo.GetFilteredNiches(ctx, filter, page, fetch)
	if err != nil {
		return nil, err
	}
	resp := models.NewListResponse(mapAll(niches, newNicheResponse), total, page)
	return &resp, nil
}

func (s *NicheService) Update(ctx context.Context, id uuid.UUID, in models.NicheUpdate, actorID uuid.UUID) (*NicheResponse, error) {
	n, err := s.repo.UpdateNiche(ctx, id, in, actorID)
	if err != nil {
		return nil, err
	}
	return newNicheResponse(n), nil
}

func (s *NicheService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteNiche(ctx, id)
}
