package service

import (
	"context"

	"github.com/google/uuid"

	"keywordapi/internal/models"
)

// DomainRepository is the storage the domain service needs.
type DomainRepository interface {
	CreateDomain(ctx context.Context, in models.DomainCreate, actorID uuid.UUID) (*models.Domain, error)
	GetDomainByID(ctx context.Context, id uuid.UUID) (*models.Domain, error)
	GetAllDomains(ctx context.Context) ([]models.Domain, error)
	GetFilteredDomains(ctx context.Context, filter models.DomainFilter, page models.PageRequest) ([]models.Domain, int64, error)
	UpdateDomain(ctx context.Context, id uuid.UUID, in models.DomainUpdate, actorID uuid.UUID) (*models.Domain, error)
	DeleteDomain(ctx context.Context, id uuid.UUID) error
}

// DomainService exposes domain operations in response form.
type DomainService struct {
	repo DomainRepository
}

// NewDomainService creates a DomainService backed by repo.
func NewDomainService(repo DomainRepository) *DomainService {
	return &DomainService{repo: repo}
}

func (s *DomainService) Create(ctx context.Context, in models.DomainCreate, actorID uuid.UUID) (*DomainResponse, error) {
	d, err := s.repo.CreateDomain(ctx, in, actorID)
	if err != nil {
		return nil, err
	}
	return newDomainResponse(d), nil
}

func (s *DomainService) Get(ctx context.Context, id uuid.UUID) (*DomainResponse, error) {
	d, err := s.repo.GetDomainByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newDomainResponse(d), nil
}

// All returns the unpaginated reference list.
func (s *DomainService) All(ctx context.Context) ([]DomainResponse, error) {
	domains, err := s.repo.GetAllDomains(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(domains, newDomainResponse), nil
}

func (s *DomainService) List(ctx context.Context, filter models.DomainFilter, page models.PageRequest) (*models.ListResponse[DomainResponse], error) {
	domains, total, err := s.repo.GetFilteredDomains(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	resp := models.NewListResponse(mapAll(domains, newDomainResponse), total, page)
	return &resp, nil
}

func (s *DomainService) Update(ctx context.Context, id uuid.UUID, in models.DomainUpdate, actorID uuid.UUID) (*DomainResponse, error) {
	d, err := s.repo.UpdateDomain(ctx, id, in, actorID)
	if err != nil {
		return nil, err
	}
	return newDomainResponse(d), nil
}

func (s *DomainService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDomain(ctx, id)
}
