package service

import (
	"context"

	"github.com/google/uuid"

	"keywordapi/internal/models"
)

// KeywordRepository is the storage the keyword service needs.
type KeywordRepository interface {
	CreateKeyword(ctx context.Context, in models.KeywordCreate, actorID uuid.UUID) (*models.Keyword, error)
	GetKeywordByID(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Keyword, error)
	GetAllKeywords(ctx context.Context) ([]models.Keyword, error)
	GetFilteredKeywords(ctx context.Context, filter models.KeywordFilter, page models.PageRequest, fetch models.FetchStrategy) ([]models.Keyword, int64, error)
	UpdateKeyword(ctx context.Context, id uuid.UUID, in models.KeywordUpdate, actorID uuid.UUID) (*models.Keyword, error)
	DeleteKeyword(ctx context.Context, id uuid.UUID) error
}

// KeywordService exposes keyword operations in response form.
type KeywordService struct {
	repo KeywordRepository
}

// NewKeywordService creates a KeywordService backed by repo.
func NewKeywordService(repo KeywordRepository) *KeywordService {
	return &KeywordService{repo: repo}
}

func (s *KeywordService) Create(ctx context.Context, in models.KeywordCreate, actorID uuid.UUID) (*KeywordResponse, error) {
	k, err := s.repo.CreateKeyword(ctx, in, actorID)
	if err != nil {
		return nil, err
	}
	return newKeywordResponse(k), nil
}

func (s *KeywordService) Get(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*KeywordResponse, error) {
	k, err := s.repo.GetKeywordByID(ctx, id, fetch)
	if err != nil {
		return nil, err
	}
	return newKeywordResponse(k), nil
}

func (s *KeywordService) All(ctx context.Context) ([]KeywordResponse, error) {
	keywords, err := s.repo.GetAllKeywords(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(keywords, newKeywordResponse), nil
}

func (s *KeywordService) List(ctx context.Context, filter models.KeywordFilter, page models.PageRequest, fetch models.FetchStrategy) (*models.ListResponse[KeywordResponse], error) {
	keywords, total, err := s.repo.GetFilteredKeywords(ctx, filter, page, fetch)
	if err != nil {
		return nil, err
	}
	resp := models.NewListResponse(mapAll(keywords, newKeywordResponse), total, page)
	return &resp, nil
}

func (s *KeywordService) Update(ctx context.Context, id uuid.UUID, in models.KeywordUpdate, actorID uuid.UUID) (*KeywordResponse, error) {
	k, err := s.repo.UpdateKeyword(ctx, id, in, actorID)
	if err != nil {
		return nil, err
	}
	return newKeywordResponse(k), nil
}

func (s *KeywordService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteKeyword(ctx, id)
}

// BulkCreate creates each row on its own and records per-row failures.
// It stops early only when ctx is done.
func (s *KeywordService) BulkCreate(ctx context.Context, rows []models.KeywordImportRow, actorID uuid.UUID) (*models.ImportResult, error) {
	result := &models.ImportResult{}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := s.repo.CreateKeyword(ctx, row.Input, actorID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, models.ImportError{Row: row.Row, Error: err.Error()})
			continue
		}
		result.Created++
	}
	return result, nil
}
