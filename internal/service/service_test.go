package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywordapi/internal/db"
	"keywordapi/internal/models"
)

var actor = uuid.MustParse("a1b2c3d4-e5f6-7890-1234-567890abcdef")

// fakeDomainRepo is an in-memory DomainRepository.
type fakeDomainRepo struct {
	rows map[uuid.UUID]models.Domain
}

func newFakeDomainRepo() *fakeDomainRepo {
	return &fakeDomainRepo{rows: make(map[uuid.UUID]models.Domain)}
}

func (f *fakeDomainRepo) CreateDomain(_ context.Context, in models.DomainCreate, actorID uuid.UUID) (*models.Domain, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	for _, d := range f.rows {
		if strings.EqualFold(d.Name, in.Name) {
			return nil, db.ErrDuplicateDomain
		}
	}
	now := time.Now()
	d := models.Domain{
		ID:    uuid.New(),
		Name:  in.Name,
		Audit: models.Audit{CreatedBy: actorID, UpdatedBy: actorID, CreatedAt: now, UpdatedAt: now},
	}
	f.rows[d.ID] = d
	return &d, nil
}

func (f *fakeDomainRepo) GetDomainByID(_ context.Context, id uuid.UUID) (*models.Domain, error) {
	d, ok := f.rows[id]
	if !ok {
		return nil, db.ErrDomainNotFound
	}
	return &d, nil
}

func (f *fakeDomainRepo) GetAllDomains(context.Context) ([]models.Domain, error) {
	out := make([]models.Domain, 0, len(f.rows))
	for _, d := range f.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeDomainRepo) GetFilteredDomains(ctx context.Context, filter models.DomainFilter, page models.PageRequest) ([]models.Domain, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	all, _ := f.GetAllDomains(ctx)
	var matched []models.Domain
	for _, d := range all {
		if filter.Name == "" || strings.Contains(strings.ToLower(d.Name), strings.ToLower(filter.Name)) {
			matched = append(matched, d)
		}
	}
	start := min(page.Offset(), len(matched))
	end := min(start+page.Limit, len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (f *fakeDomainRepo) UpdateDomain(_ context.Context, id uuid.UUID, in models.DomainUpdate, actorID uuid.UUID) (*models.Domain, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	d, ok := f.rows[id]
	if !ok {
		return nil, db.ErrDomainNotFound
	}
	d.Name = *in.Name
	d.UpdatedBy = actorID
	d.UpdatedAt = time.Now()
	f.rows[id] = d
	return &d, nil
}

func (f *fakeDomainRepo) DeleteDomain(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return db.ErrDomainNotFound
	}
	delete(f.rows, id)
	return nil
}

func TestDomainService_CreateGet(t *testing.T) {
	svc := NewDomainService(newFakeDomainRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, models.DomainCreate{Name: "Technology"}, actor)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, actor, created.CreatedBy)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Technology", got.Name)

	_, err = svc.Create(ctx, models.DomainCreate{Name: "technology"}, actor)
	assert.ErrorIs(t, err, db.ErrAlreadyExists)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestDomainService_List(t *testing.T) {
	svc := NewDomainService(newFakeDomainRepo())
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, models.DomainCreate{Name: fmt.Sprintf("Domain %02d", i)}, actor)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		page      models.PageRequest
		wantItems int
		wantPages int
	}{
		{"first page", models.PageRequest{Page: 1, Limit: 10}, 10, 3},
		{"last page", models.PageRequest{Page: 3, Limit: 10}, 5, 3},
		{"past the end", models.PageRequest{Page: 9, Limit: 10}, 0, 3},
		{"one page", models.PageRequest{Page: 1, Limit: 100}, 25, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.List(ctx, models.DomainFilter{}, tt.page)
			require.NoError(t, err)
			assert.Len(t, resp.Items, tt.wantItems)
			assert.NotNil(t, resp.Items)
			assert.Equal(t, int64(25), resp.Total)
			assert.Equal(t, tt.wantPages, resp.TotalPages)
			assert.Equal(t, tt.page.Page, resp.Page)
			assert.Equal(t, tt.page.Limit, resp.Limit)
		})
	}

	_, err := svc.List(ctx, models.DomainFilter{}, models.PageRequest{Page: 1, Limit: 101})
	assert.ErrorIs(t, err, db.ErrValidation)
}

func TestDomainService_UpdateDelete(t *testing.T) {
	svc := NewDomainService(newFakeDomainRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, models.DomainCreate{Name: "Health"}, actor)
	require.NoError(t, err)

	editor := uuid.New()
	name := "Wellness"
	updated, err := svc.Update(ctx, created.ID, models.DomainUpdate{Name: &name}, editor)
	require.NoError(t, err)
	assert.Equal(t, "Wellness", updated.Name)
	assert.Equal(t, editor, updated.UpdatedBy)
	assert.Equal(t, actor, updated.CreatedBy)

	_, err = svc.Update(ctx, created.ID, models.DomainUpdate{}, editor)
	assert.ErrorIs(t, err, db.ErrValidation)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), db.ErrNotFound)
	_, err = svc.Update(ctx, created.ID, models.DomainUpdate{Name: &name}, editor)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

// fakeKeywordRepo records creations and serves canned lookups.
type fakeKeywordRepo struct {
	KeywordRepository
	created []models.KeywordCreate
	seen    map[string]bool
	stored  *models.Keyword
}

func (f *fakeKeywordRepo) CreateKeyword(_ context.Context, in models.KeywordCreate, actorID uuid.UUID) (*models.Keyword, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	key := parentKey(in) + "|" + strings.ToLower(in.FullKeyword)
	if f.seen[key] {
		return nil, db.ErrDuplicateKeyword
	}
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	f.seen[key] = true
	f.created = append(f.created, in)
	return &models.Keyword{ID: uuid.New(), FullKeyword: in.FullKeyword, Audit: models.Audit{CreatedBy: actorID}}, nil
}

func parentKey(in models.KeywordCreate) string {
	if in.SubnicheID != nil {
		return "s:" + in.SubnicheID.String()
	}
	return "n:" + in.NicheID.String()
}

func (f *fakeKeywordRepo) GetKeywordByID(_ context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Keyword, error) {
	if f.stored == nil || f.stored.ID != id {
		return nil, db.ErrKeywordNotFound
	}
	kw := *f.stored
	if fetch == models.FetchReference {
		kw.Lineage = nil
	}
	return &kw, nil
}

func TestKeywordService_GetLineage(t *testing.T) {
	subID := uuid.New()
	stored := &models.Keyword{
		ID:          uuid.New(),
		FullKeyword: "best Frontend Web Development guide",
		SubnicheID:  &subID,
		Lineage: &models.Lineage{
			DomainName:   "Technology",
			NicheName:    "Web Development",
			SubnicheName: "Frontend",
		},
	}
	svc := NewKeywordService(&fakeKeywordRepo{stored: stored})
	ctx := context.Background()

	eager, err := svc.Get(ctx, stored.ID, models.FetchEager)
	require.NoError(t, err)
	assert.Equal(t, "Frontend", eager.SubnicheName)
	assert.Equal(t, "Web Development", eager.NicheName)
	assert.Equal(t, "Technology", eager.DomainName)
	assert.Equal(t, &subID, eager.SubnicheID)

	ref, err := svc.Get(ctx, stored.ID, models.FetchReference)
	require.NoError(t, err)
	assert.Empty(t, ref.SubnicheName)
	assert.Empty(t, ref.DomainName)

	_, err = svc.Get(ctx, uuid.New(), models.FetchReference)
	assert.True(t, errors.Is(err, db.ErrNotFound))
}

func TestKeywordService_BulkCreate(t *testing.T) {
	repo := &fakeKeywordRepo{}
	svc := NewKeywordService(repo)
	nicheID := uuid.New()

	rows := []models.KeywordImportRow{
		{Row: 2, Input: models.KeywordCreate{FullKeyword: "react hooks", NicheID: &nicheID}},
		{Row: 3, Input: models.KeywordCreate{FullKeyword: "React Hooks", NicheID: &nicheID}},
		{Row: 4, Input: models.KeywordCreate{FullKeyword: "orphan"}},
		{Row: 5, Input: models.KeywordCreate{FullKeyword: "vue router", NicheID: &nicheID}},
	}

	result, err := svc.BulkCreate(context.Background(), rows, actor)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "already exists")
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Len(t, repo.created, 2)
}

func TestKeywordService_BulkCreateCanceled(t *testing.T) {
	svc := NewKeywordService(&fakeKeywordRepo{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	nicheID := uuid.New()
	rows := []models.KeywordImportRow{{Row: 2, Input: models.KeywordCreate{FullKeyword: "late", NicheID: &nicheID}}}

	result, err := svc.BulkCreate(ctx, rows, actor)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Created)
}
