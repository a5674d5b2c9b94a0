package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"keywordapi/internal/db"
	"keywordapi/internal/models"
	"keywordapi/internal/validation"
)

// MemoryStore is an in-memory stand-in for *db.DB that follows the same
// validation, uniqueness, cascade and pagination rules.
type MemoryStore struct {
	mu        sync.Mutex
	clock     time.Time
	domains   map[uuid.UUID]models.Domain
	niches    map[uuid.UUID]models.Niche
	subniches map[uuid.UUID]models.Subniche
	keywords  map[uuid.UUID]models.Keyword
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		domains:   make(map[uuid.UUID]models.Domain),
		niches:    make(map[uuid.UUID]models.Niche),
		subniches: make(map[uuid.UUID]models.Subniche),
		keywords:  make(map[uuid.UUID]models.Keyword),
	}
}

// tick returns strictly increasing timestamps so created_at ordering is stable.
func (s *MemoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *MemoryStore) newAudit(actorID uuid.UUID) models.Audit {
	now := s.tick()
	return models.Audit{CreatedBy: actorID, UpdatedBy: actorID, CreatedAt: now, UpdatedAt: now}
}

func (s *MemoryStore) touch(a *models.Audit, actorID uuid.UUID) {
	a.UpdatedBy = actorID
	a.UpdatedAt = s.tick()
}

// page sorts items newest first and slices out one page.
func page[T any](items []T, created func(T) time.Time, req models.PageRequest) ([]T, int64, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	sort.Slice(items, func(i, j int) bool { return created(items[i]).After(created(items[j])) })
	total := int64(len(items))
	start := min(req.Offset(), len(items))
	end := min(start+req.Limit, len(items))
	return items[start:end], total, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Domains

func (s *MemoryStore) CreateDomain(_ context.Context, in models.DomainCreate, actorID uuid.UUID) (*models.Domain, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.domains {
		if strings.EqualFold(d.Name, in.Name) {
			return nil, db.ErrDuplicateDomain
		}
	}
	d := models.Domain{ID: uuid.New(), Name: in.Name, Audit: s.newAudit(actorID)}
	s.domains[d.ID] = d
	return &d, nil
}

func (s *MemoryStore) GetDomainByID(_ context.Context, id uuid.UUID) (*models.Domain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.domains[id]
	if !ok {
		return nil, db.ErrDomainNotFound
	}
	return &d, nil
}

func (s *MemoryStore) GetAllDomains(context.Context) ([]models.Domain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Domain, 0, len(s.domains))
	for _, d := range s.domains {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) GetFilteredDomains(_ context.Context, filter models.DomainFilter, req models.PageRequest) ([]models.Domain, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Domain
	for _, d := range s.domains {
		if filter.Name != "" && !containsFold(d.Name, filter.Name) {
			continue
		}
		out = append(out, d)
	}
	return page(out, func(d models.Domain) time.Time { return d.CreatedAt }, req)
}

func (s *MemoryStore) UpdateDomain(_ context.Context, id uuid.UUID, in models.DomainUpdate, actorID uuid.UUID) (*models.Domain, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.domains[id]
	if !ok {
		return nil, db.ErrDomainNotFound
	}
	for _, other := range s.domains {
		if other.ID != id && strings.EqualFold(other.Name, *in.Name) {
			return nil, db.ErrDuplicateDomain
		}
	}
	d.Name = *in.Name
	s.touch(&d.Audit, actorID)
	s.domains[id] = d
	return &d, nil
}

func (s *MemoryStore) DeleteDomain(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.domains[id]; !ok {
		return db.ErrDomainNotFound
	}
	delete(s.domains, id)
	for nid, n := range s.niches {
		if n.DomainID == id {
			s.deleteNicheLocked(nid)
		}
	}
	return nil
}

// Niches

func (s *MemoryStore) nicheLineage(n models.Niche) *models.Lineage {
	domainID := n.DomainID
	return &models.Lineage{DomainID: &domainID, DomainName: s.domains[n.DomainID].Name}
}

func (s *MemoryStore) nicheNameTaken(id, domainID uuid.UUID, name string) bool {
	for _, n := range s.niches {
		if n.ID != id && n.DomainID == domainID && strings.EqualFold(n.Name, name) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateNiche(_ context.Context, in models.NicheCreate, actorID uuid.UUID) (*models.Niche, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.domains[in.DomainID]; !ok {
		return nil, validation.Fieldf("domain_id", "references a domain that does not exist")
	}
	if s.nicheNameTaken(uuid.Nil, in.DomainID, in.Name) {
		return nil, db.ErrDuplicateNiche
	}
	n := models.Niche{ID: uuid.New(), Name: in.Name, DomainID: in.DomainID, Audit: s.newAudit(actorID)}
	s.niches[n.ID] = n
	return &n, nil
}

func (s *MemoryStore) GetNicheByID(_ context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Niche, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.niches[id]
	if !ok {
		return nil, db.ErrNicheNotFound
	}
	if fetch == models.FetchEager {
		n.Lineage = s.nicheLineage(n)
	}
	return &n, nil
}

func (s *MemoryStore) GetAllNiches(context.Context) ([]models.Niche, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Niche, 0, len(s.niches))
	for _, n := range s.niches {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) GetFilteredNiches(_ context.Context, filter models.NicheFilter, req models.PageRequest, fetch models.FetchStrategy) ([]models.Niche, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Niche
	for _, n := range s.niches {
		if filter.DomainID != nil && n.DomainID != *filter.DomainID {
			continue
		}
		if filter.Name != "" && !containsFold(n.Name, filter.Name) {
			continue
		}
		if fetch == models.FetchEager {
			n.Lineage = s.nicheLineage(n)
		}
		out = append(out, n)
	}
	return page(out, func(n models.Niche) time.Time { return n.CreatedAt }, req)
}

func (s *MemoryStore) UpdateNiche(_ context.Context, id uuid.UUID, in models.NicheUpdate, actorID uuid.UUID) (*models.Niche, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.niches[id]
	if !ok {
		return nil, db.ErrNicheNotFound
	}
	if in.DomainID != nil {
		if _, ok := s.domains[*in.DomainID]; !ok {
			return nil, validation.Fieldf("domain_id", "references a domain that does not exist")
		}
		n.DomainID = *in.DomainID
	}
	if in.Name != nil {
		n.Name = *in.Name
	}
	if s.nicheNameTaken(id, n.DomainID, n.Name) {
		return nil, db.ErrDuplicateNiche
	}
	s.touch(&n.Audit, actorID)
	s.niches[id] = n
	return &n, nil
}

func (s *MemoryStore) DeleteNiche(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.niches[id]; !ok {
		return db.ErrNicheNotFound
	}
	s.deleteNicheLocked(id)
	return nil
}

func (s *MemoryStore) deleteNicheLocked(id uuid.UUID) {
	delete(s.niches, id)
	for sid, sub := range s.subniches {
		if sub.NicheID == id {
			s.deleteSubnicheLocked(sid)
		}
	}
	for kid, k := range s.keywords {
		if k.NicheID != nil && *k.NicheID == id {
			delete(s.keywords, kid)
		}
	}
}

// Subniches

func (s *MemoryStore) subnicheLineage(sub models.Subniche) *models.Lineage {
	n := s.niches[sub.NicheID]
	nicheID, domainID := n.ID, n.DomainID
	return &models.Lineage{
		DomainID:   &domainID,
		DomainName: s.domains[n.DomainID].Name,
		NicheID:    &nicheID,
		NicheName:  n.Name,
	}
}

func (s *MemoryStore) subnicheNameTaken(id, nicheID uuid.UUID, name string) bool {
	for _, sub := range s.subniches {
		if sub.ID != id && sub.NicheID == nicheID && strings.EqualFold(sub.Name, name) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateSubniche(_ context.Context, in models.SubnicheCreate, actorID uuid.UUID) (*models.Subniche, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.niches[in.NicheID]; !ok {
		return nil, validation.Fieldf("niche_id", "references a niche that does not exist")
	}
	if s.subnicheNameTaken(uuid.Nil, in.NicheID, in.Name) {
		return nil, db.ErrDuplicateSubniche
	}
	sub := models.Subniche{ID: uuid.New(), Name: in.Name, NicheID: in.NicheID, Audit: s.newAudit(actorID)}
	s.subniches[sub.ID] = sub
	return &sub, nil
}

func (s *MemoryStore) GetSubnicheByID(_ context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Subniche, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subniches[id]
	if !ok {
		return nil, db.ErrSubnicheNotFound
	}
	if fetch == models.FetchEager {
		sub.Lineage = s.subnicheLineage(sub)
	}
	return &sub, nil
}

func (s *MemoryStore) GetAllSubniches(context.Context) ([]models.Subniche, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Subniche, 0, len(s.subniches))
	for _, sub := range s.subniches {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) GetFilteredSubniches(_ context.Context, filter models.SubnicheFilter, req models.PageRequest, fetch models.FetchStrategy) ([]models.Subniche, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Subniche
	for _, sub := range s.subniches {
		if filter.NicheID != nil && sub.NicheID != *filter.NicheID {
			continue
		}
		if filter.Name != "" && !containsFold(sub.Name, filter.Name) {
			continue
		}
		if fetch == models.FetchEager {
			sub.Lineage = s.subnicheLineage(sub)
		}
		out = append(out, sub)
	}
	return page(out, func(sub models.Subniche) time.Time { return sub.CreatedAt }, req)
}

func (s *MemoryStore) UpdateSubniche(_ context.Context, id uuid.UUID, in models.SubnicheUpdate, actorID uuid.UUID) (*models.Subniche, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subniches[id]
	if !ok {
		return nil, db.ErrSubnicheNotFound
	}
	if in.NicheID != nil {
		if _, ok := s.niches[*in.NicheID]; !ok {
			return nil, validation.Fieldf("niche_id", "references a niche that does not exist")
		}
		sub.NicheID = *in.NicheID
	}
	if in.Name != nil {
		sub.Name = *in.Name
	}
	if s.subnicheNameTaken(id, sub.NicheID, sub.Name) {
		return nil, db.ErrDuplicateSubniche
	}
	s.touch(&sub.Audit, actorID)
	s.subniches[id] = sub
	return &sub, nil
}

func (s *MemoryStore) DeleteSubniche(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subniches[id]; !ok {
		return db.ErrSubnicheNotFound
	}
	s.deleteSubnicheLocked(id)
	return nil
}

func (s *MemoryStore) deleteSubnicheLocked(id uuid.UUID) {
	delete(s.subniches, id)
	for kid, k := range s.keywords {
		if k.SubnicheID != nil && *k.SubnicheID == id {
			delete(s.keywords, kid)
		}
	}
}

// Keywords

// owningNiche resolves the niche a keyword belongs to, directly or through
// its subniche.
func (s *MemoryStore) owningNiche(k models.Keyword) (models.Niche, bool) {
	if k.NicheID != nil {
		n, ok := s.niches[*k.NicheID]
		return n, ok
	}
	if k.SubnicheID != nil {
		sub, ok := s.subniches[*k.SubnicheID]
		if !ok {
			return models.Niche{}, false
		}
		n, ok := s.niches[sub.NicheID]
		return n, ok
	}
	return models.Niche{}, false
}

func (s *MemoryStore) keywordLineage(k models.Keyword) *models.Lineage {
	lineage := &models.Lineage{}
	if k.SubnicheID != nil {
		lineage.SubnicheName = s.subniches[*k.SubnicheID].Name
	}
	if n, ok := s.owningNiche(k); ok {
		nicheID, domainID := n.ID, n.DomainID
		lineage.NicheID = &nicheID
		lineage.NicheName = n.Name
		lineage.DomainID = &domainID
		lineage.DomainName = s.domains[n.DomainID].Name
	}
	return lineage
}

func sameParent(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}

func (s *MemoryStore) keywordTaken(k models.Keyword) bool {
	for _, other := range s.keywords {
		if other.ID == k.ID || !strings.EqualFold(other.FullKeyword, k.FullKeyword) {
			continue
		}
		if sameParent(other.SubnicheID, k.SubnicheID) || sameParent(other.NicheID, k.NicheID) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) checkKeywordParent(subnicheID, nicheID *uuid.UUID) error {
	if subnicheID != nil {
		if _, ok := s.subniches[*subnicheID]; !ok {
			return validation.Fieldf("subniche_id", "references a subniche that does not exist")
		}
	}
	if nicheID != nil {
		if _, ok := s.niches[*nicheID]; !ok {
			return validation.Fieldf("niche_id", "references a niche that does not exist")
		}
	}
	return nil
}

func (s *MemoryStore) CreateKeyword(_ context.Context, in models.KeywordCreate, actorID uuid.UUID) (*models.Keyword, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkKeywordParent(in.SubnicheID, in.NicheID); err != nil {
		return nil, err
	}
	k := models.Keyword{
		ID:                  uuid.New(),
		Prefix:              in.Prefix,
		MainKeyword:         in.MainKeyword,
		Suffix:              in.Suffix,
		FullKeyword:         in.FullKeyword,
		SubnicheID:          in.SubnicheID,
		NicheID:             in.NicheID,
		ScanPlatform:        in.ScanPlatform,
		TotalLinksScanned:   in.TotalLinksScanned,
		TotalLinksNew:       in.TotalLinksNew,
		TotalLinksDuplicate: in.TotalLinksDuplicate,
		Status:              in.Status,
		StatusRun:           in.StatusRun,
		Favorite:            in.Favorite,
		SchedulerConfig:     in.SchedulerConfig,
		Audit:               s.newAudit(actorID),
	}
	if s.keywordTaken(k) {
		return nil, db.ErrDuplicateKeyword
	}
	s.keywords[k.ID] = k
	return &k, nil
}

func (s *MemoryStore) GetKeywordByID(_ context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Keyword, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.keywords[id]
	if !ok {
		return nil, db.ErrKeywordNotFound
	}
	if fetch == models.FetchEager {
		k.Lineage = s.keywordLineage(k)
	}
	return &k, nil
}

func (s *MemoryStore) GetAllKeywords(context.Context) ([]models.Keyword, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Keyword, 0, len(s.keywords))
	for _, k := range s.keywords {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullKeyword < out[j].FullKeyword })
	return out, nil
}

func (s *MemoryStore) GetFilteredKeywords(_ context.Context, filter models.KeywordFilter, req models.PageRequest, fetch models.FetchStrategy) ([]models.Keyword, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Keyword
	for _, k := range s.keywords {
		if !s.keywordMatches(k, filter) {
			continue
		}
		if fetch == models.FetchEager {
			k.Lineage = s.keywordLineage(k)
		}
		out = append(out, k)
	}
	return page(out, func(k models.Keyword) time.Time { return k.CreatedAt }, req)
}

func (s *MemoryStore) keywordMatches(k models.Keyword, f models.KeywordFilter) bool {
	switch {
	case f.Status != "" && k.Status != f.Status:
		return false
	case f.StatusRun != "" && (k.StatusRun == nil || *k.StatusRun != f.StatusRun):
		return false
	case f.ScanPlatform != "" && k.ScanPlatform != f.ScanPlatform:
		return false
	case f.Search != "" && !containsFold(k.FullKeyword, f.Search):
		return false
	case f.SubnicheID != nil && !sameParent(k.SubnicheID, f.SubnicheID):
		return false
	case f.Favorite != nil && k.Favorite != *f.Favorite:
		return false
	}
	if f.NicheID != nil || f.DomainID != nil {
		n, ok := s.owningNiche(k)
		if !ok {
			return false
		}
		if f.NicheID != nil && n.ID != *f.NicheID {
			return false
		}
		if f.DomainID != nil && n.DomainID != *f.DomainID {
			return false
		}
	}
	return true
}

func (s *MemoryStore) UpdateKeyword(_ context.Context, id uuid.UUID, in models.KeywordUpdate, actorID uuid.UUID) (*models.Keyword, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.keywords[id]
	if !ok {
		return nil, db.ErrKeywordNotFound
	}
	if err := s.checkKeywordParent(in.SubnicheID, in.NicheID); err != nil {
		return nil, err
	}

	if in.Prefix != nil {
		k.Prefix = emptyToNil(in.Prefix)
	}
	if in.MainKeyword != nil {
		k.MainKeyword = *in.MainKeyword
	}
	if in.Suffix != nil {
		k.Suffix = emptyToNil(in.Suffix)
	}
	switch {
	case in.FullKeyword != nil:
		k.FullKeyword = *in.FullKeyword
	case in.Prefix != nil || in.MainKeyword != nil || in.Suffix != nil:
		k.FullKeyword = validation.ComposeKeyword(k.Prefix, k.MainKeyword, k.Suffix)
	}
	if in.SubnicheID != nil {
		k.SubnicheID, k.NicheID = in.SubnicheID, nil
	}
	if in.NicheID != nil {
		k.NicheID, k.SubnicheID = in.NicheID, nil
	}
	if in.ScanPlatform != nil {
		k.ScanPlatform = *in.ScanPlatform
	}
	if in.TotalLinksScanned != nil {
		k.TotalLinksScanned = *in.TotalLinksScanned
	}
	if in.TotalLinksNew != nil {
		k.TotalLinksNew = *in.TotalLinksNew
	}
	if in.TotalLinksDuplicate != nil {
		k.TotalLinksDuplicate = *in.TotalLinksDuplicate
	}
	if in.Status != nil {
		k.Status = *in.Status
	}
	if in.StatusRun != nil {
		k.StatusRun = in.StatusRun
		if *in.StatusRun == "" {
			k.StatusRun = nil
		}
	}
	if in.Favorite != nil {
		k.Favorite = *in.Favorite
	}
	if in.SchedulerConfig != nil {
		k.SchedulerConfig = *in.SchedulerConfig
	}
	if s.keywordTaken(k) {
		return nil, db.ErrDuplicateKeyword
	}
	s.touch(&k.Audit, actorID)
	s.keywords[id] = k
	return &k, nil
}

func (s *MemoryStore) DeleteKeyword(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keywords[id]; !ok {
		return db.ErrKeywordNotFound
	}
	delete(s.keywords, id)
	return nil
}

// Stats mirrors (*db.DB).Stats.
func (s *MemoryStore) Stats(context.Context) (*models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &models.Stats{
		Domains:   int64(len(s.domains)),
		Niches:    int64(len(s.niches)),
		Subniches: int64(len(s.subniches)),
	}
	byStatus := make(map[string]*models.KeywordStatusStats)
	for _, k := range s.keywords {
		st, ok := byStatus[k.Status]
		if !ok {
			st = &models.KeywordStatusStats{Status: k.Status}
			byStatus[k.Status] = st
		}
		st.Count++
		st.LinksScanned += int64(k.TotalLinksScanned)
		st.LinksNew += int64(k.TotalLinksNew)
		st.LinksDuplicate += int64(k.TotalLinksDuplicate)
	}
	for _, st := range byStatus {
		stats.Keywords = append(stats.Keywords, *st)
	}
	sort.Slice(stats.Keywords, func(i, j int) bool { return stats.Keywords[i].Status < stats.Keywords[j].Status })
	return stats, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func emptyToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
