package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"keywordapi/internal/config"
	"keywordapi/internal/db"
	"keywordapi/internal/models"
	"keywordapi/internal/service"
	"keywordapi/internal/validation"
)

// DomainService creates and lists domains.
type DomainService interface {
	Create(ctx context.Context, in models.DomainCreate, actorID uuid.UUID) (*service.DomainResponse, error)
	All(ctx context.Context) ([]service.DomainResponse, error)
}

// NicheService creates and lists niches.
type NicheService interface {
	Create(ctx context.Context, in models.NicheCreate, actorID uuid.UUID) (*service.NicheResponse, error)
	All(ctx context.Context) ([]service.NicheResponse, error)
}

// SubnicheService creates and lists subniches.
type SubnicheService interface {
	Create(ctx context.Context, in models.SubnicheCreate, actorID uuid.UUID) (*service.SubnicheResponse, error)
	All(ctx context.Context) ([]service.SubnicheResponse, error)
}

// KeywordService creates keywords.
type KeywordService interface {
	Create(ctx context.Context, in models.KeywordCreate, actorID uuid.UUID) (*service.KeywordResponse, error)
}

// Summary counts what a run created and what already existed.
type Summary struct {
	DomainsCreated   int
	NichesCreated    int
	SubnichesCreated int
	KeywordsCreated  int
	KeywordsSkipped  int
}

// Seeder stores a catalogue through the services. Rows that already exist
// are reused, so a seeder can be run repeatedly against the same database.
type Seeder struct {
	Domains   DomainService
	Niches    NicheService
	Subniches SubnicheService
	Keywords  KeywordService
	Actor     uuid.UUID

	domainIDs   map[string]uuid.UUID
	nicheIDs    map[string]uuid.UUID
	subnicheIDs map[string]uuid.UUID
}

// nameKey matches names the way the repositories store and compare them.
func nameKey(parent uuid.UUID, name string) string {
	return parent.String() + "/" + strings.ToLower(validation.NormalizeName(name))
}

// load indexes the existing taxonomy by parent and normalized name.
func (s *Seeder) load(ctx context.Context) error {
	s.domainIDs = make(map[string]uuid.UUID)
	s.nicheIDs = make(map[string]uuid.UUID)
	s.subnicheIDs = make(map[string]uuid.UUID)

	domains, err := s.Domains.All(ctx)
	if err != nil {
		return fmt.Errorf("load domains: %w", err)
	}
	for _, d := range domains {
		s.domainIDs[nameKey(uuid.Nil, d.Name)] = d.ID
	}

	niches, err := s.Niches.All(ctx)
	if err != nil {
		return fmt.Errorf("load niches: %w", err)
	}
	for _, n := range niches {
		s.nicheIDs[nameKey(n.DomainID, n.Name)] = n.ID
	}

	subniches, err := s.Subniches.All(ctx)
	if err != nil {
		return fmt.Errorf("load subniches: %w", err)
	}
	for _, sub := range subniches {
		s.subnicheIDs[nameKey(sub.NicheID, sub.Name)] = sub.ID
	}
	return nil
}

// Run stores the catalogue taxonomy and the keywords generated from it.
func (s *Seeder) Run(ctx context.Context, cat *config.SeedCatalogue, gen *Generator) (*Summary, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}

	sum := &Summary{}
	for _, d := range cat.Domains {
		domainID, err := s.domain(ctx, d.Name, sum)
		if err != nil {
			return sum, err
		}
		for _, n := range d.Niches {
			nicheID, err := s.niche(ctx, domainID, n.Name, sum)
			if err != nil {
				return sum, err
			}
			for _, name := range n.Subniches {
				if _, err := s.subniche(ctx, nicheID, name, sum); err != nil {
					return sum, err
				}
			}
		}
	}
	slog.Info("taxonomy seeded",
		"domains_created", sum.DomainsCreated,
		"niches_created", sum.NichesCreated,
		"subniches_created", sum.SubnichesCreated)

	for _, kw := range gen.Generate() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		in, err := s.attach(kw)
		if err != nil {
			return sum, err
		}
		if _, err := s.Keywords.Create(ctx, in, s.Actor); err != nil {
			if errors.Is(err, db.ErrAlreadyExists) {
				sum.KeywordsSkipped++
				continue
			}
			return sum, fmt.Errorf("create keyword %q: %w", in.FullKeyword, err)
		}
		sum.KeywordsCreated++
	}
	slog.Info("keywords seeded", "created", sum.KeywordsCreated, "skipped", sum.KeywordsSkipped)
	return sum, nil
}

func (s *Seeder) domain(ctx context.Context, name string, sum *Summary) (uuid.UUID, error) {
	key := nameKey(uuid.Nil, name)
	if id, ok := s.domainIDs[key]; ok {
		return id, nil
	}
	d, err := s.Domains.Create(ctx, models.DomainCreate{Name: name}, s.Actor)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create domain %q: %w", name, err)
	}
	s.domainIDs[key] = d.ID
	sum.DomainsCreated++
	return d.ID, nil
}

func (s *Seeder) niche(ctx context.Context, domainID uuid.UUID, name string, sum *Summary) (uuid.UUID, error) {
	key := nameKey(domainID, name)
	if id, ok := s.nicheIDs[key]; ok {
		return id, nil
	}
	n, err := s.Niches.Create(ctx, models.NicheCreate{Name: name, DomainID: domainID}, s.Actor)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create niche %q: %w", name, err)
	}
	s.nicheIDs[key] = n.ID
	sum.NichesCreated++
	return n.ID, nil
}

func (s *Seeder) subniche(ctx context.Context, nicheID uuid.UUID, name string, sum *Summary) (uuid.UUID, error) {
	key := nameKey(nicheID, name)
	if id, ok := s.subnicheIDs[key]; ok {
		return id, nil
	}
	sub, err := s.Subniches.Create(ctx, models.SubnicheCreate{Name: name, NicheID: nicheID}, s.Actor)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create subniche %q: %w", name, err)
	}
	s.subnicheIDs[key] = sub.ID
	sum.SubnichesCreated++
	return sub.ID, nil
}

// attach resolves the keyword's parent names to the stored ids.
func (s *Seeder) attach(kw Keyword) (models.KeywordCreate, error) {
	in := kw.Input
	domainID, ok := s.domainIDs[nameKey(uuid.Nil, kw.Domain)]
	if !ok {
		return in, fmt.Errorf("unknown domain %q", kw.Domain)
	}
	nicheID, ok := s.nicheIDs[nameKey(domainID, kw.Niche)]
	if !ok {
		return in, fmt.Errorf("unknown niche %q", kw.Niche)
	}
	if kw.Subniche == "" {
		in.NicheID = &nicheID
		return in, nil
	}
	subID, ok := s.subnicheIDs[nameKey(nicheID, kw.Subniche)]
	if !ok {
		return in, fmt.Errorf("unknown subniche %q", kw.Subniche)
	}
	in.SubnicheID = &subID
	return in, nil
}
