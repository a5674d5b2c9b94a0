// Package seed generates and stores sample taxonomy data.
package seed

import (
	"math/rand/v2"
	"strings"

	"keywordapi/internal/config"
	"keywordapi/internal/models"
	"keywordapi/internal/validation"
)

// Word list slices used per parent combination.
const (
	comboPrefixes = 6
	comboSuffixes = 4
	termSuffixes  = 3
)

var (
	statuses    = []string{models.KeywordStatusActive, models.KeywordStatusDeactivated}
	runStatuses = []string{models.RunStatusSuccess, models.RunStatusError, models.RunStatusRunning}
	frequencies = []string{"daily", "weekly", "monthly"}
)

// Keyword is a generated keyword and the names of the parents it belongs
// under. Subniche is empty for keywords attached directly to a niche.
type Keyword struct {
	Domain   string
	Niche    string
	Subniche string
	Input    models.KeywordCreate
}

// Generator builds keywords from a catalogue. Output is deterministic for a
// given catalogue and random source.
type Generator struct {
	cat  *config.SeedCatalogue
	rng  *rand.Rand
	seen map[string]struct{}
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(cat *config.SeedCatalogue, seed uint64) *Generator {
	return &Generator{
		cat:  cat,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seen: make(map[string]struct{}),
	}
}

// Generate returns keywords for every niche, or every subniche when the niche
// has any. A full keyword is emitted once across the whole catalogue.
func (g *Generator) Generate() []Keyword {
	var out []Keyword
	for _, d := range g.cat.Domains {
		for _, n := range d.Niches {
			if len(n.Subniches) == 0 {
				out = append(out, g.forParents(d.Name, n.Name, "")...)
				continue
			}
			for _, s := range n.Subniches {
				out = append(out, g.forParents(d.Name, n.Name, s)...)
			}
		}
	}
	return out
}

func (g *Generator) forParents(domain, niche, subniche string) []Keyword {
	pairs := [][2]string{
		{domain, niche},
		{niche, domain},
	}
	terms := []string{niche, domain}
	if subniche != "" {
		pairs = append(pairs,
			[2]string{subniche, niche},
			[2]string{niche, subniche},
			[2]string{domain, subniche},
			[2]string{subniche, domain},
		)
		terms = append(terms, subniche)
	}

	var out []Keyword
	add := func(prefix *string, main, suffix string) {
		sfx := suffix
		full := validation.ComposeKeyword(prefix, main, &sfx)
		key := strings.ToLower(full)
		if _, dup := g.seen[key]; dup {
			return
		}
		g.seen[key] = struct{}{}

		in := g.randomFields()
		in.Prefix = prefix
		in.MainKeyword = main
		in.Suffix = &sfx
		in.FullKeyword = full
		out = append(out, Keyword{Domain: domain, Niche: niche, Subniche: subniche, Input: in})
	}

	for _, p := range pairs {
		main := p[0] + " " + p[1]
		for _, prefix := range head(g.cat.Prefixes, comboPrefixes) {
			pfx := prefix
			for _, suffix := range head(g.cat.Suffixes, comboSuffixes) {
				add(&pfx, main, suffix)
			}
		}
	}
	for _, term := range terms {
		for _, suffix := range head(g.cat.Suffixes, termSuffixes) {
			add(nil, term, suffix)
		}
	}
	return out
}

// randomFields fills the counters and classification values.
func (g *Generator) randomFields() models.KeywordCreate {
	runStatus := pick(g.rng, runStatuses)
	return models.KeywordCreate{
		ScanPlatform:        pick(g.rng, g.cat.ScanPlatforms),
		TotalLinksScanned:   between(g.rng, 100, 5000),
		TotalLinksNew:       between(g.rng, 10, 500),
		TotalLinksDuplicate: between(g.rng, 5, 200),
		Status:              pick(g.rng, statuses),
		StatusRun:           &runStatus,
		Favorite:            g.rng.IntN(2) == 1,
		SchedulerConfig: map[string]any{
			"frequency": pick(g.rng, frequencies),
			"enabled":   g.rng.IntN(2) == 1,
		},
	}
}

func head(s []string, n int) []string {
	return s[:min(n, len(s))]
}

func pick(rng *rand.Rand, s []string) string {
	return s[rng.IntN(len(s))]
}

// between returns an int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
