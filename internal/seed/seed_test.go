package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywordapi/internal/config"
	"keywordapi/internal/service"
	"keywordapi/internal/testutil"
)

const testCatalogue = `
domains:
  - name: Technology
    niches:
      - name: Web Development
        subniches: [Frontend]
      - name: Cloud
prefixes: [best, top, cheap, free, new, easy, pro]
suffixes: [guide, tips, course, tools, ideas]
scan_platforms: [Youtube, Website]
`

// Web Development/Frontend: 6 pairs x 6 prefixes x 4 suffixes + 3 terms x 3 suffixes.
// Cloud: 2 pairs x 24 + "Cloud" x 3 ("Technology ..." terms already used).
const wantKeywords = 144 + 9 + 48 + 3

func loadCatalogue(t *testing.T) *config.SeedCatalogue {
	t.Helper()
	cat, err := config.ParseSeedCatalogue([]byte(testCatalogue))
	require.NoError(t, err)
	return cat
}

func TestGenerator(t *testing.T) {
	cat := loadCatalogue(t)

	got := NewGenerator(cat, 42).Generate()
	require.Len(t, got, wantKeywords)
	assert.Equal(t, got, NewGenerator(cat, 42).Generate(), "same seed must give the same keywords")

	seen := make(map[string]bool)
	for _, kw := range got {
		key := strings.ToLower(kw.Input.FullKeyword)
		assert.False(t, seen[key], "duplicate %q", kw.Input.FullKeyword)
		seen[key] = true

		assert.Contains(t, []string{"Youtube", "Website"}, kw.Input.ScanPlatform)
		assert.GreaterOrEqual(t, kw.Input.TotalLinksScanned, 100)
		assert.LessOrEqual(t, kw.Input.TotalLinksScanned, 5000)
		assert.GreaterOrEqual(t, kw.Input.TotalLinksNew, 10)
		assert.LessOrEqual(t, kw.Input.TotalLinksNew, 500)
		assert.GreaterOrEqual(t, kw.Input.TotalLinksDuplicate, 5)
		assert.LessOrEqual(t, kw.Input.TotalLinksDuplicate, 200)
		require.NotNil(t, kw.Input.StatusRun)
		assert.Contains(t, kw.Input.SchedulerConfig, "frequency")
	}

	first := got[0]
	assert.Equal(t, "best Technology Web Development guide", first.Input.FullKeyword)
	assert.Equal(t, "Technology Web Development", first.Input.MainKeyword)
	assert.Equal(t, "Frontend", first.Subniche)

	last := got[len(got)-1]
	assert.Equal(t, "Cloud course", last.Input.FullKeyword)
	assert.Nil(t, last.Input.Prefix)
	assert.Empty(t, last.Subniche)
	assert.True(t, seen["best cloud technology tools"])
	assert.False(t, seen["cloud tools"], "terms use the first three suffixes only")
	assert.False(t, seen["best cloud technology ideas"], "pairs use the first four suffixes only")
}

func newSeeder(store *testutil.MemoryStore) *Seeder {
	return &Seeder{
		Domains:   service.NewDomainService(store),
		Niches:    service.NewNicheService(store),
		Subniches: service.NewSubnicheService(store),
		Keywords:  service.NewKeywordService(store),
		Actor:     uuid.MustParse(config.DefaultMockUserID),
	}
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	cat := loadCatalogue(t)
	store := testutil.NewMemoryStore()

	sum, err := newSeeder(store).Run(ctx, cat, NewGenerator(cat, 1))
	require.NoError(t, err)
	assert.Equal(t, &Summary{
		DomainsCreated:   1,
		NichesCreated:    2,
		SubnichesCreated: 1,
		KeywordsCreated:  wantKeywords,
	}, sum)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	var total int64
	for _, s := range stats.Keywords {
		total += s.Count
	}
	assert.EqualValues(t, wantKeywords, total)

	keywords, err := store.GetAllKeywords(ctx)
	require.NoError(t, err)
	for _, k := range keywords {
		assert.True(t, (k.SubnicheID == nil) != (k.NicheID == nil), "keyword %q must have exactly one parent", k.FullKeyword)
		if strings.Contains(k.FullKeyword, "Cloud") {
			assert.NotNil(t, k.NicheID)
		}
	}

	// A second run reuses the taxonomy and skips existing keywords.
	sum, err = newSeeder(store).Run(ctx, cat, NewGenerator(cat, 2))
	require.NoError(t, err)
	assert.Equal(t, &Summary{KeywordsSkipped: wantKeywords}, sum)
}

func TestSeeder_RunUnnormalizedNames(t *testing.T) {
	ctx := context.Background()
	cat, err := config.ParseSeedCatalogue([]byte(`
domains:
  - name: " Technology"
    niches:
      - name: Web  Development
        subniches: ["Front   end"]
suffixes: [guide]
`))
	require.NoError(t, err)
	store := testutil.NewMemoryStore()

	sum, err := newSeeder(store).Run(ctx, cat, NewGenerator(cat, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.SubnichesCreated)
	require.Positive(t, sum.KeywordsCreated)

	again, err := newSeeder(store).Run(ctx, cat, NewGenerator(cat, 1))
	require.NoError(t, err)
	assert.Equal(t, &Summary{KeywordsSkipped: sum.KeywordsCreated}, again)
}

func TestSeeder_RunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cat := loadCatalogue(t)

	_, err := newSeeder(testutil.NewMemoryStore()).Run(ctx, cat, NewGenerator(cat, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeeder_Postgres(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	cat := loadCatalogue(t)

	s := &Seeder{
		Domains:   service.NewDomainService(database),
		Niches:    service.NewNicheService(database),
		Subniches: service.NewSubnicheService(database),
		Keywords:  service.NewKeywordService(database),
		Actor:     uuid.MustParse(config.DefaultMockUserID),
	}

	sum, err := s.Run(ctx, cat, NewGenerator(cat, 7))
	require.NoError(t, err)
	assert.Equal(t, wantKeywords, sum.KeywordsCreated)

	stats, err := database.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Domains)
	assert.EqualValues(t, 2, stats.Niches)
	assert.EqualValues(t, 1, stats.Subniches)

	sum, err = s.Run(ctx, cat, NewGenerator(cat, 7))
	require.NoError(t, err)
	assert.Equal(t, 0, sum.DomainsCreated)
	assert.Equal(t, wantKeywords, sum.KeywordsSkipped)
}
