package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"keywordapi/internal/models"
	"keywordapi/internal/validation"
)

// keywordColumns is the standard column list for keyword queries.
const keywordColumns = `k.id, k.prefix, k.main_keyword, k.suffix, k.full_keyword,
	k.subniche_id, k.niche_id, k.scan_platform,
	k.total_links_scanned, k.total_links_new, k.total_links_duplicate,
	k.status, k.status_run, k.favorite, k.scheduler_config,
	k.created_by, k.updated_by, k.created_at, k.updated_at`

// keywordLineageJoins resolves the owning niche whether the keyword hangs off
// a subniche or directly off a niche.
const keywordLineageJoins = `
	LEFT JOIN tbl_subniche s ON s.id = k.subniche_id
	LEFT JOIN tbl_niche pn ON pn.id = COALESCE(k.niche_id, s.niche_id)
	LEFT JOIN tbl_domain d ON d.id = pn.domain_id`

func keywordFrom(joined bool) string {
	if joined {
		return ` FROM tbl_keyword k` + keywordLineageJoins
	}
	return ` FROM tbl_keyword k`
}

func keywordSelect(fetch models.FetchStrategy, joined bool) string {
	if fetch == models.FetchEager {
		return `SELECT ` + keywordColumns + `, s.name, pn.id, pn.name, d.id, d.name` + keywordFrom(true)
	}
	return `SELECT ` + keywordColumns + keywordFrom(joined)
}

func keywordScanner(fetch models.FetchStrategy) func(pgx.Row) (*models.Keyword, error) {
	return func(row pgx.Row) (*models.Keyword, error) {
		var kw models.Keyword
		dest := []any{
			&kw.ID,
			&kw.Prefix,
			&kw.MainKeyword,
			&kw.Suffix,
			&kw.FullKeyword,
			&kw.SubnicheID,
			&kw.NicheID,
			&kw.ScanPlatform,
			&kw.TotalLinksScanned,
			&kw.TotalLinksNew,
			&kw.TotalLinksDuplicate,
			&kw.Status,
			&kw.StatusRun,
			&kw.Favorite,
			&kw.SchedulerConfig,
			&kw.CreatedBy,
			&kw.UpdatedBy,
			&kw.CreatedAt,
			&kw.UpdatedAt,
		}
		var (
			subnicheName, nicheName, domainName *string
			nicheID, domainID                   *uuid.UUID
		)
		if fetch == models.FetchEager {
			dest = append(dest, &subnicheName, &nicheID, &nicheName, &domainID, &domainName)
		}

		err := row.Scan(dest...)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeywordNotFound
		}
		if err != nil {
			return nil, err
		}

		if fetch == models.FetchEager {
			kw.Lineage = &models.Lineage{
				DomainID:     domainID,
				DomainName:   deref(domainName),
				NicheID:      nicheID,
				NicheName:    deref(nicheName),
				SubnicheName: deref(subnicheName),
			}
		}
		return &kw, nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullIfEmpty stores blank optional text as NULL.
func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func keywordParentField(subnicheID *uuid.UUID) string {
	if subnicheID != nil {
		return "subniche_id"
	}
	return "niche_id"
}

// CreateKeyword inserts a keyword under exactly one of a subniche or a niche.
func (d *DB) CreateKeyword(ctx context.Context, in models.KeywordCreate, actorID uuid.UUID) (*models.Keyword, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO tbl_keyword AS k (
			prefix, main_keyword, suffix, full_keyword, subniche_id, niche_id,
			scan_platform, total_links_scanned, total_links_new, total_links_duplicate,
			status, status_run, favorite, scheduler_config, created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		RETURNING ` + keywordColumns

	kw, err := keywordScanner(models.FetchReference)(d.Pool.QueryRow(ctx, query,
		nullIfEmpty(in.Prefix),
		in.MainKeyword,
		nullIfEmpty(in.Suffix),
		in.FullKeyword,
		in.SubnicheID,
		in.NicheID,
		in.ScanPlatform,
		in.TotalLinksScanned,
		in.TotalLinksNew,
		in.TotalLinksDuplicate,
		in.Status,
		in.StatusRun,
		in.Favorite,
		in.SchedulerConfig,
		actorID,
	))
	if err != nil {
		return nil, mapWriteError(err, ErrDuplicateKeyword, keywordParentField(in.SubnicheID))
	}
	return kw, nil
}

// GetKeywordByID retrieves a keyword by its ID.
func (d *DB) GetKeywordByID(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Keyword, error) {
	query := keywordSelect(fetch, false) + ` WHERE k.id = $1`
	return keywordScanner(fetch)(d.Pool.QueryRow(ctx, query, id))
}

// GetAllKeywords returns every keyword ordered by text.
func (d *DB) GetAllKeywords(ctx context.Context) ([]models.Keyword, error) {
	query := keywordSelect(models.FetchReference, false) + ` ORDER BY k.full_keyword ASC, k.id`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, keywordScanner(models.FetchReference))
}

// GetFilteredKeywords returns one page of keywords and the total match count.
// A niche filter matches keywords attached to the niche directly or through
// one of its subniches.
func (d *DB) GetFilteredKeywords(ctx context.Context, filter models.KeywordFilter, page models.PageRequest, fetch models.FetchStrategy) ([]models.Keyword, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	var q queryBuilder
	if filter.Status != "" {
		q.equal("k.status", filter.Status)
	}
	if filter.StatusRun != "" {
		q.equal("k.status_run", filter.StatusRun)
	}
	if filter.ScanPlatform != "" {
		q.equal("k.scan_platform", filter.ScanPlatform)
	}
	if filter.Search != "" {
		q.contains("k.full_keyword", filter.Search)
	}
	if filter.SubnicheID != nil {
		q.equal("k.subniche_id", *filter.SubnicheID)
	}
	if filter.Favorite != nil {
		q.equal("k.favorite", *filter.Favorite)
	}
	joined := false
	if filter.NicheID != nil {
		p := q.arg(*filter.NicheID)
		q.where("(k.niche_id = " + p + " OR s.niche_id = " + p + ")")
		joined = true
	}
	if filter.DomainID != nil {
		q.equal("pn.domain_id", *filter.DomainID)
		joined = true
	}

	var total int64
	countQuery := `SELECT COUNT(*)` + keywordFrom(joined) + q.whereSQL()
	if err := d.Pool.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := keywordSelect(fetch, joined) + q.whereSQL() +
		` ORDER BY k.created_at DESC, k.id` + q.pageSQL(page.Limit, page.Offset())

	rows, err := d.Pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, 0, err
	}
	keywords, err := collectRows(rows, keywordScanner(fetch))
	if err != nil {
		return nil, 0, err
	}
	return keywords, total, nil
}

// UpdateKeyword applies a partial update and records actorID as the updater.
// When prefix, main keyword or suffix change without an explicit full keyword,
// the full keyword is recomposed from the stored and updated parts.
func (d *DB) UpdateKeyword(ctx context.Context, id uuid.UUID, in models.KeywordUpdate, actorID uuid.UUID) (*models.Keyword, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	current, err := keywordScanner(models.FetchReference)(tx.QueryRow(ctx,
		keywordSelect(models.FetchReference, false)+` WHERE k.id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}

	var q queryBuilder
	if in.Prefix != nil {
		q.set("prefix", nullIfEmpty(in.Prefix))
	}
	if in.MainKeyword != nil {
		q.set("main_keyword", *in.MainKeyword)
	}
	if in.Suffix != nil {
		q.set("suffix", nullIfEmpty(in.Suffix))
	}
	switch {
	case in.FullKeyword != nil:
		q.set("full_keyword", *in.FullKeyword)
	case in.Prefix != nil || in.MainKeyword != nil || in.Suffix != nil:
		q.set("full_keyword", recomposeKeyword(current, in))
	}
	if in.SubnicheID != nil {
		q.set("subniche_id", *in.SubnicheID)
		q.setRaw("niche_id", "NULL")
	}
	if in.NicheID != nil {
		q.set("niche_id", *in.NicheID)
		q.setRaw("subniche_id", "NULL")
	}
	if in.ScanPlatform != nil {
		q.set("scan_platform", *in.ScanPlatform)
	}
	if in.TotalLinksScanned != nil {
		q.set("total_links_scanned", *in.TotalLinksScanned)
	}
	if in.TotalLinksNew != nil {
		q.set("total_links_new", *in.TotalLinksNew)
	}
	if in.TotalLinksDuplicate != nil {
		q.set("total_links_duplicate", *in.TotalLinksDuplicate)
	}
	if in.Status != nil {
		q.set("status", *in.Status)
	}
	if in.StatusRun != nil {
		q.set("status_run", nullIfEmpty(in.StatusRun))
	}
	if in.Favorite != nil {
		q.set("favorite", *in.Favorite)
	}
	if in.SchedulerConfig != nil {
		q.set("scheduler_config", *in.SchedulerConfig)
	}
	q.set("updated_by", actorID)
	q.setRaw("updated_at", "NOW()")

	query := `UPDATE tbl_keyword AS k SET ` + q.setSQL() +
		` WHERE k.id = ` + q.arg(id) + ` RETURNING ` + keywordColumns

	kw, err := keywordScanner(models.FetchReference)(tx.QueryRow(ctx, query, q.args...))
	if err != nil {
		parent := keywordParentField(in.SubnicheID)
		if in.SubnicheID == nil && in.NicheID == nil {
			parent = keywordParentField(current.SubnicheID)
		}
		return nil, mapWriteError(err, ErrDuplicateKeyword, parent)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return kw, nil
}

func recomposeKeyword(current *models.Keyword, in models.KeywordUpdate) string {
	prefix, main, suffix := current.Prefix, current.MainKeyword, current.Suffix
	if in.Prefix != nil {
		prefix = in.Prefix
	}
	if in.MainKeyword != nil {
		main = *in.MainKeyword
	}
	if in.Suffix != nil {
		suffix = in.Suffix
	}
	return validation.ComposeKeyword(prefix, main, suffix)
}

// DeleteKeyword deletes a keyword by ID.
func (d *DB) DeleteKeyword(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tbl_keyword WHERE id = $1`
	result, err := d.Pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrKeywordNotFound
	}
	return nil
}
