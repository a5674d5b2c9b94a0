package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"keywordapi/internal/models"
)

// nicheColumns is the standard column list for niche queries.
const nicheColumns = `n.id, n.name, n.domain_id, n.created_by, n.updated_by, n.created_at, n.updated_at`

// nicheSelect returns the SELECT ... FROM prefix for a fetch strategy.
func nicheSelect(fetch models.FetchStrategy) string {
	if fetch == models.FetchEager {
		return `SELECT ` + nicheColumns + `, d.name
			FROM tbl_niche n
			JOIN tbl_domain d ON d.id = n.domain_id`
	}
	return `SELECT ` + nicheColumns + ` FROM tbl_niche n`
}

// nicheScanner returns a row scanner matching nicheSelect.
func nicheScanner(fetch models.FetchStrategy) func(pgx.Row) (*models.Niche, error) {
	return func(row pgx.Row) (*models.Niche, error) {
		var niche models.Niche
		dest := []any{
			&niche.ID,
			&niche.Name,
			&niche.DomainID,
			&niche.CreatedBy,
			&niche.UpdatedBy,
			&niche.CreatedAt,
			&niche.UpdatedAt,
		}
		var domainName string
		if fetch == models.FetchEager {
			dest = append(dest, &domainName)
		}

		err := row.Scan(dest...)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNicheNotFound
		}
		if err != nil {
			return nil, err
		}

		if fetch == models.FetchEager {
			domainID := niche.DomainID
			niche.Lineage = &models.Lineage{DomainID: &domainID, DomainName: domainName}
		}
		return &niche, nil
	}
}

// CreateNiche inserts a niche under an existing domain.
func (d *DB) CreateNiche(ctx context.Context, in models.NicheCreate, actorID uuid.UUID) (*models.Niche, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO tbl_niche AS n (name, domain_id, created_by, updated_by)
		VALUES ($1, $2, $3, $3)
		RETURNING ` + nicheColumns

	niche, err := nicheScanner(models.FetchReference)(d.Pool.QueryRow(ctx, query, in.Name, in.DomainID, actorID))
	if err != nil {
		return nil, mapWriteError(err, ErrDuplicateNiche, "domain_id")
	}
	return niche, nil
}

// GetNicheByID retrieves a niche by its ID.
func (d *DB) GetNicheByID(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Niche, error) {
	query := nicheSelect(fetch) + ` WHERE n.id = $1`
	return nicheScanner(fetch)(d.Pool.QueryRow(ctx, query, id))
}

// GetAllNiches returns every niche ordered by name.
func (d *DB) GetAllNiches(ctx context.Context) ([]models.Niche, error) {
	query := nicheSelect(models.FetchReference) + ` ORDER BY n.name ASC, n.id`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, nicheScanner(models.FetchReference))
}

// GetFilteredNiches returns one page of niches and the total match count.
func (d *DB) GetFilteredNiches(ctx context.Context, filter models.NicheFilter, page models.PageRequest, fetch models.FetchStrategy) ([]models.Niche, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}

	var q queryBuilder
	if filter.DomainID != nil {
		q.equal("n.domain_id", *filter.DomainID)
	}
	if filter.Name != "" {
		q.contains("n.name", filter.Name)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM tbl_niche n` + q.whereSQL()
	if err := d.Pool.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := nicheSelect(fetch) + q.whereSQL() +
		` ORDER BY n.created_at DESC, n.id` + q.pageSQL(page.Limit, page.Offset())

	rows, err := d.Pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, 0, err
	}
	niches, err := collectRows(rows, nicheScanner(fetch))
	if err != nil {
		return nil, 0, err
	}
	return niches, total, nil
}

// UpdateNiche applies a partial update and records actorID as the updater.
func (d *DB) UpdateNiche(ctx context.Context, id uuid.UUID, in models.NicheUpdate, actorID uuid.UUID) (*models.Niche, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var q queryBuilder
	if in.Name != nil {
		q.set("name", *in.Name)
	}
	if in.DomainID != nil {
		q.set("domain_id", *in.DomainID)
	}
	q.set("updated_by", actorID)
	q.setRaw("updated_at", "NOW()")

	query := `UPDATE tbl_niche AS n SET ` + q.setSQL() +
		` WHERE n.id = ` + q.arg(id) + ` RETURNING ` + nicheColumns

	niche, err := nicheScanner(models.FetchReference)(d.Pool.QueryRow(ctx, query, q.args...))
	if err != nil {
		return nil, mapWriteError(err, ErrDuplicateNiche, "domain_id")
	}
	return niche, nil
}

// DeleteNiche deletes a niche and its subniches and keywords.
func (d *DB) DeleteNiche(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tbl_niche WHERE id = $1`
	result, err := d.Pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNicheNotFound
	}
	return nil
}
