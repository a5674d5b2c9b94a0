package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"keywordapi/internal/models"
)

// subnicheColumns is the standard column list for subniche queries.
const subnicheColumns = `s.id, s.name, s.niche_id, s.created_by, s.updated_by, s.created_at, s.updated_at`

func subnicheSelect(fetch models.FetchStrategy) string {
	if fetch == models.FetchEager {
		return `SELECT ` + subnicheColumns + `, n.name, n.domain_id, d.name
			FROM tbl_subniche s
			JOIN tbl_niche n ON n.id = s.niche_id
			JOIN tbl_domain d ON d.id = n.domain_id`
	}
	return `SELECT ` + subnicheColumns + ` FROM tbl_subniche s`
}

func subnicheScanner(fetch models.FetchStrategy) func(pgx.Row) (*models.Subniche, error) {
	return func(row pgx.Row) (*models.Subniche, error) {
		var sub models.Subniche
		dest := []any{
			&sub.ID,
			&sub.Name,
			&sub.NicheID,
			&sub.CreatedBy,
			&sub.UpdatedBy,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		}
		var lineage models.Lineage
		var domainID uuid.UUID
		if fetch == models.FetchEager {
			dest = append(dest, &lineage.NicheName, &domainID, &lineage.DomainName)
		}

		err := row.Scan(dest...)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubnicheNotFound
		}
		if err != nil {
			return nil, err
		}

		if fetch == models.FetchEager {
			nicheID := sub.NicheID
			lineage.NicheID = &nicheID
			lineage.DomainID = &domainID
			sub.Lineage = &lineage
		}
		return &sub, nil
	}
}

// CreateSubniche inserts a subniche under an existing niche.
func (d *DB) CreateSubniche(ctx context.Context, in models.SubnicheCreate, actorID uuid.UUID) (*models.Subniche, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO tbl_subniche AS s (name, niche_id, created_by, updated_by)
		VALUES ($1, $2, $3, $3)
		RETURNING ` + subnicheColumns

	sub, err := subnicheScanner(models.FetchReference)(d.Pool.QueryRow(ctx, query, in.Name, in.NicheID, actorID))
	if err != nil {
		return nil, mapWriteError(err, ErrDuplicateSubniche, "niche_id")
	}
	return sub, nil
}

// GetSubnicheByID retrieves a subniche by its ID.
func (d *DB) GetSubnicheByID(ctx context.Context, id uuid.UUID, fetch models.FetchStrategy) (*models.Subniche, error) {
	query := subnicheSelect(fetch) + ` WHERE s.id = $1`
	return subnicheScanner(fetch)(d.Pool.QueryRow(ctx, query, id))
}

// GetAllSubniches returns every subniche ordered by name.
func (d *DB) GetAllSubniches(ctx context.Context) ([]models.Subniche, error) {
	query := subnicheSelect(models.FetchReference) + ` ORDER BY s.name ASC, s.id`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, subnicheScanner(models.FetchReference))
}

// GetFilteredSubniches returns one page of subniches and the total match count.
func (d *DB) GetFilteredSubniches(ctx context.Context, filter models.SubnicheFilter, page models.PageRequest, fetch models.FetchStrategy) ([]models.Subniche, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}

	var q queryBuilder
	if filter.NicheID != nil {
		q.equal("s.niche_id", *filter.NicheID)
	}
	if filter.Name != "" {
		q.contains("s.name", filter.Name)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM tbl_subniche s` + q.whereSQL()
	if err := d.Pool.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := subnicheSelect(fetch) + q.whereSQL() +
		` ORDER BY s.created_at DESC, s.id` + q.pageSQL(page.Limit, page.Offset())

	rows, err := d.Pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, 0, err
	}
	subs, err := collectRows(rows, subnicheScanner(fetch))
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// UpdateSubniche applies a partial update and records actorID as the updater.
func (d *DB) UpdateSubniche(ctx context.Context, id uuid.UUID, in models.SubnicheUpdate, actorID uuid.UUID) (*models.Subniche, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var q queryBuilder
	if in.Name != nil {
		q.set("name", *in.Name)
	}
	if in.NicheID != nil {
		q.set("niche_id", *in.NicheID)
	}
	q.set("updated_by", actorID)
	q.setRaw("updated_at", "NOW()")

	query := `UPDATE tbl_subniche AS s SET ` + q.setSQL() +
		` WHERE s.id = ` + q.arg(id) + ` RETURNING ` + subnicheColumns

	sub, err := subnicheScanner(models.FetchReference)(d.Pool.QueryRow(ctx, query, q.args...))
	if err != nil {
		return nil, mapWriteError(err, ErrDuplicateSubniche, "niche_id")
	}
	return sub, nil
}

// DeleteSubniche deletes a subniche and its keywords.
func (d *DB) DeleteSubniche(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tbl_subniche WHERE id = $1`
	result, err := d.Pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSubnicheNotFound
	}
	return nil
}
