package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"keywordapi/internal/models"
)

// domainColumns is the standard column list for domain queries.
const domainColumns = `d.id, d.name, d.created_by, d.updated_by, d.created_at, d.updated_at`

// scanDomain scans a row into a Domain struct.
func scanDomain(row pgx.Row) (*models.Domain, error) {
	var domain models.Domain
	err := row.Scan(
		&domain.ID,
		&domain.Name,
		&domain.CreatedBy,
		&domain.UpdatedBy,
		&domain.CreatedAt,
		&domain.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDomainNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain, nil
}

// CreateDomain inserts a domain owned by actorID.
func (d *DB) CreateDomain(ctx context.Context, in models.DomainCreate, actorID uuid.UUID) (*models.Domain, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO tbl_domain AS d (name, created_by, updated_by)
		VALUES ($1, $2, $2)
		RETURNING ` + domainColumns

	domain, err := scanDomain(d.Pool.QueryRow(ctx, query, in.Name, actorID))
	if err != nil {
		return nil, mapWriteError(err, ErrDuplicateDomain, "")
	}
	return domain, nil
}

// GetDomainByID retrieves a domain by its ID.
func (d *DB) GetDomainByID(ctx context.Context, id uuid.UUID) (*models.Domain, error) {
	query := `SELECT ` + domainColumns + ` FROM tbl_domain d WHERE d.id = $1`
	return scanDomain(d.Pool.QueryRow(ctx, query, id))
}

// GetAllDomains returns every domain ordered by name.
func (d *DB) GetAllDomains(ctx context.Context) ([]models.Domain, error) {
	query := `SELECT ` + domainColumns + ` FROM tbl_domain d ORDER BY d.name ASC`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanDomain)
}

// GetFilteredDomains returns one page of domains and the total match count.
func (d *DB) GetFilteredDomains(ctx context.Context, filter models.DomainFilter, page models.PageRequest) ([]models.Domain, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}

	var q queryBuilder
	if filter.Name != "" {
		q.contains("d.name", filter.Name)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM tbl_domain d` + q.whereSQL()
	if err := d.Pool.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + domainColumns + ` FROM tbl_domain d` + q.whereSQL() +
		` ORDER BY d.created_at DESC, d.id` + q.pageSQL(page.Limit, page.Offset())

	rows, err := d.Pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, 0, err
	}
	domains, err := collectRows(rows, scanDomain)
	if err != nil {
		return nil, 0, err
	}
	return domains, total, nil
}

// UpdateDomain applies a partial update and records actorID as the updater.
func (d *DB) UpdateDomain(ctx context.Context, id uuid.UUID, in models.DomainUpdate, actorID uuid.UUID) (*models.Domain, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var q queryBuilder
	if in.Name != nil {
		q.set("name", *in.Name)
	}
	q.set("updated_by", actorID)
	q.setRaw("updated_at", "NOW()")

	query := `UPDATE tbl_domain AS d SET ` + q.setSQL() +
		` WHERE d.id = ` + q.arg(id) + ` RETURNING ` + domainColumns

	domain, err := scanDomain(d.Pool.QueryRow(ctx, query, q.args...))
	if err != nil {
		return nil, mapWriteError(err, ErrDuplicateDomain, "")
	}
	return domain, nil
}

// DeleteDomain deletes a domain and, through foreign keys, its descendants.
func (d *DB) DeleteDomain(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tbl_domain WHERE id = $1`
	result, err := d.Pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrDomainNotFound
	}
	return nil
}
