package db

import (
	"context"

	"keywordapi/internal/models"
)

// Stats returns table sizes and per-status keyword link totals.
func (d *DB) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	err := d.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM tbl_domain),
			(SELECT COUNT(*) FROM tbl_niche),
			(SELECT COUNT(*) FROM tbl_subniche)
	`).Scan(&stats.Domains, &stats.Niches, &stats.Subniches)
	if err != nil {
		return nil, err
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT status, COUNT(*),
			COALESCE(SUM(total_links_scanned), 0),
			COALESCE(SUM(total_links_new), 0),
			COALESCE(SUM(total_links_duplicate), 0)
		FROM tbl_keyword
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s models.KeywordStatusStats
		if err := rows.Scan(&s.Status, &s.Count, &s.LinksScanned, &s.LinksNew, &s.LinksDuplicate); err != nil {
			return nil, err
		}
		stats.Keywords = append(stats.Keywords, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &stats, nil
}
