package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"keywordapi/internal/validation"
)

// Error classes returned by every repository method. Use errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = validation.ErrValidation
)

// Domain-level database error sentinels.
var (
	// Domain errors
	ErrDomainNotFound  = fmt.Errorf("domain %w", ErrNotFound)
	ErrDuplicateDomain = fmt.Errorf("domain name %w", ErrAlreadyExists)

	// Niche errors
	ErrNicheNotFound  = fmt.Errorf("niche %w", ErrNotFound)
	ErrDuplicateNiche = fmt.Errorf("niche name %w in this domain", ErrAlreadyExists)

	// Subniche errors
	ErrSubnicheNotFound  = fmt.Errorf("subniche %w", ErrNotFound)
	ErrDuplicateSubniche = fmt.Errorf("subniche name %w in this niche", ErrAlreadyExists)

	// Keyword errors
	ErrKeywordNotFound  = fmt.Errorf("keyword %w", ErrNotFound)
	ErrDuplicateKeyword = fmt.Errorf("keyword %w under this parent", ErrAlreadyExists)
)

// Postgres SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapWriteError converts constraint violations from an insert or update into
// the package's error classes. parent names the referenced entity for
// foreign key failures.
func mapWriteError(err error, duplicate error, parent string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return duplicate
	case pgForeignKeyViolation:
		return validation.Fieldf(parent, "references a %s that does not exist", parentNoun(parent))
	case pgCheckViolation:
		return validation.Errorf("constraint %s violated", pgErr.ConstraintName)
	}
	return err
}

func parentNoun(field string) string {
	switch field {
	case "domain_id":
		return "domain"
	case "niche_id":
		return "niche"
	case "subniche_id":
		return "subniche"
	}
	return "parent"
}
