package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

// Repository репозиторий каталога помещений и наборов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListSpaces получает помещения, при onlyActive только активные
func (r *Repository) ListSpaces(ctx context.Context, onlyActive bool) ([]*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "hourly_rate", "is_active", "created_at", "updated_at").
		From("spaces").
		OrderBy("name ASC")
	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpaces - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpaces - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spaces := make([]*domain.Space, 0)
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSpaces - scan row: %v", ErrScanRow, err)
		}
		spaces = append(spaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpaces - rows error: %v", ErrScanRow, err)
	}

	return spaces, nil
}

// ListBundles получает наборы, при onlyActive только активные
func (r *Repository) ListBundles(ctx context.Context, onlyActive bool) ([]*domain.Bundle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "hourly_rate", "is_active", "space_ids", "created_at", "updated_at").
		From("bundles").
		OrderBy("name ASC")
	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBundles - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBundles - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bundles := make([]*domain.Bundle, 0)
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBundles - scan row: %v", ErrScanRow, err)
		}
		bundles = append(bundles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBundles - rows error: %v", ErrScanRow, err)
	}

	return bundles, nil
}

// GetSpace получает помещение по ID
func (r *Repository) GetSpace(ctx context.Context, id string) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "hourly_rate", "is_active", "created_at", "updated_at").
		From("spaces").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpace - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpace - scan space: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetBundle получает набор по ID
func (r *Repository) GetBundle(ctx context.Context, id string) (*domain.Bundle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "hourly_rate", "is_active", "space_ids", "created_at", "updated_at").
		From("bundles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBundle - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBundle(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBundleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBundle - scan bundle: %v", ErrScanRow, err)
	}

	return b, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpace(row rowScanner) (*domain.Space, error) {
	var s domain.Space
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&s.ID, &s.Name, &s.HourlyRate, &s.IsActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time.UTC()
	s.UpdatedAt = updatedAt.Time.UTC()

	return &s, nil
}

func scanBundle(row rowScanner) (*domain.Bundle, error) {
	var b domain.Bundle
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&b.ID, &b.Name, &b.HourlyRate, &b.IsActive, pq.Array(&b.SpaceIDs), &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = createdAt.Time.UTC()
	b.UpdatedAt = updatedAt.Time.UTC()

	return &b, nil
}
