package facility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

const (
	policyTable  = "facility_policy"
	blockedTable = "blocked_dates"

	// Политика площадки хранится одной строкой
	policyRowID = 1

	uniqueViolation = "23505"
)

// Repository репозиторий политики площадки и заблокированных дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPolicy получает политику площадки
func (r *Repository) GetPolicy(ctx context.Context) (*domain.FacilityPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"opening_hour",
		"closing_hour",
		"sunday_open",
		"monday_open",
		"tuesday_open",
		"wednesday_open",
		"thursday_open",
		"friday_open",
		"saturday_open",
		"updated_at",
		"updated_by",
	).
		From(policyTable).
		Where(squirrel.Eq{"id": policyRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.FacilityPolicy
	var updatedAt sql.NullTime
	var updatedBy sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.OpeningHour,
		&policy.ClosingHour,
		&policy.SundayOpen,
		&policy.MondayOpen,
		&policy.TuesdayOpen,
		&policy.WednesdayOpen,
		&policy.ThursdayOpen,
		&policy.FridayOpen,
		&policy.SaturdayOpen,
		&updatedAt,
		&updatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - scan policy: %v", ErrScanRow, err)
	}

	policy.UpdatedAt = updatedAt.Time.UTC()
	if updatedBy.Valid {
		policy.UpdatedBy = &updatedBy.String
	}

	return &policy, nil
}

// UpsertPolicy сохраняет политику площадки (создает строку при отсутствии)
func (r *Repository) UpsertPolicy(ctx context.Context, policy *domain.FacilityPolicy) (*domain.FacilityPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(policyTable).
		Columns(
			"id",
			"opening_hour",
			"closing_hour",
			"sunday_open",
			"monday_open",
			"tuesday_open",
			"wednesday_open",
			"thursday_open",
			"friday_open",
			"saturday_open",
			"updated_by",
		).
		Values(
			policyRowID,
			policy.OpeningHour,
			policy.ClosingHour,
			policy.SundayOpen,
			policy.MondayOpen,
			policy.TuesdayOpen,
			policy.WednesdayOpen,
			policy.ThursdayOpen,
			policy.FridayOpen,
			policy.SaturdayOpen,
			policy.UpdatedBy,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			opening_hour = EXCLUDED.opening_hour,
			closing_hour = EXCLUDED.closing_hour,
			sunday_open = EXCLUDED.sunday_open,
			monday_open = EXCLUDED.monday_open,
			tuesday_open = EXCLUDED.tuesday_open,
			wednesday_open = EXCLUDED.wednesday_open,
			thursday_open = EXCLUDED.thursday_open,
			friday_open = EXCLUDED.friday_open,
			saturday_open = EXCLUDED.saturday_open,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPolicy - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertPolicy - execute upsert: %v", ErrExecQuery, err)
	}
	policy.UpdatedAt = updatedAt.Time.UTC()

	return policy, nil
}

// ListBlockedDates получает заблокированные даты в диапазоне [from, to] (границы опциональны)
func (r *Repository) ListBlockedDates(ctx context.Context, from, to *time.Time) ([]domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("date", "reason", "created_by", "created_at").
		From(blockedTable).
		OrderBy("date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.BlockedDate, 0)
	for rows.Next() {
		var bd domain.BlockedDate
		var date time.Time
		var createdAt sql.NullTime

		if err := rows.Scan(&date, &bd.Reason, &bd.CreatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}

		// Колонка DATE приходит как полночь UTC
		bd.Date = date.UTC().Format(domain.DateFormat)
		bd.CreatedAt = createdAt.Time.UTC()
		result = append(result, bd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// AddBlockedDate блокирует дату
func (r *Repository) AddBlockedDate(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(blockedTable).
		Columns("date", "reason", "created_by").
		Values(bd.Date, bd.Reason, bd.CreatedBy).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrBlockedDateExists
		}
		return nil, fmt.Errorf("%w: AddBlockedDate - execute insert: %v", ErrExecQuery, err)
	}
	bd.CreatedAt = createdAt.Time.UTC()

	return bd, nil
}

// DeleteBlockedDate снимает блокировку даты (формат YYYY-MM-DD)
func (r *Repository) DeleteBlockedDate(ctx context.Context, date string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(blockedTable).
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}
