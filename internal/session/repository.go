package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
)

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error

	// ListOverlapping returns the user's sessions intersecting [start, end),
	// ordered by start.
	ListOverlapping(ctx context.Context, userID string, start, end time.Time) ([]*Session, error)
	// ListOnDate returns the user's sessions intersecting the KST day.
	ListOnDate(ctx context.Context, userID string, date kst.Date) ([]*Session, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var sessionColumns = []string{
	"id", "user_id", "project_id", "title", "start_at", "end_at", "created_at", "updated_at",
}

func scanSession(row pgx.Row, extra ...any) (*Session, error) {
	var s Session
	dest := []any{&s.ID, &s.UserID, &s.ProjectID, &s.Title, &s.StartAt, &s.EndAt, &s.CreatedAt, &s.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	s.StartAt = s.StartAt.UTC()
	s.EndAt = s.EndAt.UTC()
	return &s, nil
}

// mapWriteError translates constraint violations into domain errors.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.ExclusionViolation:
		return ErrTimeConflict
	case pgerrcode.ForeignKeyViolation:
		return ErrProjectNotFound
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, s *Session) error {
	query, args, err := psql.Insert("public.focus_sessions").
		Columns("user_id", "project_id", "title", "start_at", "end_at").
		Values(s.UserID, s.ProjectID, s.Title, s.StartAt, s.EndAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create session query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Session, error) {
	query, args, err := psql.Select(sessionColumns...).
		From("public.focus_sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get session query failed: %w", err)
	}

	s, err := scanSession(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	query := psql.Select(append(sessionColumns, "count(*) OVER() as total_count")...).
		From("public.focus_sessions").
		Where(squirrel.Eq{"user_id": filter.UserID})

	if filter.ProjectID != "" {
		query = query.Where(squirrel.Eq{"project_id": filter.ProjectID})
	}
	// Range filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"start_at": *filter.To})
	}

	// Sorting
	orderBy := "start_at"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}

	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sessions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions failed: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	var total int

	for rows.Next() {
		s, err := scanSession(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan session failed: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sessions failed: %w", err)
	}

	return sessions, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Session) error {
	query, args, err := psql.Update("public.focus_sessions").
		Set("project_id", s.ProjectID).
		Set("title", s.Title).
		Set("start_at", s.StartAt).
		Set("end_at", s.EndAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update session query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update session failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.focus_sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete session query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListOverlapping(ctx context.Context, userID string, start, end time.Time) ([]*Session, error) {
	// Half-open intersection: existing.start < end AND existing.end > start
	query, args, err := psql.Select(sessionColumns...).
		From("public.focus_sessions").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		OrderBy("start_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list overlapping sessions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list overlapping sessions failed: %w", err)
	}
	defer rows.Close()

	sessions := []*Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session failed: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overlapping sessions failed: %w", err)
	}
	return sessions, nil
}

func (r *pgxRepository) ListOnDate(ctx context.Context, userID string, date kst.Date) ([]*Session, error) {
	return r.ListOverlapping(ctx, userID, date.Midnight(), date.AddDays(1).Midnight())
}
