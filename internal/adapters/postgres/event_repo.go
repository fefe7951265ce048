package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pulsehub/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) domain.EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Insert(ctx context.Context, rec *domain.EventRecord) error {
	query := `
		INSERT INTO events (id, name, source, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, rec.ID, rec.Name, rec.Source, rec.Payload, rec.At)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

func (r *EventRepository) List(ctx context.Context, opts domain.EventListOptions) ([]*domain.EventRecord, int64, error) {
	baseQuery := `
		SELECT
			id,
			name,
			source,
			payload,
			occurred_at,
			created_at
		FROM events
	`

	args := []any{}
	conditions := []string{}
	argCounter := 1

	if len(opts.Names) > 0 {
		placeholders := []string{}
		for _, name := range opts.Names {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argCounter))
			args = append(args, name)
			argCounter++
		}
		conditions = append(conditions, fmt.Sprintf("name IN (%s)", strings.Join(placeholders, ", ")))
	}

	if opts.Since != nil {
		conditions = append(conditions, fmt.Sprintf("occurred_at >= $%d", argCounter))
		args = append(args, *opts.Since)
		argCounter++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM events" + whereClause

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := baseQuery + whereClause + fmt.Sprintf(
		" ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d",
		argCounter, argCounter+1,
	)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	records := []*domain.EventRecord{}
	for rows.Next() {
		rec := &domain.EventRecord{}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Source, &rec.Payload, &rec.At, &rec.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read events: %w", err)
	}

	return records, total, nil
}

func (r *EventRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}

	return tag.RowsAffected(), nil
}
