package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/stardust-engine/internal/eventlog"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository stores the audit log in the events table
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, player *string, payload, metadata map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEventData, err)
	}
	var metadataJSON []byte
	if metadata != nil {
		if metadataJSON, err = json.Marshal(metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEventData, err)
		}
	}

	const q = `INSERT INTO events (event_type, player, payload, metadata) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, q, eventType, player, payloadJSON, metadataJSON); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertEvent, err)
	}
	return nil
}

// eventQuery accumulates WHERE clauses with numbered placeholders
type eventQuery struct {
	where []string
	args  []interface{}
}

func (q *eventQuery) add(clause string, arg interface{}) {
	q.args = append(q.args, arg)
	q.where = append(q.where, fmt.Sprintf(clause, len(q.args)))
}

func (q *eventQuery) sql(limit int) string {
	var b strings.Builder
	b.WriteString(`SELECT id, event_type, player, payload, metadata, created_at FROM events`)
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	if limit > 0 {
		q.args = append(q.args, limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(q.args))
	}
	return b.String()
}

func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var q eventQuery
	if filter.Player != nil {
		q.add("player = $%d", *filter.Player)
	}
	if filter.EventType != nil {
		q.add("event_type = $%d", *filter.EventType)
	}
	if filter.Since != nil {
		q.add("created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		q.add("created_at <= $%d", *filter.Until)
	}

	rows, err := r.db.Query(ctx, q.sql(filter.Limit), q.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []eventlog.Event{}
	}
	return events, nil
}

func (r *eventLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}

func scanEvent(row pgx.CollectableRow) (eventlog.Event, error) {
	var (
		evt               eventlog.Event
		payload, metadata []byte
	)
	if err := row.Scan(&evt.ID, &evt.EventType, &evt.Player, &payload, &metadata, &evt.CreatedAt); err != nil {
		return evt, err
	}
	if err := json.Unmarshal(payload, &evt.Payload); err != nil {
		return evt, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalEventData, err)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &evt.Metadata); err != nil {
			return evt, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalEventData, err)
		}
	}
	return evt, nil
}
