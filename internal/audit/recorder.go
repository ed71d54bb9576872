package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// Entry is one immutable record of a console action: who did what to which
// ticket, sub-ticket, or reassignment request. The backend keeps its own
// history; this trail covers what went through this gateway.
type Entry struct {
	ID         string
	ActorID    string
	ActorRole  domain.Role
	Action     string
	TargetKind string
	TargetID   string
	OldValue   map[string]any
	NewValue   map[string]any
	Note       string
	CreatedAt  time.Time
}

// Recorder persists audit entries. Services tolerate a nil Recorder, which
// is how a DSN-less deployment runs.
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
}

type pgRecorder struct {
	pool *pgxpool.Pool
}

// NewRecorder builds a Postgres-backed recorder, or nil when auditing is
// disabled.
func NewRecorder(pg *Postgres) Recorder {
	if pg == nil || pg.Pool == nil {
		return nil
	}
	return &pgRecorder{pool: pg.Pool}
}

func (r *pgRecorder) Record(ctx context.Context, entry *Entry) error {
	const query = `
        INSERT INTO action_log (actor_id, actor_role, action, target_kind, target_id, old_value, new_value, note)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.ActorID,
		entry.ActorRole,
		entry.Action,
		entry.TargetKind,
		entry.TargetID,
		entry.OldValue,
		entry.NewValue,
		entry.Note,
	).Scan(&entry.ID, &entry.CreatedAt)
}
