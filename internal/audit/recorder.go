package audit

import (
	"context"
	"database/sql"
	"time"

	"backend-triage/internal/queue"

	"github.com/pkg/errors"
)

// Schema runs once at startup. The table is an audit trail only; queue state
// never reads from it. seq restarts at 1 with each process.
const Schema = `
CREATE TABLE IF NOT EXISTS queue_transactions (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	patient_id VARCHAR(64) NULL,
	token VARCHAR(16) NULL,
	event VARCHAR(16) NOT NULL,
	status VARCHAR(16) NULL,
	actor VARCHAR(64) NULL,
	created_at DATETIME(3) NOT NULL,
	seq BIGINT UNSIGNED NOT NULL DEFAULT 0,
	INDEX idx_queue_transactions_patient (patient_id)
)`

const insertTransaction = `
	INSERT INTO queue_transactions
	(patient_id, token, event, status, actor, created_at, seq)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Recorder appends one queue_transactions row per queue event.
type Recorder struct {
	db      execer
	timeout time.Duration
}

func NewRecorder(db execer) *Recorder {
	return &Recorder{db: db, timeout: 3 * time.Second}
}

func (r *Recorder) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return errors.Wrap(err, "create queue_transactions")
	}
	return nil
}

func (r *Recorder) Notify(ctx context.Context, ev queue.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, insertTransaction,
		nullable(ev.PatientID),
		nullable(ev.Token),
		ev.Type,
		nullable(string(ev.Status)),
		nullable(ev.Actor),
		ev.At.UTC(),
		ev.Seq,
	)
	if err != nil {
		return errors.Wrapf(err, "record %s event", ev.Type)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
