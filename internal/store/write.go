package store

import (
	"context"
	"fmt"

	"github.com/uptally/uptally/internal/ledger"
)

// Append inserts a new session record and returns the seq assigned by the
// store. The record's own Seq field is ignored; seq assignment is the
// store's job and values are never reused.
func (s *Store) Append(ctx context.Context, rec ledger.Record) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions
		(boot_epoch, uptime_seconds, shutdown_epoch, shutdown_kind, downtime_seconds, kernel_label)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		rec.BootEpoch,
		rec.Uptime,
		rec.ShutdownEpoch,
		int(rec.ShutdownKind),
		rec.Downtime,
		rec.Kernel,
	)
	if err != nil {
		return 0, fmt.Errorf("append session: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append session: last insert id: %w", err)
	}
	return seq, nil
}

// UpdateTail refreshes the open tail record in place: uptime, the
// shutdown-kind annotation in waiting, and the kernel label. Used on every
// invocation within the same boot.
//
// Returns an error if the ledger has no open tail to update.
func (s *Store) UpdateTail(ctx context.Context, uptime float64, kind ledger.Kind, kernel string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET uptime_seconds = ?, shutdown_kind = ?, kernel_label = ?
		WHERE seq = (SELECT MAX(seq) FROM sessions) AND shutdown_epoch = ?
	`,
		uptime,
		int(kind),
		kernel,
		ledger.Open,
	)
	if err != nil {
		return fmt.Errorf("update tail: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tail: rows affected: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("update tail: no open tail record")
	}
	return nil
}

// RotateTail closes the current tail and appends the next boot's open
// record in a single transaction. A restart that closes one session always
// opens the next, so the two writes must commit together or not at all - a
// half-applied rotation would either lose the session boundary or leave
// two open records.
//
// Returns the seq assigned to the new open record.
func (s *Store) RotateTail(ctx context.Context, shutdownEpoch int64, downtime float64, kind ledger.Kind, next ledger.Record) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("rotate tail: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	res, err := tx.ExecContext(ctx, `
		UPDATE sessions
		SET shutdown_epoch = ?, downtime_seconds = ?, shutdown_kind = ?
		WHERE seq = (SELECT MAX(seq) FROM sessions) AND shutdown_epoch = ?
	`,
		shutdownEpoch,
		downtime,
		int(kind),
		ledger.Open,
	)
	if err != nil {
		return 0, fmt.Errorf("rotate tail: close: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rotate tail: rows affected: %w", err)
	}
	if n != 1 {
		return 0, fmt.Errorf("rotate tail: no open tail record")
	}

	res, err = tx.ExecContext(ctx, `
		INSERT INTO sessions
		(boot_epoch, uptime_seconds, shutdown_epoch, shutdown_kind, downtime_seconds, kernel_label)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		next.BootEpoch,
		next.Uptime,
		next.ShutdownEpoch,
		int(next.ShutdownKind),
		next.Downtime,
		next.Kernel,
	)
	if err != nil {
		return 0, fmt.Errorf("rotate tail: append: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("rotate tail: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("rotate tail: commit: %w", err)
	}
	return seq, nil
}
