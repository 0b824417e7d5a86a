package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptally/uptally/internal/ledger"
)

const selectColumns = `seq, boot_epoch, uptime_seconds, shutdown_epoch, shutdown_kind, downtime_seconds, kernel_label`

// ReadAll returns every session record in seq order.
// Returns an empty slice (not nil) for a fresh ledger.
func (s *Store) ReadAll(ctx context.Context) ([]ledger.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM sessions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []ledger.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	if records == nil {
		records = []ledger.Record{}
	}
	return records, nil
}

// Tail returns the record with the largest seq and whether one exists.
func (s *Store) Tail(ctx context.Context) (ledger.Record, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+selectColumns+`
		FROM sessions
		ORDER BY seq DESC
		LIMIT 1
	`)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Record{}, false, nil
	}
	if err != nil {
		return ledger.Record{}, false, err
	}
	return rec, true, nil
}

// Count returns the number of session rows. A count smaller than the
// tail's seq means earlier rows were deleted externally.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

// LedgerID returns the UUID assigned to this ledger when it was created.
func (s *Store) LedgerID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM ledger_meta WHERE key = ?
	`, ledgerIDKey).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("read ledger id: %w", err)
	}
	return id, nil
}

// Snapshot reads the full ledger plus its identity in one call.
func (s *Store) Snapshot(ctx context.Context) (ledger.Snapshot, error) {
	id, err := s.LedgerID(ctx)
	if err != nil {
		return ledger.Snapshot{}, err
	}
	records, err := s.ReadAll(ctx)
	if err != nil {
		return ledger.Snapshot{}, err
	}
	return ledger.Snapshot{LedgerID: id, Records: records}, nil
}

// scanner abstracts *sql.Row and *sql.Rows for record scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (ledger.Record, error) {
	var rec ledger.Record
	var kind int
	err := sc.Scan(
		&rec.Seq,
		&rec.BootEpoch,
		&rec.Uptime,
		&rec.ShutdownEpoch,
		&kind,
		&rec.Downtime,
		&rec.Kernel,
	)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("scan session: %w", err)
	}
	rec.ShutdownKind = ledger.Kind(kind)
	return rec, nil
}
