package storage

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tcncore/internal/models"
	"tcncore/internal/providers"
)

// TcnStore is the persistence contract for observed TCNs. Overwrite is
// the only mutation: delete every row for the given TCN set and insert
// the replacement rows in one transaction.
type TcnStore interface {
	All() ([]models.ObservedTcn, error)
	FindTcns(tcns []models.TemporaryContactNumber) ([]models.ObservedTcn, error)
	Overwrite(toDelete []models.TemporaryContactNumber, toStore []models.ObservedTcn) error
}

type PostgresTcnStore struct {
	db     *sql.DB
	logger providers.Logger
}

const createTcnTable = `
CREATE TABLE IF NOT EXISTS tcns (
	tcn BYTEA NOT NULL,
	contact_start BIGINT NOT NULL,
	contact_end BIGINT NOT NULL,
	min_distance REAL NOT NULL,
	avg_distance REAL NOT NULL,
	total_count BIGINT NOT NULL
)`

func NewPostgresTcnStore(db *sql.DB, logger providers.Logger) (TcnStore, error) {
	if _, err := db.Exec(createTcnTable); err != nil {
		return nil, fmt.Errorf("creating tcns table: %w", err)
	}
	return &PostgresTcnStore{db: db, logger: logger}, nil
}

const selectTcns = `SELECT tcn, contact_start, contact_end, min_distance, avg_distance, total_count FROM tcns`

func (s *PostgresTcnStore) All() ([]models.ObservedTcn, error) {
	rows, err := s.db.Query(selectTcns)
	if err != nil {
		return nil, fmt.Errorf("querying tcns: %w", err)
	}
	defer rows.Close()
	return scanObservedTcns(rows)
}

func (s *PostgresTcnStore) FindTcns(tcns []models.TemporaryContactNumber) ([]models.ObservedTcn, error) {
	if len(tcns) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(selectTcns+` WHERE tcn = ANY($1)`, pq.Array(tcnKeys(tcns)))
	if err != nil {
		return nil, fmt.Errorf("querying tcns by key: %w", err)
	}
	defer rows.Close()
	return scanObservedTcns(rows)
}

func (s *PostgresTcnStore) Overwrite(toDelete []models.TemporaryContactNumber, toStore []models.ObservedTcn) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning overwrite transaction: %w", err)
	}

	if len(toDelete) > 0 {
		if _, err := tx.Exec(`DELETE FROM tcns WHERE tcn = ANY($1)`, pq.Array(tcnKeys(toDelete))); err != nil {
			tx.Rollback()
			return fmt.Errorf("deleting tcns: %w", err)
		}
	}

	for _, rec := range toStore {
		_, err := tx.Exec(
			`INSERT INTO tcns (tcn, contact_start, contact_end, min_distance, avg_distance, total_count) VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.Tcn[:], int64(rec.ContactStart), int64(rec.ContactEnd),
			rec.MinDistance, rec.AvgDistance, int64(rec.TotalCount),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting tcn: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing overwrite: %w", err)
	}
	s.logger.Debugf(providers.TypeApp, "Overwrote %d tcn keys with %d rows", len(toDelete), len(toStore))
	return nil
}

func tcnKeys(tcns []models.TemporaryContactNumber) [][]byte {
	keys := make([][]byte, len(tcns))
	for i, tcn := range tcns {
		key := make([]byte, len(tcn))
		copy(key, tcn[:])
		keys[i] = key
	}
	return keys
}

func scanObservedTcns(rows *sql.Rows) ([]models.ObservedTcn, error) {
	var result []models.ObservedTcn
	for rows.Next() {
		var raw []byte
		var start, end, count int64
		var rec models.ObservedTcn
		if err := rows.Scan(&raw, &start, &end, &rec.MinDistance, &rec.AvgDistance, &count); err != nil {
			return nil, fmt.Errorf("scanning tcn row: %w", err)
		}
		if len(raw) != len(rec.Tcn) {
			return nil, fmt.Errorf("unexpected tcn key length: %d", len(raw))
		}
		copy(rec.Tcn[:], raw)
		rec.ContactStart = models.UnixTime(start)
		rec.ContactEnd = models.UnixTime(end)
		rec.TotalCount = int(count)
		result = append(result, rec)
	}
	return result, rows.Err()
}
