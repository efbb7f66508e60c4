package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
)

const sqliteUpsertQuery = `INSERT INTO kv_record (key, value, updated_at)
				VALUES (?, ?, CURRENT_TIMESTAMP)
				ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_record WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		err := fmt.Errorf("could not read record %s: %w", key, err)
		log.Error(err)
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *SQLiteStore) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, sqliteUpsertQuery)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for _, key := range sortedKeys(values) {
		if _, err := stmt.ExecContext(ctx, key, values[key]); err != nil {
			err := fmt.Errorf("could not write record %s: %w", key, err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_record"); err != nil {
		err := fmt.Errorf("could not clear records: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
