package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, "SELECT value FROM kv_record WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		err := fmt.Errorf("could not read record %s: %w", key, err)
		log.Error(err)
		return "", false, err
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *PostgresStore) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO kv_record (key, value, updated_at) VALUES ($1, $2, now())
				ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	batch := &pgx.Batch{}
	for _, key := range sortedKeys(values) {
		batch.Queue(query, key, values[key])
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		err := fmt.Errorf("could not write records: %w", err)
		log.Error(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM kv_record"); err != nil {
		err := fmt.Errorf("could not clear records: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
