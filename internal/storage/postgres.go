package storage

import (
	"context"
	"database/sql"
	"errors"

	"handmade-market/internal/logger"

	"go.uber.org/zap"
)

// PostgresStore persists values in the kv_store table, partitioned by
// namespace so several storefront sessions can share one database.
type PostgresStore struct {
	db        *sql.DB
	namespace string
}

func NewPostgresStore(db *sql.DB, namespace string) *PostgresStore {
	return &PostgresStore{db: db, namespace: namespace}
}

func (p *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	var value string
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE namespace = $1 AND key = $2`,
		p.namespace, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to read kv entry",
			zap.String("namespace", p.namespace),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", false, err
	}
	return value, true, nil
}

func (p *PostgresStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO kv_store (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, p.namespace, key, value)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to write kv entry",
			zap.String("namespace", p.namespace),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return err
}

func (p *PostgresStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	_, err := p.db.ExecContext(ctx,
		`DELETE FROM kv_store WHERE namespace = $1 AND key = $2`,
		p.namespace, key,
	)
	return err
}
