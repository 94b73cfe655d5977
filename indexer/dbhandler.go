package indexer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/behrang/sqlbatch"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Postgres error code of serialization failures.
const pqSerializationFailure = "40001"

// maxBatchAttempts limits retries of a single batch.
const maxBatchAttempts = 5

// BatchHandler executes a batch of SQL commands in a single transaction.
type BatchHandler interface {
	Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]any, error)
}

// DBHandler is a BatchHandler over a Postgres connection pool.
type DBHandler struct {
	DB     *sql.DB
	Logger *zap.Logger
}

// OpenDB opens Postgres connection pool.
func OpenDB(uri string) (*sql.DB, error) {
	db, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	return db, nil
}

// Batch runs commands in a transaction. Transactions aborted by Postgres
// because of concurrent updates are retried.
func (h DBHandler) Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]any, error) {
	var (
		res []any
		err error
	)

	for i := 0; i < maxBatchAttempts; i++ {
		res, err = h.tryBatch(opts, commands)
		if !retryable(err) {
			return res, err
		}

		h.Logger.Warn("retryable database error", zap.Int("attempt", i+1), zap.Error(err))
	}

	return res, err
}

func (h DBHandler) tryBatch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]any, error) {
	tx, err := h.DB.BeginTx(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := sqlbatch.Batch(tx, commands)
	if err != nil {
		return res, err
	}

	return res, tx.Commit()
}

func retryable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqSerializationFailure
}
