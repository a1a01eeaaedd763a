package requests

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresStore implements Store using PostgreSQL. Driver failures surface as
// TransportError (retryable); missing rows surface as NotFoundError.
type PostgresStore struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPostgresStore creates a new PostgreSQL request store
func NewPostgresStore(db *sqlx.DB, timeout time.Duration) *PostgresStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresStore{db: db, timeout: timeout}
}

const requestColumns = `
	id, request_date, requester_company, counterparty_company,
	request_type, unit_price, quantity, reason, status, resolved_at
`

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*TradeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT ` + requestColumns + ` FROM trade_requests WHERE id = $1`

	var req TradeRequest
	if err := s.db.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &TransportError{Op: "get", Err: err}
	}
	return &req, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*TradeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT ` + requestColumns + ` FROM trade_requests ORDER BY inserted_seq`

	var reqs []*TradeRequest
	if err := s.db.SelectContext(ctx, &reqs, query); err != nil {
		return nil, &TransportError{Op: "list", Err: err}
	}
	return reqs, nil
}

func (s *PostgresStore) Insert(ctx context.Context, req *TradeRequest) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `
		INSERT INTO trade_requests (
			id, request_date, requester_company, counterparty_company,
			request_type, unit_price, quantity, reason, status, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(ctx, query,
		req.ID, req.RequestDate, req.RequesterCompany, req.CounterpartyCompany,
		req.RequestType, req.UnitPrice, req.Quantity, req.Reason, req.Status, req.ResolvedAt,
	)
	if err != nil {
		return &TransportError{Op: "insert", Err: err}
	}
	return nil
}

// Update locks the row, applies the mutator, and writes the result in one
// transaction. Concurrent updates against the same id serialize on the row
// lock; a mutator error rolls the transaction back.
func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, mutate Mutator) (*TradeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, &TransportError{Op: "update", Err: err}
	}
	defer tx.Rollback()

	query := `SELECT ` + requestColumns + ` FROM trade_requests WHERE id = $1 FOR UPDATE`

	var req TradeRequest
	if err := tx.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &TransportError{Op: "update", Err: err}
	}

	if err := mutate(&req); err != nil {
		return nil, err
	}

	update := `
		UPDATE trade_requests SET
			request_type = $2, unit_price = $3, quantity = $4,
			reason = $5, status = $6, resolved_at = $7
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, update,
		req.ID, req.RequestType, req.UnitPrice, req.Quantity,
		req.Reason, req.Status, req.ResolvedAt,
	); err != nil {
		return nil, &TransportError{Op: "update", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &TransportError{Op: "update", Err: err}
	}
	return &req, nil
}

func (s *PostgresStore) Remove(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `DELETE FROM trade_requests WHERE id = $1`, id)
	if err != nil {
		return &TransportError{Op: "remove", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &TransportError{Op: "remove", Err: err}
	}
	if rows == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}
