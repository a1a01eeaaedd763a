package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ErrBalanceNotFound is returned when no snapshot exists for a company
var ErrBalanceNotFound = errors.New("balance not found")

// Repository defines read-only access to balance snapshots
type Repository interface {
	GetBalance(ctx context.Context, companyName string) (*Balance, error)
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new balance repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetBalance(ctx context.Context, companyName string) (*Balance, error) {
	query := `
		SELECT company_name, carbon_balance, cash_balance
		FROM account_balances
		WHERE company_name = $1
	`

	var balance Balance
	if err := r.db.GetContext(ctx, &balance, query, companyName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBalanceNotFound
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &balance, nil
}

// MemoryRepository is an in-memory Repository for development and tests
type MemoryRepository struct {
	mu       sync.RWMutex
	balances map[string]Balance
}

// NewMemoryRepository creates an empty in-memory balance repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{balances: make(map[string]Balance)}
}

// Seed stores a snapshot for a company
func (r *MemoryRepository) Seed(companyName string, carbon int, cash decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[companyName] = Balance{
		CompanyName:   companyName,
		CarbonBalance: carbon,
		CashBalance:   cash,
	}
}

func (r *MemoryRepository) GetBalance(ctx context.Context, companyName string) (*Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	balance, ok := r.balances[companyName]
	if !ok {
		return nil, ErrBalanceNotFound
	}
	return &balance, nil
}
