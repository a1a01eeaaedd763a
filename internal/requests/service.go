package requests

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"carbon-trade/trading-portal/trading-portal-backend/pkg/workflows"
)

// Service is the lifecycle engine. It validates and applies state transitions
// against the Store and serializes all mutations to a given request id.
type Service struct {
	store            Store
	stateMachine     *workflows.StateMachine
	logger           *zap.Logger
	overdueThreshold time.Duration

	// now is swappable in tests
	now func() time.Time

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewService creates a new lifecycle service
func NewService(store Store, logger *zap.Logger, overdueThreshold time.Duration) *Service {
	if overdueThreshold <= 0 {
		overdueThreshold = DefaultOverdueThreshold
	}
	return &Service{
		store:            store,
		stateMachine:     workflows.NewStateMachine(),
		logger:           logger,
		overdueThreshold: overdueThreshold,
		now:              time.Now,
		locks:            make(map[uuid.UUID]*sync.Mutex),
	}
}

// lockFor returns the per-id critical section guarding mutations to a record
func (s *Service) lockFor(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Create validates and inserts a new PENDING trade request
func (s *Service) Create(ctx context.Context, requester string, req CreateRequest) (*TradeRequest, error) {
	if strings.TrimSpace(req.CounterpartyCompany) == "" {
		return nil, &ValidationError{Field: "targetCompanyId", Message: "counterparty is required"}
	}
	if !req.RequestType.Valid() {
		return nil, &ValidationError{Field: "type", Message: "must be BUY or SELL"}
	}
	if err := validateFields(req.UnitPrice, req.Quantity, req.Reason); err != nil {
		return nil, err
	}

	record := &TradeRequest{
		ID:                  uuid.New(),
		RequestDate:         s.now(),
		RequesterCompany:    requester,
		CounterpartyCompany: req.CounterpartyCompany,
		RequestType:         req.RequestType,
		UnitPrice:           req.UnitPrice,
		Quantity:            req.Quantity,
		Reason:              strings.TrimSpace(req.Reason),
		Status:              StatusPending,
	}

	if err := s.store.Insert(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Trade request created",
		zap.String("request_id", record.ID.String()),
		zap.String("requester", requester),
		zap.String("counterparty", record.CounterpartyCompany),
		zap.String("type", string(record.RequestType)))

	return record, nil
}

// Edit applies field-level updates to a PENDING request owned by the
// requester. ID, request date, and parties are preserved.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, requester string, req UpdateRequest) (*TradeRequest, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	updated, err := s.store.Update(ctx, id, func(r *TradeRequest) error {
		if r.RequesterCompany != requester {
			return &NotAuthorizedError{Company: requester, Action: "edit"}
		}
		if r.Status != StatusPending {
			return &InvalidStateError{ID: id, Status: r.Status, Action: "edit"}
		}

		price := r.UnitPrice
		if req.UnitPrice != nil {
			price = *req.UnitPrice
		}
		quantity := r.Quantity
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		reason := r.Reason
		if req.Reason != nil {
			reason = *req.Reason
		}
		if err := validateFields(price, quantity, reason); err != nil {
			return err
		}
		if req.RequestType != nil && !req.RequestType.Valid() {
			return &ValidationError{Field: "type", Message: "must be BUY or SELL"}
		}

		r.UnitPrice = price
		r.Quantity = quantity
		r.Reason = strings.TrimSpace(reason)
		if req.RequestType != nil {
			r.RequestType = *req.RequestType
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Trade request updated",
		zap.String("request_id", id.String()),
		zap.String("requester", requester))

	return updated, nil
}

// Withdraw removes a PENDING request owned by the requester
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID, requester string) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if record.RequesterCompany != requester {
		return &NotAuthorizedError{Company: requester, Action: "withdraw"}
	}
	if record.Status != StatusPending {
		return &InvalidStateError{ID: id, Status: record.Status, Action: "withdraw"}
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Trade request withdrawn",
		zap.String("request_id", id.String()),
		zap.String("requester", requester))

	return nil
}

// Respond applies the counterparty's accept/reject decision to a PENDING
// request. Re-invoking on an already resolved id fails with InvalidStateError;
// it never silently succeeds or overwrites.
func (s *Service) Respond(ctx context.Context, id uuid.UUID, responder string, decision Decision) (*TradeRequest, error) {
	if !decision.Valid() {
		return nil, &ValidationError{Field: "status", Message: "must be ACCEPTED or REJECTED"}
	}

	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	updated, err := s.store.Update(ctx, id, func(r *TradeRequest) error {
		if r.CounterpartyCompany != responder {
			return &NotAuthorizedError{Company: responder, Action: "respond to"}
		}
		if !s.stateMachine.CanTransition(string(r.Status), string(decision.Status())) {
			return &InvalidStateError{ID: id, Status: r.Status, Action: "respond to"}
		}
		resolvedAt := s.now()
		r.Status = decision.Status()
		r.ResolvedAt = &resolvedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Trade request resolved",
		zap.String("request_id", id.String()),
		zap.String("responder", responder),
		zap.String("status", string(updated.Status)))

	return updated, nil
}

// BulkRespond applies one decision to many ids with skip-and-continue
// semantics: each id succeeds or fails independently, the batch never aborts
// early, and earlier successes are never rolled back. Missing ids are reported
// as per-id failures rather than silently skipped.
func (s *Service) BulkRespond(ctx context.Context, ids []uuid.UUID, responder string, decision Decision) (*BulkRespondResult, error) {
	if !decision.Valid() {
		return nil, &ValidationError{Field: "status", Message: "must be ACCEPTED or REJECTED"}
	}
	if len(ids) == 0 {
		return nil, &ValidationError{Field: "ids", Message: "must be a non-empty array"}
	}

	result := &BulkRespondResult{}
	for _, id := range ids {
		if _, err := s.Respond(ctx, id, responder, decision); err != nil {
			result.Failures = append(result.Failures, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.UpdatedCount++
		result.UpdatedIDs = append(result.UpdatedIDs, id)
	}

	s.logger.Info("Bulk response processed",
		zap.String("responder", responder),
		zap.String("status", string(decision.Status())),
		zap.Int("updated", result.UpdatedCount),
		zap.Int("failed", len(result.Failures)))

	return result, nil
}

// Get returns a single request annotated with the overdue flag
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*TradeRequestView, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TradeRequestView{
		TradeRequest: *record,
		IsOverdue:    IsOverdue(record, s.now(), s.overdueThreshold),
	}, nil
}

func validateFields(price decimal.Decimal, quantity int, reason string) error {
	if !price.IsPositive() {
		return &ValidationError{Field: "price", Message: "must be greater than zero"}
	}
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Message: "must be at least 1"}
	}
	if strings.TrimSpace(reason) == "" {
		return &ValidationError{Field: "reason", Message: "is required"}
	}
	return nil
}
