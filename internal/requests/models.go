package requests

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestType is the trade direction from the requester's perspective
type RequestType string

const (
	TypeBuy  RequestType = "BUY"
	TypeSell RequestType = "SELL"
)

// Valid reports whether the type is one of the wire literals
func (t RequestType) Valid() bool {
	return t == TypeBuy || t == TypeSell
}

// RequestStatus is the lifecycle state of a trade request
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusAccepted RequestStatus = "ACCEPTED"
	StatusRejected RequestStatus = "REJECTED"
)

// Decision is the counterparty's response to a pending request
type Decision string

const (
	DecisionAccept Decision = "ACCEPTED"
	DecisionReject Decision = "REJECTED"
)

// Status returns the terminal status a decision resolves to
func (d Decision) Status() RequestStatus {
	return RequestStatus(d)
}

// Valid reports whether the decision is ACCEPTED or REJECTED
func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// TradeRequest is a bilateral carbon-credit trade proposal. The same record
// backs both the requester's outgoing view and the counterparty's incoming view.
type TradeRequest struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	RequestDate         time.Time       `json:"requestDate" db:"request_date"`
	RequesterCompany    string          `json:"requesterCompany" db:"requester_company"`
	CounterpartyCompany string          `json:"counterpartyCompany" db:"counterparty_company"`
	RequestType         RequestType     `json:"requestType" db:"request_type"`
	UnitPrice           decimal.Decimal `json:"carbonUnitPrice" db:"unit_price"`
	Quantity            int             `json:"carbonQuantity" db:"quantity"`
	Reason              string          `json:"requestReason" db:"reason"`
	Status              RequestStatus   `json:"status" db:"status"`
	ResolvedAt          *time.Time      `json:"resolvedAt,omitempty" db:"resolved_at"`
}

// TradeRequestView is a TradeRequest annotated with the overdue flag computed
// at read time. The flag is never persisted.
type TradeRequestView struct {
	TradeRequest
	IsOverdue bool `json:"isOverdue"`
}

// Requests

// CreateRequest carries the fields needed to open a new trade request
type CreateRequest struct {
	CounterpartyCompany string          `json:"targetCompanyId" binding:"required"`
	RequestType         RequestType     `json:"type" binding:"required"`
	UnitPrice           decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	Reason              string          `json:"reason"`
}

// UpdateRequest carries field-level updates for a pending request. Nil fields
// are left unchanged; id, request date, and parties are never touched.
type UpdateRequest struct {
	RequestType *RequestType     `json:"type"`
	UnitPrice   *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Reason      *string          `json:"reason"`
}

// RespondRequest carries a single accept/reject decision
type RespondRequest struct {
	Status Decision `json:"status" binding:"required"`
}

// BulkRespondRequest applies one decision to many request ids
type BulkRespondRequest struct {
	IDs    []uuid.UUID `json:"ids" binding:"required"`
	Status Decision    `json:"status" binding:"required"`
}

// BulkFailure records why one id in a bulk operation was skipped
type BulkFailure struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// BulkRespondResult aggregates per-id outcomes of a bulk operation. A failed
// id never aborts the batch or rolls back earlier successes.
type BulkRespondResult struct {
	UpdatedCount int           `json:"updatedCount"`
	UpdatedIDs   []uuid.UUID   `json:"updatedIds"`
	Failures     []BulkFailure `json:"failures,omitempty"`
}
