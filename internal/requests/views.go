package requests

import "context"

// View projections. Both views derive from the single store: the same record
// is "outgoing" to its requester and "incoming" to its counterparty, so a
// mutation through either path is visible in both. The overdue flag is
// computed at projection time, never read from storage.

// Outgoing returns requests created by the caller, in insertion order
func (s *Service) Outgoing(ctx context.Context, callerID string) ([]*TradeRequestView, error) {
	return s.project(ctx, func(r *TradeRequest) bool {
		return r.RequesterCompany == callerID
	})
}

// Incoming returns requests targeting the caller, in insertion order
func (s *Service) Incoming(ctx context.Context, callerID string) ([]*TradeRequestView, error) {
	return s.project(ctx, func(r *TradeRequest) bool {
		return r.CounterpartyCompany == callerID
	})
}

// Alerts returns the overdue PENDING subset of the union of the caller's
// incoming and outgoing views
func (s *Service) Alerts(ctx context.Context, callerID string) ([]*TradeRequestView, error) {
	now := s.now()
	views, err := s.project(ctx, func(r *TradeRequest) bool {
		if r.RequesterCompany != callerID && r.CounterpartyCompany != callerID {
			return false
		}
		return r.Status == StatusPending && IsOverdue(r, now, s.overdueThreshold)
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Service) project(ctx context.Context, match func(*TradeRequest) bool) ([]*TradeRequestView, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]*TradeRequestView, 0, len(records))
	for _, r := range records {
		if !match(r) {
			continue
		}
		views = append(views, &TradeRequestView{
			TradeRequest: *r,
			IsOverdue:    IsOverdue(r, now, s.overdueThreshold),
		})
	}
	return views, nil
}
