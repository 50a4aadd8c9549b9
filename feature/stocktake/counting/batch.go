package counting

import (
	"context"
	"errors"

	"stocktake/core/apperror"
	"stocktake/core/auth"

	"go.uber.org/zap"
)

// ScanEvent is one scan of a multi-scan submission. A missing quantity
// counts one unit.
type ScanEvent struct {
	Code     string `json:"code" validate:"required"`
	Quantity *int   `json:"quantity,omitempty" validate:"omitempty,gte=1"`
}

// Units returns the quantity to count, 1 when none was given.
func (e ScanEvent) Units() int {
	return DefaultQuantity(e.Quantity)
}

// DefaultQuantity dereferences q, defaulting to one unit.
func DefaultQuantity(q *int) int {
	if q == nil {
		return 1
	}
	return *q
}

// BatchItem is the outcome of one event.
type BatchItem struct {
	Code       string      `json:"code"`
	Quantity   int         `json:"quantity"`
	Result     *ScanResult `json:"result,omitempty"`
	Unresolved bool        `json:"unresolved,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// BatchResult summarizes a multi-scan submission.
type BatchResult struct {
	Items      []BatchItem `json:"items"`
	Counted    int         `json:"counted"`
	Unresolved int         `json:"unresolved"`
	Rejected   int         `json:"rejected"`
}

// ScanBatch processes events in order. Unresolved codes and invalid
// quantities are reported per item and do not stop the batch; any other
// error (inactive session, storage failure) stops it and is returned with
// the items processed so far.
func (s *Service) ScanBatch(ctx context.Context, actor auth.Actor, sessionID string, events []ScanEvent) (BatchResult, error) {
	result := BatchResult{Items: make([]BatchItem, 0, len(events))}
	if err := auth.RequireAuthenticated(actor); err != nil {
		return result, apperror.Wrap("scan batch", sessionID, "", err)
	}

	for _, ev := range events {
		item := BatchItem{Code: ev.Code, Quantity: ev.Units()}

		res, err := s.Scan(ctx, actor, sessionID, ev.Code, item.Quantity)
		switch {
		case err == nil:
			item.Result = &res
			result.Counted++
		case IsUnresolved(err):
			item.Unresolved = true
			item.Error = err.Error()
			result.Unresolved++
		case errors.Is(err, apperror.ErrInvalidInput):
			item.Error = err.Error()
			result.Rejected++
		default:
			item.Error = err.Error()
			result.Items = append(result.Items, item)
			return result, err
		}
		result.Items = append(result.Items, item)
	}

	s.logger.Info("Scan batch processed",
		zap.String("session", sessionID),
		zap.Int("events", len(events)),
		zap.Int("counted", result.Counted),
		zap.Int("unresolved", result.Unresolved),
		zap.Int("rejected", result.Rejected),
	)
	return result, nil
}
