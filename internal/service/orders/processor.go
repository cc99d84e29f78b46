package orders

import (
	"context"
	"errors"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/logx"
)

const cancelReason = "Order cancelled"

// Processor processes orders events
type Processor struct {
	delivery DeliveryPort
	factory  *actionFactory
	logger   logx.Logger
}

// NewProcessor creates a new orders.Processor
func NewProcessor(deliverySvc DeliveryPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		delivery: deliverySvc,
		logger:   logger,
	}
	p.factory = newActionFactory(p.onConfirmed, p.onCanceled)
	return p
}

// Handle processes a single orders.Event. Statuses without an action are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onConfirmed(ctx context.Context, e Event) error {
	nd, err := e.NewDelivery()
	if err != nil {
		return err
	}
	_, err = p.delivery.CreateDelivery(ctx, nd)
	if errors.Is(err, apperr.ErrDuplicateOrder) {
		p.logger.Debug("order already has a delivery", logx.String("order_id", e.OrderID))
		return nil
	}
	return err
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	reason := e.Reason
	if reason == "" {
		reason = cancelReason
	}
	_, err := p.delivery.CancelByOrder(ctx, e.OrderID, reason)
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalidState) {
		return nil
	}
	return err
}
