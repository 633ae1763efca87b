package property

import (
	"context"
	"fmt"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TransitionRecorder receives one call per committed status change
type TransitionRecorder interface {
	RecordTransition(ctx context.Context, tenantID string, from, to property.UnitStatus)
}

// UnitStatusChangedHandler logs committed status changes and feeds them to a
// TransitionRecorder when one is configured
type UnitStatusChangedHandler struct {
	logger   *zap.Logger
	recorder TransitionRecorder
}

// NewUnitStatusChangedHandler creates a new handler
func NewUnitStatusChangedHandler(logger *zap.Logger) *UnitStatusChangedHandler {
	return &UnitStatusChangedHandler{logger: logger}
}

// WithRecorder sets the recorder
func (h *UnitStatusChangedHandler) WithRecorder(recorder TransitionRecorder) *UnitStatusChangedHandler {
	h.recorder = recorder
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *UnitStatusChangedHandler) EventTypes() []string {
	return []string{property.EventTypeUnitStatusChanged}
}

// Handle processes a UnitStatusChangedEvent
func (h *UnitStatusChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*property.UnitStatusChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", property.EventTypeUnitStatusChanged),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			property.EventTypeUnitStatusChanged, event.EventType())
	}

	h.logger.Debug("unit status change committed",
		zap.String("tenant_id", event.TenantID().String()),
		zap.String("unit_id", changed.UnitID.String()),
		zap.String("unit_number", changed.UnitNumber),
		zap.String("from_status", changed.FromStatus.String()),
		zap.String("to_status", changed.ToStatus.String()),
		zap.Int("sequence", changed.Sequence),
		zap.Bool("no_op", changed.FromStatus == changed.ToStatus),
	)

	if h.recorder != nil {
		h.recorder.RecordTransition(ctx, event.TenantID().String(), changed.FromStatus, changed.ToStatus)
	}
	return nil
}

var _ shared.EventHandler = (*UnitStatusChangedHandler)(nil)
