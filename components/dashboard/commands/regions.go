package commands

import (
	"context"
	"errors"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	gocommand "github.com/goliatone/go-command"
)

// DragInput wraps one pointer step. OnEvent receives the drag event, if any.
type DragInput struct {
	Step    dashboard.DragInput
	OnEvent func(dashboard.DragEvent)
}

type dragService interface {
	Drag(ctx context.Context, input dashboard.DragInput) (dashboard.DragEvent, bool, error)
}

// DragCommand wraps Service.Drag.
type DragCommand struct {
	service   dragService
	telemetry Telemetry
}

// NewDragCommand builds the command.
func NewDragCommand(service dragService, telemetry Telemetry) *DragCommand {
	return &DragCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DragInput] = (*DragCommand)(nil)

// Execute feeds the pointer step to the region engine.
func (c *DragCommand) Execute(ctx context.Context, msg DragInput) error {
	if c.service == nil {
		return errors.New("drag command requires service")
	}
	event, ok, err := c.service.Drag(ctx, msg.Step)
	if err != nil {
		return err
	}
	if ok && msg.OnEvent != nil {
		msg.OnEvent(event)
	}
	return nil
}

// MeasureRegionInput reports the rendered geometry of a region.
type MeasureRegionInput struct {
	Region string                   `json:"region"`
	Cards  []dashboard.CardGeometry `json:"cards"`
}

type measureService interface {
	Measure(ctx context.Context, region string, cards []dashboard.CardGeometry) error
}

// MeasureRegionCommand wraps Service.Measure.
type MeasureRegionCommand struct {
	service measureService
}

// NewMeasureRegionCommand builds the command.
func NewMeasureRegionCommand(service measureService) *MeasureRegionCommand {
	return &MeasureRegionCommand{service: service}
}

var _ gocommand.Commander[MeasureRegionInput] = (*MeasureRegionCommand)(nil)

// Execute stores the geometry.
func (c *MeasureRegionCommand) Execute(ctx context.Context, msg MeasureRegionInput) error {
	if c.service == nil {
		return errors.New("measure command requires service")
	}
	return c.service.Measure(ctx, msg.Region, msg.Cards)
}

// ReorderRegionInput contains a full ordering for a region.
type ReorderRegionInput struct {
	Region string   `json:"region"`
	Order  []string `json:"order"`
}

type reorderService interface {
	ReorderRegion(ctx context.Context, region string, ids []string) ([]string, error)
}

// ReorderRegionCommand wraps Service.ReorderRegion.
type ReorderRegionCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderRegionCommand builds the command.
func NewReorderRegionCommand(service reorderService, telemetry Telemetry) *ReorderRegionCommand {
	return &ReorderRegionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderRegionInput] = (*ReorderRegionCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderRegionCommand) Execute(ctx context.Context, msg ReorderRegionInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	order, err := c.service.ReorderRegion(ctx, msg.Region, msg.Order)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.reorder", map[string]any{
		"region": msg.Region,
		"count":  len(order),
	})
	return nil
}

// ResetRegionInput names the region to restore.
type ResetRegionInput struct {
	Region string `json:"region"`
}

type resetService interface {
	ResetRegion(ctx context.Context, region string) error
}

// ResetRegionCommand wraps Service.ResetRegion.
type ResetRegionCommand struct {
	service   resetService
	telemetry Telemetry
}

// NewResetRegionCommand builds the command.
func NewResetRegionCommand(service resetService, telemetry Telemetry) *ResetRegionCommand {
	return &ResetRegionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetRegionInput] = (*ResetRegionCommand)(nil)

// Execute restores the default order.
func (c *ResetRegionCommand) Execute(ctx context.Context, msg ResetRegionInput) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	if err := c.service.ResetRegion(ctx, msg.Region); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.reset", map[string]any{"region": msg.Region})
	return nil
}
