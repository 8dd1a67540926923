package dashboard

import (
	"fmt"
	"math"
	"strings"
)

// DragAction names one pointer step.
type DragAction string

const (
	DragActionDown   DragAction = "down"
	DragActionMove   DragAction = "move"
	DragActionUp     DragAction = "up"
	DragActionCancel DragAction = "cancel"
)

// DragInput is a pointer step received from the transport layer.
type DragInput struct {
	Region string     `json:"region"`
	Action DragAction `json:"action"`
	CardID string     `json:"card_id,omitempty"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
}

// Point returns the pointer position of the step.
func (in DragInput) Point() Point {
	return Point{X: in.X, Y: in.Y}
}

// Validate checks the step before it reaches an engine.
func (in DragInput) Validate() error {
	if strings.TrimSpace(in.Region) == "" {
		return ErrInvalidRegion
	}
	switch in.Action {
	case DragActionDown:
		if strings.TrimSpace(in.CardID) == "" {
			return fmt.Errorf("%w: card_id is required for %s", ErrInvalidDragInput, in.Action)
		}
	case DragActionMove, DragActionUp, DragActionCancel:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidDragInput, in.Action)
	}
	if math.IsNaN(in.X) || math.IsNaN(in.Y) || math.IsInf(in.X, 0) || math.IsInf(in.Y, 0) {
		return fmt.Errorf("%w: pointer coordinates must be finite", ErrInvalidDragInput)
	}
	return nil
}
