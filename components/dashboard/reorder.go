package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DragPhase is the engine state.
type DragPhase string

const (
	PhaseIdle     DragPhase = "idle"
	PhaseDragging DragPhase = "dragging"
)

// DragEventKind tags a DragEvent.
type DragEventKind string

const (
	DragStart  DragEventKind = "start"
	DragOver   DragEventKind = "over"
	DragEnd    DragEventKind = "end"
	DragCancel DragEventKind = "cancel"
)

// DragEvent reports a transition of a drag session.
type DragEvent struct {
	SessionID string        `json:"session_id"`
	Region    string        `json:"region"`
	Kind      DragEventKind `json:"kind"`
	ActiveID  string        `json:"active_id"`
	OverID    string        `json:"over_id,omitempty"`
	Committed bool          `json:"committed,omitempty"`
	Order     []string      `json:"order,omitempty"`
}

// DragSession lives for one pointer gesture past the activation distance.
type DragSession struct {
	ID        string
	ActiveID  string
	OverID    string
	Origin    Point
	Pointer   Point
	StartedAt time.Time
}

// DragOverlay describes the floating copy of the lifted card.
type DragOverlay struct {
	CardID   string `json:"card_id"`
	Rect     Rect   `json:"rect"`
	Measured bool   `json:"measured"`
}

type pointerPress struct {
	cardID string
	origin Point
}

// ReorderEngine turns pointer gestures over one region into order changes.
// Idle -> Dragging -> {Committed | Cancelled} -> Idle.
type ReorderEngine struct {
	mu         sync.Mutex
	region     *OrderedRegion
	activation float64
	press      *pointerPress
	session    *DragSession
	rects      map[string]Rect
	now        func() time.Time
}

// NewReorderEngine binds an engine to a region. The activation distance is the
// pointer travel that must be exceeded before a press becomes a drag.
func NewReorderEngine(region *OrderedRegion, activation float64) *ReorderEngine {
	if activation < 0 {
		activation = 0
	}
	return &ReorderEngine{
		region:     region,
		activation: activation,
		rects:      make(map[string]Rect),
		now:        time.Now,
	}
}

// Region returns the region mutated by the engine.
func (e *ReorderEngine) Region() *OrderedRegion {
	return e.region
}

// ActivationDistance returns the drag threshold.
func (e *ReorderEngine) ActivationDistance() float64 {
	return e.activation
}

// Phase reports whether a drag session is active.
func (e *ReorderEngine) Phase() DragPhase {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		return PhaseDragging
	}
	return PhaseIdle
}

// Session returns a copy of the active session.
func (e *ReorderEngine) Session() (DragSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return DragSession{}, false
	}
	return *e.session, true
}

// Measure replaces the rendered geometry. Cards outside the region are ignored.
func (e *ReorderEngine) Measure(cards []CardGeometry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rects = make(map[string]Rect, len(cards))
	for _, card := range cards {
		if e.region.Contains(card.ID) {
			e.rects[card.ID] = card.Rect
		}
	}
}

// Unmount drops a card from the rendered set.
func (e *ReorderEngine) Unmount(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.rects, id)
	if e.session != nil && e.session.OverID == id {
		e.session.OverID = ""
	}
}

// PointerDown records a press on a card. It is ignored while another press or
// session is in progress, or when the card is not part of the region.
func (e *ReorderEngine) PointerDown(cardID string, p Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.press != nil || e.session != nil {
		return false
	}
	if !e.region.Contains(cardID) {
		return false
	}
	e.press = &pointerPress{cardID: cardID, origin: p}
	return true
}

// PointerMove advances the gesture. It returns an event when a session starts or
// the drop target changes.
func (e *ReorderEngine) PointerMove(p Point) (DragEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		if e.press == nil || p.Distance(e.press.origin) <= e.activation {
			return DragEvent{}, false
		}
		e.session = &DragSession{
			ID:        uuid.NewString(),
			ActiveID:  e.press.cardID,
			Origin:    e.press.origin,
			Pointer:   p,
			StartedAt: e.now(),
		}
		e.press = nil
		e.session.OverID = e.resolveOver(p)
		return e.event(DragStart), true
	}
	e.session.Pointer = p
	over := e.resolveOver(p)
	if over == e.session.OverID {
		return DragEvent{}, false
	}
	e.session.OverID = over
	return e.event(DragOver), true
}

// PointerUp ends the gesture, committing the move when a distinct target is set.
// A press that never crossed the threshold ends without an event.
func (e *ReorderEngine) PointerUp() (DragEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.press = nil
	if e.session == nil {
		return DragEvent{}, false
	}
	ev := e.event(DragEnd)
	over := e.session.OverID
	if _, rendered := e.rects[over]; rendered {
		ev.Committed = e.region.Move(e.session.ActiveID, over)
	}
	ev.Order = e.region.Order()
	e.session = nil
	return ev, true
}

// Cancel aborts the gesture without touching the order.
func (e *ReorderEngine) Cancel() (DragEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.press = nil
	if e.session == nil {
		return DragEvent{}, false
	}
	ev := e.event(DragCancel)
	ev.Order = e.region.Order()
	e.session = nil
	return ev, true
}

// Overlay describes the floating copy of the active card, following the pointer.
func (e *ReorderEngine) Overlay() (DragOverlay, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return DragOverlay{}, false
	}
	overlay := DragOverlay{CardID: e.session.ActiveID}
	if rect, ok := e.rects[e.session.ActiveID]; ok {
		dx := e.session.Pointer.X - e.session.Origin.X
		dy := e.session.Pointer.Y - e.session.Origin.Y
		overlay.Rect = rect.Translate(dx, dy)
		overlay.Measured = true
	}
	return overlay, true
}

// resolveOver runs closest-center over the rendered, non-dragged cards in order.
func (e *ReorderEngine) resolveOver(p Point) string {
	order := e.region.Order()
	candidates := make([]CardGeometry, 0, len(order))
	for _, id := range order {
		if id == e.session.ActiveID {
			continue
		}
		if rect, ok := e.rects[id]; ok {
			candidates = append(candidates, CardGeometry{ID: id, Rect: rect})
		}
	}
	id, _ := closestCenter(p, candidates)
	return id
}

func (e *ReorderEngine) event(kind DragEventKind) DragEvent {
	return DragEvent{
		SessionID: e.session.ID,
		Region:    e.region.Code(),
		Kind:      kind,
		ActiveID:  e.session.ActiveID,
		OverID:    e.session.OverID,
	}
}
