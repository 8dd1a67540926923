package dashboard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowGeometry lays cards out vertically, 40px tall with 10px gaps.
func rowGeometry(ids ...string) []CardGeometry {
	out := make([]CardGeometry, len(ids))
	for i, id := range ids {
		out[i] = CardGeometry{ID: id, Rect: Rect{X: 0, Y: float64(i * 50), Width: 200, Height: 40}}
	}
	return out
}

func newMetricEngine(t *testing.T) *ReorderEngine {
	t.Helper()
	ids := []string{MetricCost, MetricClicks, MetricImpressions, MetricCPC}
	region, err := NewOrderedRegion(RegionMetricRows, ids)
	require.NoError(t, err)
	engine := NewReorderEngine(region, 5)
	engine.Measure(rowGeometry(ids...))
	return engine
}

func TestReorderEngineActivationIsStrict(t *testing.T) {
	engine := newMetricEngine(t)
	require.True(t, engine.PointerDown(MetricCost, Point{X: 100, Y: 20}))

	_, ok := engine.PointerMove(Point{X: 103, Y: 24})
	assert.False(t, ok, "travel of exactly 5 must not activate")
	assert.Equal(t, PhaseIdle, engine.Phase())

	ev, ok := engine.PointerMove(Point{X: 100, Y: 26})
	require.True(t, ok)
	assert.Equal(t, DragStart, ev.Kind)
	assert.Equal(t, MetricCost, ev.ActiveID)
	assert.NotEmpty(t, ev.SessionID)
	assert.Equal(t, PhaseDragging, engine.Phase())
}

func TestReorderEngineClickWithoutDrag(t *testing.T) {
	engine := newMetricEngine(t)
	require.True(t, engine.PointerDown(MetricClicks, Point{X: 10, Y: 70}))
	_, ok := engine.PointerMove(Point{X: 12, Y: 71})
	require.False(t, ok)

	_, ok = engine.PointerUp()
	assert.False(t, ok)
	assert.Equal(t, []string{MetricCost, MetricClicks, MetricImpressions, MetricCPC}, engine.Region().Order())
}

func TestReorderEngineCommitsMove(t *testing.T) {
	engine := newMetricEngine(t)
	require.True(t, engine.PointerDown(MetricCost, Point{X: 100, Y: 20}))

	start, ok := engine.PointerMove(Point{X: 100, Y: 60})
	require.True(t, ok)
	assert.Equal(t, MetricClicks, start.OverID)

	over, ok := engine.PointerMove(Point{X: 100, Y: 120})
	require.True(t, ok)
	assert.Equal(t, DragOver, over.Kind)
	assert.Equal(t, MetricImpressions, over.OverID)

	_, ok = engine.PointerMove(Point{X: 101, Y: 121})
	assert.False(t, ok, "same target emits nothing")

	end, ok := engine.PointerUp()
	require.True(t, ok)
	assert.Equal(t, DragEnd, end.Kind)
	assert.True(t, end.Committed)
	assert.Equal(t, []string{MetricClicks, MetricImpressions, MetricCost, MetricCPC}, end.Order)
	assert.Equal(t, PhaseIdle, engine.Phase())
}

func TestReorderEngineExcludesActiveCard(t *testing.T) {
	engine := newMetricEngine(t)
	require.True(t, engine.PointerDown(MetricClicks, Point{X: 100, Y: 70}))

	ev, ok := engine.PointerMove(Point{X: 100, Y: 80})
	require.True(t, ok)
	assert.NotEqual(t, MetricClicks, ev.OverID)
	assert.Equal(t, MetricImpressions, ev.OverID)
}

func TestReorderEngineCancelKeepsOrder(t *testing.T) {
	engine := newMetricEngine(t)
	require.True(t, engine.PointerDown(MetricCost, Point{X: 100, Y: 20}))
	_, ok := engine.PointerMove(Point{X: 100, Y: 170})
	require.True(t, ok)

	ev, ok := engine.Cancel()
	require.True(t, ok)
	assert.Equal(t, DragCancel, ev.Kind)
	assert.Equal(t, []string{MetricCost, MetricClicks, MetricImpressions, MetricCPC}, ev.Order)

	_, ok = engine.Cancel()
	assert.False(t, ok)
}

func TestReorderEngineSingleSession(t *testing.T) {
	engine := newMetricEngine(t)
	require.True(t, engine.PointerDown(MetricCost, Point{X: 100, Y: 20}))
	assert.False(t, engine.PointerDown(MetricCPC, Point{X: 100, Y: 170}))

	_, ok := engine.PointerMove(Point{X: 100, Y: 60})
	require.True(t, ok)
	assert.False(t, engine.PointerDown(MetricCPC, Point{X: 100, Y: 170}))

	session, ok := engine.Session()
	require.True(t, ok)
	assert.Equal(t, MetricCost, session.ActiveID)
}

func TestReorderEngineIgnoresForeignCard(t *testing.T) {
	engine := newMetricEngine(t)
	assert.False(t, engine.PointerDown(CardTrend, Point{}))
}

func TestReorderEngineUnmountedTargetDoesNotCommit(t *testing.T) {
	engine := newMetricEngine(t)
	require.True(t, engine.PointerDown(MetricCost, Point{X: 100, Y: 20}))
	ev, ok := engine.PointerMove(Point{X: 100, Y: 170})
	require.True(t, ok)
	require.Equal(t, MetricCPC, ev.OverID)

	engine.Unmount(MetricCPC)

	end, ok := engine.PointerUp()
	require.True(t, ok)
	assert.False(t, end.Committed)
	assert.Equal(t, []string{MetricCost, MetricClicks, MetricImpressions, MetricCPC}, end.Order)
}

func TestReorderEngineWithoutGeometry(t *testing.T) {
	region, err := NewOrderedRegion("bare", []string{"a", "b"})
	require.NoError(t, err)
	engine := NewReorderEngine(region, 0)

	require.True(t, engine.PointerDown("a", Point{}))
	ev, ok := engine.PointerMove(Point{X: 1})
	require.True(t, ok)
	assert.Empty(t, ev.OverID)

	overlay, ok := engine.Overlay()
	require.True(t, ok)
	assert.False(t, overlay.Measured)

	end, ok := engine.PointerUp()
	require.True(t, ok)
	assert.False(t, end.Committed)
}

func TestReorderEngineOverlayFollowsPointer(t *testing.T) {
	engine := newMetricEngine(t)
	require.True(t, engine.PointerDown(MetricClicks, Point{X: 100, Y: 70}))
	_, ok := engine.PointerMove(Point{X: 130, Y: 90})
	require.True(t, ok)

	overlay, ok := engine.Overlay()
	require.True(t, ok)
	assert.True(t, overlay.Measured)
	assert.Equal(t, MetricClicks, overlay.CardID)
	assert.Equal(t, Rect{X: 30, Y: 70, Width: 200, Height: 40}, overlay.Rect)

	_, _ = engine.PointerUp()
	_, ok = engine.Overlay()
	assert.False(t, ok)
}

func TestReorderEngineNegativeActivationClamped(t *testing.T) {
	region, err := NewOrderedRegion("r", []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, NewReorderEngine(region, -3).ActivationDistance())
}

func TestReorderEngineConcurrentGestures(t *testing.T) {
	engine := newMetricEngine(t)
	var wg sync.WaitGroup
	accepted := make(chan string, 4)
	for _, id := range []string{MetricCost, MetricClicks, MetricImpressions, MetricCPC} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if engine.PointerDown(id, Point{}) {
				accepted <- id
			}
		}(id)
	}
	wg.Wait()
	close(accepted)
	count := 0
	for range accepted {
		count++
	}
	assert.Equal(t, 1, count)
}
