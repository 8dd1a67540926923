package dashboard

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	name string
	data any
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.name = name
	s.data = data
	if len(out) > 0 && out[0] != nil {
		_, _ = out[0].Write([]byte("rendered"))
	}
	return "rendered", nil
}

func loadedService(t *testing.T, opts Options) *Service {
	t.Helper()
	svc := newTestService(t, opts)
	require.NoError(t, svc.LoadCampaigns(context.Background()))
	return svc
}

func TestControllerViewDefaultLayout(t *testing.T) {
	ctrl := NewController(ControllerOptions{Service: loadedService(t, Options{})})
	view, err := ctrl.View(context.Background(), TableQuery{})
	require.NoError(t, err)

	ids := make([]string, len(view.Cards))
	for i, card := range view.Cards {
		ids[i] = card.ID
		assert.False(t, card.Draggable)
	}
	assert.Equal(t, []string{CardMetrics, CardTrend, CardTable, CardDistribution}, ids)
	assert.Equal(t, 8, view.Cards[1].Span)
	assert.True(t, view.Cards[1].Wide)

	require.Len(t, view.Metrics, 4)
	assert.Equal(t, MetricCost, view.Metrics[0].ID)
	assert.Len(t, view.Table.Rows, 4)
	assert.Len(t, view.Trend, 4)
	assert.Equal(t, "light", view.Theme.Name)
	assert.Empty(t, view.TrendChart, "charts are skipped without a chart renderer")
	assert.Empty(t, view.Overlays)
}

func TestControllerViewReflectsDrag(t *testing.T) {
	svc := loadedService(t, Options{FreeReorder: true})
	ctx := context.Background()
	require.NoError(t, svc.Measure(ctx, RegionMetricRows, rowGeometry(MetricCost, MetricClicks, MetricImpressions, MetricCPC)))
	_, _, err := svc.Drag(ctx, DragInput{Region: RegionMetricRows, Action: DragActionDown, CardID: MetricImpressions, X: 100, Y: 120})
	require.NoError(t, err)
	_, ok, err := svc.Drag(ctx, DragInput{Region: RegionMetricRows, Action: DragActionMove, X: 100, Y: 20})
	require.NoError(t, err)
	require.True(t, ok)

	ctrl := NewController(ControllerOptions{Service: svc})
	view, err := ctrl.View(ctx, TableQuery{})
	require.NoError(t, err)

	assert.Equal(t, MetricImpressions, view.DimmedMetric)
	require.Len(t, view.Overlays, 1)
	assert.Equal(t, "Impressions", view.Overlays[0].Title)
	assert.True(t, view.Overlays[0].Measured)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 40}, view.Overlays[0].Rect)
	assert.True(t, view.Cards[0].Draggable)
}

func TestControllerViewRejectsBadQuery(t *testing.T) {
	ctrl := NewController(ControllerOptions{Service: loadedService(t, Options{})})
	_, err := ctrl.View(context.Background(), TableQuery{SortBy: "color"})
	require.Error(t, err)

	_, err = NewController(ControllerOptions{}).View(context.Background(), TableQuery{})
	assert.ErrorIs(t, err, errMissingService)
}

func TestControllerViewRendersCharts(t *testing.T) {
	ctrl := NewController(ControllerOptions{
		Service: loadedService(t, Options{}),
		Charts:  NewChartRenderer(WithChartCache(nil)),
	})
	view, err := ctrl.View(context.Background(), TableQuery{})
	require.NoError(t, err)
	assert.Contains(t, view.TrendChart, "Summer Sale")
	assert.NotEmpty(t, view.DistributionCharts.ByCost)
	assert.NotEmpty(t, view.DistributionCharts.ByClicks)
}

func TestControllerRenderTemplate(t *testing.T) {
	renderer := &stubRenderer{}
	ctrl := NewController(ControllerOptions{
		Service:  loadedService(t, Options{}),
		Renderer: renderer,
		BasePath: "/admin/dashboard/",
	})
	var buf bytes.Buffer
	require.NoError(t, ctrl.RenderTemplate(context.Background(), TableQuery{Status: "Active"}, &buf))

	assert.Equal(t, "dashboard.html", renderer.name)
	assert.Equal(t, "rendered", buf.String())
	data, ok := renderer.data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/admin/dashboard", data["base_path"])
	view, ok := data["view"].(DashboardView)
	require.True(t, ok)
	assert.Len(t, view.Table.Rows, 3)
}

func TestControllerRenderTemplateRequiresRenderer(t *testing.T) {
	ctrl := NewController(ControllerOptions{Service: loadedService(t, Options{})})
	require.Error(t, ctrl.RenderTemplate(context.Background(), TableQuery{}, io.Discard))
}

func TestEmbeddedTemplateRenders(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	svc := loadedService(t, Options{})
	require.NoError(t, svc.SetModal(context.Background(), true))

	ctrl := NewController(ControllerOptions{Service: svc, Renderer: renderer, BasePath: "/dashboard"})
	var buf bytes.Buffer
	require.NoError(t, ctrl.RenderTemplate(context.Background(), TableQuery{}, &buf))

	html := buf.String()
	assert.Contains(t, html, "Campaign Dashboard")
	assert.Contains(t, html, "Summer Sale")
	assert.Contains(t, html, `action="/dashboard/campaigns"`)
	assert.Contains(t, html, "Launch Campaign")
	assert.Contains(t, html, "sort=clicks&desc=false")
}

func TestEmbeddedTemplateRendersSortedHeader(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	ctrl := NewController(ControllerOptions{Service: loadedService(t, Options{}), Renderer: renderer, BasePath: "/dashboard"})

	var buf bytes.Buffer
	require.NoError(t, ctrl.RenderTemplate(context.Background(), TableQuery{Status: "Active", SortBy: "cost"}, &buf))
	html := buf.String()
	assert.Contains(t, html, "/dashboard?status=Active&sort=cost&desc=true")
	assert.Contains(t, html, "/dashboard?status=Paused&sort=cost&desc=false")
}
