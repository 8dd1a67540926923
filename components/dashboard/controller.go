package dashboard

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
)

var errMissingService = errors.New("dashboard: controller requires a service")

// ControllerOptions configures the dashboard controller.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Charts   *ChartRenderer
	Template string
	// BasePath prefixes the form actions of the rendered page.
	BasePath string
	Logger   *zap.Logger
}

// Controller turns the service state into a renderable view.
type Controller struct {
	service  *Service
	renderer Renderer
	charts   *ChartRenderer
	template string
	basePath string
	logger   *zap.Logger
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	template := opts.Template
	if template == "" {
		template = "dashboard.html"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		charts:   opts.Charts,
		template: template,
		basePath: strings.TrimRight(opts.BasePath, "/"),
		logger:   logger,
	}
}

// CardView is one top-level card in display order.
type CardView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Span      int    `json:"span"`
	Wide      bool   `json:"wide"`
	Dimmed    bool   `json:"dimmed"`
	Draggable bool   `json:"draggable"`
}

// OverlayView is the floating copy of the card being dragged.
type OverlayView struct {
	Region   string `json:"region"`
	CardID   string `json:"card_id"`
	Title    string `json:"title"`
	Wide     bool   `json:"wide"`
	Rect     Rect   `json:"rect"`
	Measured bool   `json:"measured"`
}

// DashboardView is everything a template or JSON client needs to draw the page.
type DashboardView struct {
	Theme              *ThemeSelection     `json:"theme"`
	ThemeCSS           string              `json:"theme_css"`
	DarkMode           bool                `json:"dark_mode"`
	Loading            bool                `json:"loading"`
	ModalOpen          bool                `json:"modal_open"`
	Draft              CampaignForm        `json:"draft"`
	Notice             *Notice             `json:"notice,omitempty"`
	FreeReorder        bool                `json:"free_reorder"`
	Cards              []CardView          `json:"cards"`
	Metrics            []MetricCard        `json:"metrics"`
	DimmedMetric       string              `json:"dimmed_metric,omitempty"`
	Trend              []TrendSeries       `json:"trend"`
	TrendChart         string              `json:"-"`
	Distribution       DistributionView    `json:"distribution"`
	DistributionCharts DistributionCharts  `json:"-"`
	Table              TableView           `json:"table"`
	Overlays           []OverlayView       `json:"overlays,omitempty"`
	Regions            map[string][]string `json:"regions"`
}

// View assembles the dashboard from the current state.
func (c *Controller) View(ctx context.Context, query TableQuery) (DashboardView, error) {
	if c.service == nil {
		return DashboardView{}, errMissingService
	}
	query, err := query.Normalize()
	if err != nil {
		return DashboardView{}, err
	}
	snap := c.service.State().Snapshot()
	theme := SelectTheme(snap.DarkMode)
	view := DashboardView{
		Theme:        theme,
		ThemeCSS:     theme.CSSVariablesInline(),
		DarkMode:     snap.DarkMode,
		Loading:      snap.Loading,
		ModalOpen:    snap.ModalOpen,
		Draft:        snap.Draft,
		Notice:       snap.Notice,
		FreeReorder:  c.service.FreeReorder(),
		Trend:        BuildTrendSeries(snap.Campaigns),
		Distribution: BuildDistribution(snap.Campaigns),
		Table:        BuildTable(snap.Campaigns, query),
		Regions:      make(map[string][]string),
	}

	for _, def := range c.service.Regions() {
		engine, _ := c.service.Engine(def.Code)
		order := engine.Region().Order()
		view.Regions[def.Code] = order
		session, dragging := engine.Session()
		if dragging {
			if overlay, ok := engine.Overlay(); ok {
				card, _ := def.Card(overlay.CardID)
				view.Overlays = append(view.Overlays, OverlayView{
					Region:   def.Code,
					CardID:   overlay.CardID,
					Title:    card.Title,
					Wide:     card.Wide,
					Rect:     overlay.Rect,
					Measured: overlay.Measured,
				})
			}
		}
		switch def.Code {
		case RegionDashboardCards:
			for _, id := range order {
				card, _ := def.Card(id)
				view.Cards = append(view.Cards, CardView{
					ID:        id,
					Title:     card.Title,
					Span:      card.Span,
					Wide:      card.Wide,
					Dimmed:    dragging && session.ActiveID == id,
					Draggable: c.service.Reorderable(def.Code),
				})
			}
		case RegionMetricRows:
			view.Metrics = OrderedMetrics(snap.Campaigns, order)
			if dragging {
				view.DimmedMetric = session.ActiveID
			}
		}
	}

	if c.charts != nil {
		trend, err := c.charts.RenderTrend(view.Trend, theme)
		if err != nil {
			c.logger.Error("trend chart render failed", zap.Error(err))
			return DashboardView{}, err
		}
		view.TrendChart = trend
		pies, err := c.charts.RenderDistribution(view.Distribution, theme)
		if err != nil {
			c.logger.Error("distribution chart render failed", zap.Error(err))
			return DashboardView{}, err
		}
		view.DistributionCharts = pies
	}
	return view, nil
}

// RenderTemplate renders the dashboard HTML into out.
func (c *Controller) RenderTemplate(ctx context.Context, query TableQuery, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("dashboard: controller requires a renderer")
	}
	view, err := c.View(ctx, query)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, map[string]any{
		"view":          view,
		"base_path":     c.basePath,
		"status_filter": []string{StatusFilterAll, string(StatusActive), string(StatusPaused)},
	}, out)
	return err
}
