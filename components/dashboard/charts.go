package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	trendChartHeight        = "320px"
	distributionChartHeight = "220px"
)

// ChartRenderer renders the trend and distribution cards to go-echarts markup.
type ChartRenderer struct {
	cache      RenderCache
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache. A nil cache disables caching.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with a five minute cache by default.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{cache: NewChartCache(5 * time.Minute)}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// DistributionCharts holds the two pies of the distribution card.
type DistributionCharts struct {
	ByCost   string `json:"by_cost"`
	ByClicks string `json:"by_clicks"`
}

// RenderTrend renders one smoothed line per campaign over the week.
func (r *ChartRenderer) RenderTrend(series []TrendSeries, theme *ThemeSelection) (string, error) {
	key := ChartKey{Kind: ChartTrend, Theme: themeName(theme), Series: trendDigest(series)}
	return r.cached(key, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions("Performance Trends", trendChartHeight, theme)...)
		line.SetXAxis(WeekDays)
		for _, s := range series {
			data := make([]opts.LineData, len(s.Points))
			for i, v := range s.Points {
				data[i] = opts.LineData{Name: WeekDays[i], Value: v}
			}
			var seriesOpts []charts.SeriesOpts
			if s.Color != "" {
				seriesOpts = append(seriesOpts,
					charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
					charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
				)
			}
			line.AddSeries(s.Name, data, seriesOpts...)
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
}

// RenderDistribution renders the cost and clicks pies.
func (r *ChartRenderer) RenderDistribution(view DistributionView, theme *ThemeSelection) (DistributionCharts, error) {
	byCost, err := r.renderPie(ChartPieCost, "By Cost", view.ByCost, theme)
	if err != nil {
		return DistributionCharts{}, err
	}
	byClicks, err := r.renderPie(ChartPieClicks, "By Clicks", view.ByClicks, theme)
	if err != nil {
		return DistributionCharts{}, err
	}
	return DistributionCharts{ByCost: byCost, ByClicks: byClicks}, nil
}

func (r *ChartRenderer) renderPie(kind ChartKind, title string, slices []DistributionSlice, theme *ThemeSelection) (string, error) {
	key := ChartKey{Kind: kind, Theme: themeName(theme), Series: sliceDigest(slices)}
	return r.cached(key, func() (string, error) {
		pie := charts.NewPie()
		colors := make(opts.Colors, 0, len(slices))
		data := make([]opts.PieData, len(slices))
		for i, s := range slices {
			name := s.Name
			if name == "" {
				name = fmt.Sprintf("Slice %d", i+1)
			}
			data[i] = opts.PieData{Name: name, Value: s.Value}
			colors = append(colors, s.Color)
		}
		global := r.globalOptions(title, distributionChartHeight, theme)
		if len(colors) > 0 {
			global = append(global, charts.WithColorsOpts(colors))
		}
		pie.SetGlobalOptions(global...)
		pie.AddSeries(title, data)
		return renderChart(pie)
	})
}

func (r *ChartRenderer) cached(key ChartKey, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(key, render)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalOptions(title, height string, theme *ThemeSelection) []charts.GlobalOpts {
	chartTheme := types.ThemeWesteros
	if theme != nil && theme.ChartTheme != "" {
		chartTheme = theme.ChartTheme
	}
	initOpts := opts.Initialization{
		Theme:  chartTheme,
		Width:  "100%",
		Height: height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func themeName(theme *ThemeSelection) string {
	if theme == nil {
		return "light"
	}
	return theme.Name
}
