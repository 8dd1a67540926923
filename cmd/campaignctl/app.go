package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-campaign-dashboard/pkg/campaigns"
	"github.com/goliatone/go-campaign-dashboard/pkg/config"
	"github.com/goliatone/go-campaign-dashboard/pkg/telemetry"
)

// app bundles the wired dashboard components.
type app struct {
	service    *dashboard.Service
	controller *dashboard.Controller
	handlers   *httpapi.Handlers
	broadcast  *dashboard.BroadcastHook
	registry   *prometheus.Registry
	logger     *zap.Logger
}

func newClient(cfg config.API) (dashboard.CampaignClient, error) {
	if cfg.BaseURL == "" {
		return campaigns.NewMockClient(campaigns.DefaultSeedCampaigns()), nil
	}
	client, err := campaigns.NewHTTPClient(campaigns.HTTPConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.Key,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newApp(cfg config.Config, logger *zap.Logger, client dashboard.CampaignClient, basePath string) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	counters, err := telemetry.NewPrometheusRecorder(registry)
	if err != nil {
		return nil, err
	}
	recorder := telemetry.Multi(telemetry.NewZapRecorder(logger), counters)

	var regions []dashboard.RegionDefinition
	if cfg.Dashboard.LayoutFile != "" {
		doc, err := dashboard.ReadManifest(cfg.Dashboard.LayoutFile)
		if err != nil {
			return nil, err
		}
		regions = doc.Definitions()
	}

	broadcast := dashboard.NewBroadcastHook()
	service, err := dashboard.NewService(dashboard.Options{
		Client:      client,
		Hook:        broadcast,
		Telemetry:   recorder,
		Logger:      logger,
		Regions:     regions,
		FreeReorder: cfg.Dashboard.FreeReorder,
	})
	if err != nil {
		return nil, fmt.Errorf("campaignctl: build service: %w", err)
	}

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("campaignctl: build renderer: %w", err)
	}
	chartOpts := []dashboard.ChartRendererOption{dashboard.WithChartCache(dashboard.NewChartCache(cfg.Dashboard.ChartTTL))}
	if cfg.Dashboard.ChartsAssets != "" {
		chartOpts = append(chartOpts, dashboard.WithChartAssetsHost(cfg.Dashboard.ChartsAssets))
	}
	controller := dashboard.NewController(dashboard.ControllerOptions{
		Service:  service,
		Renderer: renderer,
		Charts:   dashboard.NewChartRenderer(chartOpts...),
		BasePath: basePath,
		Logger:   logger,
	})

	handlers := &httpapi.Handlers{
		Load:      commands.NewLoadCampaignsCommand(service, recorder),
		Create:    commands.NewCreateCampaignCommand(service, recorder),
		Drag:      commands.NewDragCommand(service, recorder),
		Measure:   commands.NewMeasureRegionCommand(service),
		Reorder:   commands.NewReorderRegionCommand(service, recorder),
		Reset:     commands.NewResetRegionCommand(service, recorder),
		Theme:     commands.NewSetThemeCommand(service),
		Modal:     commands.NewSetModalCommand(service),
		Draft:     commands.NewUpdateDraftCommand(service),
		View:      queries.NewDashboardQuery(controller),
		Campaigns: queries.NewCampaignsQuery(service),
		Logger:    logger,
	}

	return &app{
		service:    service,
		controller: controller,
		handlers:   handlers,
		broadcast:  broadcast,
		registry:   registry,
		logger:     logger,
	}, nil
}

// load performs the initial campaign fetch. A failure is logged and left on the
// page as a notice.
func (a *app) load(ctx context.Context) {
	if err := a.handlers.Load.Execute(ctx, commands.LoadCampaignsInput{}); err != nil {
		a.logger.Warn("initial campaign load failed", zap.Error(err))
	}
}

// opsHandler serves /metrics plus the chi-mounted JSON API.
func (a *app) opsHandler() http.Handler {
	return newOpsRouter(a.registry, httpapi.NewRouter(httpapi.RouterOptions{
		Handlers:  a.handlers,
		Broadcast: a.broadcast,
		Logger:    a.logger,
	}))
}
