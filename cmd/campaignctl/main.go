package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-campaign-dashboard/pkg/config"
)

type cli struct {
	Serve  serveCmd  `cmd:"" help:"Run the campaign dashboard server."`
	List   listCmd   `cmd:"" help:"Fetch and print campaigns from the API."`
	Create createCmd `cmd:"" help:"Create a campaign through the API."`
	Layout layoutCmd `cmd:"" help:"Manage the layout manifest."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Campaign analytics dashboard."),
		kong.UsageOnError(),
	)
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := ctx.Run(runCtx)
	ctx.FatalIfErrorf(err)
}

type serveCmd struct {
	BasePath string `help:"Prefix for the dashboard routes (overrides CAMPAIGN_HTTP_BASE_PATH)."`
}

func (cmd *serveCmd) Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := cfg.Log.Build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := newClient(cfg.API)
	if err != nil {
		return err
	}
	basePath := cfg.HTTP.BasePath
	if cmd.BasePath != "" {
		basePath = cmd.BasePath
	}
	basePath = strings.TrimRight(basePath, "/")
	htmlPath := basePath + "/dashboard"
	a, err := newApp(cfg, logger, client, htmlPath)
	if err != nil {
		return err
	}
	a.load(ctx)

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: a.controller,
		API:        a.handlers,
		Broadcast:  a.broadcast,
		BasePath:   basePath,
	}); err != nil {
		return fmt.Errorf("campaignctl: register routes: %w", err)
	}

	var ops *http.Server
	if cfg.Metrics.Addr != "" {
		ops = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           a.opsHandler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	logger.Info("dashboard listening", zap.String("addr", cfg.HTTP.Addr()), zap.String("path", htmlPath))
	return serveUntilDone(ctx, server, cfg.HTTP.Addr(), ops, logger)
}

// dashboardServer is the part of the go-router server the serve loop drives.
type dashboardServer interface {
	Serve(address string) error
	Shutdown(ctx context.Context) error
}

// serveUntilDone runs both listeners until ctx ends or one fails, then shuts both down.
func serveUntilDone(ctx context.Context, server dashboardServer, addr string, ops *http.Server, logger *zap.Logger) error {
	errs := make(chan error, 2)
	if ops != nil {
		go func() {
			logger.Info("ops server listening", zap.String("addr", ops.Addr))
			if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()
	}
	go func() {
		if err := server.Serve(addr); err != nil {
			errs <- err
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errs:
		logger.Error("server error", zap.Error(err))
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("dashboard shutdown failed", zap.Error(shutdownErr))
	}
	if ops != nil {
		if shutdownErr := ops.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("ops shutdown failed", zap.Error(shutdownErr))
		}
	}
	return err
}

type listCmd struct {
	Status string `default:"All" enum:"All,Active,Paused" help:"Status filter."`
	Sort   string `help:"Sort column (name, status, clicks, impressions, cost)."`
	Desc   bool   `help:"Sort descending."`
}

func (cmd *listCmd) Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg.API)
	if err != nil {
		return err
	}
	list, err := client.ListCampaigns(ctx)
	if err != nil {
		return err
	}
	query, err := dashboard.TableQuery{Status: cmd.Status, SortBy: cmd.Sort, Desc: cmd.Desc}.Normalize()
	if err != nil {
		return err
	}
	return printTable(os.Stdout, dashboard.BuildTable(list, query))
}

func printTable(out io.Writer, table dashboard.TableView) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCAMPAIGN\tSTATUS\tCLICKS\tCOST")
	for _, row := range table.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", row.ID, row.Name, row.Status, row.Clicks, row.Cost)
	}
	return w.Flush()
}

type createCmd struct {
	Name        string  `required:"" help:"Campaign name."`
	Status      string  `default:"Active" enum:"Active,Paused" help:"Campaign status."`
	Clicks      int64   `help:"Clicks so far."`
	Cost        float64 `help:"Spend so far."`
	Impressions int64   `help:"Impressions so far."`
}

func (cmd *createCmd) Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg.API)
	if err != nil {
		return err
	}
	form := dashboard.CampaignForm{
		Name:        cmd.Name,
		Status:      dashboard.CampaignStatus(cmd.Status),
		Clicks:      cmd.Clicks,
		Cost:        cmd.Cost,
		Impressions: cmd.Impressions,
	}
	if err := dashboard.NewJSONSchemaValidator().Validate(form); err != nil {
		return err
	}
	created, err := client.CreateCampaign(ctx, form)
	if err != nil {
		return err
	}
	fmt.Printf("created campaign %d (%s) color %s\n", created.ID, created.Name, created.Color)
	return nil
}

type layoutCmd struct {
	Init    layoutInitCmd    `cmd:"" help:"Write the default layout manifest."`
	AddCard layoutAddCardCmd `cmd:"" name:"add-card" help:"Add a card to a region of a layout manifest. Built-in regions only accept the cards they can render."`
}

type layoutInitCmd struct {
	Path      string `required:"" type:"path" help:"Manifest file to write."`
	Overwrite bool   `help:"Replace an existing manifest."`
}

func (cmd *layoutInitCmd) Run(_ context.Context) error {
	if _, err := os.Stat(cmd.Path); err == nil && !cmd.Overwrite {
		return fmt.Errorf("campaignctl: %s exists (use --overwrite to replace)", cmd.Path)
	}
	service, err := dashboard.NewService(dashboard.Options{})
	if err != nil {
		return err
	}
	return writeManifest(cmd.Path, dashboard.ManifestFromService("campaign-dashboard", service))
}

type layoutAddCardCmd struct {
	Path   string `required:"" type:"path" help:"Manifest file to update."`
	Region string `required:"" help:"Region code."`
	Title  string `required:"" help:"Card title."`
	ID     string `help:"Card id (defaults to the kebab-cased title)."`
	Span   int    `default:"4" help:"Grid columns out of 12."`
	Wide   bool   `help:"Use the wide drag overlay."`
}

func (cmd *layoutAddCardCmd) Run(_ context.Context) error {
	doc, err := dashboard.ReadManifest(cmd.Path)
	if err != nil {
		return err
	}
	id := cmd.ID
	if id == "" {
		id = strcase.ToKebab(cmd.Title)
	}
	found := false
	for i := range doc.Regions {
		if doc.Regions[i].Code != cmd.Region {
			continue
		}
		found = true
		doc.Regions[i].Cards = append(doc.Regions[i].Cards, dashboard.CardDefinition{
			ID: id, Title: cmd.Title, Span: cmd.Span, Wide: cmd.Wide,
		})
		if len(doc.Regions[i].Order) > 0 {
			doc.Regions[i].Order = append(doc.Regions[i].Order, id)
		}
	}
	if !found {
		return fmt.Errorf("campaignctl: manifest has no region %s", cmd.Region)
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	return writeManifest(cmd.Path, doc)
}

func writeManifest(path string, doc *dashboard.LayoutManifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("campaignctl: create manifest dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("campaignctl: create manifest: %w", err)
	}
	defer file.Close()
	return dashboard.EncodeManifest(file, doc)
}
