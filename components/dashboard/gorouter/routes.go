package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/httpapi"
)

// Config wires go-router with the campaign dashboard controller, commands and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *dashboard.Controller
	API        *httpapi.Handlers
	Broadcast  *dashboard.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML      string
	View      string
	Campaigns string
	Drag      string
	Measure   string
	Order     string
	Theme     string
	Modal     string
	WebSocket string
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	group := cfg.Router
	if cfg.BasePath != "" {
		group = cfg.Router.Group(cfg.BasePath)
	}

	renderHTML := func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), tableQuery(ctx), &buf); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}

	group.Get(routes.HTML, router.WrapHandler(renderHTML))

	group.Get(routes.View, router.WrapHandler(func(ctx router.Context) error {
		view, err := cfg.Controller.View(ctx.Context(), tableQuery(ctx))
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes, renderHTML)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

// registerAPI mounts the JSON endpoints. Form posts coming from the rendered page
// are answered with the re-rendered page instead of JSON.
func registerAPI[T any](r router.Router[T], api *httpapi.Handlers, routes RouteConfig, renderHTML func(router.Context) error) {
	if api.Campaigns != nil {
		r.Get(routes.Campaigns, router.WrapHandler(func(ctx router.Context) error {
			list, err := api.Campaigns.Query(ctx.Context(), tableQuery(ctx))
			if err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, list)
		}))
	}

	if api.Create != nil {
		r.Post(routes.Campaigns, router.WrapHandler(func(ctx router.Context) error {
			var created dashboard.Campaign
			input := commands.CreateCampaignInput{OnCreated: func(c dashboard.Campaign) { created = c }}
			form := isFormPost(ctx)
			if form {
				values, err := url.ParseQuery(string(ctx.Body()))
				if err != nil {
					return respondError(ctx, http.StatusBadRequest, err)
				}
				input.Values = values
			} else if err := json.Unmarshal(ctx.Body(), &input.Form); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			err := api.Create.Execute(ctx.Context(), input)
			if form {
				// the page shows the notice and keeps the modal open on failure
				return renderHTML(ctx)
			}
			if err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusCreated, created)
		}))
	}

	if api.Drag != nil {
		r.Post(routes.Drag, router.WrapHandler(func(ctx router.Context) error {
			var step dashboard.DragInput
			if err := json.Unmarshal(ctx.Body(), &step); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			step.Region = ctx.Param("region")
			var event *dashboard.DragEvent
			input := commands.DragInput{Step: step, OnEvent: func(e dashboard.DragEvent) { event = &e }}
			if err := api.Drag.Execute(ctx.Context(), input); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, map[string]any{"event": event})
		}))
	}

	if api.Measure != nil {
		r.Post(routes.Measure, router.WrapHandler(func(ctx router.Context) error {
			var payload commands.MeasureRegionInput
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			payload.Region = ctx.Param("region")
			if err := api.Measure.Execute(ctx.Context(), payload); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, map[string]string{"status": "measured"})
		}))
	}

	if api.Reorder != nil {
		r.Post(routes.Order, router.WrapHandler(func(ctx router.Context) error {
			var payload commands.ReorderRegionInput
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			payload.Region = ctx.Param("region")
			if err := api.Reorder.Execute(ctx.Context(), payload); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
		}))
	}

	if api.Reset != nil {
		r.Delete(routes.Order, router.WrapHandler(func(ctx router.Context) error {
			input := commands.ResetRegionInput{Region: ctx.Param("region")}
			if err := api.Reset.Execute(ctx.Context(), input); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, map[string]string{"status": "reset"})
		}))
	}

	if api.Theme != nil {
		r.Post(routes.Theme, router.WrapHandler(func(ctx router.Context) error {
			var payload commands.SetThemeInput
			if !isFormPost(ctx) && len(ctx.Body()) > 0 {
				if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
					return respondError(ctx, http.StatusBadRequest, err)
				}
			}
			if err := api.Theme.Execute(ctx.Context(), payload); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			if isFormPost(ctx) {
				return renderHTML(ctx)
			}
			return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
		}))
	}

	if api.Modal != nil {
		r.Post(routes.Modal, router.WrapHandler(func(ctx router.Context) error {
			var payload commands.SetModalInput
			if isFormPost(ctx) {
				values, err := url.ParseQuery(string(ctx.Body()))
				if err != nil {
					return respondError(ctx, http.StatusBadRequest, err)
				}
				payload.Open, _ = strconv.ParseBool(values.Get("open"))
			} else if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			if err := api.Modal.Execute(ctx.Context(), payload); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			if isFormPost(ctx) {
				return renderHTML(ctx)
			}
			return ctx.JSON(http.StatusOK, map[string]bool{"open": payload.Open})
		}))
	}
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func tableQuery(ctx router.Context) dashboard.TableQuery {
	desc, _ := strconv.ParseBool(ctx.Query("desc"))
	return dashboard.TableQuery{
		Status: ctx.Query("status"),
		SortBy: ctx.Query("sort"),
		Desc:   desc,
	}
}

func isFormPost(ctx router.Context) bool {
	return strings.HasPrefix(strings.ToLower(ctx.Header("Content-Type")), "application/x-www-form-urlencoded")
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.View == "" {
		routes.View = "/dashboard/_view"
	}
	if routes.Campaigns == "" {
		routes.Campaigns = "/dashboard/campaigns"
	}
	if routes.Drag == "" {
		routes.Drag = "/dashboard/regions/:region/drag"
	}
	if routes.Measure == "" {
		routes.Measure = "/dashboard/regions/:region/measure"
	}
	if routes.Order == "" {
		routes.Order = "/dashboard/regions/:region/order"
	}
	if routes.Theme == "" {
		routes.Theme = "/dashboard/theme"
	}
	if routes.Modal == "" {
		routes.Modal = "/dashboard/modal"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
