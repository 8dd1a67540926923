package httpapi

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/commands"
	gocommand "github.com/goliatone/go-command"
	"go.uber.org/zap"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Load      gocommand.Commander[commands.LoadCampaignsInput]
	Create    gocommand.Commander[commands.CreateCampaignInput]
	Drag      gocommand.Commander[commands.DragInput]
	Measure   gocommand.Commander[commands.MeasureRegionInput]
	Reorder   gocommand.Commander[commands.ReorderRegionInput]
	Reset     gocommand.Commander[commands.ResetRegionInput]
	Theme     gocommand.Commander[commands.SetThemeInput]
	Modal     gocommand.Commander[commands.SetModalInput]
	Draft     gocommand.Commander[commands.UpdateDraftInput]
	View      gocommand.Querier[dashboard.TableQuery, dashboard.DashboardView]
	Campaigns gocommand.Querier[dashboard.TableQuery, []dashboard.Campaign]
	Logger    *zap.Logger
}

func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	view, err := h.View.Query(r.Context(), TableQueryFromRequest(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) HandleListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.Campaigns.Query(r.Context(), TableQueryFromRequest(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) HandleReloadCampaigns(w http.ResponseWriter, r *http.Request) {
	if err := h.Load.Execute(r.Context(), commands.LoadCampaignsInput{}); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateCampaign accepts a JSON body or an HTML form post.
func (h *Handlers) HandleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var created dashboard.Campaign
	input := commands.CreateCampaignInput{OnCreated: func(c dashboard.Campaign) { created = c }}
	if isFormPost(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		input.Values = r.PostForm
	} else if err := json.NewDecoder(r.Body).Decode(&input.Form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Create.Execute(r.Context(), input); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) HandleDrag(w http.ResponseWriter, r *http.Request, region string) {
	var step dashboard.DragInput
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	step.Region = region
	var event *dashboard.DragEvent
	input := commands.DragInput{Step: step, OnEvent: func(e dashboard.DragEvent) { event = &e }}
	if err := h.Drag.Execute(r.Context(), input); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"event": event})
}

func (h *Handlers) HandleMeasure(w http.ResponseWriter, r *http.Request, region string) {
	var payload commands.MeasureRegionInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.Region = region
	if err := h.Measure.Execute(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleReorder(w http.ResponseWriter, r *http.Request, region string) {
	var payload commands.ReorderRegionInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.Region = region
	if err := h.Reorder.Execute(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request, region string) {
	if err := h.Reset.Execute(r.Context(), commands.ResetRegionInput{Region: region}); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleTheme(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetThemeInput
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := h.Theme.Execute(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleModal(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetModalInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Modal.Execute(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleDraft(w http.ResponseWriter, r *http.Request) {
	var payload commands.UpdateDraftInput
	if err := json.NewDecoder(r.Body).Decode(&payload.Form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Draft.Execute(r.Context(), payload); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TableQueryFromRequest reads status, sort and desc from the query string.
func TableQueryFromRequest(r *http.Request) dashboard.TableQuery {
	q := r.URL.Query()
	desc, _ := strconv.ParseBool(q.Get("desc"))
	return dashboard.TableQuery{
		Status: q.Get("status"),
		SortBy: q.Get("sort"),
		Desc:   desc,
	}
}

// StatusFor maps dashboard errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrInvalidForm):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dashboard.ErrInvalidRegion), errors.Is(err, dashboard.ErrInvalidDragInput),
		errors.Is(err, dashboard.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrUnknownRegion):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrRegionLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.Error("dashboard request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func isFormPost(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
