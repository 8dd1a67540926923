package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

var errMissingClient = errors.New("dashboard: campaign client not configured")

var (
	ErrInvalidRegion    = errors.New("dashboard: region code is required")
	ErrUnknownRegion    = errors.New("dashboard: unknown region")
	ErrRegionLocked     = errors.New("dashboard: region is not reorderable")
	ErrInvalidDragInput = errors.New("dashboard: invalid drag input")
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Client    CampaignClient
	Validator FormValidator
	Hook      StateHook
	Telemetry Telemetry
	Logger    *zap.Logger
	Regions   []RegionDefinition
	// FreeReorder enables dragging the top-level cards. Metric rows are always
	// reorderable.
	FreeReorder bool
}

// Service owns the application state and is the only place it is mutated.
type Service struct {
	opts    Options
	state   *AppState
	regions []RegionDefinition
	engines map[string]*ReorderEngine
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) (*Service, error) {
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Hook == nil {
		opts.Hook = noopStateHook{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	regions := opts.Regions
	if len(regions) == 0 {
		regions = DefaultRegionDefinitions()
	}
	engines := make(map[string]*ReorderEngine, len(regions))
	for _, def := range regions {
		if _, dup := engines[def.Code]; dup {
			return nil, fmt.Errorf("dashboard: duplicate region %s", def.Code)
		}
		region, err := NewOrderedRegion(def.Code, def.CardIDs())
		if err != nil {
			return nil, err
		}
		engines[def.Code] = NewReorderEngine(region, def.ActivationDistance)
	}
	return &Service{
		opts:    opts,
		state:   NewAppState(),
		regions: regions,
		engines: engines,
	}, nil
}

// State exposes the application state for read access.
func (s *Service) State() *AppState {
	return s.state
}

// FreeReorder reports whether the top-level cards can be dragged.
func (s *Service) FreeReorder() bool {
	return s.opts.FreeReorder
}

// Regions returns the configured region definitions.
func (s *Service) Regions() []RegionDefinition {
	return append([]RegionDefinition(nil), s.regions...)
}

// Region returns the definition of a region.
func (s *Service) Region(code string) (RegionDefinition, bool) {
	for _, def := range s.regions {
		if def.Code == code {
			return def, true
		}
	}
	return RegionDefinition{}, false
}

// Engine returns the reorder engine of a region.
func (s *Service) Engine(code string) (*ReorderEngine, bool) {
	engine, ok := s.engines[code]
	return engine, ok
}

// RegionOrder returns the current order of a region.
func (s *Service) RegionOrder(code string) ([]string, error) {
	engine, err := s.engine(code)
	if err != nil {
		return nil, err
	}
	return engine.Region().Order(), nil
}

// Reorderable reports whether pointer drags are accepted in the region.
func (s *Service) Reorderable(code string) bool {
	if _, ok := s.engines[code]; !ok {
		return false
	}
	return code != RegionDashboardCards || s.opts.FreeReorder
}

// LoadCampaigns fetches the campaign list and replaces the store. On failure the
// store keeps its previous contents and the error is surfaced as a notice.
func (s *Service) LoadCampaigns(ctx context.Context) error {
	if s.opts.Client == nil {
		s.state.setLoading(false)
		notice := &Notice{Level: NoticeError, Message: "No campaign source is configured."}
		s.state.setNotice(notice)
		s.opts.Logger.Error("campaign fetch skipped", zap.Error(errMissingClient))
		return errors.Join(errMissingClient, s.notify(ctx, StateEvent{Reason: "campaigns.load_error", Notice: notice}))
	}
	s.state.setLoading(true)
	campaigns, err := s.opts.Client.ListCampaigns(ctx)
	s.state.setLoading(false)
	if err != nil {
		s.opts.Logger.Warn("campaign fetch failed", zap.Error(err))
		notice := &Notice{Level: NoticeError, Message: "Could not load campaigns. Please retry."}
		s.state.setNotice(notice)
		s.recordTelemetry(ctx, "dashboard.campaigns.load_error", map[string]any{"error": err.Error()})
		return errors.Join(fmt.Errorf("dashboard: load campaigns: %w", err), s.notify(ctx, StateEvent{Reason: "campaigns.load_error", Notice: notice}))
	}
	s.state.Campaigns().ReplaceAll(campaigns)
	s.state.setNotice(nil)
	s.opts.Logger.Info("campaigns loaded", zap.Int("count", len(campaigns)))
	s.recordTelemetry(ctx, "dashboard.campaigns.load", map[string]any{"count": len(campaigns)})
	return s.notify(ctx, StateEvent{Reason: "campaigns.load"})
}

// SubmitCreate validates the form, creates the campaign remotely and appends the
// server record. On failure nothing is appended, the modal stays as it is and the
// draft keeps the entered values.
func (s *Service) SubmitCreate(ctx context.Context, form CampaignForm) (Campaign, error) {
	form.Name = strings.TrimSpace(form.Name)
	if form.Status == "" {
		form.Status = StatusActive
	}
	s.state.setDraft(form)
	if s.opts.Client == nil {
		return Campaign{}, s.failCreate(ctx, errMissingClient)
	}
	if err := s.opts.Validator.Validate(form); err != nil {
		return Campaign{}, s.failCreate(ctx, err)
	}
	campaign, err := s.opts.Client.CreateCampaign(ctx, form)
	if err != nil {
		return Campaign{}, s.failCreate(ctx, fmt.Errorf("dashboard: create campaign: %w", err))
	}
	s.state.Campaigns().Append(campaign)
	s.state.completeCreate()
	notice := &Notice{Level: NoticeSuccess, Message: fmt.Sprintf("Campaign %q launched.", campaign.Name)}
	s.state.setNotice(notice)
	s.opts.Logger.Info("campaign created", zap.Int64("id", campaign.ID), zap.String("name", campaign.Name))
	s.recordTelemetry(ctx, "dashboard.campaign.create", map[string]any{
		"campaign_id": campaign.ID,
		"status":      string(campaign.Status),
	})
	if err := s.notify(ctx, StateEvent{Reason: "campaign.create", Notice: notice}); err != nil {
		return campaign, err
	}
	return campaign, nil
}

// SubmitCreateValues parses a submitted HTML form and creates the campaign. Values
// that fail to parse are rejected the same way as a failed submission.
func (s *Service) SubmitCreateValues(ctx context.Context, values url.Values) (Campaign, error) {
	form, err := ParseCampaignForm(values)
	if err != nil {
		s.state.setDraft(form)
		return Campaign{}, s.failCreate(ctx, err)
	}
	return s.SubmitCreate(ctx, form)
}

func (s *Service) failCreate(ctx context.Context, err error) error {
	message := "Could not launch the campaign. Please retry."
	if errors.Is(err, ErrInvalidForm) {
		message = "Please check the campaign fields: " + err.Error()
	}
	notice := &Notice{Level: NoticeError, Message: message}
	s.state.setNotice(notice)
	s.opts.Logger.Warn("campaign create failed", zap.Error(err))
	s.recordTelemetry(ctx, "dashboard.campaign.create_error", map[string]any{"error": err.Error()})
	return errors.Join(err, s.notify(ctx, StateEvent{Reason: "campaign.create_error", Notice: notice}))
}

// UpdateDraft stores the values typed into the create modal.
func (s *Service) UpdateDraft(ctx context.Context, form CampaignForm) error {
	s.state.setDraft(form)
	return s.notify(ctx, StateEvent{Reason: "draft.update"})
}

// SetModal opens or closes the create modal.
func (s *Service) SetModal(ctx context.Context, open bool) error {
	s.state.setModal(open)
	s.recordTelemetry(ctx, "dashboard.modal", map[string]any{"open": open})
	return s.notify(ctx, StateEvent{Reason: "modal"})
}

// SetDarkMode switches the color theme.
func (s *Service) SetDarkMode(ctx context.Context, on bool) error {
	s.state.setDarkMode(on)
	s.recordTelemetry(ctx, "dashboard.theme", map[string]any{"dark": on})
	return s.notify(ctx, StateEvent{Reason: "theme"})
}

// ToggleTheme flips the color theme and returns the new value.
func (s *Service) ToggleTheme(ctx context.Context) (bool, error) {
	dark := !s.state.Snapshot().DarkMode
	return dark, s.SetDarkMode(ctx, dark)
}

// Measure replaces the rendered geometry of a region.
func (s *Service) Measure(ctx context.Context, code string, cards []CardGeometry) error {
	engine, err := s.engine(code)
	if err != nil {
		return err
	}
	engine.Measure(cards)
	return nil
}

// Drag feeds one pointer step into the region's engine. The boolean reports whether
// a drag event was produced.
func (s *Service) Drag(ctx context.Context, input DragInput) (DragEvent, bool, error) {
	if err := input.Validate(); err != nil {
		return DragEvent{}, false, err
	}
	engine, err := s.engine(input.Region)
	if err != nil {
		return DragEvent{}, false, err
	}
	if !s.Reorderable(input.Region) {
		return DragEvent{}, false, ErrRegionLocked
	}
	var (
		event DragEvent
		ok    bool
	)
	switch input.Action {
	case DragActionDown:
		engine.PointerDown(input.CardID, input.Point())
		return DragEvent{}, false, nil
	case DragActionMove:
		event, ok = engine.PointerMove(input.Point())
	case DragActionUp:
		event, ok = engine.PointerUp()
	case DragActionCancel:
		event, ok = engine.Cancel()
	}
	if !ok {
		return DragEvent{}, false, nil
	}
	if event.Kind == DragEnd || event.Kind == DragCancel {
		s.recordTelemetry(ctx, "dashboard.region.drag", map[string]any{
			"region":    event.Region,
			"kind":      string(event.Kind),
			"active_id": event.ActiveID,
			"committed": event.Committed,
		})
	}
	ev := event
	return event, true, s.notify(ctx, StateEvent{Reason: "drag." + string(event.Kind), Region: event.Region, Drag: &ev})
}

// ReorderRegion applies a full ordering, normalized to the region's card set.
func (s *Service) ReorderRegion(ctx context.Context, code string, ids []string) ([]string, error) {
	engine, err := s.engine(code)
	if err != nil {
		return nil, err
	}
	if !s.Reorderable(code) {
		return nil, ErrRegionLocked
	}
	order := engine.Region().Apply(ids)
	s.recordTelemetry(ctx, "dashboard.region.reorder", map[string]any{
		"region": code,
		"count":  len(ids),
	})
	return order, s.notify(ctx, StateEvent{Reason: "region.reorder", Region: code})
}

// ResetRegion restores the default order of a region.
func (s *Service) ResetRegion(ctx context.Context, code string) error {
	engine, err := s.engine(code)
	if err != nil {
		return err
	}
	if !s.Reorderable(code) {
		return ErrRegionLocked
	}
	if _, dragging := engine.Session(); dragging {
		engine.Cancel()
	}
	engine.Region().Reset()
	s.recordTelemetry(ctx, "dashboard.region.reset", map[string]any{"region": code})
	return s.notify(ctx, StateEvent{Reason: "region.reset", Region: code})
}

func (s *Service) engine(code string) (*ReorderEngine, error) {
	if code == "" {
		return nil, ErrInvalidRegion
	}
	engine, ok := s.engines[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, code)
	}
	return engine, nil
}

func (s *Service) notify(ctx context.Context, event StateEvent) error {
	if err := s.opts.Hook.StateChanged(ctx, event); err != nil {
		s.opts.Logger.Error("state hook failed", zap.String("reason", event.Reason), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

type noopStateHook struct{}

func (noopStateHook) StateChanged(context.Context, StateEvent) error {
	return nil
}
