package commands

import (
	"context"
	"errors"
	"net/url"
	"testing"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

type stubService struct {
	loadCalls    int
	createCalls  int
	valuesCalls  int
	dragCalls    int
	measureCalls int
	reorderCalls int
	resetCalls   int
	toggleCalls  int
	dark         *bool
	modal        *bool
	draft        *dashboard.CampaignForm
	err          error
}

func (s *stubService) LoadCampaigns(context.Context) error {
	s.loadCalls++
	return s.err
}

func (s *stubService) SubmitCreate(_ context.Context, form dashboard.CampaignForm) (dashboard.Campaign, error) {
	s.createCalls++
	return dashboard.Campaign{ID: 7, Name: form.Name}, s.err
}

func (s *stubService) SubmitCreateValues(_ context.Context, values url.Values) (dashboard.Campaign, error) {
	s.valuesCalls++
	return dashboard.Campaign{ID: 8, Name: values.Get("name")}, s.err
}

func (s *stubService) Drag(_ context.Context, input dashboard.DragInput) (dashboard.DragEvent, bool, error) {
	s.dragCalls++
	if input.Action == dashboard.DragActionDown {
		return dashboard.DragEvent{}, false, s.err
	}
	return dashboard.DragEvent{Kind: dashboard.DragEnd, Region: input.Region}, true, s.err
}

func (s *stubService) Measure(context.Context, string, []dashboard.CardGeometry) error {
	s.measureCalls++
	return s.err
}

func (s *stubService) ReorderRegion(_ context.Context, _ string, ids []string) ([]string, error) {
	s.reorderCalls++
	return ids, s.err
}

func (s *stubService) ResetRegion(context.Context, string) error {
	s.resetCalls++
	return s.err
}

func (s *stubService) SetDarkMode(_ context.Context, on bool) error {
	s.dark = &on
	return s.err
}

func (s *stubService) ToggleTheme(context.Context) (bool, error) {
	s.toggleCalls++
	return true, s.err
}

func (s *stubService) SetModal(_ context.Context, open bool) error {
	s.modal = &open
	return s.err
}

func (s *stubService) UpdateDraft(_ context.Context, form dashboard.CampaignForm) error {
	s.draft = &form
	return s.err
}

type stubTelemetry struct {
	calls int
}

func (s *stubTelemetry) Record(context.Context, string, map[string]any) {
	s.calls++
}

func TestLoadCampaignsCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewLoadCampaignsCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), LoadCampaignsInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.loadCalls != 1 || telemetry.calls != 1 {
		t.Fatalf("expected load and telemetry, got %d/%d", service.loadCalls, telemetry.calls)
	}
}

func TestLoadCampaignsCommandPropagatesError(t *testing.T) {
	service := &stubService{err: errors.New("down")}
	telemetry := &stubTelemetry{}
	cmd := NewLoadCampaignsCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), LoadCampaignsInput{}); err == nil {
		t.Fatalf("expected error")
	}
	if telemetry.calls != 0 {
		t.Fatalf("expected no telemetry on failure")
	}
}

func TestCreateCampaignCommandTypedForm(t *testing.T) {
	service := &stubService{}
	var created dashboard.Campaign
	cmd := NewCreateCampaignCommand(service, nil)
	err := cmd.Execute(context.Background(), CreateCampaignInput{
		Form:      dashboard.CampaignForm{Name: "Spring"},
		OnCreated: func(c dashboard.Campaign) { created = c },
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.createCalls != 1 || created.ID != 7 {
		t.Fatalf("expected typed submission, got %#v", created)
	}
}

func TestCreateCampaignCommandValues(t *testing.T) {
	service := &stubService{}
	cmd := NewCreateCampaignCommand(service, nil)
	if err := cmd.Execute(context.Background(), CreateCampaignInput{Values: url.Values{"name": {"Spring"}}}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.valuesCalls != 1 || service.createCalls != 0 {
		t.Fatalf("expected values submission")
	}
}

func TestDragCommandForwardsEvent(t *testing.T) {
	service := &stubService{}
	cmd := NewDragCommand(service, nil)
	var events []dashboard.DragEvent
	onEvent := func(e dashboard.DragEvent) { events = append(events, e) }
	steps := []dashboard.DragInput{
		{Region: dashboard.RegionMetricRows, Action: dashboard.DragActionDown, CardID: "cost"},
		{Region: dashboard.RegionMetricRows, Action: dashboard.DragActionUp},
	}
	for _, step := range steps {
		if err := cmd.Execute(context.Background(), DragInput{Step: step, OnEvent: onEvent}); err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
	}
	if service.dragCalls != 2 || len(events) != 1 {
		t.Fatalf("expected one forwarded event, got %d", len(events))
	}
}

func TestRegionCommands(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	ctx := context.Background()
	if err := NewMeasureRegionCommand(service).Execute(ctx, MeasureRegionInput{Region: "metric-rows"}); err != nil {
		t.Fatalf("measure: %v", err)
	}
	if err := NewReorderRegionCommand(service, telemetry).Execute(ctx, ReorderRegionInput{Region: "metric-rows", Order: []string{"cpc"}}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if err := NewResetRegionCommand(service, telemetry).Execute(ctx, ResetRegionInput{Region: "metric-rows"}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if service.measureCalls != 1 || service.reorderCalls != 1 || service.resetCalls != 1 {
		t.Fatalf("expected each region call once")
	}
	if telemetry.calls != 2 {
		t.Fatalf("expected 2 telemetry events, got %d", telemetry.calls)
	}
}

func TestSetThemeCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewSetThemeCommand(service)
	if err := cmd.Execute(context.Background(), SetThemeInput{}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if service.toggleCalls != 1 {
		t.Fatalf("expected toggle when Dark is nil")
	}
	dark := false
	if err := cmd.Execute(context.Background(), SetThemeInput{Dark: &dark}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if service.dark == nil || *service.dark {
		t.Fatalf("expected explicit light theme")
	}
}

func TestModalAndDraftCommands(t *testing.T) {
	service := &stubService{}
	if err := NewSetModalCommand(service).Execute(context.Background(), SetModalInput{Open: true}); err != nil {
		t.Fatalf("modal: %v", err)
	}
	if service.modal == nil || !*service.modal {
		t.Fatalf("expected modal open")
	}
	form := dashboard.CampaignForm{Name: "Draft"}
	if err := NewUpdateDraftCommand(service).Execute(context.Background(), UpdateDraftInput{Form: form}); err != nil {
		t.Fatalf("draft: %v", err)
	}
	if service.draft == nil || service.draft.Name != "Draft" {
		t.Fatalf("expected draft stored")
	}
}

func TestCommandsRequireService(t *testing.T) {
	ctx := context.Background()
	if err := NewLoadCampaignsCommand(nil, nil).Execute(ctx, LoadCampaignsInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
	if err := NewResetRegionCommand(nil, nil).Execute(ctx, ResetRegionInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}
