package commands

import (
	"context"
	"errors"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	gocommand "github.com/goliatone/go-command"
)

// SetThemeInput selects the theme. A nil Dark toggles the current theme.
type SetThemeInput struct {
	Dark *bool `json:"dark,omitempty"`
}

type themeService interface {
	SetDarkMode(ctx context.Context, on bool) error
	ToggleTheme(ctx context.Context) (bool, error)
}

// SetThemeCommand wraps Service.SetDarkMode and Service.ToggleTheme.
type SetThemeCommand struct {
	service themeService
}

// NewSetThemeCommand builds the command.
func NewSetThemeCommand(service themeService) *SetThemeCommand {
	return &SetThemeCommand{service: service}
}

var _ gocommand.Commander[SetThemeInput] = (*SetThemeCommand)(nil)

// Execute applies the theme.
func (c *SetThemeCommand) Execute(ctx context.Context, msg SetThemeInput) error {
	if c.service == nil {
		return errors.New("theme command requires service")
	}
	if msg.Dark == nil {
		_, err := c.service.ToggleTheme(ctx)
		return err
	}
	return c.service.SetDarkMode(ctx, *msg.Dark)
}

// SetModalInput opens or closes the create modal.
type SetModalInput struct {
	Open bool `json:"open"`
}

type modalService interface {
	SetModal(ctx context.Context, open bool) error
}

// SetModalCommand wraps Service.SetModal.
type SetModalCommand struct {
	service modalService
}

// NewSetModalCommand builds the command.
func NewSetModalCommand(service modalService) *SetModalCommand {
	return &SetModalCommand{service: service}
}

var _ gocommand.Commander[SetModalInput] = (*SetModalCommand)(nil)

// Execute toggles the modal.
func (c *SetModalCommand) Execute(ctx context.Context, msg SetModalInput) error {
	if c.service == nil {
		return errors.New("modal command requires service")
	}
	return c.service.SetModal(ctx, msg.Open)
}

// UpdateDraftInput carries the values currently typed into the modal.
type UpdateDraftInput struct {
	Form dashboard.CampaignForm `json:"form"`
}

type draftService interface {
	UpdateDraft(ctx context.Context, form dashboard.CampaignForm) error
}

// UpdateDraftCommand wraps Service.UpdateDraft.
type UpdateDraftCommand struct {
	service draftService
}

// NewUpdateDraftCommand builds the command.
func NewUpdateDraftCommand(service draftService) *UpdateDraftCommand {
	return &UpdateDraftCommand{service: service}
}

var _ gocommand.Commander[UpdateDraftInput] = (*UpdateDraftCommand)(nil)

// Execute stores the draft.
func (c *UpdateDraftCommand) Execute(ctx context.Context, msg UpdateDraftInput) error {
	if c.service == nil {
		return errors.New("draft command requires service")
	}
	return c.service.UpdateDraft(ctx, msg.Form)
}
