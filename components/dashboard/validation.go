package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidForm is matched by every create-form validation failure.
var ErrInvalidForm = errors.New("dashboard: invalid campaign form")

// ValidationError wraps a create-form validation failure.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidForm, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrInvalidForm, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidForm, e.Err}
}

// FormValidator validates create-campaign payloads.
type FormValidator interface {
	Validate(form CampaignForm) error
}

// JSONSchemaValidator checks the form against the campaign JSON schema.
type JSONSchemaValidator struct {
	mu       sync.Mutex
	schema   map[string]any
	compiled *jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{schema: campaignFormSchema()}
}

// Validate ensures the form satisfies the schema.
func (v *JSONSchemaValidator) Validate(form CampaignForm) error {
	schema, err := v.compile()
	if err != nil {
		return err
	}
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("dashboard: marshal campaign form: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashboard: normalize campaign form: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func (v *JSONSchemaValidator) compile() (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.compiled != nil {
		return v.compiled, nil
	}
	data, err := json.Marshal(v.schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal campaign schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	const name = "campaign_form.json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load campaign schema: %w", err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile campaign schema: %w", err)
	}
	v.compiled = compiled
	return compiled, nil
}

// ParseCampaignForm reads a submitted HTML form. Numeric fields that do not parse
// are rejected instead of being coerced to zero.
func ParseCampaignForm(values url.Values) (CampaignForm, error) {
	form := CampaignForm{
		Name:   strings.TrimSpace(values.Get("name")),
		Status: StatusActive,
	}
	if raw := values.Get("status"); raw != "" {
		status, err := ParseCampaignStatus(raw)
		if err != nil {
			return form, &ValidationError{Field: "status", Err: err}
		}
		form.Status = status
	}
	var errs []error
	var err error
	if form.Clicks, err = parseCount(values, "clicks"); err != nil {
		errs = append(errs, err)
	}
	if form.Impressions, err = parseCount(values, "impressions"); err != nil {
		errs = append(errs, err)
	}
	if raw := strings.TrimSpace(values.Get("cost")); raw != "" {
		form.Cost, err = strconv.ParseFloat(raw, 64)
		switch {
		case err != nil:
			errs = append(errs, &ValidationError{Field: "cost", Err: fmt.Errorf("%q is not a number", raw)})
		case math.IsNaN(form.Cost) || math.IsInf(form.Cost, 0):
			form.Cost = 0
			errs = append(errs, &ValidationError{Field: "cost", Err: fmt.Errorf("%q is not a finite number", raw)})
		}
	} else {
		errs = append(errs, &ValidationError{Field: "cost", Err: errors.New("value is required")})
	}
	return form, errors.Join(errs...)
}

func parseCount(values url.Values, field string) (int64, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, &ValidationError{Field: field, Err: errors.New("value is required")}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Err: fmt.Errorf("%q is not a whole number", raw)}
	}
	return n, nil
}
