package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-dashboarditem/pkg/model"
)

// Editor walks a user through the edit form in a terminal: one input prompt
// per field, then a choice between the form actions.
type Editor struct {
	driver PromptDriver
	theme  Theme
}

// Choice is the outcome of one pass through the form.
type Choice struct {
	Action string
	Values map[string]string
}

// NewEditor constructs an Editor using the survey driver unless overridden.
func NewEditor(options ...Option) *Editor {
	e := &Editor{driver: NewSurveyDriver(nil)}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Collect prompts for every field, seeded with its current value, and asks
// which action to run. Required fields reject blank answers.
func (e *Editor) Collect(ctx context.Context, form model.FormModel) (Choice, error) {
	if len(form.Actions) == 0 {
		return Choice{}, ErrNoActions
	}
	for _, message := range form.Errors {
		if err := e.driver.Info(ctx, e.theme.ErrorPrefix+message); err != nil {
			return Choice{}, err
		}
	}
	if form.Description != "" {
		if err := e.driver.Info(ctx, e.theme.InfoPrefix+form.Description); err != nil {
			return Choice{}, err
		}
	}

	choice := Choice{Values: make(map[string]string, len(form.Fields))}
	for _, field := range form.Fields {
		cfg := InputConfig{
			Message: field.Label,
			Default: field.Value,
			Help:    field.Description,
		}
		if field.Required {
			cfg.Validator = requiredValidator(field.Label)
		}
		value, err := e.driver.Input(ctx, cfg)
		if err != nil {
			return Choice{}, fmt.Errorf("tui: prompt %s: %w", field.Name, err)
		}
		choice.Values[field.Name] = value
	}

	options := make([]string, 0, len(form.Actions))
	defaultIdx := 0
	for i, action := range form.Actions {
		options = append(options, action.Label)
		if action.Primary {
			defaultIdx = i
		}
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      "Action",
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return Choice{}, fmt.Errorf("tui: select action: %w", err)
	}
	if idx < 0 || idx >= len(form.Actions) {
		return Choice{}, fmt.Errorf("tui: select action: index %d out of range", idx)
	}
	choice.Action = form.Actions[idx].Name
	return choice, nil
}

// Notify prints an informational message through the driver.
func (e *Editor) Notify(ctx context.Context, message string) error {
	return e.driver.Info(ctx, e.theme.InfoPrefix+message)
}

func requiredValidator(label string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}
