package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dashboarditem/pkg/dashboarditem"
	"github.com/goliatone/go-dashboarditem/pkg/model"
	"github.com/goliatone/go-dashboarditem/pkg/renderers/tui"
)

type editOptions struct {
	values      []string
	action      string
	interactive bool
}

func newEditCmd() *cobra.Command {
	opts := editOptions{}
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the edit screen and run one of its actions",
		Long: `Open the edit screen for the saved preferences, print the form, then
apply --set values and run --action (save, defaults or cancel). With
--interactive the form is filled in through terminal prompts instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			a, err := newApp(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			raw, err := a.host.Load(ctx)
			if err != nil {
				return err
			}
			form, err := a.item.RenderEdit(ctx, a.mount, raw)
			if err != nil {
				return err
			}
			if form == nil {
				return nil
			}

			if opts.interactive {
				editor := tui.NewEditor(tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())))
				return runInteractive(ctx, editor, form)
			}
			posted, err := postedValues(opts.values, opts.action)
			if err != nil {
				return err
			}
			return form.Submit(ctx, posted)
		},
	}
	cmd.Flags().StringArrayVar(&opts.values, "set", nil, "input value as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.action, "action", model.ActionSave, "form button to press: save, defaults or cancel")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "fill in the form with terminal prompts")
	return cmd
}

// postedValues builds the submission a browser would send for the given
// inputs and pressed button.
func postedValues(pairs []string, action string) (url.Values, error) {
	posted := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("edit: --set expects key=value, got %q", pair)
		}
		posted.Add(strings.TrimSpace(key), value)
	}
	if action != "" {
		posted.Set(model.ActionField, action)
	}
	return posted, nil
}

// runInteractive prompts until the user saves or cancels. Apply Defaults
// redraws the form and prompts again.
func runInteractive(ctx context.Context, editor *tui.Editor, form *dashboarditem.EditForm) error {
	for {
		choice, err := editor.Collect(ctx, form.Model())
		if err != nil {
			return err
		}
		posted := url.Values{model.ActionField: {choice.Action}}
		for name, value := range choice.Values {
			posted.Set(name, value)
		}
		if err := form.Submit(ctx, posted); err != nil {
			if notifyErr := editor.Notify(ctx, err.Error()); notifyErr != nil {
				return notifyErr
			}
			if choice.Action == model.ActionSave {
				continue
			}
			return err
		}
		if choice.Action != model.ActionDefaults {
			return nil
		}
	}
}
