package dashboarditem_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dashboarditem/pkg/dashboarditem"
	"github.com/goliatone/go-dashboarditem/pkg/host"
	"github.com/goliatone/go-dashboarditem/pkg/model"
	"github.com/goliatone/go-dashboarditem/pkg/prefs"
	"github.com/goliatone/go-dashboarditem/pkg/render"
	"github.com/goliatone/go-dashboarditem/pkg/testsupport"
)

const key = string(prefs.ExampleInput)

func newItem(t *testing.T, h host.Host, options ...dashboarditem.Option) *dashboarditem.Item {
	t.Helper()
	item, err := dashboarditem.New(h, options...)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	return item
}

func openForm(t *testing.T, item *dashboarditem.Item, mount host.Mount, raw prefs.Preferences) *dashboarditem.EditForm {
	t.Helper()
	form, err := item.RenderEdit(context.Background(), mount, raw)
	if err != nil {
		t.Fatalf("render edit: %v", err)
	}
	if form == nil {
		t.Fatalf("expected edit form")
	}
	return form
}

func TestNew_RequiresHost(t *testing.T) {
	if _, err := dashboarditem.New(nil); !errors.Is(err, dashboarditem.ErrNilHost) {
		t.Fatalf("expected ErrNilHost, got %v", err)
	}
}

func TestRender_DecodesEntities(t *testing.T) {
	h := testsupport.NewRecordingHost()
	mount := host.NewBuffer(nil)
	item := newItem(t, h)

	if err := item.Render(context.Background(), mount, prefs.Preferences{key: "Tom &amp; Jerry"}); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := mount.String()
	for _, fragment := range []string{"<p>Hello world!</p>", "<p>Tom &amp; Jerry</p>"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("view missing %q:\n%s", fragment, out)
		}
	}
	if got := item.Preferences().String(prefs.ExampleInput); got != "Tom & Jerry" {
		t.Fatalf("expected decoded preference, got %q", got)
	}

	want := []string{
		testsupport.CallShowLoadingBar,
		testsupport.CallHideLoadingBar,
		testsupport.CallResize,
	}
	if diff := cmp.Diff(want, h.Calls()); diff != "" {
		t.Fatalf("host calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DefaultsByOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{name: "standard", origin: "https://example.atlassian.net", want: "Default value"},
		{name: "local", origin: "http://localhost:2990", want: "Default value in local dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mount := host.NewBuffer(nil)
			item := newItem(t, testsupport.NewRecordingHost(), dashboarditem.WithOrigin(tt.origin))

			if err := item.Render(context.Background(), mount, prefs.Preferences{}); err != nil {
				t.Fatalf("render: %v", err)
			}
			if !strings.Contains(mount.String(), "<p>"+tt.want+"</p>") {
				t.Fatalf("expected %q in view:\n%s", tt.want, mount.String())
			}
			if got := item.Defaults()[prefs.ExampleInput]; got != tt.want {
				t.Fatalf("defaults: expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRender_NilMount(t *testing.T) {
	item := newItem(t, testsupport.NewRecordingHost())
	if err := item.Render(context.Background(), nil, nil); !errors.Is(err, dashboarditem.ErrNilMount) {
		t.Fatalf("expected ErrNilMount, got %v", err)
	}
}

func TestRender_DetachedMount(t *testing.T) {
	h := testsupport.NewRecordingHost()
	mount := host.NewBuffer(nil)
	mount.Detach()
	item := newItem(t, h)

	if err := item.Render(context.Background(), mount, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if mount.Mounts() != 0 {
		t.Fatalf("expected no mounts on a detached buffer")
	}
}

func TestRender_MountFailureHidesLoadingBar(t *testing.T) {
	h := testsupport.NewRecordingHost()
	item := newItem(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := item.Render(ctx, host.NewBuffer(nil), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	want := []string{testsupport.CallShowLoadingBar, testsupport.CallHideLoadingBar}
	if diff := cmp.Diff(want, h.Calls()); diff != "" {
		t.Fatalf("host calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEdit_NotEditable(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	h := testsupport.NewRecordingHost()
	h.Editable = false
	mount := host.NewBuffer(nil)
	item := newItem(t, h, dashboarditem.WithLogger(logger))

	form, err := item.RenderEdit(context.Background(), mount, prefs.Preferences{key: "x"})
	if err != nil {
		t.Fatalf("render edit: %v", err)
	}
	if form != nil {
		t.Fatalf("expected nil form")
	}
	if mount.Mounts() != 0 {
		t.Fatalf("expected nothing mounted, got %d mounts", mount.Mounts())
	}
	if got := h.Count(testsupport.CallCloseEdit); got != 1 {
		t.Fatalf("expected closeEdit once, got %d", got)
	}
	if got := h.Count(testsupport.CallSavePreferences); got != 0 {
		t.Fatalf("expected no saves, got %d", got)
	}
	if !strings.Contains(logs.String(), "not editable") {
		t.Fatalf("expected warning, got %q", logs.String())
	}
}

func TestRenderEdit_MountsPopulatedForm(t *testing.T) {
	h := testsupport.NewRecordingHost()
	mount := host.NewBuffer(nil)
	item := newItem(t, h)

	form := openForm(t, item, mount, prefs.Preferences{key: "a &lt;b&gt;"})

	if got, _ := form.Value(key); got != "a <b>" {
		t.Fatalf("expected decoded input value, got %q", got)
	}
	out := mount.String()
	for _, fragment := range []string{
		`id="exampleInput"`,
		`value="a &lt;b&gt;"`,
		"Example input",
		"A helpful message can go here",
		`value="save"`,
		`value="defaults"`,
		`value="cancel"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("form missing %q:\n%s", fragment, out)
		}
	}

	want := []string{
		testsupport.CallHideLoadingBar,
		testsupport.CallIsEditable,
		testsupport.CallResize,
	}
	if diff := cmp.Diff(want, h.Calls()); diff != "" {
		t.Fatalf("host calls mismatch (-want +got):\n%s", diff)
	}
}

func TestEditForm_SaveNewValue(t *testing.T) {
	h := testsupport.NewRecordingHost()
	item := newItem(t, h)
	form := openForm(t, item, host.NewBuffer(nil), prefs.Preferences{key: "x"})
	h.Reset()

	if err := form.SetValue(key, "New value"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if err := form.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}

	want := []string{
		testsupport.CallShowLoadingBar,
		testsupport.CallSavePreferences,
		testsupport.CallHideLoadingBar,
	}
	if diff := cmp.Diff(want, h.Calls()); diff != "" {
		t.Fatalf("host calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]prefs.Preferences{{key: "New value"}}, h.Saved()); diff != "" {
		t.Fatalf("saved mismatch (-want +got):\n%s", diff)
	}
}

func TestEditForm_SaveKeepsOtherKeys(t *testing.T) {
	h := testsupport.NewRecordingHost()
	item := newItem(t, h)
	form := openForm(t, item, host.NewBuffer(nil), prefs.Preferences{key: "x", "refresh": 15})

	if err := form.SetValue(key, "y"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if err := form.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}

	want := []prefs.Preferences{{key: "y", "refresh": 15}}
	if diff := cmp.Diff(want, h.Saved()); diff != "" {
		t.Fatalf("saved mismatch (-want +got):\n%s", diff)
	}
}

func TestEditForm_ApplyDefaultsThenSave(t *testing.T) {
	h := testsupport.NewRecordingHost()
	mount := host.NewBuffer(nil)
	item := newItem(t, h)
	form := openForm(t, item, mount, prefs.Preferences{key: "custom"})

	if err := form.ApplyDefaults(context.Background()); err != nil {
		t.Fatalf("apply defaults: %v", err)
	}
	if got := h.Count(testsupport.CallSavePreferences); got != 0 {
		t.Fatalf("apply defaults must not save, got %d saves", got)
	}
	if !strings.Contains(mount.String(), `value="Default value"`) {
		t.Fatalf("expected remounted default:\n%s", mount.String())
	}
	if mount.Mounts() != 2 {
		t.Fatalf("expected form remounted, got %d mounts", mount.Mounts())
	}

	if err := form.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if diff := cmp.Diff([]prefs.Preferences{{key: "Default value"}}, h.Saved()); diff != "" {
		t.Fatalf("saved mismatch (-want +got):\n%s", diff)
	}
}

func TestEditForm_Cancel(t *testing.T) {
	h := testsupport.NewRecordingHost()
	mount := host.NewBuffer(nil)
	item := newItem(t, h)
	form := openForm(t, item, mount, nil)
	h.Reset()

	form.Cancel()

	if diff := cmp.Diff([]string{testsupport.CallCloseEdit}, h.Calls()); diff != "" {
		t.Fatalf("host calls mismatch (-want +got):\n%s", diff)
	}
	if mount.Mounts() != 1 {
		t.Fatalf("cancel must not remount")
	}
}

func TestEditForm_SetValueUnknownField(t *testing.T) {
	item := newItem(t, testsupport.NewRecordingHost())
	form := openForm(t, item, host.NewBuffer(nil), nil)

	if err := form.SetValue("missing", "v"); !errors.Is(err, dashboarditem.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestEditForm_SaveFailure(t *testing.T) {
	hostErr := errors.New("quota exceeded")
	h := testsupport.NewRecordingHost()
	h.SaveErr = hostErr
	mount := host.NewBuffer(nil)
	item := newItem(t, h)
	form := openForm(t, item, mount, prefs.Preferences{key: "x"})
	h.Reset()

	err := form.Save(context.Background())
	if !errors.Is(err, hostErr) {
		t.Fatalf("expected host error, got %v", err)
	}
	if got := h.Count(testsupport.CallHideLoadingBar); got != 1 {
		t.Fatalf("expected loading bar hidden once, got %d", got)
	}
	if !strings.Contains(mount.String(), dashboarditem.SaveFailedMessage) {
		t.Fatalf("expected failure message on form:\n%s", mount.String())
	}
	if diff := cmp.Diff([]string{dashboarditem.SaveFailedMessage}, form.Model().Errors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}

	h.SaveErr = nil
	if err := form.Save(context.Background()); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	if strings.Contains(mount.String(), dashboarditem.SaveFailedMessage) {
		t.Fatalf("expected failure message cleared:\n%s", mount.String())
	}
}

func TestEditForm_Submit(t *testing.T) {
	tests := []struct {
		name       string
		posted     url.Values
		wantSaved  []prefs.Preferences
		wantCloses int
		wantValue  string
	}{
		{
			name:      "save button",
			posted:    url.Values{key: {"first", "last"}, model.ActionField: {model.ActionSave}},
			wantSaved: []prefs.Preferences{{key: "last"}},
			wantValue: "last",
		},
		{
			name:      "enter key",
			posted:    url.Values{key: {"typed"}},
			wantSaved: []prefs.Preferences{{key: "typed"}},
			wantValue: "typed",
		},
		{
			name:      "apply defaults",
			posted:    url.Values{key: {"typed"}, model.ActionField: {model.ActionDefaults}},
			wantValue: "Default value",
		},
		{
			name:       "cancel",
			posted:     url.Values{key: {"typed"}, model.ActionField: {model.ActionCancel}},
			wantCloses: 1,
			wantValue:  "typed",
		},
		{
			name:      "hidden and unknown inputs",
			posted:    url.Values{key: {"v"}, "atl_token": {"t"}, "other": {"o"}},
			wantSaved: []prefs.Preferences{{key: "v"}},
			wantValue: "v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testsupport.NewRecordingHost()
			item := newItem(t, h, dashboarditem.WithHiddenFields(render.XSRFToken("atl_token", "t")))
			form := openForm(t, item, host.NewBuffer(nil), prefs.Preferences{key: "x"})

			if err := form.Submit(context.Background(), tt.posted); err != nil {
				t.Fatalf("submit: %v", err)
			}
			if diff := cmp.Diff(tt.wantSaved, h.Saved()); diff != "" {
				t.Fatalf("saved mismatch (-want +got):\n%s", diff)
			}
			if got := h.Count(testsupport.CallCloseEdit); got != tt.wantCloses {
				t.Fatalf("expected %d closeEdit calls, got %d", tt.wantCloses, got)
			}
			if got, _ := form.Value(key); got != tt.wantValue {
				t.Fatalf("expected input %q, got %q", tt.wantValue, got)
			}
		})
	}
}

func TestEditForm_SubmitUnknownAction(t *testing.T) {
	item := newItem(t, testsupport.NewRecordingHost())
	form := openForm(t, item, host.NewBuffer(nil), nil)

	err := form.Submit(context.Background(), url.Values{model.ActionField: {"publish"}})
	if !errors.Is(err, dashboarditem.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestSaveFromView_SkipsNextRender(t *testing.T) {
	h := testsupport.NewRecordingHost()
	mount := host.NewBuffer(nil)
	item := newItem(t, h)
	ctx := context.Background()

	if err := item.SaveFromView(ctx, prefs.Preferences{key: "from view"}); err != nil {
		t.Fatalf("save from view: %v", err)
	}
	if err := item.Render(ctx, mount, prefs.Preferences{key: "from view"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if mount.Mounts() != 0 {
		t.Fatalf("expected first render skipped")
	}
	if got := item.Preferences().String(prefs.ExampleInput); got != "from view" {
		t.Fatalf("expected preferences remembered, got %q", got)
	}

	if err := item.Render(ctx, mount, prefs.Preferences{key: "from view"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if mount.Mounts() != 1 {
		t.Fatalf("expected second render to mount")
	}
}

func TestSaveFromView_FailureClearsFlag(t *testing.T) {
	h := testsupport.NewRecordingHost()
	h.SaveErr = errors.New("offline")
	mount := host.NewBuffer(nil)
	item := newItem(t, h)

	if err := item.SaveFromView(context.Background(), prefs.Preferences{key: "v"}); err == nil {
		t.Fatalf("expected save error")
	}
	if err := item.Render(context.Background(), mount, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if mount.Mounts() != 1 {
		t.Fatalf("expected render after failed save to mount")
	}
}

func TestSearchURL(t *testing.T) {
	item := newItem(t, testsupport.NewRecordingHost(), dashboarditem.WithContextPath("https://jira.example.com/ctx/"))
	if got, want := item.SearchURL(), "https://jira.example.com/ctx/rest/api/2/search"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     int
}

func (s *stubThemeSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls++
	return s.selection, s.err
}

func TestWithThemeSelector(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#123456", "surface": "#fff"},
			Assets: theme.Assets{
				Prefix: "/static",
				Files:  map[string]string{"dashboarditem.stylesheet": "item.css"},
			},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"surface": "#000"}},
			},
		},
	}}

	mount := host.NewBuffer(nil)
	item := newItem(t, testsupport.NewRecordingHost(), dashboarditem.WithThemeSelector(selector, "acme", "dark"))
	if selector.calls != 1 {
		t.Fatalf("expected selector called once, got %d", selector.calls)
	}

	cfg := item.Theme()
	if cfg == nil {
		t.Fatalf("expected theme config")
	}
	wantVars := map[string]string{"--brand": "#123456", "--surface": "#000"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("dashboarditem.stylesheet"); got != "/static/item.css" {
		t.Fatalf("unexpected asset url %q", got)
	}

	if err := item.Render(context.Background(), mount, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := mount.String()
	for _, fragment := range []string{`--brand: #123456; --surface: #000;`, `href="/static/item.css"`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("view missing %q:\n%s", fragment, out)
		}
	}
}

func TestWithThemeSelector_Error(t *testing.T) {
	selectErr := errors.New("no such theme")
	_, err := dashboarditem.New(testsupport.NewRecordingHost(),
		dashboarditem.WithThemeSelector(&stubThemeSelector{err: selectErr}, "missing", ""))
	if !errors.Is(err, selectErr) {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func newThemeRegistry(t *testing.T) *theme.MemoryRegistry {
	t.Helper()
	acme := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Assets: theme.Assets{
			Prefix: "/assets/acme",
			Files:  map[string]string{"dashboarditem.stylesheet": "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{
					Prefix: "/assets/acme/dark",
					Files:  map[string]string{"vendor": "vendor.dark.js"},
				},
			},
		},
	}
	plain := &theme.Manifest{Name: "plain", Version: "1.0.0"}
	registry, err := dashboarditem.NewThemeRegistry(acme, nil, plain)
	if err != nil {
		t.Fatalf("theme registry: %v", err)
	}
	return registry
}

func TestWithThemeProvider(t *testing.T) {
	item := newItem(t, testsupport.NewRecordingHost(),
		dashboarditem.WithThemeProvider(newThemeRegistry(t), "acme", "dark"))

	cfg := item.Theme()
	if cfg == nil {
		t.Fatalf("expected theme config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Tokens["brand"]; got != "#654321" {
		t.Fatalf("expected variant token, got %q", got)
	}
	if got := cfg.AssetURL("vendor"); got != "/assets/acme/dark/vendor.dark.js" {
		t.Fatalf("unexpected variant asset url %q", got)
	}
}

func TestWithThemeProvider_VariantKeepsBaseAssetPrefix(t *testing.T) {
	mount := host.NewBuffer(nil)
	item := newItem(t, testsupport.NewRecordingHost(),
		dashboarditem.WithThemeProvider(newThemeRegistry(t), "acme", "dark"))

	if got := item.Theme().AssetURL("dashboarditem.stylesheet"); got != "/assets/acme/theme.css" {
		t.Fatalf("expected base prefix for base asset, got %q", got)
	}
	if err := item.Render(context.Background(), mount, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if out := mount.String(); !strings.Contains(out, `href="/assets/acme/theme.css"`) {
		t.Fatalf("view missing base stylesheet link:\n%s", out)
	}
}

func TestWithThemeProvider_UnknownVariant(t *testing.T) {
	item := newItem(t, testsupport.NewRecordingHost(),
		dashboarditem.WithThemeProvider(newThemeRegistry(t), "acme", "sepia"))
	if got := item.Theme().Tokens["brand"]; got != "#123456" {
		t.Fatalf("expected base token, got %q", got)
	}
}

func TestWithThemeProvider_UnknownTheme(t *testing.T) {
	_, err := dashboarditem.New(testsupport.NewRecordingHost(),
		dashboarditem.WithThemeProvider(newThemeRegistry(t), "missing", ""))
	if !errors.Is(err, theme.ErrThemeNotFound) {
		t.Fatalf("expected theme.ErrThemeNotFound, got %v", err)
	}
}

func TestNewThemeRegistry_InvalidManifest(t *testing.T) {
	if _, err := dashboarditem.NewThemeRegistry(&theme.Manifest{Name: "noversion"}); err == nil {
		t.Fatalf("expected validation error")
	}
}
