package vanilla_test

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dashboarditem/pkg/model"
	"github.com/goliatone/go-dashboarditem/pkg/prefs"
	"github.com/goliatone/go-dashboarditem/pkg/render"
	"github.com/goliatone/go-dashboarditem/pkg/renderers/vanilla"
	"github.com/goliatone/go-dashboarditem/pkg/testsupport"
)

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func buildForm(t *testing.T) model.FormModel {
	t.Helper()
	catalog := prefs.DefaultCatalog()
	form, err := model.NewBuilder().Build(catalog, catalog.Defaults(prefs.EnvironmentStandard))
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	return form
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, output)
		}
	}
}

func TestRenderer_RenderView(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.RenderView(context.Background(), model.ViewModel{
		Greeting: "Hello world!",
		Text:     "Hi & bye",
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render view: %v", err)
	}

	assertContains(t, string(out),
		`<div class="dashboard-item-view">`,
		"<p>Hello world!</p>",
		"<p>Hi &amp; bye</p>",
	)
}

func TestRenderer_RenderViewEscapesMarkup(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.RenderView(context.Background(), model.ViewModel{Text: "<script>x</script>"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render view: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("markup not escaped:\n%s", out)
	}
}

func TestRenderer_RenderForm(t *testing.T) {
	renderer := newRenderer(t)
	form := buildForm(t)
	form.Field("exampleInput").Value = `Say "hi"`

	out, err := renderer.RenderForm(context.Background(), form, render.RenderOptions{
		Hidden: map[string]string{"atl_token": "tok"},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}

	assertContains(t, string(out),
		`<form class="aui" id="dashboard-item-config" method="post">`,
		`<input type="hidden" name="atl_token" value="tok">`,
		`<div class="field-group">`,
		`<label for="exampleInput">`,
		"Example input",
		`<span class="aui-icon icon-required">(required)</span>`,
		`name="exampleInput" value="Say &quot;hi&quot;" required>`,
		"A helpful message can go here",
		`class="aui-button aui-button-primary save" name="action" value="save">Save</button>`,
		`class="aui-button defaults" name="action" value="defaults">Apply Defaults</button>`,
		`class="aui-button cancel" name="action" value="cancel">Cancel</button>`,
	)
	if strings.Contains(string(out), "aui-message-error") {
		t.Fatalf("unexpected error block:\n%s", out)
	}
}

func TestRenderer_RenderFormErrors(t *testing.T) {
	renderer := newRenderer(t)
	form := buildForm(t)
	form.Errors = []string{"Could not save preferences."}

	out, err := renderer.RenderForm(context.Background(), form, render.RenderOptions{
		Errors: []string{"Could not save preferences.", "Try again later."},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}

	output := string(out)
	assertContains(t, output, `<div class="aui-message aui-message-error">`, "<p>Try again later.</p>")
	if strings.Count(output, "Could not save preferences.") != 1 {
		t.Fatalf("expected deduplicated error:\n%s", output)
	}
}

func TestRenderer_Theme(t *testing.T) {
	renderer := newRenderer(t)
	cfg := &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		CSSVars: map[string]string{
			"--brand":  "#123456",
			"--accent": "#654321",
			"ignored":  "x",
		},
		AssetURL: func(key string) string {
			return "/themes/acme/" + key
		},
	}

	out, err := renderer.RenderView(context.Background(), model.ViewModel{Text: "x"}, render.RenderOptions{Theme: cfg})
	if err != nil {
		t.Fatalf("render view: %v", err)
	}
	assertContains(t, string(out),
		`style="--accent: #654321; --brand: #123456;"`,
		`<link rel="stylesheet" href="/themes/acme/dashboarditem.stylesheet">`,
	)
}

func TestRenderer_Classes(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithClasses(vanilla.Classes{Form: "aui top-label"}))

	out, err := renderer.RenderForm(context.Background(), buildForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	assertContains(t, string(out), `<form class="aui top-label"`, `<div class="field-group">`)
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{}
	renderer := newRenderer(t, vanilla.WithTemplateRenderer(stub))

	out, err := renderer.RenderView(context.Background(), model.ViewModel{}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render view: %v", err)
	}
	if string(out) != "custom:templates/view.tmpl" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderer_CanceledContext(t *testing.T) {
	renderer := newRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := renderer.RenderForm(ctx, buildForm(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

type stubTemplateRenderer struct{}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	return "custom:" + name, nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(input any, param any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error {
	return nil
}

func TestRenderer_RenderViewGolden(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.RenderView(testsupport.Context(), model.ViewModel{
		Greeting: "Hello world!",
		Text:     "Tom & Jerry",
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render view: %v", err)
	}

	path := filepath.Join("testdata", "view.golden")
	if testsupport.WriteMaybeGolden(t, path, out) {
		return
	}
	want := testsupport.MustReadGolden(t, path)
	if diff := testsupport.CompareGolden(string(want), string(out)); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}
