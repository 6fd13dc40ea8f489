package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dashboarditem/pkg/dashboarditem"
	"github.com/goliatone/go-dashboarditem/pkg/host"
	"github.com/goliatone/go-dashboarditem/pkg/host/filehost"
	"github.com/goliatone/go-dashboarditem/pkg/prefs"
	"github.com/goliatone/go-dashboarditem/pkg/render"
	"github.com/goliatone/go-dashboarditem/pkg/renderers/tui"
	"github.com/goliatone/go-dashboarditem/pkg/renderers/vanilla"
)

// app wires one dashboard item to a preference file for a single command.
type app struct {
	cfg      *Config
	logger   *slog.Logger
	host     *filehost.Host
	item     *dashboarditem.Item
	mount    *host.Buffer
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dashboarditem",
		Short:         "Render and edit the hello dashboard item locally",
		Long:          `Drive the hello dashboard item against a YAML preference file, the way a dashboard host would.`,
		SilenceUsage:  true,
	}
	registerConfigFlags(root.PersistentFlags())

	root.AddCommand(newRenderCmd(), newEditCmd(), newDefaultsCmd())
	return root
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// newApp loads configuration and constructs the item. Mounted markup is
// written to out, one fragment per mount.
func newApp(cmd *cobra.Command, out io.Writer) (*app, error) {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := setupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, closeLog: closeLog}
	if err := a.build(out); err != nil {
		_ = closeLog()
		return nil, err
	}
	return a, nil
}

func (a *app) build(out io.Writer) error {
	fileHost, err := filehost.New(a.cfg.PrefsFile,
		filehost.WithEditable(a.cfg.Editable),
		filehost.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	htmlRenderer, err := vanilla.New()
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(htmlRenderer, tui.NewRenderer(tui.Theme{}))
	if err != nil {
		return err
	}
	renderer, err := registry.Get(a.cfg.Renderer)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, registry.List())
	}

	options := []dashboarditem.Option{
		dashboarditem.WithLogger(a.logger),
		dashboarditem.WithRenderer(renderer),
		dashboarditem.WithOrigin(a.cfg.Origin),
		dashboarditem.WithContextPath(a.cfg.ContextPath),
	}
	if a.cfg.SchemaFile != "" {
		catalog, err := loadCatalogFile(a.cfg.SchemaFile)
		if err != nil {
			return err
		}
		options = append(options, dashboarditem.WithCatalog(catalog))
	}
	if a.cfg.ThemeFile != "" {
		manifest, err := loadThemeManifest(a.cfg.ThemeFile)
		if err != nil {
			return err
		}
		registry, err := dashboarditem.NewThemeRegistry(manifest)
		if err != nil {
			return err
		}
		name := a.cfg.Theme
		if name == "" {
			name = manifest.Name
		}
		options = append(options, dashboarditem.WithThemeProvider(registry, name, a.cfg.ThemeVariant))
	}

	item, err := dashboarditem.New(fileHost, options...)
	if err != nil {
		return err
	}

	a.host = fileHost
	a.item = item
	a.mount = host.NewBuffer(func(markup []byte) {
		fmt.Fprintln(out, string(markup))
	})
	return nil
}

func loadCatalogFile(path string) (*prefs.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return prefs.LoadCatalog(context.Background(), raw)
}

func (a *app) Close() error {
	return a.closeLog()
}
