package tui

// Theme captures optional message prefixes applied by the renderer and the
// editor.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(e *Editor) {
		e.theme = theme
	}
}
