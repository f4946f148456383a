package tui

// Theme captures the prefixes used when printing panels. Keep minimal to
// avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	TitlePrefix string
	TitleSuffix string
	ErrorPrefix string
	MaskRune    rune
}

// DefaultTheme is applied when no theme is configured.
func DefaultTheme() Theme {
	return Theme{
		TitlePrefix: "== ",
		TitleSuffix: " ==",
		ErrorPrefix: "  ! ",
		MaskRune:    '*',
	}
}

type settings struct {
	driver      PromptDriver
	theme       Theme
	maxAttempts int
}

// Option configures the text renderer and the interactive session.
type Option func(*settings)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *settings) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies panel prefixes. Zero fields keep their defaults.
func WithTheme(theme Theme) Option {
	return func(s *settings) {
		if theme.TitlePrefix != "" {
			s.theme.TitlePrefix = theme.TitlePrefix
		}
		if theme.TitleSuffix != "" {
			s.theme.TitleSuffix = theme.TitleSuffix
		}
		if theme.ErrorPrefix != "" {
			s.theme.ErrorPrefix = theme.ErrorPrefix
		}
		if theme.MaskRune != 0 {
			s.theme.MaskRune = theme.MaskRune
		}
	}
}

// WithMaxAttempts bounds how many submits the session accepts before giving
// up. Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

func newSettings(options []Option) settings {
	s := settings{theme: DefaultTheme()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}
	return s
}
