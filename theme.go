package compass

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg int // User message accent
	Typing  int // Typing indicator
	Phase   int // Active phase in the tracker
	Crisis  int // Crisis modal border and header
	Error   int // Error messages
	Success int // Summary and completion accents
	Muted   int // Status bar, placeholders, inactive phases
	Accent  int // Headings, ritual selector highlight
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		Typing:  8,
		Phase:   6,
		Crisis:  1,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  5,
	}
}
