package cli

import "wptr/internal/config"

// Flags holds command-line flags shared across commands
type Flags struct {
	Parallel     int
	JSONFile     string
	WptReport    string
	NoIgnore     bool
	Quiet        bool
	Expectations bool
}

// ToConfigFlags converts CLI flags plus positional path filters to
// config flags
func (f *Flags) ToConfigFlags(filters []string) config.Flags {
	return config.Flags{
		Parallel:     f.Parallel,
		JSONFile:     f.JSONFile,
		WptReport:    f.WptReport,
		NoIgnore:     f.NoIgnore,
		Quiet:        f.Quiet,
		Expectations: f.Expectations,
		Filters:      filters,
	}
}
