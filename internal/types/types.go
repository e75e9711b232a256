package types

import (
	"fmt"
	"strings"

	"github.com/cairoverse/clin/syntax"
)

// Severity is the reporting level of a diagnostic. Rules default to
// SeverityWarning; configuration may raise, lower, or disable them.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	}
	return "UNKNOWN"
}

// MarshalJSON renders the severity as its name rather than a number.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// MarshalYAML writes the lowercase name so that generated
// configuration files read back through UnmarshalYAML.
func (s Severity) MarshalYAML() (interface{}, error) {
	return strings.ToLower(s.String()), nil
}

// UnmarshalYAML accepts the severity names used in config files,
// case-insensitively: error, warning, info, off.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "error":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity %q", raw)
	}
	return nil
}

// ConfigRule is the per-rule block of a configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}

// Diagnostic is one finding a rule reported against a syntax tree.
type Diagnostic struct {
	Rule       string
	Kind       LintKind
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      syntax.Position
	End        syntax.Position
	Severity   Severity
}
