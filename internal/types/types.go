package types

import (
	"fmt"
	"go/token"
	"strings"
)

// Severity is how serious an issue is.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "ERROR":
		*s = SeverityError
	case "WARNING":
		*s = SeverityWarning
	case "INFO":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Issue represents a problem found in a stylesheet.
type Issue struct {
	Rule     string
	Category string
	Filename string
	Message  string
	Note     string
	Start    token.Position
	End      token.Position
	Severity Severity
}
