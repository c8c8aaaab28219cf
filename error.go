package ofdvalidator

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Level represents the severity of a validation finding.
type Level int

const (
	// LevelError marks a finding that makes the dataset invalid.
	LevelError Level = iota
	// LevelWarning marks a finding that should be reviewed but does not
	// make the dataset invalid.
	LevelWarning
)

// String returns the wire representation of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// MarshalJSON serializes the level as the literal "ERROR" or "WARNING".
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts the wire literals produced by MarshalJSON.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "ERROR":
		*l = LevelError
	case "WARNING":
		*l = LevelWarning
	default:
		return fmt.Errorf("unknown validation level %q", s)
	}
	return nil
}

// ValidationError is a single validation finding. It is immutable once
// constructed.
type ValidationError struct {
	Level    Level  `json:"level"`
	Category string `json:"category"`
	Message  string `json:"message"`
	// Path locates the file or directory the finding refers to. Empty when
	// the finding is not tied to one location.
	Path string `json:"path,omitempty"`
}

// NewError builds an Error-level finding.
func NewError(category, message, path string) ValidationError {
	return ValidationError{Level: LevelError, Category: category, Message: message, Path: path}
}

// NewWarning builds a Warning-level finding.
func NewWarning(category, message, path string) ValidationError {
	return ValidationError{Level: LevelWarning, Category: category, Message: message, Path: path}
}

// Errorf builds an Error-level finding with a formatted message.
func Errorf(category, path, format string, args ...any) ValidationError {
	return NewError(category, fmt.Sprintf(format, args...), path)
}

// Warningf builds a Warning-level finding with a formatted message.
func Warningf(category, path, format string, args ...any) ValidationError {
	return NewWarning(category, fmt.Sprintf(format, args...), path)
}

// IsError reports whether the finding is Error-level.
func (e ValidationError) IsError() bool {
	return e.Level == LevelError
}

// String renders the finding in the report form
// "LEVEL - Category: Message [path]".
func (e ValidationError) String() string {
	if e.Path != "" {
		return fmt.Sprintf("%s - %s: %s [%s]", e.Level, e.Category, e.Message, e.Path)
	}
	return fmt.Sprintf("%s - %s: %s", e.Level, e.Category, e.Message)
}
