package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Verbosity is the logging severity attached to a command.
type Verbosity int

const (
	Debug Verbosity = iota
	Info
	Warn
	Error
	Fatal
)

var verbosityNames = map[string]Verbosity{
	"debug": Debug,
	"info":  Info,
	"warn":  Warn,
	"error": Error,
	"fatal": Fatal,
}

func (v Verbosity) String() string {
	switch v {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return fmt.Sprintf("VERBOSITY(%d)", int(v))
	}
}

// ParseVerbosity resolves a numeric level or a symbolic name (any case) to a
// Verbosity. The empty string resolves to Info. Anything else is an error so
// typos fail at construction rather than silently defaulting.
func ParseVerbosity(s string) (Verbosity, error) {
	if s == "" {
		return Info, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < int(Debug) || n > int(Fatal) {
			return 0, fmt.Errorf("verbosity level out of range: %d", n)
		}
		return Verbosity(n), nil
	}

	if v, ok := verbosityNames[strings.ToLower(s)]; ok {
		return v, nil
	}

	return 0, fmt.Errorf("unknown verbosity: %q", s)
}
