package command

import (
	"fmt"
	"strings"
)

// Environment is an ordered list of environment variables. Keys are
// case-insensitive and normalized to upper case; an override keeps the
// position of the key it replaces while new keys are appended at the end.
type Environment []Variable

// Variable is a single KEY=value entry.
type Variable struct {
	Key   string
	Value string
}

// NewEnvironment builds an Environment from KEY=value entries, preserving
// their order. Entries without an "=" produce an empty value.
func NewEnvironment(environ ...string) Environment {
	var out Environment

	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out = out.Set(key, value)
	}

	return out
}

// Set assigns key to value and returns the updated Environment. If the
// upper-cased key already exists its value is replaced in place, otherwise
// the entry is appended.
func (e Environment) Set(key, value string) Environment {
	key = strings.ToUpper(key)
	for i := range e {
		if e[i].Key == key {
			e[i].Value = value
			return e
		}
	}
	return append(e, Variable{Key: key, Value: value})
}

// Get returns the value for the upper-cased key and whether it was present.
func (e Environment) Get(key string) (string, bool) {
	key = strings.ToUpper(key)
	for i := range e {
		if e[i].Key == key {
			return e[i].Value, true
		}
	}
	return "", false
}

// Merge overlays other on top of e into a new Environment. Neither receiver
// nor argument is modified.
func (e Environment) Merge(other Environment) Environment {
	merged := make(Environment, len(e), len(e)+len(other))
	copy(merged, e)
	for _, v := range other {
		merged = merged.Set(v.Key, v.Value)
	}
	return merged
}

// String renders the entries as space-joined KEY=value pairs. Values are
// interpolated literally, callers are responsible for pre-sanitizing them.
func (e Environment) String() string {
	pairs := make([]string, 0, len(e))
	for _, v := range e {
		pairs = append(pairs, fmt.Sprintf("%s=%s", v.Key, v.Value))
	}
	return strings.Join(pairs, " ")
}
