package models

import "fmt"

// Scriptability describes how scripts may access a property.
type Scriptability uint8

const (
	scriptabilityUnknown Scriptability = iota

	// ScriptabilityNone: scripts can neither read nor write the property.
	ScriptabilityNone
	// ScriptabilityReadWrite: scripts can read and write the property.
	ScriptabilityReadWrite
	// ScriptabilityRead: scripts can only read the property.
	ScriptabilityRead
	// ScriptabilityWrite: scripts can only write the property.
	ScriptabilityWrite
	// ScriptabilityCustom: access goes through special handling, e.g. a
	// property only reachable through methods.
	ScriptabilityCustom
)

var scriptabilityNames = map[Scriptability]string{
	ScriptabilityNone:      "None",
	ScriptabilityReadWrite: "ReadWrite",
	ScriptabilityRead:      "Read",
	ScriptabilityWrite:     "Write",
	ScriptabilityCustom:    "Custom",
}

// Valid reports whether s is one of the named values.
func (s Scriptability) Valid() bool {
	_, ok := scriptabilityNames[s]
	return ok
}

func (s Scriptability) String() string {
	if name, ok := scriptabilityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scriptability(%d)", uint8(s))
}

// ParseScriptability returns the value with the given name.
func ParseScriptability(name string) (Scriptability, error) {
	for s, n := range scriptabilityNames {
		if n == name {
			return s, nil
		}
	}
	return scriptabilityUnknown, fmt.Errorf("unknown scriptability %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scriptability) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot encode %s", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scriptability) UnmarshalText(text []byte) error {
	parsed, err := ParseScriptability(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
