package components

import (
	"fmt"
	"strings"
)

// Kind is the cyclic type an entity carries.
type Kind uint8

const (
	Rock     Kind = iota // beats Scissors
	Paper                // beats Rock
	Scissors             // beats Paper

	numKinds
)

// NumKinds is the number of defined kinds.
const NumKinds = int(numKinds)

// Kinds lists every kind in declaration order.
var Kinds = [NumKinds]Kind{Rock, Paper, Scissors}

var kindNames = [NumKinds]string{"rock", "paper", "scissors"}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Title returns the capitalized name, used for display.
func (k Kind) Title() string {
	s := k.String()
	if !k.Valid() {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseKind converts a lowercase name back to a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler so kinds appear by name in CSV and YAML.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
