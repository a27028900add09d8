package modes

import "fmt"

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	}
	return "unknown"
}

// ParseMode accepts the String forms and their first letters. Empty means production.
func ParseMode(str string) (Mode, error) {
	switch str {
	case "", "production", "p":
		return ModeProduction, nil
	case "development", "dev", "d":
		return ModeDevelopment, nil
	}
	return 0, fmt.Errorf("unknown mode: %q", str)
}
