package runconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/edirooss/runcc/internal/fleet"
)

// ParseKillBehaviorString parses the grammar accepted by the CLI's
// -k/--kill flag: "None", "WhenAnyExited", "WhenAnySucceeded",
// "WhenAnyFailed", or a bare integer status code. It decodes through
// YAML so the same scalar-parsing rules govern both this flag and any
// "kill" field found in a config file.
func ParseKillBehaviorString(s string) (fleet.KillBehavior, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return fleet.KillBehavior{}, fmt.Errorf("%w: %q", ErrInvalidKillBehavior, s)
	}
	return parseKillBehavior(v)
}

// parseKillBehavior interprets a decoded config value (string, int, or
// absent) as a fleet.KillBehavior.
func parseKillBehavior(v any) (fleet.KillBehavior, error) {
	switch t := v.(type) {
	case nil:
		return fleet.KillBehavior{Kind: fleet.KillNone}, nil
	case string:
		switch t {
		case "None":
			return fleet.KillBehavior{Kind: fleet.KillNone}, nil
		case "WhenAnyExited":
			return fleet.KillBehavior{Kind: fleet.KillWhenAnyExited}, nil
		case "WhenAnySucceeded":
			return fleet.KillBehavior{
				Kind:    fleet.KillWhenAnyExitedWithStatus,
				Pattern: fleet.ExitStatusPattern{Kind: fleet.ExitStatusSuccess},
			}, nil
		case "WhenAnyFailed":
			return fleet.KillBehavior{
				Kind:    fleet.KillWhenAnyExitedWithStatus,
				Pattern: fleet.ExitStatusPattern{Kind: fleet.ExitStatusFailed},
			}, nil
		default:
			return fleet.KillBehavior{}, fmt.Errorf("%w: %q", ErrInvalidKillBehavior, t)
		}
	default:
		if code, ok := asInt(v); ok {
			return fleet.KillBehavior{
				Kind:    fleet.KillWhenAnyExitedWithStatus,
				Pattern: fleet.ExitStatusPattern{Kind: fleet.ExitStatusCode, Code: code},
			}, nil
		}
		return fleet.KillBehavior{}, fmt.Errorf("%w: %v", ErrInvalidKillBehavior, v)
	}
}
