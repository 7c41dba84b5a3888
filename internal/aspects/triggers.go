package aspects

import (
	"fmt"

	"github.com/spacesedan/aspectflow/internal/models"
)

// Triggers maps each aspect to the substrings that mark it as mentioned.
type Triggers map[models.Aspect][]string

// DefaultTriggers is the built-in trigger table.
func DefaultTriggers() Triggers {
	return Triggers{
		models.AspectFood:       {"food", "pie", "meat", "zaatar", "cheese"},
		models.AspectService:    {"service", "staff", "friendly", "fast"},
		models.AspectAtmosphere: {"atmosphere", "seating", "space"},
		models.AspectPricing:    {"price", "affordable", "expensive", "cash"},
	}
}

// WithOverrides replaces the trigger lists of the named aspects. Names outside
// the fixed aspect set are rejected.
func (t Triggers) WithOverrides(overrides map[string][]string) (Triggers, error) {
	out := make(Triggers, len(t))
	for a, kws := range t {
		out[a] = append([]string(nil), kws...)
	}
	for name, kws := range overrides {
		if !models.IsAspect(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAspect, name)
		}
		out[models.Aspect(name)] = append([]string(nil), kws...)
	}
	return out, nil
}
