package hover

import (
	"errors"
	"fmt"
)

// Injected holds the inputs the wrapper supplies to the display unit.
type Injected struct {
	IsHovered bool
}

// HasHoverInput is implemented by a display unit's full input type.
type HasHoverInput interface {
	// Hovered returns the hover flag carried by the inputs.
	Hovered() bool
}

// Merger is implemented by caller input types. WithHover builds the full
// input value field by field, with the injected values taking precedence.
type Merger[P HasHoverInput] interface {
	WithHover(Injected) P
}

// ErrInjectionDropped is returned when a Merger produces a full input whose
// hover flag differs from the injected one.
var ErrInjectionDropped = errors.New("hover: merged inputs dropped the injected hover flag")

// Merge completes caller inputs with the injected values and checks that
// the injected flag survived the merge.
func Merge[C Merger[P], P HasHoverInput](caller C, in Injected) (P, error) {
	full := caller.WithHover(in)
	if full.Hovered() != in.IsHovered {
		return full, fmt.Errorf("%w: want %t, got %t (%T)", ErrInjectionDropped, in.IsHovered, full.Hovered(), caller)
	}
	return full, nil
}

// MustMerge is like Merge but panics on error. A failing merge is a bug in
// the Merger implementation, not a runtime condition.
func MustMerge[C Merger[P], P HasHoverInput](caller C, in Injected) P {
	full, err := Merge[C, P](caller, in)
	if err != nil {
		panic(err)
	}
	return full
}
