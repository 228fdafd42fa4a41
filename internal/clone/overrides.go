package clone

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Override is a tri-state slot: either unset, or explicitly set to a value,
// including the type's zero value. The zero Override is unset. An explicit
// false, zero or empty value must never collapse back into unset.
type Override[T any] struct {
	value T
	set   bool
}

// Explicit builds a set Override carrying v.
func Explicit[T any](v T) Override[T] {
	return Override[T]{value: v, set: true}
}

// IsSet reports whether the slot carries an explicit value.
func (o Override[T]) IsSet() bool { return o.set }

// Or returns the explicit value when set, otherwise the fallback.
func (o Override[T]) Or(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}

// Value returns the explicit value and whether the slot was set.
func (o Override[T]) Value() (T, bool) { return o.value, o.set }

// OverrideSet holds one slot per LaunchTemplate field except the name. The
// new name is always mandatory and carried separately. An OverrideSet is
// built once from CLI input and never mutated afterwards.
type OverrideSet struct {
	ImageID             Override[string]
	KeyName             Override[string]
	SecurityGroups      Override[[]string]
	UserData            Override[[]byte]
	InstanceType        Override[string]
	InstanceMonitoring  Override[bool]
	SpotPrice           Override[float64]
	InstanceProfileName Override[string]
	EBSOptimized        Override[bool]
	AssociatePublicIP   Override[bool]
}

// ReadUserDataScript loads the file at path into a user-data override. A
// missing or unreadable file is an input error, reported before any network
// activity happens.
func ReadUserDataScript(path string) (Override[[]byte], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Override[[]byte]{}, fmt.Errorf("%w: file not found: %s", ErrInput, path)
	}
	return Explicit(data), nil
}

// ParseSpotPrice parses a spot price override. Only finite, non-negative
// values are accepted.
func ParseSpotPrice(raw string) (Override[float64], error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return Override[float64]{}, fmt.Errorf("%w: invalid spot price %q", ErrInput, raw)
	}
	return Explicit(price), nil
}

// SecurityGroupsOverride builds the security-group override. Overriding with
// an empty set is rejected here rather than left for the backend.
func SecurityGroupsOverride(groups []string) (Override[[]string], error) {
	if len(groups) == 0 {
		return Override[[]string]{}, fmt.Errorf("%w: security group override must name at least one group", ErrInput)
	}
	for _, g := range groups {
		if g == "" {
			return Override[[]string]{}, fmt.Errorf("%w: security group name must not be empty", ErrInput)
		}
	}
	return Explicit(groups), nil
}
