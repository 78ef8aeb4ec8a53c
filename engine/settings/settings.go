package settings

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Key is the Redis key the settings array lives under.
const Key = "settings"

// ErrBadFormat marks a stored value that cannot be parsed as an integer
// array. Callers report it distinctly from a missing key.
var ErrBadFormat = errors.New("settings: value is not an integer array")

// Array is the ordered sequence of relay durations in seconds. The
// canonical pattern holds the default duration in every slot except the
// last, which holds the closing value.
type Array []int

// Build constructs the canonical settings pattern: size-1 leading elements
// of defaultValue followed by one lastValue.
func Build(defaultValue, lastValue, size int) Array {
	arr := make(Array, size)
	for i := range size - 1 {
		arr[i] = defaultValue
	}
	arr[size-1] = lastValue
	return arr
}

// Uniform constructs an array holding the same duration in every slot.
// Used by the semi-auto command for short supervised runs.
func Uniform(value, size int) Array {
	arr := make(Array, size)
	for i := range arr {
		arr[i] = value
	}
	return arr
}

// Encode serializes the array to its stored textual form, a JSON list of
// integers such as [3600,3600,3600,3600,3600,3600,3600,0].
func (a Array) Encode() (string, error) {
	data, err := json.Marshal([]int(a))
	if err != nil {
		return "", fmt.Errorf("encoding settings array: %w", err)
	}
	return string(data), nil
}

// Decode parses the stored textual form back into an array.
func Decode(raw string) (Array, error) {
	var arr []int
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadFormat, err)
	}
	return Array(arr), nil
}

// Equal reports element-for-element equality.
func (a Array) Equal(b Array) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Check holds the two per-element verdicts computed against the expected
// pattern. A wrong-length array fails both.
type Check struct {
	AllDefault  bool
	LastMatches bool
}

// Matches is the combined verdict: true iff both per-element checks hold.
func (c Check) Matches() bool {
	return c.AllDefault && c.LastMatches
}

// Validate computes the verdicts for a against the configured pattern.
func (a Array) Validate(defaultValue, lastValue, size int) Check {
	var c Check
	if len(a) != size {
		return c
	}
	c.AllDefault = true
	for _, v := range a[:size-1] {
		if v != defaultValue {
			c.AllDefault = false
			break
		}
	}
	c.LastMatches = a[size-1] == lastValue
	return c
}
