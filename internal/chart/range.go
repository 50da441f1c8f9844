package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/launchdash/internal/launch"
)

// ErrCodeInvalidRange is the error code carried by RangeError.
const ErrCodeInvalidRange = "E201"

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// FullRange returns the range spanning the dataset's payload bounds.
func FullRange(b launch.Bounds) PayloadRange {
	return PayloadRange{Low: b.MinPayload, High: b.MaxPayload}
}

// Validate returns a *RangeError if the range is inverted or a bound is NaN.
// A degenerate range (Low == High) is valid.
func (r PayloadRange) Validate() error {
	if math.IsNaN(r.Low) || math.IsNaN(r.High) {
		return &RangeError{Range: r, Message: "range bounds must be numbers"}
	}
	if r.Low > r.High {
		return &RangeError{Range: r, Message: "low bound exceeds high bound"}
	}
	return nil
}

// Contains reports whether mass lies within the range, inclusive at both ends.
func (r PayloadRange) Contains(mass float64) bool {
	return r.Low <= mass && mass <= r.High
}

// Within reports whether r lies inside outer.
func (r PayloadRange) Within(outer PayloadRange) bool {
	return outer.Low <= r.Low && r.High <= outer.High
}

func (r PayloadRange) String() string {
	return fmt.Sprintf("[%g, %g]", r.Low, r.High)
}

// RangeError reports a malformed payload range.
type RangeError struct {
	Range   PayloadRange
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: invalid payload range %s: %s", ErrCodeInvalidRange, e.Range, e.Message)
}

// IsRangeError returns true if err is or wraps a *RangeError.
func IsRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}
