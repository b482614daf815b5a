package pace

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InvalidTimeMessage is shown to the user when a non-empty input cannot be parsed.
const InvalidTimeMessage = "Invalid time."

// Domain errors
var (
	ErrNoInput       = errors.New("no time entered")
	ErrInvalidFormat = errors.New("invalid time format")
)

// ParseDuration validates a race time and returns it as whole seconds.
// Only M:SS and MM:SS are accepted; minutes and seconds must both be in [0,59].
// PRE: none
// POST: Returns ErrNoInput for "", an error wrapping ErrInvalidFormat for anything
// the validator rejects, otherwise 60*minutes + seconds
func ParseDuration(text string) (int, error) {
	if text == "" {
		return 0, ErrNoInput
	}

	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: expected M:SS or MM:SS, got %d part(s)", ErrInvalidFormat, len(parts))
	}

	minutes, err := parseField(parts[0], 1, 2)
	if err != nil {
		return 0, fmt.Errorf("%w: minutes: %v", ErrInvalidFormat, err)
	}
	seconds, err := parseField(parts[1], 2, 2)
	if err != nil {
		return 0, fmt.Errorf("%w: seconds: %v", ErrInvalidFormat, err)
	}

	return minutes*60 + seconds, nil
}

// IsValidTime reports whether text is an accepted race time (M:SS or MM:SS).
// Three-part H:MM:SS strings are rejected even though TimeStringToSeconds can convert them.
func IsValidTime(text string) bool {
	_, err := ParseDuration(text)
	return err == nil
}

// parseField parses a clock field of minDigits..maxDigits ASCII digits with value in [0,59].
func parseField(field string, minDigits, maxDigits int) (int, error) {
	if len(field) < minDigits || len(field) > maxDigits {
		return 0, fmt.Errorf("%q must have %d-%d digits", field, minDigits, maxDigits)
	}
	n := 0
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%q is not a number", field)
		}
		n = n*10 + int(c-'0')
	}
	if n > 59 {
		return 0, fmt.Errorf("%q is out of range [0,59]", field)
	}
	return n, nil
}

// TimeStringToSeconds converts "M:SS" or "H:MM:SS" to seconds without range checks.
//
//	TimeStringToSeconds("15:32")   => 932
//	TimeStringToSeconds("1:02:58") => 3778
//	TimeStringToSeconds("0:01")    => 1
//
// PRE: text has 2 or 3 colon-separated non-negative integers
// POST: Returns the total seconds, or an error if a part is not a non-negative integer
func TimeStringToSeconds(text string) (int, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: expected 2 or 3 parts, got %d", ErrInvalidFormat, len(parts))
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidFormat, p)
		}
		total = total*60 + int(n)
	}
	return total, nil
}

// FormatDuration renders seconds as "M:SS", or "H:MM:SS" once there is at least one hour.
// Fractional input is rounded to the nearest second first.
//
//	FormatDuration(58)   => "0:58"
//	FormatDuration(642)  => "10:42"
//	FormatDuration(3778) => "1:02:58"
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := math.Round(seconds)

	// math.Mod is exact, so the clock fields stay correct past the int64 range.
	rem := math.Mod(total, 3600)
	secs := int(math.Mod(rem, 60))
	minutes := int(rem / 60)
	hours := math.Floor((total - rem) / 3600)

	if hours > 0 {
		return fmt.Sprintf("%s:%02d:%02d", strconv.FormatFloat(hours, 'f', 0, 64), minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
