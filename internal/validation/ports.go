package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Valid TCP port range for dev-server and HMR ports
	PortMin = 1
	PortMax = 65535
)

// digitsRe matches an unsigned decimal integer with optional surrounding space.
var digitsRe = regexp.MustCompile(`^\s*[0-9]+\s*$`)

// ParsePort converts a raw port value to an int in [PortMin, PortMax].
// Accepted shapes:
//   - integers (int, int64, uint64, ...)
//   - float64 with no fractional part (JSON numbers)
//   - decimal digit strings ("3000"), as produced by environment overrides
//
// Anything else, including "3000.5", "0x50" and "http", is ambiguous and rejected.
func ParsePort(raw any) (int, error) {
	var n int64
	switch v := raw.(type) {
	case string:
		if !digitsRe.MatchString(v) {
			return 0, fmt.Errorf("port must be numeric, got %q", v)
		}
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("port %q is out of range %d-%d", v, PortMin, PortMax)
		}
		n = parsed
	default:
		i, ok := integral(raw)
		if !ok {
			return 0, fmt.Errorf("port must be an integer, got %v (%T)", raw, raw)
		}
		n = i
	}
	if n < PortMin || n > PortMax {
		return 0, fmt.Errorf("port %d is out of range %d-%d", n, PortMin, PortMax)
	}
	return int(n), nil
}

// NonNegativeInt converts a raw numeric value to a non-negative int.
// Strings are not accepted.
func NonNegativeInt(raw any) (int, error) {
	n, ok := integral(raw)
	if !ok {
		return 0, fmt.Errorf("must be an integer, got %v (%T)", raw, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("must be >= 0, got %d", n)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("must be <= %d, got %d", math.MaxInt32, n)
	}
	return int(n), nil
}

// integral reports the integer value of raw when raw is a whole number.
func integral(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return clampUint(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return clampUint(v)
	case float32:
		return wholeFloat(float64(v))
	case float64:
		return wholeFloat(v)
	default:
		return 0, false
	}
}

func clampUint(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(v), true
}

func wholeFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
