// internal/utils/number.go
package utils

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LooseNumber decodes a JSON number, a numeric string, or null. Anything it cannot read
// leaves it unset instead of failing the whole request.
type LooseNumber struct {
	value float64
	set   bool
}

func NewLooseNumber(f float64) LooseNumber {
	return LooseNumber{value: f, set: true}
}

func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	*n = LooseNumber{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*n = LooseNumber{value: f, set: true}
	return nil
}

func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// IsSet reports whether a usable number was supplied.
func (n LooseNumber) IsSet() bool {
	return n.set
}

// Int truncates toward zero, saturating at the int range; unset is 0.
func (n LooseNumber) Int() int {
	return TruncateInt(n.value)
}

// Float returns nil when unset.
func (n LooseNumber) Float() *float64 {
	if !n.set {
		return nil
	}
	f := n.value
	return &f
}

// TruncateInt converts f toward zero, clamped to [math.MinInt, math.MaxInt]. NaN is 0.
func TruncateInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}
