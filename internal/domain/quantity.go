package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity is a count entered by hand. It decodes from a JSON number or
// string and never fails: the leading integer is kept ("12 kg" is 12,
// "3.7" is 3) and anything without one is 0.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*q = 0
			return nil
		}
		*q = ParseQuantity(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*q = 0
		return nil
	}
	*q = fromFloat(f)
	return nil
}

// ParseQuantity extracts the leading integer from s.
func ParseQuantity(s string) Quantity {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return Quantity(n)
}

func fromFloat(f float64) Quantity {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32*1e6 || f < -math.MaxInt32*1e6 {
		return 0
	}
	return Quantity(math.Trunc(f))
}

func (q Quantity) Int() int { return int(q) }
