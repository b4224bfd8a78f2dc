package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean that also accepts numbers and quoted forms, as sent by form-based clients.
// A value is set when it is true or numerically equal to 1; any other scalar is unset.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("invalid boolean value %s", b)
	}
	switch b[0] {
	case '{', '[':
		return fmt.Errorf("invalid boolean value %s", b)
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("invalid boolean value %s: %w", b, err)
		}
		*f = Flag(looseTrue(s))
	case 't', 'f', 'n':
		var v *bool
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("invalid boolean value %s: %w", b, err)
		}
		*f = Flag(v != nil && *v)
	default:
		n, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("invalid boolean value %s: %w", b, err)
		}
		*f = n == 1
	}
	return nil
}

func looseTrue(s string) bool {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "true") {
		return true
	}
	n, err := strconv.ParseFloat(s, 64)
	return err == nil && n == 1
}

// IsSet reports whether f is present and true.
func (f *Flag) IsSet() bool {
	return f != nil && bool(*f)
}
