package extraction

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Models do not always honor the declared types. The flex types below decode
// whatever JSON value arrives and coerce it the way the rest of the pipeline
// expects, so one odd field never costs a whole record.

// FlexNumber decodes a number or a numeric string. Anything else is 0.
type FlexNumber float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*n = 0
		return nil
	}
	switch val := v.(type) {
	case float64:
		*n = FlexNumber(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			f = 0
		}
		*n = FlexNumber(f)
	default:
		*n = 0
	}
	return nil
}

// FlexString decodes a string, or renders numbers and booleans as text.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	switch val := v.(type) {
	case string:
		*s = FlexString(val)
	case float64:
		*s = FlexString(strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		*s = FlexString(strconv.FormatBool(val))
	default:
		*s = ""
	}
	return nil
}

// FlexBool decodes a boolean, a yes/no string or a number.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*b = false
		return nil
	}
	switch val := v.(type) {
	case bool:
		*b = FlexBool(val)
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "si", "sí", "yes", "1":
			*b = true
		default:
			*b = false
		}
	case float64:
		*b = val != 0
	default:
		*b = false
	}
	return nil
}

// FlexStrings decodes a list of strings; a single string becomes a one-element list.
type FlexStrings []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *FlexStrings) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []FlexString
		if err := json.Unmarshal(trimmed, &items); err != nil {
			*l = nil
			return nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, string(item))
		}
		*l = out
		return nil
	}

	var single FlexString
	_ = single.UnmarshalJSON(trimmed)
	if single == "" {
		*l = nil
		return nil
	}
	*l = FlexStrings{string(single)}
	return nil
}
