package config

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the shape of a configuration value.
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindArray
	KindTable
	KindDatetime
)

var kindNames = [...]string{
	KindUnknown:  "unknown",
	KindString:   "string",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindBoolean:  "boolean",
	KindArray:    "array",
	KindTable:    "table",
	KindDatetime: "datetime",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindOf reports the Kind of a normalized configuration value.
func KindOf(v any) Kind {
	switch v.(type) {
	case string:
		return KindString
	case int64:
		return KindInteger
	case float64:
		return KindFloat
	case bool:
		return KindBoolean
	case []any:
		return KindArray
	case map[string]any:
		return KindTable
	case time.Time:
		return KindDatetime
	default:
		return KindUnknown
	}
}

// KindError reports a key holding a value of the wrong kind. Element is set
// when the mismatch is inside an array.
type KindError struct {
	Key     string
	Want    []Kind
	Got     Kind
	Element bool
}

func (e *KindError) Error() string {
	want := make([]string, len(e.Want))
	for i, k := range e.Want {
		want[i] = k.String()
	}
	what := "value"
	if e.Element {
		what = "array element"
	}
	return fmt.Sprintf("%s: %s must be %s, got %s", e.Key, what, strings.Join(want, " or "), e.Got)
}

// KeyError attaches the offending key to a value that failed to parse.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return e.Key + ": " + e.Err.Error()
}

func (e *KeyError) Unwrap() error {
	return e.Err
}
