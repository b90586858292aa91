package arg

import (
	"encoding/json"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/keshon/slashery/pkg/option"
)

// The platform accepts integers and doubles in [-2^53, 2^53].
const (
	MaxSafeInteger int64 = 1 << 53
	MinSafeInteger int64 = -(1 << 53)
)

// Snowflake id types carried by entity-reference options.
type (
	UserID        string
	ChannelID     string
	RoleID        string
	MentionableID string
	AttachmentID  string
)

// String decodes a KindString option.
func String() Codec[string] {
	return primitive[string]{kind: option.KindString, coerce: coerceString}
}

// Integer decodes a KindInteger option into an int64.
func Integer() Codec[int64] {
	return primitive[int64]{kind: option.KindInteger, coerce: coerceInteger}
}

// Number decodes a KindNumber option into a float64.
func Number() Codec[float64] {
	return primitive[float64]{kind: option.KindNumber, coerce: coerceNumber}
}

// Boolean decodes a KindBoolean option.
func Boolean() Codec[bool] {
	return primitive[bool]{kind: option.KindBoolean, coerce: func(raw any) (bool, string, bool) {
		b, ok := raw.(bool)
		if !ok {
			return false, "not a boolean", false
		}
		return b, "", true
	}}
}

func User() Codec[UserID]       { return snowflake[UserID](option.KindUser) }
func Channel() Codec[ChannelID] { return snowflake[ChannelID](option.KindChannel) }
func Role() Codec[RoleID]       { return snowflake[RoleID](option.KindRole) }

func Mentionable() Codec[MentionableID] {
	return snowflake[MentionableID](option.KindMentionable)
}

func Attachment() Codec[AttachmentID] {
	return snowflake[AttachmentID](option.KindAttachment)
}

func snowflake[T ~string](kind option.Kind) Codec[T] {
	return primitive[T]{kind: kind, coerce: func(raw any) (T, string, bool) {
		s, ok := raw.(string)
		if !ok {
			return "", "snowflake must be a string", false
		}
		if _, err := strconv.ParseUint(s, 10, 64); err != nil {
			return "", "not a snowflake id", false
		}
		return T(s), "", true
	}}
}

func coerceString(raw any) (string, string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", "not a string", false
	}
	if !utf8.ValidString(s) {
		return "", "not valid UTF-8", false
	}
	return s, "", true
}

func coerceInteger(raw any) (int64, string, bool) {
	var n int64
	switch x := raw.(type) {
	case int64:
		n = x
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return 0, "not an integer", false
		}
		if x < float64(MinSafeInteger) || x > float64(MaxSafeInteger) {
			return 0, "out of range", false
		}
		n = int64(x)
	case json.Number:
		v, err := x.Int64()
		if err != nil {
			return 0, "not an integer", false
		}
		n = v
	default:
		return 0, "not a number", false
	}
	if n < MinSafeInteger || n > MaxSafeInteger {
		return 0, "out of range", false
	}
	return n, "", true
}

func coerceNumber(raw any) (float64, string, bool) {
	var f float64
	switch x := raw.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int64:
		f = float64(x)
	case int:
		f = float64(x)
	case json.Number:
		v, err := x.Float64()
		if err != nil {
			return 0, "not a number", false
		}
		f = v
	default:
		return 0, "not a number", false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "not a finite number", false
	}
	if f < float64(MinSafeInteger) || f > float64(MaxSafeInteger) {
		return 0, "out of range", false
	}
	return f, "", true
}
