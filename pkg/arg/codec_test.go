package arg

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/keshon/slashery/pkg/option"
)

type erased struct {
	name     string
	kind     option.Kind
	required bool
	decode   func(*option.Value) error
}

func erase[T any](name string, c Codec[T]) erased {
	return erased{
		name:     name,
		kind:     c.Kind(),
		required: c.Required(),
		decode: func(v *option.Value) error {
			_, err := c.Decode(v)
			return err
		},
	}
}

type color string

type die int64

func builtins() []erased {
	return []erased{
		erase("string", String()),
		erase("integer", Integer()),
		erase("number", Number()),
		erase("boolean", Boolean()),
		erase("user", User()),
		erase("channel", Channel()),
		erase("role", Role()),
		erase("mentionable", Mentionable()),
		erase("attachment", Attachment()),
		erase("string enum", StringEnum(Entry[color]{"Red", "red"})),
		erase("int enum", IntEnum(Entry[die]{"d6", 6})),
	}
}

var allKinds = []option.Kind{
	option.KindString, option.KindInteger, option.KindBoolean, option.KindUser,
	option.KindChannel, option.KindRole, option.KindMentionable, option.KindNumber,
	option.KindAttachment,
}

func TestRequiredCodecsRejectAbsentOption(t *testing.T) {
	for _, c := range builtins() {
		t.Run(c.name, func(t *testing.T) {
			assert.True(t, c.required)
			assert.ErrorIs(t, c.decode(nil), ErrFieldNotFound)
		})
	}
}

func TestPresentWithoutValueIsFieldNotFound(t *testing.T) {
	for _, c := range builtins() {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, c.decode(option.New("x", c.kind, nil)), ErrFieldNotFound)
		})
	}
}

func TestKindMismatchIsInvalidType(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		codecs := builtins()
		c := rapid.SampledFrom(codecs).Draw(t, "codec")
		got := rapid.SampledFrom(allKinds).Filter(func(k option.Kind) bool { return k != c.kind }).Draw(t, "kind")
		raw := rapid.OneOf(
			rapid.Just[any]("text"),
			rapid.Just[any](float64(1)),
			rapid.Just[any](true),
			rapid.Just[any](nil),
		).Draw(t, "raw")

		err := c.decode(option.New("x", got, raw))

		var typeErr *InvalidTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, c.kind, typeErr.Expected)
		assert.Equal(t, got, typeErr.Got)
	})
}

func TestStringCodec(t *testing.T) {
	v, err := String().Decode(option.String("who", "world"))
	require.NoError(t, err)
	assert.Equal(t, "world", v)

	_, err = String().Decode(option.String("who", "\xff\xfe"))
	var valErr *InvalidValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, option.KindString, valErr.Expected)
	assert.Equal(t, "not valid UTF-8", valErr.Detail)

	_, err = String().Decode(option.New("who", option.KindString, 12.0))
	require.ErrorAs(t, err, &valErr)
}

func TestStringRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		got, err := String().Decode(option.String("s", s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})
}

func TestIntegerCodec(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   int64
		detail string
	}{
		{name: "json float", raw: float64(42), want: 42},
		{name: "int64", raw: int64(-7), want: -7},
		{name: "int", raw: 9, want: 9},
		{name: "json number", raw: json.Number("12"), want: 12},
		{name: "max", raw: float64(MaxSafeInteger), want: MaxSafeInteger},
		{name: "fraction", raw: 1.5, detail: "not an integer"},
		{name: "nan", raw: math.NaN(), detail: "not an integer"},
		{name: "too large", raw: float64(MaxSafeInteger) * 4, detail: "out of range"},
		{name: "too small int64", raw: MinSafeInteger - 1, detail: "out of range"},
		{name: "string", raw: "12", detail: "not a number"},
		{name: "json number fraction", raw: json.Number("1.25"), detail: "not an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Integer().Decode(option.New("n", option.KindInteger, tt.raw))
			if tt.detail != "" {
				var valErr *InvalidValueError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, tt.detail, valErr.Detail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int64Range(MinSafeInteger, MaxSafeInteger).Draw(t, "n")
		got, err := Integer().Decode(option.New("n", option.KindInteger, float64(n)))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	})
}

func TestNumberCodec(t *testing.T) {
	got, err := Number().Decode(option.Number("x", 2.5))
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	got, err = Number().Decode(option.New("x", option.KindNumber, int64(3)))
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = Number().Decode(option.Number("x", math.Inf(1)))
	var valErr *InvalidValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "not a finite number", valErr.Detail)
}

func TestBooleanCodec(t *testing.T) {
	got, err := Boolean().Decode(option.Boolean("b", true))
	require.NoError(t, err)
	assert.True(t, got)

	_, err = Boolean().Decode(option.New("b", option.KindBoolean, "true"))
	var valErr *InvalidValueError
	assert.ErrorAs(t, err, &valErr)
}

func TestSnowflakeCodecs(t *testing.T) {
	user, err := User().Decode(option.User("u", "80351110224678912"))
	require.NoError(t, err)
	assert.Equal(t, UserID("80351110224678912"), user)

	_, err = Channel().Decode(option.Channel("c", "general"))
	var valErr *InvalidValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, option.KindChannel, valErr.Expected)
	assert.Equal(t, "not a snowflake id", valErr.Detail)

	_, err = Role().Decode(option.New("r", option.KindRole, float64(1)))
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "snowflake must be a string", valErr.Detail)
}

func TestOptional(t *testing.T) {
	c := Optional(Integer())

	assert.False(t, c.Required())
	assert.Equal(t, option.KindInteger, c.Kind())

	got, err := c.Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = c.Decode(option.Integer("n", 4))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(4), *got)

	_, err = c.Decode(option.String("n", "4"))
	var typeErr *InvalidTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestOptionalForwardsShape(t *testing.T) {
	inner := StringEnum(Entry[color]{"Red", "red"}, Entry[color]{"Blue", "blue"})
	c := Optional(inner)

	assert.Equal(t, inner.Kind(), c.Kind())
	assert.Equal(t, inner.Choices(), c.Choices())
	assert.False(t, c.Required())
}

func TestOptionalAbsentAlwaysNil(t *testing.T) {
	for _, c := range []erased{
		erase("string", Optional(String())),
		erase("integer", Optional(Integer())),
		erase("user", Optional(User())),
		erase("enum", Optional(IntEnum(Entry[die]{"d6", 6}))),
	} {
		t.Run(c.name, func(t *testing.T) {
			assert.False(t, c.required)
			assert.NoError(t, c.decode(nil))
		})
	}
}

func TestEnums(t *testing.T) {
	colors := StringEnum(Entry[color]{"Red", "red"}, Entry[color]{"Blue", "blue"})

	assert.Equal(t, []Choice{{Label: "Red", Value: "red"}, {Label: "Blue", Value: "blue"}}, colors.Choices())

	got, err := colors.Decode(option.String("c", "blue"))
	require.NoError(t, err)
	assert.Equal(t, color("blue"), got)

	_, err = colors.Decode(option.String("c", "green"))
	var valErr *InvalidValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "green", valErr.Got)

	dice := IntEnum(Entry[die]{"d6", 6}, Entry[die]{"d20", 20})
	assert.Equal(t, option.KindInteger, dice.Kind())
	assert.Equal(t, []Choice{{Label: "d6", Value: int64(6)}, {Label: "d20", Value: int64(20)}}, dice.Choices())

	d, err := dice.Decode(option.New("d", option.KindInteger, float64(20)))
	require.NoError(t, err)
	assert.Equal(t, die(20), d)

	_, err = dice.Decode(option.Integer("d", 7))
	assert.True(t, errors.As(err, &valErr))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "field not found", ErrFieldNotFound.Error())
	assert.Equal(t,
		"invalid type: expected String, got Integer",
		(&InvalidTypeError{Expected: option.KindString, Got: option.KindInteger}).Error())
	assert.Contains(t,
		(&InvalidValueError{Expected: option.KindInteger, Got: 1.5, Detail: "not an integer"}).Error(),
		"not an integer")
}
