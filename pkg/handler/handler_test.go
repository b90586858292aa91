package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greet struct{ Who string }

func TestTyped(t *testing.T) {
	var got string
	h := Typed("greet", func(_ context.Context, _ *Request, g greet) error {
		got = g.Who
		return nil
	})

	require.NoError(t, h.Handle(context.Background(), &Request{Name: "greet", Value: greet{Who: "world"}}))
	assert.Equal(t, "world", got)

	err := h.Handle(context.Background(), &Request{Name: "greet", Value: 42})
	var unexpected *UnexpectedValueError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, "greet", unexpected.Handler)
	assert.Equal(t, `handler "greet": unexpected value of type int`, err.Error())
}

func TestApplyOrder(t *testing.T) {
	var trace []string
	mark := func(label string) Middleware {
		return func(h Handler) Handler {
			return Wrap(h, func(ctx context.Context, req *Request) error {
				trace = append(trace, label)
				return h.Handle(ctx, req)
			})
		}
	}
	base := Func("ping", func(context.Context, *Request) error {
		trace = append(trace, "ping")
		return nil
	})

	h := Apply(base, mark("inner"), mark("outer"))

	require.NoError(t, h.Handle(context.Background(), &Request{}))
	assert.Equal(t, []string{"outer", "inner", "ping"}, trace)
	assert.Equal(t, "ping", h.Name())
	assert.IsType(t, &Wrapped{}, h)
}

func TestWrapWithoutFuncDelegates(t *testing.T) {
	sentinel := errors.New("boom")
	w := &Wrapped{Inner: Func("x", func(context.Context, *Request) error { return sentinel })}
	assert.ErrorIs(t, w.Handle(context.Background(), &Request{}), sentinel)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context, *Request) error { return nil }

	require.NoError(t, r.Register(Func("roll", noop)))
	require.NoError(t, r.Register(Func("greet", noop)))
	assert.Error(t, r.Register(Func("greet", noop)))

	assert.Equal(t, []string{"greet", "roll"}, r.Names())
	_, ok := r.Get("greet")
	assert.True(t, ok)
	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRequestIdentity(t *testing.T) {
	assert.Equal(t, "", (&Request{}).GuildID())
	assert.Equal(t, "", (&Request{}).UserID())

	inGuild := &Request{Event: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		GuildID: "10",
		Member:  &discordgo.Member{User: &discordgo.User{ID: "20"}},
	}}}
	assert.Equal(t, "10", inGuild.GuildID())
	assert.Equal(t, "20", inGuild.UserID())

	inDM := &Request{Event: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "30"},
	}}}
	assert.Equal(t, "", inDM.GuildID())
	assert.Equal(t, "30", inDM.UserID())
}
