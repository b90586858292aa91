// Package option models a single option value received with a command
// invocation: a name, the wire-level kind the platform tagged it with, and the
// raw primitive it carried. Values are immutable once built; they are created
// either by the transport boundary (FromDiscord) or by the typed constructors
// below, mostly in tests and tools.
package option

import (
	"github.com/bwmarrin/discordgo"
)

// Kind is the wire-level option type. It is the platform's own enumeration so
// the discriminants published at registration are bit-exact.
type Kind = discordgo.ApplicationCommandOptionType

const (
	KindString      Kind = discordgo.ApplicationCommandOptionString
	KindInteger     Kind = discordgo.ApplicationCommandOptionInteger
	KindBoolean     Kind = discordgo.ApplicationCommandOptionBoolean
	KindUser        Kind = discordgo.ApplicationCommandOptionUser
	KindChannel     Kind = discordgo.ApplicationCommandOptionChannel
	KindRole        Kind = discordgo.ApplicationCommandOptionRole
	KindMentionable Kind = discordgo.ApplicationCommandOptionMentionable
	KindNumber      Kind = discordgo.ApplicationCommandOptionNumber
	KindAttachment  Kind = discordgo.ApplicationCommandOptionAttachment
)

// Value is one received option.
type Value struct {
	name string
	kind Kind
	raw  any
}

// New builds a Value from its parts. The raw value is stored as given; codecs
// decide whether it can be coerced to their type.
func New(name string, kind Kind, raw any) *Value {
	return &Value{name: name, kind: kind, raw: raw}
}

func String(name, v string) *Value         { return New(name, KindString, v) }
func Integer(name string, v int64) *Value  { return New(name, KindInteger, v) }
func Number(name string, v float64) *Value { return New(name, KindNumber, v) }
func Boolean(name string, v bool) *Value   { return New(name, KindBoolean, v) }

// User, Channel, Role, Mentionable and Attachment values carry the snowflake
// id of the referenced entity, as the platform sends them.
func User(name, id string) *Value        { return New(name, KindUser, id) }
func Channel(name, id string) *Value     { return New(name, KindChannel, id) }
func Role(name, id string) *Value        { return New(name, KindRole, id) }
func Mentionable(name, id string) *Value { return New(name, KindMentionable, id) }
func Attachment(name, id string) *Value  { return New(name, KindAttachment, id) }

// Name returns the option name.
func (v *Value) Name() string { return v.name }

// Kind returns the wire-level kind the option was tagged with.
func (v *Value) Kind() Kind { return v.kind }

// Raw returns the underlying primitive. Integers decoded from JSON arrive as
// float64.
func (v *Value) Raw() any { return v.raw }

// FromDiscord converts one option of an application command interaction.
// Nested sub-command options are not flattened.
func FromDiscord(o *discordgo.ApplicationCommandInteractionDataOption) *Value {
	if o == nil {
		return nil
	}
	return New(o.Name, o.Type, o.Value)
}

// FromDiscordOptions converts a full option list, preserving order.
func FromDiscordOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) []*Value {
	out := make([]*Value, 0, len(opts))
	for _, o := range opts {
		if o == nil {
			continue
		}
		out = append(out, FromDiscord(o))
	}
	return out
}
