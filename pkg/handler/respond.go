package handler

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// ErrNoResponder is returned by the reply helpers when the request has no
// Respond function.
var ErrNoResponder = errors.New("request cannot be answered")

// Replies never ping: user supplied text may contain @everyone or role
// mentions. Mentions still render.
func silent() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}

func (r *Request) respond(resp *discordgo.InteractionResponse) error {
	if r.Respond == nil {
		return ErrNoResponder
	}
	if resp.Data != nil && resp.Data.AllowedMentions == nil {
		resp.Data.AllowedMentions = silent()
	}
	return r.Respond(resp)
}

// Reply sends a public message response.
func (r *Request) Reply(content string) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// ReplyEphemeral sends a message only the invoking user can see.
func (r *Request) ReplyEphemeral(content string) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// ReplyEmbed sends a public embed response.
func (r *Request) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// ReplyEmbedEphemeral sends an ephemeral embed response.
func (r *Request) ReplyEmbedEphemeral(embed *discordgo.MessageEmbed) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// ReplyWithComponents sends a message carrying one row of components.
func (r *Request) ReplyWithComponents(content string, components ...discordgo.MessageComponent) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: components}},
		},
	})
}

// UpdateMessage replaces the message a component was attached to and drops
// its components.
func (r *Request) UpdateMessage(content string) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
}
