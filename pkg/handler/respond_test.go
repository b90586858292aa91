package handler

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingRequest() (*Request, *[]*discordgo.InteractionResponse) {
	var sent []*discordgo.InteractionResponse
	req := &Request{Respond: func(resp *discordgo.InteractionResponse) error {
		sent = append(sent, resp)
		return nil
	}}
	return req, &sent
}

func TestReplyHelpers(t *testing.T) {
	req, sent := recordingRequest()

	require.NoError(t, req.Reply("hello"))
	require.NoError(t, req.ReplyEphemeral("secret"))
	require.NoError(t, req.ReplyWithComponents("pick", discordgo.Button{Label: "Yes", CustomID: "Confirm"}))
	require.NoError(t, req.UpdateMessage("done"))
	require.NoError(t, req.ReplyEmbed(&discordgo.MessageEmbed{Title: "t"}))
	require.NoError(t, req.ReplyEmbedEphemeral(&discordgo.MessageEmbed{Title: "e"}))
	require.Len(t, *sent, 6)

	public := (*sent)[0]
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, public.Type)
	assert.Equal(t, "hello", public.Data.Content)
	assert.Zero(t, public.Data.Flags)

	assert.Equal(t, discordgo.MessageFlagsEphemeral, (*sent)[1].Data.Flags)

	row, ok := (*sent)[2].Data.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	assert.Equal(t, "Confirm", row.Components[0].(discordgo.Button).CustomID)

	update := (*sent)[3]
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, update.Type)
	assert.Empty(t, update.Data.Components)

	assert.Equal(t, discordgo.MessageFlagsEphemeral, (*sent)[5].Data.Flags)
}

func TestRepliesDoNotPing(t *testing.T) {
	req, sent := recordingRequest()

	require.NoError(t, req.Reply("@everyone look"))
	require.NoError(t, req.ReplyWithComponents("<@&42> pick", discordgo.Button{Label: "Yes", CustomID: "Confirm"}))
	require.NoError(t, req.ReplyEmbedEphemeral(&discordgo.MessageEmbed{Description: "@here"}))

	for _, resp := range *sent {
		mentions := resp.Data.AllowedMentions
		require.NotNil(t, mentions)
		assert.NotNil(t, mentions.Parse)
		assert.Empty(t, mentions.Parse)
		assert.Empty(t, mentions.Roles)
		assert.Empty(t, mentions.Users)
	}
	assert.Equal(t, "@everyone look", (*sent)[0].Data.Content)
}

func TestReplyWithoutResponder(t *testing.T) {
	req := &Request{}
	assert.ErrorIs(t, req.Reply("x"), ErrNoResponder)
}
