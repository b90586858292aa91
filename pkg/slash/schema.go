package slash

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/slashery/pkg/arg"
	"github.com/keshon/slashery/pkg/option"
)

// Kind is the command type published at registration.
type Kind = discordgo.ApplicationCommandType

const (
	ChatInput   Kind = discordgo.ChatApplicationCommand
	UserMenu    Kind = discordgo.UserApplicationCommand
	MessageMenu Kind = discordgo.MessageApplicationCommand
)

// ArgumentSchema describes one option of a command.
type ArgumentSchema struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Kind        option.Kind  `json:"type"`
	Required    bool         `json:"required"`
	Choices     []arg.Choice `json:"choices"`
}

// CommandSchema is the registration descriptor of a command.
type CommandSchema struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Kind        Kind             `json:"type"`
	Options     []ArgumentSchema `json:"options"`
}

// Discord converts the schema to the platform's registration type.
// Context menu commands carry neither description nor options.
func (s CommandSchema) Discord() *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Name: s.Name,
		Type: s.Kind,
	}
	if s.Kind != ChatInput {
		return cmd
	}
	cmd.Description = s.Description
	for _, o := range s.Options {
		opt := &discordgo.ApplicationCommandOption{
			Type:        o.Kind,
			Name:        o.Name,
			Description: o.Description,
			Required:    o.Required,
		}
		for _, c := range o.Choices {
			opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  c.Label,
				Value: c.Value,
			})
		}
		cmd.Options = append(cmd.Options, opt)
	}
	return cmd
}
