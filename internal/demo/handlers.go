package demo

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/go-multierror"

	"github.com/keshon/slashery/internal/middleware"
	"github.com/keshon/slashery/pkg/component"
	"github.com/keshon/slashery/pkg/handler"
)

const EmbedColor = 0xb01e66

const maxDice = 10

type Handlers struct {
	buttons *component.Set[Button]
	// rollDie returns a number in [1, sides].
	rollDie func(sides Die) int64
}

func NewHandlers(buttons *component.Set[Button]) *Handlers {
	return &Handlers{
		buttons: buttons,
		rollDie: func(sides Die) int64 { return rand.Int63n(int64(sides)) + 1 },
	}
}

// Register adds a handler for every demo command and for the buttons, each
// wrapped with mws.
func (h *Handlers) Register(reg *handler.Registry, mws ...handler.Middleware) error {
	var errs *multierror.Error
	for _, hd := range []handler.Handler{
		handler.Typed("greet", h.greet),
		handler.Typed("roll", h.roll),
		handler.Typed("echo", h.echo),
		handler.Typed("whois", h.whois),
		// member lookups only make sense inside a guild, for moderators
		handler.Apply(handler.Typed(InspectName, h.inspect),
			middleware.WithPermissions(discordgo.PermissionModerateMembers, discordgo.PermissionKickMembers),
			middleware.WithGuildOnly(),
		),
		handler.Typed(ButtonsHandler, h.press),
	} {
		if err := reg.Register(hd, mws...); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func (h *Handlers) greet(_ context.Context, req *handler.Request, g Greet) error {
	return req.ReplyWithComponents(
		fmt.Sprintf("Hello, %s! Wave back?", g.Who),
		h.buttons.Button(Confirm, "Wave", discordgo.PrimaryButton),
		h.buttons.Button(Cancel, "Ignore", discordgo.SecondaryButton),
	)
}

func (h *Handlers) roll(_ context.Context, req *handler.Request, r Roll) error {
	count := int64(1)
	if r.Count != nil {
		count = *r.Count
	}
	if count < 1 || count > maxDice {
		return req.ReplyEphemeral(fmt.Sprintf("You can roll between 1 and %d dice.", maxDice))
	}

	rolls := make([]string, count)
	total := int64(0)
	for i := range rolls {
		n := h.rollDie(r.Sides)
		total += n
		rolls[i] = fmt.Sprint(n)
	}
	return req.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%dd%d", count, r.Sides),
		Description: fmt.Sprintf("%s = **%d**", strings.Join(rolls, " + "), total),
		Color:       EmbedColor,
	})
}

func (h *Handlers) echo(_ context.Context, req *handler.Request, e Echo) error {
	if e.Quiet != nil && *e.Quiet {
		return req.ReplyEphemeral(e.Text)
	}
	return req.Reply(e.Text)
}

func (h *Handlers) whois(_ context.Context, req *handler.Request, w Whois) error {
	return req.Reply(fmt.Sprintf("That is <@%s>.", w.User))
}

func (h *Handlers) inspect(_ context.Context, req *handler.Request, _ Inspect) error {
	target := ""
	if req.Event != nil && req.Event.Interaction != nil && req.Event.Type == discordgo.InteractionApplicationCommand {
		target = req.Event.ApplicationCommandData().TargetID
	}
	if target == "" {
		return req.ReplyEphemeral("Nothing to inspect.")
	}
	return req.ReplyEphemeral(fmt.Sprintf("User <@%s> has id `%s`.", target, target))
}

func (h *Handlers) press(_ context.Context, req *handler.Request, b Button) error {
	switch b {
	case Confirm:
		return req.UpdateMessage("👋 Waved back.")
	case Cancel:
		return req.UpdateMessage("Ignored.")
	}
	return fmt.Errorf("unhandled button %d", b)
}
