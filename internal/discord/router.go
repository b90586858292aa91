package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/slashery/pkg/arg"
	"github.com/keshon/slashery/pkg/component"
	"github.com/keshon/slashery/pkg/handler"
	"github.com/keshon/slashery/pkg/slash"
)

// ComponentResolver maps a custom id to a component value.
// *component.Set satisfies it.
type ComponentResolver interface {
	Resolve(id string) (any, error)
}

// NoHandlerError reports a decoded interaction nobody registered a handler for.
type NoHandlerError struct {
	Name string
}

func (e *NoHandlerError) Error() string { return fmt.Sprintf("no handler registered for %q", e.Name) }

type componentRoute struct {
	handler  string
	resolver ComponentResolver
}

// Router decodes interactions and hands the typed value to a handler.
// Commands are looked up by name; components are offered to each resolver in
// the order they were routed, and the first one that knows the id wins.
type Router struct {
	commands   *slash.Set
	components []componentRoute
	handlers   *handler.Registry
	log        zerolog.Logger

	respond func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

func NewRouter(commands *slash.Set, handlers *handler.Registry, logger zerolog.Logger) *Router {
	return &Router{
		commands: commands,
		handlers: handlers,
		log:      logger.With().Str("component", "router").Logger(),
		respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
	}
}

// RouteComponents sends every custom id resolver recognizes to the handler
// registered as handlerName.
func (r *Router) RouteComponents(handlerName string, resolver ComponentResolver) {
	r.components = append(r.components, componentRoute{handler: handlerName, resolver: resolver})
}

// Route handles one interaction. Failures are reported to the user as an
// ephemeral message and returned. Interaction types the router does not
// serve are ignored.
func (r *Router) Route(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i == nil || i.Interaction == nil {
		return nil
	}
	req := &handler.Request{Session: s, Event: i}
	req.Respond = func(resp *discordgo.InteractionResponse) error {
		return r.respond(s, i.Interaction, resp)
	}

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		err = r.routeCommand(ctx, req)
	case discordgo.InteractionMessageComponent:
		err = r.routeComponent(ctx, req)
	default:
		r.log.Debug().Str("type", i.Type.String()).Msg("ignoring interaction")
		return nil
	}
	if err == nil {
		return nil
	}

	if replyErr := req.ReplyEphemeral(Describe(err)); replyErr != nil {
		r.log.Debug().Err(replyErr).Str("name", req.Name).Msg("failed to report error")
	}
	return err
}

func (r *Router) routeCommand(ctx context.Context, req *handler.Request) error {
	inv := slash.InvocationFromData(req.Event.ApplicationCommandData())
	req.Name = inv.Name

	d, err := r.commands.Dispatch(inv)
	if err != nil {
		r.log.Warn().Err(err).Str("command", inv.Name).Msg("failed to decode command")
		return err
	}
	req.Value = d.Value
	return r.run(ctx, d.Name, req)
}

func (r *Router) routeComponent(ctx context.Context, req *handler.Request) error {
	id := req.Event.MessageComponentData().CustomID
	req.Name = id

	for _, route := range r.components {
		v, err := route.resolver.Resolve(id)
		var unknown *component.UnknownComponentError
		if errors.As(err, &unknown) {
			continue
		}
		if err != nil {
			return err
		}
		req.Value = v
		return r.run(ctx, route.handler, req)
	}
	err := &component.UnknownComponentError{ID: id}
	r.log.Warn().Err(err).Msg("failed to resolve component")
	return err
}

func (r *Router) run(ctx context.Context, name string, req *handler.Request) error {
	h, ok := r.handlers.Get(name)
	if !ok {
		err := &NoHandlerError{Name: name}
		r.log.Error().Err(err).Msg("routing failed")
		return err
	}
	return h.Handle(ctx, req)
}

// Describe renders err as a short message for the user who triggered it.
func Describe(err error) string {
	var (
		unknownCmd  *slash.UnknownCommandError
		unknownComp *component.UnknownComponentError
		argErr      *slash.ArgError
	)
	switch {
	case errors.As(err, &unknownCmd):
		return fmt.Sprintf("Unknown command `%s`. The command list may be out of date.", unknownCmd.Name)
	case errors.As(err, &unknownComp):
		return "This button is no longer supported."
	case errors.As(err, &argErr):
		return describeArg(argErr)
	}
	return "Something went wrong while handling this interaction."
}

func describeArg(e *slash.ArgError) string {
	var (
		typeErr  *arg.InvalidTypeError
		valueErr *arg.InvalidValueError
	)
	switch {
	case errors.Is(e.Err, arg.ErrFieldNotFound):
		return fmt.Sprintf("Missing required option `%s`.", e.Name)
	case errors.As(e.Err, &typeErr):
		return fmt.Sprintf("Option `%s` has the wrong type: expected %s, got %s.", e.Name, typeErr.Expected, typeErr.Got)
	case errors.As(e.Err, &valueErr) && valueErr.Detail != "":
		return fmt.Sprintf("Option `%s` has an invalid value: %s.", e.Name, valueErr.Detail)
	}
	return fmt.Sprintf("Option `%s` is invalid.", e.Name)
}
