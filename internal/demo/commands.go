// Package demo is the command set served by the bundled binaries. It shows
// every codec kind in use: plain options, optional ones, an enum, a user
// reference and a context menu command.
package demo

import (
	"github.com/keshon/slashery/pkg/arg"
	"github.com/keshon/slashery/pkg/slash"
)

type Greet struct {
	Who string
}

// Die is the number of sides of a die.
type Die int64

const (
	D4  Die = 4
	D6  Die = 6
	D20 Die = 20
)

type Roll struct {
	Sides Die
	Count *int64
}

type Echo struct {
	Text  string
	Quiet *bool
}

type Whois struct {
	User arg.UserID
}

// Inspect is the user context menu command; its target comes with the
// interaction rather than as an option.
type Inspect struct{}

const InspectName = "Inspect"

var dice = arg.IntEnum(
	arg.Entry[Die]{Label: "d4", Value: D4},
	arg.Entry[Die]{Label: "d6", Value: D6},
	arg.Entry[Die]{Label: "d20", Value: D20},
)

// Commands returns the demo command set in registration order.
func Commands() *slash.Set {
	return slash.MustSet(
		slash.NewCommand("greet", "Say hello to someone",
			slash.Arg("who", "Who to greet", arg.String(), func(g *Greet) *string { return &g.Who }),
		),
		slash.NewCommand("roll", "Roll some dice",
			slash.Arg("sides", "Which die", dice, func(r *Roll) *Die { return &r.Sides }),
			slash.Arg("count", "How many dice, 1 to 10", arg.Optional(arg.Integer()), func(r *Roll) **int64 { return &r.Count }),
		),
		slash.NewCommand("echo", "Repeat a message",
			slash.Arg("text", "What to repeat", arg.String(), func(e *Echo) *string { return &e.Text }),
			slash.Arg("quiet", "Only show it to you", arg.Optional(arg.Boolean()), func(e *Echo) **bool { return &e.Quiet }),
		),
		slash.NewCommand("whois", "Show a user's mention",
			slash.Arg("user", "The user", arg.User(), func(w *Whois) *arg.UserID { return &w.User }),
		),
		slash.NewContextCommand[Inspect](slash.UserMenu, InspectName),
	)
}
