package demo

import (
	"github.com/keshon/slashery/pkg/component"
)

// Button is a button the demo handlers attach to their replies.
type Button int

const (
	Confirm Button = iota
	Cancel
)

// ButtonsHandler is the handler name button presses are routed to.
const ButtonsHandler = "buttons"

// Buttons returns the component set. "ok" and "yes" are accepted for Confirm
// so messages sent with older custom ids keep working.
func Buttons() *component.Set[Button] {
	return component.MustSet(
		component.Variant(Confirm, "Confirm", "ok", "yes"),
		component.Variant(Cancel, "Cancel"),
	)
}
