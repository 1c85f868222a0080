package launcher

import "go.klb.dev/marklip-launcher/internal/clip"

// Action is one conversion offered to the user.
type Action struct {
	Title      string
	Key        string // menu key equivalent
	Subcommand string // marklip subcommand
}

// Actions lists the conversions in menu order.
var Actions = []Action{
	{Title: "Auto", Key: "a", Subcommand: "auto"},
	{Title: "Convert to HTML", Key: "h", Subcommand: "to-html"},
	{Title: "Convert to markdown", Key: "m", Subcommand: "to-md"},
}

// LookupAction finds the action for a subcommand.
func LookupAction(subcommand string) (Action, bool) {
	for _, a := range Actions {
		if a.Subcommand == subcommand {
			return a, true
		}
	}
	return Action{}, false
}

// MenuEntry is an action with its current availability.
type MenuEntry struct {
	Action
	Enabled bool
}

// Menu maps enablement onto Actions, keeping menu order.
func Menu(e clip.Enablement) []MenuEntry {
	enabled := map[string]bool{
		"auto":    e.Auto,
		"to-html": e.ToHTML,
		"to-md":   e.ToMarkdown,
	}
	out := make([]MenuEntry, len(Actions))
	for i, a := range Actions {
		out[i] = MenuEntry{Action: a, Enabled: enabled[a.Subcommand]}
	}
	return out
}
