package guide

import (
	"fmt"
	"strings"

	"hark-back/internal/commands"
	"hark-back/internal/proximity"
	"hark-back/internal/world"
)

// RegisterCommandHandlers registers run_cmd, which runs a terminal command from the registry.
func RegisterCommandHandlers(g *Guide, reg *commands.Registry) {
	g.RegisterHandler("run_cmd", func(payload map[string]interface{}) error {
		raw, ok := payload["args"].([]interface{})
		if !ok || len(raw) == 0 {
			return fmt.Errorf("missing args")
		}
		args := make([]string, 0, len(raw))
		for _, a := range raw {
			s, ok := a.(string)
			if !ok {
				return fmt.Errorf("args must be strings")
			}
			args = append(args, s)
		}
		return reg.Execute(args)
	})
}

// Preamble describes the gallery and the visitor's surroundings for the system prompt.
// nearby is read on every call.
func Preamble(g *world.Gallery, nearby func() proximity.NearbyState) string {
	var b strings.Builder
	b.WriteString("You are also the docent of a small 3D portfolio gallery the visitor is walking through. ")
	b.WriteString("Answer in a sentence or three. You may reply with plain text, or with exactly one JSON object ")
	b.WriteString(`{"say":"text to show","actions":[{"action":"run_cmd","args":["subcommand","arg",...]}]}` + " when the visitor asks you to do something.\n\n")
	b.WriteString("Available run_cmd commands:\n")
	b.WriteString(`- menu: open or close the exhibit menu → ["menu"]` + "\n")
	b.WriteString(`- where: report the visitor's position → ["where"]` + "\n")
	b.WriteString(`- fps / memalloc / pose: show/hide overlays → ["fps","--show"] or ["fps","--hide"]` + "\n")
	b.WriteString(`- model: set the chat model → ["model","llama-3.3-70b-versatile"]` + "\n\n")

	b.WriteString("Exhibits on the walls:\n")
	for i, p := range g.Points() {
		e := p.Exhibit
		fmt.Fprintf(&b, "- %s (%s wall): %s. %s", e.Title, p.Wall, e.Subtitle, e.Description)
		if len(e.Tech) > 0 {
			fmt.Fprintf(&b, " Built with %s.", strings.Join(e.Tech, ", "))
		}
		if i < g.Len()-1 {
			b.WriteString("\n")
		}
	}
	if nearby != nil {
		if n := nearby(); n.Ok() {
			fmt.Fprintf(&b, "\n\nThe visitor is standing at %q.", n.Exhibit.Title)
		} else {
			b.WriteString("\n\nThe visitor is not near any exhibit.")
		}
	}
	return b.String()
}
