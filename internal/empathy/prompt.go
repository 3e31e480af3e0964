package empathy

import (
	"fmt"
	"strings"
)

// RegularPrompt is the system prompt when no mode is selected.
const RegularPrompt = "You are a friendly assistant! Keep your responses concise and helpful."

// Context carries the choices that shape the system prompt.
type Context struct {
	Mode     string
	UserRole string
	Persona  string
	FromRole string
	ToRole   string
}

// RequestHints describe where a request came from. Empty fields are printed as-is.
type RequestHints struct {
	Latitude  string
	Longitude string
	City      string
	Country   string
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ModePrompt returns the mode's instructions, or "" for no or unknown mode.
func ModePrompt(c Context) string {
	switch c.Mode {
	case "perspective-check":
		p := fmt.Sprintf("You are helping a %s understand how different teams would react to their ideas. ", or(c.UserRole, "user"))
		if c.Persona != "" {
			return p + fmt.Sprintf("Respond from the %s team's perspective, considering their priorities, concerns, and typical reactions. Be realistic and highlight both opportunities and challenges they would see.", c.Persona)
		}
		return p + "Wait for them to select a team perspective before responding."
	case "translation":
		return fmt.Sprintf("You are translating communication between teams. The user is a %s speaking to %s. Rewrite their message in a way that resonates with the target audience, using their terminology, addressing their concerns, and framing the message in terms of their priorities.",
			or(c.FromRole, "team member"), or(c.ToRole, "another team"))
	case "conversation-practice":
		return fmt.Sprintf("You are role-playing as various team members to help a %s practice difficult conversations. Be realistic but constructive. Show typical reactions, concerns, and questions that team member would have.", or(c.UserRole, "user"))
	case "multi-perspective":
		return "You are providing multiple team perspectives simultaneously. For each response, briefly show how Engineering, Design, Product, and other relevant teams would view the situation. Highlight where perspectives align and where they differ."
	case "tech-to-business":
		return "You are helping an engineer translate technical concepts into business language. Focus on impact, value, and outcomes rather than implementation details. Use analogies and avoid jargon."
	case "pm-perspective":
		return "You are helping an engineer understand PM motivations and pressures. Explain the business context, stakeholder expectations, and strategic reasoning behind PM requests."
	case "stakeholder-communication":
		return "You are helping an engineer communicate with non-technical stakeholders. Focus on translating technical trade-offs into business implications and timelines."
	case "design-advocacy":
		return "You are helping a designer advocate for design decisions. Frame arguments in terms of user outcomes, business impact, and data when possible."
	case "pm-alignment":
		return "You are helping a designer understand business constraints and find middle ground between user needs and business realities."
	case "eng-collaboration":
		return "You are helping a designer communicate with engineers. Translate design vision into technical requirements and understand technical constraints."
	case "general-translation":
		return "You are helping translate communication between different teams. Consider each team's priorities, language, and concerns."
	case "team-dynamics":
		return "You are explaining team dynamics and motivations. Help the user understand why different teams have different priorities and how to bridge gaps."
	}
	return ""
}

// HintsPrompt renders the request-origin block.
func HintsPrompt(h RequestHints) string {
	var b strings.Builder
	b.WriteString("About the origin of user's request:\n")
	fmt.Fprintf(&b, "- lat: %s\n", h.Latitude)
	fmt.Fprintf(&b, "- lon: %s\n", h.Longitude)
	fmt.Fprintf(&b, "- city: %s\n", h.City)
	fmt.Fprintf(&b, "- country: %s\n", h.Country)
	return b.String()
}

// SystemPrompt is the mode prompt when a known mode is set, else RegularPrompt,
// followed by the request hints when given.
func SystemPrompt(c Context, hints *RequestHints) string {
	p := ModePrompt(c)
	if p == "" {
		p = RegularPrompt
	}
	if hints != nil {
		p += "\n\n" + HintsPrompt(*hints)
	}
	return p
}
