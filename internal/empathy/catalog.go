package empathy

import (
	"fmt"
	"strings"
)

// Role is who the user is. It selects which modes are offered.
type Role string

const (
	RolePM       Role = "pm"
	RoleEngineer Role = "engineer"
	RoleDesigner Role = "designer"
	RoleOther    Role = "other"
)

// RoleInfo is one entry on the welcome screen.
type RoleInfo struct {
	ID          Role
	Icon        string
	Title       string
	Description string
}

// Mode is one way of using the engine for a role.
type Mode struct {
	ID          string
	Icon        string
	Title       string
	Description string
	Example     string
}

// Team is a perspective the user can ask to hear from.
type Team struct {
	ID   string
	Name string
	Icon string
}

var roles = []RoleInfo{
	{RolePM, "📊", "Product Manager", "Understand team perspectives & practice conversations"},
	{RoleEngineer, "⚙️", "Engineer", "Translate technical concerns to business language"},
	{RoleDesigner, "🎨", "Designer", "Communicate design decisions across teams"},
	{RoleOther, "🤝", "Other Role", "Sales, Support, or exploring team dynamics"},
}

var modes = map[Role][]Mode{
	RolePM: {
		{"perspective-check", "👁️", "Perspective Check",
			"See how Engineering, Design, Sales, or Support would react to your idea",
			`"We want to add real-time collaboration" → How would Engineering respond?`},
		{"conversation-practice", "🎭", "Conversation Practice",
			"Practice difficult conversations with team personas before the real thing",
			"Practice telling Engineering the timeline just got cut in half"},
		{"multi-perspective", "🔄", "Multi-Perspective Analysis",
			"Get all team perspectives on a decision simultaneously",
			"How would each team approach solving this customer complaint?"},
		{"translation", "🔤", "Message Translation",
			"Convert your message into another team's language",
			`Translate "we need to ship faster" for Engineering`},
	},
	RoleEngineer: {
		{"tech-to-business", "📈", "Tech to Business Translation",
			"Explain technical concerns in business language",
			`Translate "technical debt" into language PMs understand`},
		{"pm-perspective", "📊", "Understand PM Pressure",
			"See why PMs make certain requests and how to respond",
			"Why does PM keep asking about timelines?"},
		{"stakeholder-communication", "💬", "Stakeholder Communication",
			"Practice explaining technical trade-offs to non-technical stakeholders",
			`Explain why the "simple" feature request will take 3 months`},
	},
	RoleDesigner: {
		{"design-advocacy", "🎨", "Design Advocacy",
			"Communicate design decisions and user needs effectively",
			"Explain why UX research is critical for this feature"},
		{"pm-alignment", "🎯", "PM Alignment",
			"Understand business constraints and find middle ground",
			"Balance user needs with business timeline pressure"},
		{"eng-collaboration", "⚙️", "Engineering Collaboration",
			"Bridge design vision with technical constraints",
			"Discuss design system changes with Engineering"},
	},
	RoleOther: {
		{"general-translation", "🔄", "Cross-Team Translation",
			"Translate between any team languages",
			"Convert Sales feedback into Engineering requirements"},
		{"team-dynamics", "🤝", "Team Dynamics Explorer",
			"Understand different team motivations and concerns",
			"Why do teams seem to conflict on this project?"},
	},
}

var teams = []Team{
	{"engineering", "Engineering", "⚙️"},
	{"design", "Design", "🎨"},
	{"sales", "Sales", "💼"},
	{"support", "Support", "🎧"},
}

// translationRoles are the from/to choices of the translation mode.
var translationRoles = []Team{
	{"pm", "Product Manager", "📊"},
	{"engineering", "Engineering", "⚙️"},
	{"design", "Design", "🎨"},
	{"sales", "Sales", "💼"},
	{"support", "Support", "🎧"},
}

// Roles returns the welcome-screen roles in display order.
func Roles() []RoleInfo {
	return append([]RoleInfo(nil), roles...)
}

// ParseRole accepts a role ID, case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := modes[r]; !ok {
		return "", fmt.Errorf("unknown role %q (want pm, engineer, designer or other)", s)
	}
	return r, nil
}

// DisplayName is the human label; unknown roles read as Other.
func (r Role) DisplayName() string {
	switch r {
	case RolePM:
		return "Product Manager"
	case RoleEngineer:
		return "Engineer"
	case RoleDesigner:
		return "Designer"
	}
	return "Other"
}

// ModesFor returns the modes offered to r. Unknown roles get the Other set.
func ModesFor(r Role) []Mode {
	m, ok := modes[r]
	if !ok {
		m = modes[RoleOther]
	}
	return append([]Mode(nil), m...)
}

// FindMode looks up a mode offered to r by ID.
func FindMode(r Role, id string) (Mode, bool) {
	for _, m := range ModesFor(r) {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// Teams returns the perspective-check teams.
func Teams() []Team {
	return append([]Team(nil), teams...)
}

// TranslationRoles returns the from/to audiences of message translation.
func TranslationRoles() []Team {
	return append([]Team(nil), translationRoles...)
}
