package guide

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Handler applies one action. Payload is the action object (e.g. {"action":"run_cmd","args":["where"]}).
// Returns an error to report to the visitor; the guide will still process remaining actions.
type Handler func(payload map[string]interface{}) error

// Sender is the conversation the guide talks through (an *empathy.Session).
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// Guide answers visitor questions through a chat session and applies any actions the model asks for.
type Guide struct {
	session  Sender
	handlers map[string]Handler
}

// New returns a Guide on session. Register handlers with RegisterHandler before calling Run.
func New(session Sender) *Guide {
	return &Guide{
		session:  session,
		handlers: make(map[string]Handler),
	}
}

// RegisterHandler adds a handler for the given action type (e.g. "run_cmd").
func (g *Guide) RegisterHandler(actionType string, h Handler) {
	g.handlers[actionType] = h
}

// Run sends the visitor's line, applies any actions in the reply and returns the text to show.
func (g *Guide) Run(ctx context.Context, line string) (string, error) {
	reply, err := g.session.Send(ctx, line)
	if err != nil {
		return "", err
	}
	say, actions := parseReply(reply)
	var problems []string
	for i, raw := range actions {
		payload, ok := raw.(map[string]interface{})
		if !ok {
			problems = append(problems, fmt.Sprintf("action %d: invalid object", i+1))
			continue
		}
		actionType, _ := payload["action"].(string)
		h, ok := g.handlers[actionType]
		if !ok {
			problems = append(problems, fmt.Sprintf("action %d: unknown action %q", i+1, actionType))
			continue
		}
		if err := h(payload); err != nil {
			problems = append(problems, fmt.Sprintf("action %d (%s): %v", i+1, actionType, err))
		}
	}
	if len(problems) > 0 {
		if say != "" {
			say += " "
		}
		say += "(" + strings.Join(problems, "; ") + ")"
	}
	return say, nil
}

var fence = regexp.MustCompile("^```\\w*\\n?")

// parseReply splits a reply into the text to show and its actions. Replies without a JSON
// object, or whose object has neither "say" nor "actions", are shown verbatim.
func parseReply(reply string) (string, []interface{}) {
	trimmed := strings.TrimSpace(reply)
	body := trimmed
	if strings.HasPrefix(body, "```") {
		body = fence.ReplaceAllString(body, "")
		body = strings.TrimSpace(strings.TrimSuffix(body, "```"))
	}
	obj, ok := firstObject(body)
	if !ok {
		return trimmed, nil
	}
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return trimmed, nil
	}
	say, hasSay := raw["say"].(string)
	var actions []interface{}
	switch a := raw["actions"].(type) {
	case []interface{}:
		actions = a
	case map[string]interface{}:
		actions = []interface{}{a}
	}
	if _, single := raw["action"]; single && actions == nil {
		actions = []interface{}{raw}
	}
	if !hasSay && actions == nil {
		return trimmed, nil
	}
	return strings.TrimSpace(say), actions
}

// firstObject extracts the first balanced {...} in s, ignoring braces inside strings.
func firstObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
