package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/healthkathon/jkb/internal/app"
	"github.com/healthkathon/jkb/internal/navigation"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

// KeyRegistry maps key presses to actions per screen scope.
type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) Register(binding KeyBinding) {
	r.bindings = append(r.bindings, binding)
}

// BindingsForScope returns the bindings active in scope, one per action.
func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	seen := make(map[string]bool)
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) || seen[b.Action] {
			continue
		}
		seen[b.Action] = true
		out = append(out, b)
	}
	return out
}

// Action returns the action msg triggers in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action
			}
		}
	}
	return ""
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

func scopeOf(dest navigation.Destination) string {
	return "screen:" + string(dest)
}

// Actions.
const (
	actQuit       = "quit"
	actBack       = "back"
	actNext       = "next"
	actPrev       = "prev"
	actSkip       = "skip"
	actUp         = "up"
	actDown       = "down"
	actOpen       = "open"
	actProfile    = "profile"
	actNextTab    = "next-tab"
	actPrevTab    = "prev-tab"
	actChoosePrev = "choose-prev"
	actChooseNext = "choose-next"
	actSubmit     = "submit"
	actLike       = "like"
	actDislike    = "dislike"
	actSend       = "send"
	actClear      = "clear"
)

func DefaultKeyBindings() []KeyBinding {
	var (
		splash     = scopeOf(app.Splash)
		onboarding = scopeOf(app.Onboarding)
		menu       = scopeOf(app.Menu)
		fraud      = scopeOf(app.FraudDetection)
		chat       = scopeOf(app.Chatbot)
	)
	return []KeyBinding{
		{Keys: []string{"q"}, Action: actQuit, Description: "quit", Scopes: []string{splash, onboarding, menu}},
		{Keys: []string{"ctrl+c"}, Action: actQuit, Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"esc"}, Action: actBack, Description: "back", Scopes: []string{fraud, chat}},
		{Keys: []string{"right", "l", "enter", " "}, Action: actNext, Description: "next", Scopes: []string{onboarding}},
		{Keys: []string{"left", "h"}, Action: actPrev, Description: "previous", Scopes: []string{onboarding}},
		{Keys: []string{"s"}, Action: actSkip, Description: "skip", Scopes: []string{onboarding}},
		{Keys: []string{"up", "k"}, Action: actUp, Description: "up", Scopes: []string{menu}},
		{Keys: []string{"down", "j"}, Action: actDown, Description: "down", Scopes: []string{menu}},
		{Keys: []string{"enter"}, Action: actOpen, Description: "open", Scopes: []string{menu}},
		{Keys: []string{"p"}, Action: actProfile, Description: "profile", Scopes: []string{menu}},
		{Keys: []string{"tab"}, Action: actNextTab, Description: "next tab", Scopes: []string{fraud}},
		{Keys: []string{"shift+tab"}, Action: actPrevTab, Description: "prev tab", Scopes: []string{fraud}},
		{Keys: []string{"up"}, Action: actUp, Description: "field up", Scopes: []string{fraud}},
		{Keys: []string{"down"}, Action: actDown, Description: "field down", Scopes: []string{fraud}},
		{Keys: []string{"left"}, Action: actChoosePrev, Description: "choose", Scopes: []string{fraud}},
		{Keys: []string{"right"}, Action: actChooseNext, Description: "choose", Scopes: []string{fraud}},
		{Keys: []string{"enter"}, Action: actSubmit, Description: "analyse", Scopes: []string{fraud}},
		{Keys: []string{"ctrl+y"}, Action: actLike, Description: "helpful", Scopes: []string{fraud}},
		{Keys: []string{"ctrl+n"}, Action: actDislike, Description: "not helpful", Scopes: []string{fraud}},
		{Keys: []string{"enter"}, Action: actSend, Description: "send", Scopes: []string{chat}},
		{Keys: []string{"ctrl+l"}, Action: actClear, Description: "clear", Scopes: []string{chat}},
	}
}
