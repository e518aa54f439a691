package editor

import (
	"fmt"
	"strings"

	"golang.org/x/mobile/event/key"
)

// Action names a keyboard command.
type Action string

const (
	ActionScaleDown    Action = "scale-down"
	ActionScaleUp      Action = "scale-up"
	ActionRotateLeft   Action = "rotate-left"
	ActionRotateRight  Action = "rotate-right"
	ActionRotateLeft5  Action = "rotate-left-5"
	ActionRotateRight5 Action = "rotate-right-5"
	ActionShadowToggle Action = "shadow"
	ActionShadowWeaker Action = "shadow-weaker"
	ActionShadowStrong Action = "shadow-stronger"
	ActionSizePrev     Action = "size-prev"
	ActionSizeNext     Action = "size-next"
	ActionTexture      Action = "texture"
	ActionResetQuad    Action = "reset"
	ActionCompare      Action = "compare"
	ActionSecond       Action = "second"
	ActionSwitchLayer  Action = "switch"
	ActionLeft         Action = "left"
	ActionRight        Action = "right"
	ActionUp           Action = "up"
	ActionDown         Action = "down"
	ActionEnterCode    Action = "code"
	ActionExport       Action = "export"
	ActionCopyImage    Action = "copy"
	ActionCopySKU      Action = "copy-sku"
	ActionQuit         Action = "quit"
	ActionCancel       Action = "cancel"
)

// Binding ties a key to an Action. Rune bindings match the typed
// character; Code bindings match the physical key with Modifiers held.
type Binding struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
	Action    Action
	Help      string
}

var bindings = []Binding{
	{Rune: '[', Action: ActionScaleDown, Help: "scale -5%"},
	{Rune: ']', Action: ActionScaleUp, Help: "scale +5%"},
	{Rune: ',', Action: ActionRotateLeft, Help: "rotate -1°"},
	{Rune: '.', Action: ActionRotateRight, Help: "rotate +1°"},
	{Rune: '<', Action: ActionRotateLeft5, Help: "rotate -5°"},
	{Rune: '>', Action: ActionRotateRight5, Help: "rotate +5°"},
	{Rune: 'h', Action: ActionShadowToggle, Help: "shadow on/off"},
	{Rune: 'j', Action: ActionShadowWeaker, Help: "shadow -5%"},
	{Rune: 'k', Action: ActionShadowStrong, Help: "shadow +5%"},
	{Rune: 'z', Action: ActionSizePrev, Help: "previous size"},
	{Rune: 'x', Action: ActionSizeNext, Help: "next size"},
	{Rune: 't', Action: ActionTexture, Help: "next product image"},
	{Rune: 'r', Action: ActionResetQuad, Help: "reset shape"},
	{Rune: 'c', Action: ActionCompare, Help: "compare on/off"},
	{Rune: '2', Action: ActionSecond, Help: "add/remove second rug"},
	{Code: key.CodeTab, Action: ActionSwitchLayer, Help: "switch rug"},
	{Code: key.CodeLeftArrow, Action: ActionLeft, Help: "nudge left / move divider"},
	{Code: key.CodeRightArrow, Action: ActionRight, Help: "nudge right / move divider"},
	{Code: key.CodeUpArrow, Action: ActionUp, Help: "nudge up"},
	{Code: key.CodeDownArrow, Action: ActionDown, Help: "nudge down"},
	{Rune: '/', Action: ActionEnterCode, Help: "type an article code"},
	{Code: key.CodeS, Modifiers: key.ModControl, Action: ActionExport, Help: "save PNG"},
	{Code: key.CodeC, Modifiers: key.ModControl, Action: ActionCopyImage, Help: "copy image"},
	{Rune: 'y', Action: ActionCopySKU, Help: "copy SKU"},
	{Rune: 'q', Action: ActionQuit, Help: "quit"},
	{Code: key.CodeEscape, Action: ActionCancel, Help: "cancel drag or input"},
}

// Bindings returns the key table.
func Bindings() []Binding {
	return append([]Binding(nil), bindings...)
}

func (b Binding) String() string {
	var sb strings.Builder
	if b.Modifiers&key.ModControl != 0 {
		sb.WriteString("Ctrl+")
	}
	switch {
	case b.Rune != 0:
		sb.WriteRune(b.Rune)
	case b.Code == key.CodeTab:
		sb.WriteString("Tab")
	case b.Code == key.CodeEscape:
		sb.WriteString("Esc")
	case b.Code == key.CodeLeftArrow:
		sb.WriteString("Left")
	case b.Code == key.CodeRightArrow:
		sb.WriteString("Right")
	case b.Code == key.CodeUpArrow:
		sb.WriteString("Up")
	case b.Code == key.CodeDownArrow:
		sb.WriteString("Down")
	case b.Code >= key.CodeA && b.Code <= key.CodeZ:
		sb.WriteRune('A' + rune(b.Code-key.CodeA))
	default:
		fmt.Fprintf(&sb, "%v", b.Code)
	}
	return sb.String()
}

const modMask = key.ModControl | key.ModAlt | key.ModMeta

// ActionFor maps a key press to an action.
func ActionFor(e key.Event) (Action, bool) {
	mods := e.Modifiers & modMask
	for _, b := range bindings {
		if b.Rune != 0 {
			if mods == 0 && e.Rune == b.Rune {
				return b.Action, true
			}
			continue
		}
		if e.Code == b.Code && mods == b.Modifiers {
			return b.Action, true
		}
	}
	return "", false
}

// nudgeStep is the arrow key step in pixels, or percent for the divider.
func nudgeStep(e key.Event) float64 {
	if e.Modifiers&key.ModShift != 0 {
		return 10
	}
	return 1
}

// Do applies a session-level action. Actions that start a load return the
// request to fetch.
func (s *Session) Do(a Action, step float64) (LoadRequest, bool) {
	switch a {
	case ActionScaleDown:
		s.AdjustScale(-5)
	case ActionScaleUp:
		s.AdjustScale(5)
	case ActionRotateLeft:
		s.AdjustRotation(-1)
	case ActionRotateRight:
		s.AdjustRotation(1)
	case ActionRotateLeft5:
		s.AdjustRotation(-5)
	case ActionRotateRight5:
		s.AdjustRotation(5)
	case ActionShadowToggle:
		s.ToggleShadow()
	case ActionShadowWeaker:
		s.AdjustShadow(-5)
	case ActionShadowStrong:
		s.AdjustShadow(5)
	case ActionSizePrev:
		s.StepSize(-1)
	case ActionSizeNext:
		s.StepSize(1)
	case ActionTexture:
		return s.NextTexture()
	case ActionResetQuad:
		s.ResetQuad()
	case ActionCompare:
		s.SetCompare(!s.Scene.Compare.Enabled)
	case ActionSecond:
		s.ToggleSecond()
	case ActionSwitchLayer:
		s.SwitchActive()
	case ActionLeft, ActionRight:
		if a == ActionLeft {
			step = -step
		}
		if s.Scene.CompareActive() {
			s.SetSplit(s.Scene.Compare.SplitPct + step)
		} else {
			s.Nudge(step, 0)
		}
	case ActionUp:
		s.Nudge(0, -step)
	case ActionDown:
		s.Nudge(0, step)
	case ActionCancel:
		s.PointerLeave()
	}
	return LoadRequest{}, false
}
