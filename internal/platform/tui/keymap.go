package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanecross/internal/core"
	"github.com/vovakirdan/lanecross/internal/multiplayer"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a solo action. Both WASD and the
// arrow keys move the token.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame appends the key's action to an input frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Push(action)
	}
	return isQuit
}

// MapVersusKey routes a movement key to its seat: W/A/S/D drive player 1
// and the arrow keys drive player 2. ok is false for non-movement keys.
func (km *KeyMapper) MapVersusKey(msg tea.KeyMsg) (player multiplayer.PlayerID, action core.Action, ok bool) {
	switch msg.String() {
	case "w":
		return multiplayer.Player1, core.ActionUp, true
	case "s":
		return multiplayer.Player1, core.ActionDown, true
	case "a":
		return multiplayer.Player1, core.ActionLeft, true
	case "d":
		return multiplayer.Player1, core.ActionRight, true
	case "up":
		return multiplayer.Player2, core.ActionUp, true
	case "down":
		return multiplayer.Player2, core.ActionDown, true
	case "left":
		return multiplayer.Player2, core.ActionLeft, true
	case "right":
		return multiplayer.Player2, core.ActionRight, true
	}
	return 0, core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. Letter keys are
// left to the seed field, so only non-printing keys navigate.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c":
		return MenuActionQuit
	case "up", "shift+tab":
		return MenuActionUp
	case "down", "tab":
		return MenuActionDown
	case "left":
		return MenuActionLeft
	case "right":
		return MenuActionRight
	case "enter":
		return MenuActionSelect
	case "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
