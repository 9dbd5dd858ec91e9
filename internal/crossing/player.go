package crossing

import "github.com/vovakirdan/lanecross/internal/core"

// Player is the token the user steers, in grid coordinates.
type Player struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Box returns the 1x1 tile occupied by the player.
func (p Player) Box() core.Box {
	return core.TileBox(p.X, p.Y)
}
