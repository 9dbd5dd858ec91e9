package crossing

// Three coordinate spaces are used for rows:
//
//	world row  absolute index, grows upward, row 0 is the first safe row
//	grid y     row inside the active window, 0 is the bottom
//	screen row rendering row, 0 is the top of the window

// WorldRowOf converts grid y to a world row for a window starting at bottom.
func WorldRowOf(bottom, y int) int {
	return bottom + y
}

// GridYOf converts a world row to grid y for a window starting at bottom.
func GridYOf(bottom, worldRow int) int {
	return worldRow - bottom
}

// ScreenRowOf converts grid y to a screen row.
func ScreenRowOf(gridHeight, y int) int {
	return gridHeight - 1 - y
}

// GridYFromScreen converts a screen row back to grid y.
func GridYFromScreen(gridHeight, screenRow int) int {
	return gridHeight - 1 - screenRow
}
