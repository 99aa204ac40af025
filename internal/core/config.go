package core

// RuntimeConfig contains host parameters passed to a game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // Base RNG seed; each run derives its own seed from it
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// CanvasFromScreen converts a terminal size in cells to a canvas size in
// canvas units. Terminal cells are roughly twice as tall as they are wide, so
// a cell is 10 units wide and 20 units tall.
func CanvasFromScreen(cols, rows int) Size {
	return Size{W: float64(cols) * CellW, H: float64(rows) * CellH}
}

// Canvas units covered by one terminal cell.
const (
	CellW = 10.0
	CellH = 20.0
)
