package core

// Color is a palette role for a screen cell. Hosts map roles to real colors.
type Color uint8

// Palette roles used by the scene rasterizer.
const (
	ColorDefault Color = iota
	ColorCourt         // court surface
	ColorLine          // court lines
	ColorBall          // normal falling object
	ColorGolden        // golden falling object
	ColorCatcher       // catcher body
	ColorWater         // water inside the catcher
	ColorCap           // catcher cap
	ColorText          // HUD and overlay text
	ColorAlert         // game over title
	ColorDim           // secondary overlay text
)
