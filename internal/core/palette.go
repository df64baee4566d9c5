package core

import "math/rand/v2"

// Palette holds the pastel swatches offered for new habits.
var Palette = []string{
	"#f28b82", "#fbbc04", "#fff475", "#ccff90",
	"#a7ffeb", "#cbf0f8", "#aecbfa", "#d7aefb",
}

// RandomColor picks a swatch from Palette.
func RandomColor() string {
	return Palette[rand.IntN(len(Palette))]
}
