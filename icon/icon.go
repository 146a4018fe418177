// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, plain ASCII, or Unicode squares depending on user preference.
package icon

import (
	"github.com/primeflix-cli/primeflix/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, plain, squares}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	plain   string
	squares string
}

// Get retrieves the visual representation for the receiver based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return d.plain
	}
}

// Icon identifies a renderable UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Lock
	Warm
	Cold
)

var icons = map[Icon]iconDef{
	Success:  {emoji: "✅", plain: "+", squares: "🟩"},
	Fail:     {emoji: "❌", plain: "x", squares: "🟥"},
	Progress: {emoji: "⏳", plain: "~", squares: "🟨"},
	Lock:     {emoji: "🔒", plain: "#", squares: "🟦"},
	Warm:     {emoji: "🔥", plain: "w", squares: "🟧"},
	Cold:     {emoji: "❄️", plain: "c", squares: "⬜"},
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	def := icons[i]
	return def.Get()
}
