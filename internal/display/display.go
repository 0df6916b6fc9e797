// Package display detects connected screens and their current modes.
package display

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
)

// Domain is the cache key for display detection.
const Domain detect.Domain = "displays"

// Display is one active screen. Width and Height are physical pixels and
// are never zero. RefreshRate is quantized; 0 means unknown. ScaledWidth
// and ScaledHeight are the logical size under display scaling.
type Display struct {
	Name         string `json:"name,omitempty"`
	Width        uint32 `json:"width"`
	Height       uint32 `json:"height"`
	RefreshRate  uint32 `json:"refresh_rate"`
	ScaledWidth  uint32 `json:"scaled_width"`
	ScaledHeight uint32 `json:"scaled_height"`
	Primary      bool   `json:"primary"`
}

// AppendDisplay adds a display to list. A zero width or height usually
// means a disabled or disconnected output: nothing is added and false is
// returned.
func AppendDisplay(list *detect.List[Display], width, height, refreshRate, scaledWidth, scaledHeight uint32) bool {
	return Append(list, Display{
		Width:        width,
		Height:       height,
		RefreshRate:  refreshRate,
		ScaledWidth:  scaledWidth,
		ScaledHeight: scaledHeight,
	})
}

// Append adds d to list unless it has no dimensions.
func Append(list *detect.List[Display], d Display) bool {
	if d.Width == 0 || d.Height == 0 {
		return false
	}

	list.Append(d)

	return true
}

// Platform returns the display backends for the running OS, most preferred
// first.
func Platform() detect.Chain[Display] {
	return platformChain()
}
