package models

import (
	"time"
)

// Icon identifies the sidebar glyph shown next to a category. The set is
// closed; anything else falls back to IconFolder.
type Icon string

const (
	IconFolder  Icon = "folder"
	IconForm    Icon = "form"
	IconCode    Icon = "code"
	IconPicture Icon = "picture"
	IconTool    Icon = "tool"
	IconFile    Icon = "file"
	IconBulb    Icon = "bulb"
	IconRobot   Icon = "robot"
	IconCoffee  Icon = "coffee"
)

var knownIcons = map[Icon]bool{
	IconFolder:  true,
	IconForm:    true,
	IconCode:    true,
	IconPicture: true,
	IconTool:    true,
	IconFile:    true,
	IconBulb:    true,
	IconRobot:   true,
	IconCoffee:  true,
}

// NormalizeIcon maps an arbitrary icon tag onto the closed icon set,
// falling back to IconFolder for anything unrecognized.
func NormalizeIcon(s string) Icon {
	if knownIcons[Icon(s)] {
		return Icon(s)
	}
	return IconFolder
}

// Category groups prompts in the sidebar. Position is the explicit sort
// index; positions are kept dense (0..N-1) across the whole collection.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     *string   `json:"color,omitempty" db:"color"` // hex string or null
	Icon      Icon      `json:"icon" db:"icon"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
