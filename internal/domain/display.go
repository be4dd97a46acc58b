package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Point is a signed pixel coordinate in the global display space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Resolution keeps the tool's mode text verbatim ("2560x1440", "1920x1080", ...).
// An empty Resolution means the report did not carry one.
type Resolution string

// Known reports whether the report carried a resolution at all.
func (r Resolution) Known() bool {
	return r != ""
}

// Size decomposes the resolution into width and height. ok is false when the
// resolution is unknown or not in WIDTHxHEIGHT form with positive values.
func (r Resolution) Size() (width, height int, ok bool) {
	w, h, found := strings.Cut(string(r), "x")
	if !found {
		return 0, 0, false
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, 0, false
	}
	height, err = strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

// MarshalJSON writes an unknown resolution as null rather than "".
func (r Resolution) MarshalJSON() ([]byte, error) {
	if !r.Known() {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

func (r Resolution) String() string {
	if !r.Known() {
		return "unknown"
	}
	return string(r)
}

// Display is one output as reported by the display tool. Values are built
// fresh on every report and never mutated afterwards.
type Display struct {
	ID         string     `json:"id"`
	Resolution Resolution `json:"resolution"`
	Origin     Point      `json:"origin"`
	Rotation   int        `json:"rotation"`
	Enabled    bool       `json:"enabled"`
}

// ValidRotation reports whether Rotation is one of 0, 90, 180 or 270.
func (d Display) ValidRotation() bool {
	switch d.Rotation {
	case 0, 90, 180, 270:
		return true
	default:
		return false
	}
}

// DisplayConfiguration is a parsed report. Raw holds the tool output verbatim
// for diagnostics; it is never parsed again.
type DisplayConfiguration struct {
	Displays []Display `json:"displays"`
	Raw      string    `json:"rawCommand"`
}

// Find returns the display with the given id.
func (c DisplayConfiguration) Find(id string) (Display, bool) {
	for _, d := range c.Displays {
		if d.ID == id {
			return d, true
		}
	}
	return Display{}, false
}

// EnabledCount returns the number of displays not marked disabled.
func (c DisplayConfiguration) EnabledCount() int {
	n := 0
	for _, d := range c.Displays {
		if d.Enabled {
			n++
		}
	}
	return n
}
