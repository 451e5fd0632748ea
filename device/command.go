// Package device speaks the frame's plaintext TCP command protocol: one
// connection per command, comma-delimited ASCII lines, no acknowledgement.
package device

import (
	"fmt"
	"strconv"
)

// Command is one discrete instruction for the frame. Encode returns the exact
// comma-delimited line the device expects, without the trailing newline.
//
// The protocol has no escaping. Callers must keep tag and id values free of
// commas and newlines before constructing a Command; the encoder does not
// enforce it (the legacy device doesn't either).
type Command interface {
	Encode() string
}

// DisplayImage tells the frame to show a single photo.
type DisplayImage struct {
	PhotoID string
}

func (c DisplayImage) Encode() string {
	return "image," + c.PhotoID
}

// DisplayVideo tells the frame to play a single video.
type DisplayVideo struct {
	PhotoID string
}

func (c DisplayVideo) Encode() string {
	return "video," + c.PhotoID
}

// Resume returns the frame to its normal slideshow rotation.
type Resume struct{}

func (Resume) Encode() string {
	// The trailing comma is required, the device rejects a bare "resume".
	return "resume,"
}

// SetTag changes which tag the slideshow cycles through.
type SetTag struct {
	Tag string
}

func (c SetTag) Encode() string {
	return "tag," + c.Tag
}

// SetBrightness adjusts the display brightness. Level is in [0,1], or -1 for
// the frame's automatic light-sensor mode.
type SetBrightness struct {
	Level float64
}

func (c SetBrightness) Encode() string {
	return "brightness," + formatLevel(c.Level)
}

// SetOptions pushes the full option block in one line. Quiet hours are in
// [0,23], or -1 to disable the quiet window.
type SetOptions struct {
	Brightness      float64
	IntervalMinutes int
	QuietStartHour  int
	QuietEndHour    int
}

func (c SetOptions) Encode() string {
	return fmt.Sprintf("options,%s,%d,%d,%d",
		formatLevel(c.Brightness), c.IntervalMinutes, c.QuietStartHour, c.QuietEndHour)
}

// formatLevel renders a brightness level the way the device parses it:
// shortest decimal form, with the auto sentinel as a literal -1.
func formatLevel(level float64) string {
	if level == -1 {
		return "-1"
	}
	return strconv.FormatFloat(level, 'f', -1, 64)
}
