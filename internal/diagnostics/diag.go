// Package diagnostics turns engine errors into messages for the control
// surface.
package diagnostics

import (
	"errors"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

type hint struct {
	code    string
	summary string
	causes  []string
	fixes   []string
}

// Ordered so the more specific kinds win.
var hints = []struct {
	kind error
	hint hint
}{
	{rogerr.ErrNoFrames, hint{"DECODE.EMPTY", "Animation has no frames",
		[]string{"GIF file is empty or truncated"},
		[]string{"Re-export the GIF", "Check the file path in the action list"}}},
	{rogerr.ErrBrightness, hint{"PARAM.BRIGHTNESS", "Brightness out of range",
		[]string{"Value outside 0..1"},
		[]string{"Use a brightness between 0 and 1"}}},
	{rogerr.ErrDeviceNotFound, hint{"DEVICE.MISSING", "Device not found",
		[]string{"The laptop has no AniMe or Aura device", "udev rules deny access to the node"},
		[]string{"Run with driver: sim", "Check /dev/bus/usb and /dev/hidraw* permissions"}}},
	{rogerr.ErrTimeout, hint{"DEVICE.TIMEOUT", "Device write timed out",
		[]string{"Device busy or suspended"},
		[]string{"Retry after resume"}}},
	{rogerr.ErrIO, hint{"DEVICE.IO", "Device write failed",
		[]string{"Device was unplugged or reset", "Another process claimed the interface"},
		[]string{"Restart rogled", "Stop other RGB tools"}}},
	{rogerr.ErrDecode, hint{"DECODE.FAILED", "Could not decode input",
		[]string{"Unsupported image format", "Image is not 8-bit grayscale", "Malformed YAML"},
		[]string{"Convert images to grayscale PNG", "Validate the YAML file"}}},
	{rogerr.ErrLayoutNotFound, hint{"LAYOUT.MISSING", "No keyboard layout matches this board",
		[]string{"Board name not listed in any layout file"},
		[]string{"Add the board name to a layout's matches list", "Set board in the config"}}},
	{rogerr.ErrInvalidParameter, hint{"PARAM.INVALID", "Invalid parameter",
		nil,
		[]string{"Check the command arguments"}}},
}

// FromError classifies err by its rogerr kind. Errors of no known kind get
// a generic code.
func FromError(err error) Diagnostic {
	for _, h := range hints {
		if errors.Is(err, h.kind) {
			return Diagnostic{
				Severity:       Err,
				Code:           h.hint.code,
				Summary:        h.hint.summary,
				Detail:         err.Error(),
				LikelyCauses:   h.hint.causes,
				SuggestedFixes: h.hint.fixes,
			}
		}
	}
	return Diagnostic{Severity: Err, Code: "INTERNAL", Summary: "Unexpected error", Detail: err.Error()}
}
