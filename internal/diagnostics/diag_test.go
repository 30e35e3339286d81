package diagnostics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

func TestFromErrorPicksMostSpecificKind(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("raster: clip.gif: %w", rogerr.ErrNoFrames), "DECODE.EMPTY"},
		{fmt.Errorf("raster: %w", rogerr.ErrDecode), "DECODE.FAILED"},
		{fmt.Errorf("ctrl: %w", rogerr.ErrBrightness), "PARAM.BRIGHTNESS"},
		{fmt.Errorf("aura: speed: %w", rogerr.ErrInvalidParameter), "PARAM.INVALID"},
		{fmt.Errorf("led: %w", rogerr.ErrDeviceNotFound), "DEVICE.MISSING"},
		{errors.New("boom"), "INTERNAL"},
	}
	for _, c := range cases {
		d := FromError(c.err)
		assert.Equal(t, c.code, d.Code, c.err.Error())
		assert.Equal(t, Err, d.Severity)
		assert.Equal(t, c.err.Error(), d.Detail)
	}
}
