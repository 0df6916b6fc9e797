package display_test

import (
	"errors"
	"testing"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/display"
	apperrors "codeberg.org/mutker/sysprobe/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xrandrOutput = `Screen 0: minimum 320 x 200, current 4480 x 1440, maximum 16384 x 16384
DP-1 connected primary 2560x1440+0+0 (normal left inverted right x axis y axis) 597mm x 336mm
   2560x1440    143.91*+  120.00    59.95
   1920x1080     60.00    59.94
HDMI-1 connected 1920x1080+2560+0 (normal left inverted right x axis y axis) 527mm x 296mm
   1920x1080     60.00 +  74.97*   50.00
   1280x720      60.00
DP-2 disconnected (normal left inverted right x axis y axis)
eDP-1 connected (normal left inverted right x axis y axis)
   1920x1200     60.02 +
HDMI-2 connected 1280x720+4480+0 (normal left inverted right x axis y axis) 0mm x 0mm
   1920x1080i    60.00*
`

func TestParseXrandr(t *testing.T) {
	var list detect.List[display.Display]
	added := display.ParseXrandr(xrandrOutput, &list)
	require.Equal(t, 3, added)

	result := collect(t, display.XrandrProbe{Run: func() ([]byte, error) {
		return []byte(xrandrOutput), nil
	}})
	require.NoError(t, result.Err())
	require.Equal(t, 3, result.Len())

	assert.Equal(t, display.Display{
		Name:         "DP-1",
		Width:        2560,
		Height:       1440,
		RefreshRate:  144,
		ScaledWidth:  2560,
		ScaledHeight: 1440,
		Primary:      true,
	}, result.At(0))

	assert.Equal(t, display.Display{
		Name:         "HDMI-1",
		Width:        1920,
		Height:       1080,
		RefreshRate:  75,
		ScaledWidth:  1920,
		ScaledHeight: 1080,
	}, result.At(1))

	// Scaled output: logical geometry differs from the mode
	assert.Equal(t, display.Display{
		Name:         "HDMI-2",
		Width:        1920,
		Height:       1080,
		RefreshRate:  60,
		ScaledWidth:  1280,
		ScaledHeight: 720,
	}, result.At(2))
}

func TestXrandrCommandFailure(t *testing.T) {
	result := collect(t, display.XrandrProbe{Run: func() ([]byte, error) {
		return nil, errors.New("exit status 1")
	}})

	assert.True(t, apperrors.HasCode(result.Err(), display.ErrCommandFailed))
	assert.Equal(t, 0, result.Len())
}

func TestXrandrWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")

	result := collect(t, display.XrandrProbe{})

	assert.True(t, apperrors.HasCode(result.Err(), display.ErrNoDisplayServer))
}

func TestXrandrEmptyOutputSucceeds(t *testing.T) {
	result := collect(t, display.XrandrProbe{Run: func() ([]byte, error) {
		return []byte("Screen 0: minimum 320 x 200, current 0 x 0\n"), nil
	}})

	assert.True(t, result.OK())
	assert.Equal(t, 0, result.Len())
}
