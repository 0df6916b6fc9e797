//go:build windows

package display

import (
	"unsafe"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/logger"
	"codeberg.org/mutker/sysprobe/internal/normalize"
	"golang.org/x/sys/windows"
)

const (
	enumCurrentSettings = 0xFFFFFFFF

	displayDeviceAttachedToDesktop = 0x00000001
	displayDevicePrimaryDevice     = 0x00000004
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayDevices  = user32.NewProc("EnumDisplayDevicesW")
	procEnumDisplaySettings = user32.NewProc("EnumDisplaySettingsW")
)

type displayDevice struct {
	cb           uint32
	deviceName   [32]uint16
	deviceString [128]uint16
	stateFlags   uint32
	deviceID     [128]uint16
	deviceKey    [128]uint16
}

type devMode struct {
	deviceName         [32]uint16
	specVersion        uint16
	driverVersion      uint16
	size               uint16
	driverExtra        uint16
	fields             uint32
	positionX          int32
	positionY          int32
	displayOrientation uint32
	displayFixedOutput uint32
	color              int16
	duplex             int16
	yResolution        int16
	ttOption           int16
	collate            int16
	formName           [32]uint16
	logPixels          uint16
	bitsPerPel         uint32
	pelsWidth          uint32
	pelsHeight         uint32
	displayFlags       uint32
	displayFrequency   uint32
	icmMethod          uint32
	icmIntent          uint32
	mediaType          uint32
	ditherType         uint32
	reserved1          uint32
	reserved2          uint32
	panningWidth       uint32
	panningHeight      uint32
}

// User32Probe enumerates display devices attached to the desktop and reads
// their current mode.
type User32Probe struct{}

func (User32Probe) Name() string {
	return "user32"
}

func (User32Probe) Probe(list *detect.List[Display]) error {
	errFactory := errors.New()

	if err := procEnumDisplayDevices.Find(); err != nil {
		return errFactory.Wrap(ErrEnumFailed, err).WithMessage("EnumDisplayDevicesW() not available")
	}
	if err := procEnumDisplaySettings.Find(); err != nil {
		return errFactory.Wrap(ErrEnumFailed, err).WithMessage("EnumDisplaySettingsW() not available")
	}

	for i := uint32(0); ; i++ {
		dev := displayDevice{}
		dev.cb = uint32(unsafe.Sizeof(dev))
		ok, _, _ := procEnumDisplayDevices.Call(0, uintptr(i), uintptr(unsafe.Pointer(&dev)), 0)
		if ok == 0 {
			break
		}
		if dev.stateFlags&displayDeviceAttachedToDesktop == 0 {
			continue
		}

		mode := devMode{}
		mode.size = uint16(unsafe.Sizeof(mode))
		ok, _, _ = procEnumDisplaySettings.Call(
			uintptr(unsafe.Pointer(&dev.deviceName[0])),
			enumCurrentSettings,
			uintptr(unsafe.Pointer(&mode)),
		)
		if ok == 0 {
			logger.Debug().Str("device", windows.UTF16ToString(dev.deviceName[:])).Msg("EnumDisplaySettingsW() failed")
			continue
		}

		// Frequencies 0 and 1 mean the hardware default
		Append(list, Display{
			Name:         windows.UTF16ToString(dev.deviceString[:]),
			Width:        mode.pelsWidth,
			Height:       mode.pelsHeight,
			RefreshRate:  normalize.RefreshRate(int32(min(mode.displayFrequency, 1<<31-1))),
			ScaledWidth:  mode.pelsWidth,
			ScaledHeight: mode.pelsHeight,
			Primary:      dev.stateFlags&displayDevicePrimaryDevice != 0,
		})
	}

	return nil
}
