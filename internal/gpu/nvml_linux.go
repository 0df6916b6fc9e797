//go:build linux

package gpu

import (
	"fmt"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/logger"
	"codeberg.org/mutker/sysprobe/internal/normalize"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

type nvmlError struct {
	ret nvml.Return
}

func (e *nvmlError) Error() string {
	return nvml.ErrorString(e.ret)
}

func newNVMLError(ret nvml.Return) error {
	return &nvmlError{ret: ret}
}

func isNVMLSuccess(ret nvml.Return) bool {
	return ret == nvml.SUCCESS
}

type nvmlWrapper struct {
	initialized bool
}

func (w *nvmlWrapper) Initialize() error {
	errFactory := errors.New()
	if w.initialized {
		return nil
	}

	ret := nvml.Init()
	if !isNVMLSuccess(ret) {
		return errFactory.Wrap(ErrInitFailed, newNVMLError(ret))
	}

	w.initialized = true

	return nil
}

func (w *nvmlWrapper) Shutdown() error {
	errFactory := errors.New()
	if !w.initialized {
		return nil
	}

	ret := nvml.Shutdown()
	if !isNVMLSuccess(ret) {
		return errFactory.Wrap(ErrShutdownFailed, newNVMLError(ret))
	}

	w.initialized = false

	return nil
}

func (w *nvmlWrapper) GetDeviceCount() (int, error) {
	errFactory := errors.New()
	if !w.initialized {
		return 0, errFactory.New(ErrNotInitialized)
	}

	count, ret := nvml.DeviceGetCount()
	if !isNVMLSuccess(ret) {
		return 0, errFactory.Wrap(ErrDeviceCountFailed, newNVMLError(ret))
	}

	return count, nil
}

func (w *nvmlWrapper) GetDevice(index int) (nvml.Device, error) {
	errFactory := errors.New()
	if !w.initialized {
		return nil, errFactory.New(ErrNotInitialized)
	}

	device, ret := nvml.DeviceGetHandleByIndex(index)
	if !isNVMLSuccess(ret) {
		return nil, errFactory.Wrap(ErrDeviceNotFound, newNVMLError(ret))
	}

	return device, nil
}

// DriverVersion returns the system driver version, or "" if NVML cannot
// report it.
func (w *nvmlWrapper) DriverVersion() string {
	if !w.initialized {
		return ""
	}

	version, ret := nvml.SystemGetDriverVersion()
	if !isNVMLSuccess(ret) {
		logger.Debug().Str("error", nvml.ErrorString(ret)).Msg("Failed to get driver version")
		return ""
	}

	return version
}

// NVMLProbe enumerates NVIDIA GPUs through the NVML library. It fails when
// libnvidia-ml cannot be loaded, letting the next backend run.
type NVMLProbe struct {
	Registry *normalize.Registry
}

func (NVMLProbe) Name() string {
	return "nvml"
}

func (p NVMLProbe) Probe(list *detect.List[GPU]) error {
	devices, err := ListNVMLDevices()
	if err != nil {
		return err
	}

	for _, d := range devices {
		list.Append(FromNVML(d, p.Registry))
	}

	return nil
}

// ListNVMLDevices opens an NVML session, reads every device and closes the
// session again.
func ListNVMLDevices() ([]NVMLDevice, error) {
	w := &nvmlWrapper{}
	if err := w.Initialize(); err != nil {
		return nil, err
	}
	defer func() {
		if err := w.Shutdown(); err != nil {
			logger.Debug().Err(err).Msg("NVML shutdown failed")
		}
	}()

	count, err := w.GetDeviceCount()
	if err != nil {
		return nil, err
	}

	driver := w.DriverVersion()
	devices := make([]NVMLDevice, 0, count)
	for i := 0; i < count; i++ {
		device, err := w.GetDevice(i)
		if err != nil {
			logger.Debug().Err(err).Int("index", i).Msg("Skipping NVML device")
			continue
		}

		devices = append(devices, readNVMLDevice(device, driver))
	}

	return devices, nil
}

func readNVMLDevice(device nvml.Device, driver string) NVMLDevice {
	d := NVMLDevice{DriverVersion: driver}

	if name, ret := device.GetName(); isNVMLSuccess(ret) {
		d.Name = name
	}
	if pci, ret := device.GetPciInfo(); isNVMLSuccess(ret) {
		id := pci.PciDeviceId
		d.PCIDeviceID = &id
		d.BusID = fmt.Sprintf("%04x:%02x:%02x.0", pci.Domain, pci.Bus, pci.Device)
	}
	if mem, ret := device.GetMemoryInfo(); isNVMLSuccess(ret) {
		total := mem.Total
		d.MemoryTotal = &total
	}
	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); isNVMLSuccess(ret) {
		d.Temperature = &temp
	}
	if cores, ret := device.GetNumGpuCores(); isNVMLSuccess(ret) {
		d.Cores = &cores
	}

	return d
}
