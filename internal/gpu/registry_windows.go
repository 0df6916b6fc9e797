//go:build windows

package gpu

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/logger"
	"codeberg.org/mutker/sysprobe/internal/normalize"
	"golang.org/x/sys/windows/registry"
)

const directXKey = `SOFTWARE\Microsoft\DirectX`

// RegistryProbe lists the hardware adapters DirectX last enumerated. Only
// subkeys stamped with the current LastSeen value are reported.
type RegistryProbe struct {
	Registry *normalize.Registry
}

func (RegistryProbe) Name() string {
	return "registry"
}

func (p RegistryProbe) Probe(list *detect.List[GPU]) error {
	errFactory := errors.New()

	root, err := registry.OpenKey(registry.LOCAL_MACHINE, directXKey, registry.READ)
	if err != nil {
		return errFactory.Wrap(ErrRegistryRead, err).WithMessage(`Open "` + directXKey + `" failed`)
	}
	defer root.Close()

	lastSeen, _, err := root.GetIntegerValue("LastSeen")
	if err != nil {
		return errFactory.Wrap(ErrRegistryRead, err).WithMessage(`Read "` + directXKey + `\LastSeen" failed`)
	}

	names, err := root.ReadSubKeyNames(-1)
	if err != nil {
		logger.Debug().Err(err).Int("read", len(names)).Msg("DirectX subkey enumeration stopped early")
	}

	for _, name := range names {
		p.readAdapter(root, name, lastSeen, list)
	}

	return nil
}

func (p RegistryProbe) readAdapter(root registry.Key, name string, lastSeen uint64, list *detect.List[GPU]) {
	key, err := registry.OpenKey(root, name, registry.QUERY_VALUE)
	if err != nil {
		return
	}
	defer key.Close()

	if seen, _, err := key.GetIntegerValue("LastSeen"); err != nil || seen != lastSeen {
		return
	}
	if software, _, err := key.GetIntegerValue("SoftwareAdapter"); !hardwareAdapter(software, err) {
		return
	}

	list.Append(New())
	g := list.Last()

	g.Name, _, _ = key.GetStringValue("Description")
	if id, _, err := key.GetIntegerValue("VendorId"); err == nil {
		g.SetVendorID(p.Registry, uint32(id))
	}
	if mem, _, err := key.GetIntegerValue("DedicatedVideoMemory"); err == nil {
		g.SetDedicatedMemory(mem)
	}
	if version, _, err := key.GetIntegerValue("DriverVersion"); err == nil {
		g.Driver = FormatDriverVersion(version)
	}
}
