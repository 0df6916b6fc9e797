package normalize

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"codeberg.org/mutker/sysprobe/internal/errors"
	"gopkg.in/yaml.v3"
)

// Vendor is the canonical GPU vendor name. The zero value means the vendor
// is not known.
type Vendor string

const (
	VendorUnknown Vendor = ""
	VendorAMD     Vendor = "AMD"
	VendorIntel   Vendor = "Intel"
	VendorNVIDIA  Vendor = "NVIDIA"
)

var knownVendors = []Vendor{VendorAMD, VendorIntel, VendorNVIDIA}

//go:embed vendors.yaml
var defaultVendorData []byte

var defaultRegistry = mustRegistry(defaultVendorData)

// Registry maps PCI vendor IDs to vendors. A Registry is read-only once
// detection starts.
type Registry struct {
	ids map[uint32]Vendor
}

type registryFile struct {
	Vendors map[string][]string `yaml:"vendors"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[uint32]Vendor)}
}

// DefaultRegistry returns a copy of the built-in vendor table.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for id, v := range defaultRegistry.ids {
		r.ids[id] = v
	}

	return r
}

// LoadRegistry returns the built-in table extended with the IDs listed in
// the YAML file at path. Entries in the file win over built-in ones.
func LoadRegistry(path string) (*Registry, error) {
	errFactory := errors.New()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errFactory.Wrap(ErrVendorRegistry, err)
	}

	r := DefaultRegistry()
	if err := r.Merge(data); err != nil {
		return nil, err
	}

	return r, nil
}

func mustRegistry(data []byte) *Registry {
	r := NewRegistry()
	if err := r.Merge(data); err != nil {
		panic(err)
	}

	return r
}

// Add registers ids for vendor v.
func (r *Registry) Add(v Vendor, ids ...uint32) {
	for _, id := range ids {
		r.ids[id] = v
	}
}

// Merge parses a YAML vendor table and adds its entries.
func (r *Registry) Merge(data []byte) error {
	errFactory := errors.New()

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errFactory.Wrap(ErrVendorRegistry, err)
	}

	for name, ids := range file.Vendors {
		vendor, ok := ParseVendor(name)
		if !ok {
			return errFactory.WithData(ErrUnknownVendor, name)
		}

		for _, raw := range ids {
			id, ok := ParsePCIVendorID(raw)
			if !ok {
				return errFactory.WithData(ErrInvalidID, raw)
			}
			r.ids[id] = vendor
		}
	}

	return nil
}

// Len returns the number of known IDs.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Classify returns the vendor owning id, or VendorUnknown.
func (r *Registry) Classify(id uint32) Vendor {
	if r == nil {
		return defaultRegistry.Classify(id)
	}

	return r.ids[id]
}

// ClassifyVendor looks id up in the built-in vendor table.
func ClassifyVendor(id uint32) Vendor {
	return defaultRegistry.Classify(id)
}

// ParseVendor matches a vendor name case-insensitively.
func ParseVendor(name string) (Vendor, bool) {
	for _, v := range knownVendors {
		if strings.EqualFold(string(v), strings.TrimSpace(name)) {
			return v, true
		}
	}

	return VendorUnknown, false
}

// ParsePCIVendorID reads a 16-bit PCI vendor ID from the forms platforms
// report it in: "0x10de", "10DE" or a PnP device ID such as
// `PCI\VEN_10DE&DEV_2484&SUBSYS_...`.
func ParsePCIVendorID(s string) (uint32, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))

	if i := strings.Index(s, "VEN_"); i >= 0 {
		s = s[i+len("VEN_"):]
		if len(s) < 4 {
			return 0, false
		}
		s = s[:4]
	}
	s = strings.TrimPrefix(s, "0X")

	if s == "" {
		return 0, false
	}

	id, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}

	return uint32(id), true
}

// VendorFromName guesses the vendor from a free-form manufacturer string
// such as "Advanced Micro Devices, Inc." or "Intel(R) UHD Graphics".
func VendorFromName(s string) Vendor {
	s = strings.ToLower(s)

	switch {
	case strings.Contains(s, "nvidia"):
		return VendorNVIDIA
	case strings.Contains(s, "intel"):
		return VendorIntel
	case strings.Contains(s, "amd"), strings.Contains(s, "advanced micro devices"), strings.Contains(s, "ati "):
		return VendorAMD
	default:
		return VendorUnknown
	}
}
