package normalize

// GPUType tells integrated graphics apart from discrete cards.
type GPUType string

const (
	GPUTypeUnknown    GPUType = "unknown"
	GPUTypeIntegrated GPUType = "integrated"
	GPUTypeDiscrete   GPUType = "discrete"
)

// DiscreteMemoryThreshold is the dedicated memory size from which an
// adapter counts as a discrete card.
const DiscreteMemoryThreshold uint64 = 1 << 30

// ClassifyMemory maps dedicated video memory to a GPU type. A nil reading
// means the memory was not measured and yields GPUTypeUnknown.
func ClassifyMemory(dedicated *uint64) GPUType {
	if dedicated == nil {
		return GPUTypeUnknown
	}

	return ClassifyMemoryBytes(*dedicated)
}

// ClassifyMemoryBytes classifies a measured dedicated memory size.
func ClassifyMemoryBytes(dedicated uint64) GPUType {
	if dedicated >= DiscreteMemoryThreshold {
		return GPUTypeDiscrete
	}

	return GPUTypeIntegrated
}
