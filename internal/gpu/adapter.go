package gpu

// hardwareAdapter reports whether a display adapter entry describes real
// hardware. An entry whose SoftwareAdapter flag cannot be read is treated
// like a software adapter.
func hardwareAdapter(software uint64, readErr error) bool {
	return readErr == nil && software == 0
}
