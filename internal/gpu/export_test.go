package gpu

var HardwareAdapter = hardwareAdapter
