package hyperparams

import (
	"os"
	"strings"
)

// Device is the compute context a model trains on.
type Device string

const (
	CPU Device = "cpu"
	GPU Device = "gpu"
)

// GPUCount reports the number of GPUs visible to this process. Tests replace it
// to pin the device.
var GPUCount = visibleGPUs

// DetectDevice picks GPU when at least one GPU is visible right now.
func DetectDevice() Device {
	if GPUCount() > 0 {
		return GPU
	}
	return CPU
}

func visibleGPUs() int {
	if v, ok := os.LookupEnv("CUDA_VISIBLE_DEVICES"); ok {
		v = strings.TrimSpace(v)
		if v == "" || v == "-1" || v == "NoDevFiles" {
			return 0
		}
		return len(strings.Split(v, ","))
	}
	entries, err := os.ReadDir("/proc/driver/nvidia/gpus")
	if err != nil {
		return 0
	}
	return len(entries)
}
