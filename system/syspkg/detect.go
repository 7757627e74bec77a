package syspkg

import (
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
)

var lookPath = exec.LookPath

var (
	detectOnce   sync.Once
	detectedPm   SystemPackageManager
	detectionErr error
)

// Detect probes the search path for a supported package manager, preferring
// dnf over yum over apt. The result is memoized for the process.
func Detect() (SystemPackageManager, error) {
	detectOnce.Do(func() {
		detectedPm, detectionErr = detect()
	})
	return detectedPm, detectionErr
}

func detect() (SystemPackageManager, error) {
	if _, err := lookPath("dnf"); err == nil {
		slog.Debug("Detected dnf package manager")
		return NewDnfManager(), nil
	}
	if _, err := lookPath("yum"); err == nil {
		slog.Debug("Detected yum package manager")
		return NewYumManager(), nil
	}
	if _, err := lookPath("apt-get"); err == nil {
		slog.Debug("Detected apt package manager")
		return NewAptManager(), nil
	}
	return nil, fmt.Errorf("no supported package manager found (looked for dnf, yum, apt-get)")
}

// ResetDetection clears the memoized detection result. Test use only.
func ResetDetection() {
	detectOnce = sync.Once{}
	detectedPm = nil
	detectionErr = nil
}
