// Package reboot schedules, cancels, and inspects shutdown-based reboots.
package reboot

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"dts/system/command"
	"dts/system/file"
)

const scheduledFilePath = "/run/systemd/shutdown/scheduled"

type Unit string

const (
	Minutes Unit = "minutes"
	Hours   Unit = "hours"
	Days    Unit = "days"
)

var unitRanges = map[Unit]struct {
	min, max   int
	perMinutes int
}{
	Minutes: {1, 1440, 1},
	Hours:   {1, 24, 60},
	Days:    {1, 7, 1440},
}

type RangeError struct {
	Unit  Unit
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s value %d: must be between %d and %d", e.Unit, e.Value, e.Min, e.Max)
}

// Validate checks the time window without side effects.
func Validate(unit Unit, n int) error {
	r, ok := unitRanges[unit]
	if !ok {
		return fmt.Errorf("unknown time unit '%s'", unit)
	}
	if n < r.min || n > r.max {
		return &RangeError{Unit: unit, Value: n, Min: r.min, Max: r.max}
	}
	return nil
}

// Schedule arranges a reboot n units from now via `shutdown -r +N`. The
// window is validated first; nothing is invoked when it is out of range.
func Schedule(unit Unit, n int) error {
	if err := Validate(unit, n); err != nil {
		return err
	}

	minutes := n * unitRanges[unit].perMinutes
	slog.Info(fmt.Sprintf("Scheduling reboot in %d minute(s)", minutes))

	s := command.NewShellCommand("shutdown", []string{"-r", "+" + strconv.Itoa(minutes)}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to schedule reboot: %w", err)
	}
	return nil
}

// Now reboots immediately.
func Now() error {
	slog.Info("Rebooting now")
	s := command.NewShellCommand("shutdown", []string{"-r", "now"}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to reboot: %w", err)
	}
	return nil
}

// Cancel removes a pending scheduled shutdown.
func Cancel() error {
	slog.Info("Cancelling scheduled reboot")
	s := command.NewShellCommand("shutdown", []string{"-c"}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to cancel scheduled reboot: %w", err)
	}
	return nil
}

// Status reports the pending shutdown, read from systemd's scheduled
// shutdown file.
func Status() (string, error) {
	exists, err := file.IsPathExist(scheduledFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to check for scheduled shutdown: %w", err)
	}
	if !exists {
		return "no reboot scheduled", nil
	}

	contents, err := afero.ReadFile(file.AppFs, scheduledFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", scheduledFilePath, err)
	}

	mode := "shutdown"
	var at time.Time
	for _, line := range strings.Split(string(contents), "\n") {
		k, v, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch k {
		case "MODE":
			mode = v
		case "USEC":
			usec, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return "", fmt.Errorf("failed to parse scheduled shutdown time '%s': %w", v, err)
			}
			at = time.UnixMicro(usec)
		}
	}

	if at.IsZero() {
		return "no reboot scheduled", nil
	}
	return fmt.Sprintf("%s scheduled for %s", mode, at.Format(time.RFC1123)), nil
}
