package system

import (
	"fmt"

	"dts/system/command"
)

// systemd unit control. Every tool that ships a service goes through these
// rather than assembling systemctl invocations inline.

func EnableUnit(unit string) error {
	s := command.NewShellCommand("systemctl", []string{"enable", "--now", unit}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to enable unit '%s': %w", unit, err)
	}
	return nil
}

func DisableUnit(unit string) error {
	s := command.NewShellCommand("systemctl", []string{"disable", "--now", unit}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to disable unit '%s': %w", unit, err)
	}
	return nil
}

func RestartUnit(unit string) error {
	s := command.NewShellCommand("systemctl", []string{"restart", unit}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to restart unit '%s': %w", unit, err)
	}
	return nil
}
