package postgres

import (
	"fmt"
	"log/slog"
	"strings"

	"dts/errors"
	"dts/system"
	"dts/system/command"
	"dts/system/file"
	"dts/system/syspkg"
)

const serviceUnit = "postgresql"

type Manager struct {
	*system.LocalSystem
}

func NewManager(l *system.LocalSystem) *Manager {
	return &Manager{LocalSystem: l}
}

func (m *Manager) packages() []string {
	if m.LocalSystem.IsDebianFamily() {
		return []string{"postgresql", "postgresql-contrib"}
	}
	return []string{"postgresql-server", "postgresql-contrib"}
}

func (m *Manager) Installed() (bool, error) {
	isFile, err := file.IsFile("/usr/bin/psql")
	if err != nil {
		return false, fmt.Errorf("failed to check for existing postgresql installation: %w", err)
	}
	return isFile, nil
}

func (m *Manager) Install() error {
	slog.Info("Installing PostgreSQL")

	if err := m.LocalSystem.PackageManager.Install(&syspkg.PackageList{Packages: m.packages()}); err != nil {
		return fmt.Errorf(errors.ToolInstallFailedErrorTpl, "postgresql", err)
	}

	if !m.LocalSystem.IsDebianFamily() {
		slog.Info("Initializing PostgreSQL data directory")
		s := command.NewShellCommand("postgresql-setup", []string{"--initdb"}, nil, true)
		if err := s.Run(); err != nil {
			// Fails when a data directory already exists; that is fine.
			slog.Warn("postgresql-setup --initdb failed: " + err.Error())
		}
	}

	if err := system.EnableUnit(serviceUnit); err != nil {
		return fmt.Errorf(errors.ToolServiceEnableFailedErrorTpl, "postgresql", err)
	}

	if v, err := m.CurrentVersion(); err == nil {
		slog.Info("PostgreSQL " + v + " installed")
	}

	return nil
}

func (m *Manager) Update() error {
	slog.Info("Updating PostgreSQL")
	return m.Install()
}

func (m *Manager) Remove() error {
	if err := system.DisableUnit(serviceUnit); err != nil {
		slog.Warn("Failed to stop postgresql service: " + err.Error())
	}

	if err := m.LocalSystem.PackageManager.Remove(&syspkg.PackageList{Packages: m.packages()}); err != nil {
		return fmt.Errorf("failed to uninstall postgresql: %w", err)
	}
	return nil
}

// CurrentVersion parses `psql --version` output, e.g.
// "psql (PostgreSQL) 16.4 (Ubuntu 16.4-0ubuntu0.24.04.2)".
func (m *Manager) CurrentVersion() (string, error) {
	out, err := command.Output("psql", "--version")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return "", fmt.Errorf("unexpected psql version output: %q", out)
	}
	return fields[2], nil
}

func (m *Manager) LatestVersion() (string, error) {
	return m.LocalSystem.PackageManager.Candidate(m.packages()[0])
}
