package redis

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

type Manager struct {
	*system.LocalSystem
}

func NewManager(l *system.LocalSystem) *Manager {
	return &Manager{LocalSystem: l}
}

func (m *Manager) packageName() string {
	if m.LocalSystem.IsDebianFamily() {
		return "redis-server"
	}
	return "redis"
}

// serviceUnit matches the package name on both families.
func (m *Manager) serviceUnit() string {
	return m.packageName()
}

func (m *Manager) Installed() (bool, error) {
	isFile, err := file.IsFile("/usr/bin/redis-server")
	if err != nil {
		return false, fmt.Errorf("failed to check for existing redis installation: %w", err)
	}
	return isFile, nil
}

func (m *Manager) Install() error {
	slog.Info("Installing Redis")

	if err := m.LocalSystem.PackageManager.Install(&syspkg.PackageList{Packages: []string{m.packageName()}}); err != nil {
		return fmt.Errorf(errors.ToolInstallFailedErrorTpl, "redis", err)
	}

	if err := system.EnableUnit(m.serviceUnit()); err != nil {
		return fmt.Errorf(errors.ToolServiceEnableFailedErrorTpl, "redis", err)
	}

	if v, err := m.CurrentVersion(); err == nil {
		slog.Info("Redis " + v + " installed")
	}

	return nil
}

func (m *Manager) Update() error {
	slog.Info("Updating Redis")
	return m.Install()
}

func (m *Manager) Remove() error {
	if err := system.DisableUnit(m.serviceUnit()); err != nil {
		slog.Warn("Failed to stop redis service: " + err.Error())
	}

	if err := m.LocalSystem.PackageManager.Remove(&syspkg.PackageList{Packages: []string{m.packageName()}}); err != nil {
		return fmt.Errorf("failed to uninstall redis: %w", err)
	}
	return nil
}

// CurrentVersion parses `redis-server --version` output, e.g.
// "Redis server v=7.2.5 sha=00000000:0 malloc=jemalloc-5.3.0 bits=64".
func (m *Manager) CurrentVersion() (string, error) {
	out, err := command.Output("redis-server", "--version")
	if err != nil {
		return "", err
	}
	for _, f := range strings.Fields(out) {
		if v, found := strings.CutPrefix(f, "v="); found {
			return v, nil
		}
	}
	return "", fmt.Errorf("unexpected redis version output: %q", out)
}

func (m *Manager) LatestVersion() (string, error) {
	return m.LocalSystem.PackageManager.Candidate(m.packageName())
}
