package syspkg

import (
	"fmt"
	"log/slog"
	"strings"

	"dts/system/command"
	"dts/system/file"
)

// YumManager covers older RHEL-family hosts without dnf. Command surface
// matches dnf closely enough to share option shapes.
type YumManager struct {
	binary         string
	installOpts    []string
	upgradeOpts    []string
	removeOpts     []string
	autoRemoveOpts []string
	cleanOpts      []string
}

func NewYumManager() *YumManager {
	return &YumManager{
		binary:         "yum",
		installOpts:    []string{"-y", "-q", "install"},
		upgradeOpts:    []string{"-y", "-q", "update"},
		removeOpts:     []string{"-y", "-q", "remove"},
		autoRemoveOpts: []string{"-y", "-q", "autoremove"},
		cleanOpts:      []string{"-y", "-q", "clean", "all"},
	}
}

func (m *YumManager) GetBin() string {
	return m.binary
}

func (m *YumManager) GetPackageExtension() string {
	return ".rpm"
}

func (m *YumManager) Install(list *PackageList) error {
	packagesToInstall, err := list.GetPackages()
	if err != nil {
		return fmt.Errorf("error occurred while parsing packages to install: %w", err)
	}
	if len(packagesToInstall) > 0 {
		slog.Info("Installing packages: " + strings.Join(packagesToInstall, ", "))

		args := append(m.installOpts, packagesToInstall...)

		cmd := command.NewShellCommand(m.binary, args, nil, true)
		err = cmd.Run()
		if err != nil {
			return fmt.Errorf("failed to install packages '%v': %w", packagesToInstall, err)
		}
	}

	for _, localPackagePath := range list.LocalPackages {
		slog.Info("Installing package " + localPackagePath)

		args := append(m.installOpts, localPackagePath)

		exist, err := file.IsPathExist(localPackagePath)
		if err != nil {
			return fmt.Errorf("failed to check if local package '%s' exists: %w", localPackagePath, err)
		}
		if !exist {
			return fmt.Errorf("local package '%s' does not exist", localPackagePath)
		}

		cmd := command.NewShellCommand(m.binary, args, nil, true)
		err = cmd.Run()
		if err != nil {
			return fmt.Errorf("failed to install local package '%s': %w", localPackagePath, err)
		}
	}

	return nil
}

func (m *YumManager) Remove(list *PackageList) error {
	packagesToRemove, err := list.GetPackages()
	if err != nil {
		return fmt.Errorf("error occurred while parsing packages to remove: %w", err)
	}

	if len(packagesToRemove) > 0 {
		slog.Info("Removing package(s): " + strings.Join(packagesToRemove, ", "))

		args := append(m.removeOpts, packagesToRemove...)

		cmd := command.NewShellCommand(m.binary, args, nil, true)
		err = cmd.Run()
		if err != nil {
			return fmt.Errorf("failed to remove packages '%v': %w", packagesToRemove, err)
		}
	}

	return nil
}

func (m *YumManager) Update() error {
	slog.Debug("No update command required for yum")
	return nil
}

func (m *YumManager) Upgrade(fullUpgrade bool) error {
	slog.Info("Upgrading yum packages")
	cmd := command.NewShellCommand(m.binary, m.upgradeOpts, nil, true)
	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("yum update failed: %w", err)
	}

	if fullUpgrade {
		slog.Debug("No full upgrade command is configured for yum")
	}

	return nil
}

func (m *YumManager) Clean() error {
	slog.Info("Cleaning up yum")

	cmd := command.NewShellCommand(m.binary, m.cleanOpts, nil, true)
	err := cmd.Run()
	if err != nil {
		slog.Error("yum clean step failed: " + err.Error())
		return fmt.Errorf("yum clean failed: %w", err)
	}

	// yum autoremove is not available everywhere; best effort only.
	if err := m.autoRemove(); err != nil {
		slog.Warn("yum autoremove step failed: " + err.Error())
	}

	return nil
}

func (m *YumManager) Candidate(pkg string) (string, error) {
	return rpmCandidate(m.binary, pkg)
}

func (m *YumManager) autoRemove() error {
	cmd := command.NewShellCommand(m.binary, m.autoRemoveOpts, nil, true)
	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("yum autoremove failed: %w", err)
	}

	return nil
}
