package node

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"dts/errors"
	"dts/system"
	"dts/system/command"
	"dts/system/file"
	"dts/system/syspkg"
)

const (
	// DefaultMajor is the NodeSource release line installed by default.
	DefaultMajor = "22"

	aptKeyringPath = "/etc/apt/keyrings/nodesource.gpg"
	aptSourcesPath = "/etc/apt/sources.list.d/nodesource.list"
	rpmRepoPath    = "/etc/yum.repos.d/nodesource.repo"
)

var (
	gpgKeyUrl      = "https://deb.nodesource.com/gpgkey/nodesource-repo.gpg.key"
	aptSourcesTpl  = "deb [signed-by=%s] https://deb.nodesource.com/node_%s.x nodistro main\n"
	rpmRepoTpl     = "[nodesource-nodejs]\nname=Node.js Packages - $basearch\nbaseurl=https://rpm.nodesource.com/pub_%s.x/nodistro/nodejs/$basearch\npriority=9\nenabled=1\ngpgcheck=1\ngpgkey=https://rpm.nodesource.com/gpgkey/ns-operations-public.key\n"
)

type Manager struct {
	*system.LocalSystem
	Major string
}

func NewManager(l *system.LocalSystem, major string) *Manager {
	if major == "" {
		major = DefaultMajor
	}
	return &Manager{
		LocalSystem: l,
		Major:       major,
	}
}

func (m *Manager) Installed() (bool, error) {
	isFile, err := file.IsFile("/usr/bin/node")
	if err != nil {
		return false, fmt.Errorf("failed to check for existing node installation: %w", err)
	}
	return isFile, nil
}

// setupRepo places the NodeSource repository definition for the host's
// package family.
func (m *Manager) setupRepo() error {
	if m.LocalSystem.IsDebianFamily() {
		if err := importAptKey(gpgKeyUrl, aptKeyringPath); err != nil {
			return err
		}
		sources := fmt.Sprintf(aptSourcesTpl, aptKeyringPath, m.Major)
		if err := file.WriteString(aptSourcesPath, sources, 0644); err != nil {
			return err
		}
		return m.LocalSystem.PackageManager.Update()
	}

	repo := fmt.Sprintf(rpmRepoTpl, m.Major)
	return file.WriteString(rpmRepoPath, repo, 0644)
}

// importAptKey downloads an ASCII-armored key and dearmors it into the apt
// keyring directory.
func importAptKey(url, keyringPath string) error {
	if err := file.AppFs.MkdirAll("/etc/apt/keyrings", 0755); err != nil {
		return fmt.Errorf("failed to create apt keyring directory: %w", err)
	}

	downloadDir, err := afero.TempDir(file.AppFs, "", "dts")
	if err != nil {
		return fmt.Errorf("unable to create temporary directory for download: %w", err)
	}
	defer func() {
		if err := file.AppFs.RemoveAll(downloadDir); err != nil {
			slog.Warn("Failed to remove temporary directory '" + downloadDir + "': " + err.Error())
		}
	}()

	keyPath := downloadDir + "/repo.key"
	if err := file.DownloadFile(url, keyPath); err != nil {
		return fmt.Errorf(errors.ToolDownloadFailedErrorTpl, "repository signing key", err)
	}

	s := command.NewShellCommand("gpg", []string{"--dearmor", "--yes", "-o", keyringPath, keyPath}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to import repository signing key to '%s': %w", keyringPath, err)
	}
	return nil
}

func (m *Manager) Install() error {
	slog.Info("Installing Node.js " + m.Major + ".x from NodeSource")

	if err := m.setupRepo(); err != nil {
		return fmt.Errorf(errors.ToolRepoSetupFailedErrorTpl, "nodejs", err)
	}

	if err := m.LocalSystem.PackageManager.Install(&syspkg.PackageList{Packages: []string{"nodejs"}}); err != nil {
		return fmt.Errorf(errors.ToolInstallFailedErrorTpl, "nodejs", err)
	}

	if v, err := m.CurrentVersion(); err == nil {
		slog.Info("Node.js " + v + " installed")
	}

	return nil
}

func (m *Manager) Update() error {
	slog.Info("Updating Node.js")
	return m.Install()
}

func (m *Manager) Remove() error {
	if err := m.LocalSystem.PackageManager.Remove(&syspkg.PackageList{Packages: []string{"nodejs"}}); err != nil {
		return fmt.Errorf("failed to uninstall nodejs: %w", err)
	}

	for _, p := range []string{aptSourcesPath, rpmRepoPath, aptKeyringPath} {
		exists, err := file.IsPathExist(p)
		if err != nil || !exists {
			continue
		}
		if err := file.AppFs.Remove(p); err != nil {
			slog.Warn("Failed to remove " + p + ": " + err.Error())
		}
	}

	return nil
}

// CurrentVersion parses `node --version` output, e.g. "v22.1.0".
func (m *Manager) CurrentVersion() (string, error) {
	return command.Output("node", "--version")
}

func (m *Manager) LatestVersion() (string, error) {
	return m.LocalSystem.PackageManager.Candidate("nodejs")
}
