package docker

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"dts/errors"
	"dts/system"
	"dts/system/command"
	"dts/system/file"
	"dts/system/syspkg"
)

const (
	aptKeyringPath = "/etc/apt/keyrings/docker.gpg"
	aptSourcesPath = "/etc/apt/sources.list.d/docker.list"
	rpmRepoPath    = "/etc/yum.repos.d/docker-ce.repo"

	serviceUnit = "docker"
)

var (
	aptKeyUrlTpl  = "https://download.docker.com/linux/%s/gpg"
	aptSourcesTpl = "deb [arch=%s signed-by=%s] https://download.docker.com/linux/%s %s stable\n"
	rpmRepoUrl    = "https://download.docker.com/linux/centos/docker-ce.repo"

	enginePackages = []string{
		"docker-ce",
		"docker-ce-cli",
		"containerd.io",
		"docker-buildx-plugin",
		"docker-compose-plugin",
	}
)

type Manager struct {
	*system.LocalSystem
	// AddUser is added to the docker group after installation when set.
	AddUser string
}

func NewManager(l *system.LocalSystem, addUser string) *Manager {
	if addUser == "" {
		// sudo preserves the invoking user here.
		addUser = os.Getenv("SUDO_USER")
	}
	return &Manager{
		LocalSystem: l,
		AddUser:     addUser,
	}
}

func (m *Manager) Installed() (bool, error) {
	isFile, err := file.IsFile("/usr/bin/docker")
	if err != nil {
		return false, fmt.Errorf("failed to check for existing docker installation: %w", err)
	}
	return isFile, nil
}

func (m *Manager) setupRepo() error {
	if m.LocalSystem.IsDebianFamily() {
		vendor := m.LocalSystem.Vendor
		if vendor != "ubuntu" && vendor != "debian" {
			return &errors.UnsupportedOSError{Vendor: vendor, Version: m.LocalSystem.Version}
		}

		codename, err := file.OsReleaseValue("VERSION_CODENAME")
		if err != nil {
			return fmt.Errorf("failed to determine distribution codename: %w", err)
		}
		if codename == "" {
			return fmt.Errorf("distribution codename not present in /etc/os-release")
		}

		keyUrl := fmt.Sprintf(aptKeyUrlTpl, vendor)
		if err := importAptKey(keyUrl, aptKeyringPath); err != nil {
			return err
		}

		sources := fmt.Sprintf(aptSourcesTpl, m.LocalSystem.Arch, aptKeyringPath, vendor, codename)
		if err := file.WriteString(aptSourcesPath, sources, 0644); err != nil {
			return err
		}
		return m.LocalSystem.PackageManager.Update()
	}

	return file.DownloadFile(rpmRepoUrl, rpmRepoPath)
}

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

	keyPath := downloadDir + "/docker.asc"
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
	slog.Info("Installing Docker Engine")

	if err := m.setupRepo(); err != nil {
		return fmt.Errorf(errors.ToolRepoSetupFailedErrorTpl, "docker", err)
	}

	if err := m.LocalSystem.PackageManager.Install(&syspkg.PackageList{Packages: enginePackages}); err != nil {
		return fmt.Errorf(errors.ToolInstallFailedErrorTpl, "docker", err)
	}

	if err := system.EnableUnit(serviceUnit); err != nil {
		return fmt.Errorf(errors.ToolServiceEnableFailedErrorTpl, "docker", err)
	}

	if m.AddUser != "" {
		slog.Info("Adding user '" + m.AddUser + "' to the docker group")
		s := command.NewShellCommand("usermod", []string{"-aG", "docker", m.AddUser}, nil, true)
		if err := s.Run(); err != nil {
			// Group membership is a convenience; the engine works without it.
			slog.Warn("Failed to add '" + m.AddUser + "' to the docker group: " + err.Error())
		}
	}

	if v, err := m.CurrentVersion(); err == nil {
		slog.Info("Docker " + v + " installed")
	}

	return nil
}

func (m *Manager) Update() error {
	slog.Info("Updating Docker Engine")
	return m.Install()
}

func (m *Manager) Remove() error {
	if err := system.DisableUnit(serviceUnit); err != nil {
		slog.Warn("Failed to stop docker service: " + err.Error())
	}

	if err := m.LocalSystem.PackageManager.Remove(&syspkg.PackageList{Packages: enginePackages}); err != nil {
		return fmt.Errorf("failed to uninstall docker: %w", err)
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

// CurrentVersion parses `docker --version` output, e.g.
// "Docker version 27.3.1, build ce12230".
func (m *Manager) CurrentVersion() (string, error) {
	out, err := command.Output("docker", "--version")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return "", fmt.Errorf("unexpected docker version output: %q", out)
	}
	return strings.TrimSuffix(fields[2], ","), nil
}

func (m *Manager) LatestVersion() (string, error) {
	return m.LocalSystem.PackageManager.Candidate("docker-ce")
}
