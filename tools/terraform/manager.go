package terraform

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"dts/errors"
	"dts/system"
	"dts/system/command"
	"dts/system/file"
	"dts/system/syspkg"
)

const (
	aptKeyringPath = "/usr/share/keyrings/hashicorp-archive-keyring.gpg"
	aptSourcesPath = "/etc/apt/sources.list.d/hashicorp.list"
	rpmRepoPath    = "/etc/yum.repos.d/hashicorp.repo"
)

var (
	aptKeyUrl     = "https://apt.releases.hashicorp.com/gpg"
	aptSourcesTpl = "deb [arch=%s signed-by=%s] https://apt.releases.hashicorp.com %s main\n"
	rpmRepoUrl    = "https://rpm.releases.hashicorp.com/RHEL/hashicorp.repo"
)

type Manager struct {
	*system.LocalSystem
}

func NewManager(l *system.LocalSystem) *Manager {
	return &Manager{LocalSystem: l}
}

func (m *Manager) Installed() (bool, error) {
	isFile, err := file.IsFile("/usr/bin/terraform")
	if err != nil {
		return false, fmt.Errorf("failed to check for existing terraform installation: %w", err)
	}
	return isFile, nil
}

func (m *Manager) setupRepo() error {
	if m.LocalSystem.IsDebianFamily() {
		codename, err := file.OsReleaseValue("VERSION_CODENAME")
		if err != nil {
			return fmt.Errorf("failed to determine distribution codename: %w", err)
		}
		if codename == "" {
			return fmt.Errorf("distribution codename not present in /etc/os-release")
		}

		if err := importAptKey(aptKeyUrl, aptKeyringPath); err != nil {
			return err
		}

		sources := fmt.Sprintf(aptSourcesTpl, m.LocalSystem.Arch, aptKeyringPath, codename)
		if err := file.WriteString(aptSourcesPath, sources, 0644); err != nil {
			return err
		}
		return m.LocalSystem.PackageManager.Update()
	}

	return file.DownloadFile(rpmRepoUrl, rpmRepoPath)
}

func importAptKey(url, keyringPath string) error {
	downloadDir, err := afero.TempDir(file.AppFs, "", "dts")
	if err != nil {
		return fmt.Errorf("unable to create temporary directory for download: %w", err)
	}
	defer func() {
		if err := file.AppFs.RemoveAll(downloadDir); err != nil {
			slog.Warn("Failed to remove temporary directory '" + downloadDir + "': " + err.Error())
		}
	}()

	keyPath := downloadDir + "/hashicorp.asc"
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
	slog.Info("Installing Terraform")

	if err := m.setupRepo(); err != nil {
		return fmt.Errorf(errors.ToolRepoSetupFailedErrorTpl, "terraform", err)
	}

	if err := m.LocalSystem.PackageManager.Install(&syspkg.PackageList{Packages: []string{"terraform"}}); err != nil {
		return fmt.Errorf(errors.ToolInstallFailedErrorTpl, "terraform", err)
	}

	if v, err := m.CurrentVersion(); err == nil {
		slog.Info("Terraform " + v + " installed")
	}

	return nil
}

func (m *Manager) Update() error {
	slog.Info("Updating Terraform")
	return m.Install()
}

func (m *Manager) Remove() error {
	if err := m.LocalSystem.PackageManager.Remove(&syspkg.PackageList{Packages: []string{"terraform"}}); err != nil {
		return fmt.Errorf("failed to uninstall terraform: %w", err)
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

// CurrentVersion parses `terraform version` output, e.g.
// "Terraform v1.9.5\non linux_amd64".
func (m *Manager) CurrentVersion() (string, error) {
	out, err := command.Output("terraform", "version")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) < 2 {
		return "", fmt.Errorf("unexpected terraform version output: %q", out)
	}
	return fields[1], nil
}

func (m *Manager) LatestVersion() (string, error) {
	return m.LocalSystem.PackageManager.Candidate("terraform")
}
