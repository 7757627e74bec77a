package golang

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"

	"dts/errors"
	"dts/system"
	"dts/system/command"
	"dts/system/file"
)

const (
	DefaultVersion = "1.23.4"

	installRoot = "/usr/local"
	installPath = "/usr/local/go"
	binPath     = "/usr/local/go/bin/go"
	profilePath = "/etc/profile.d/golang.sh"
	pathEntry   = "export PATH=$PATH:/usr/local/go/bin"
)

var (
	downloadUrl      = "https://go.dev/dl/go%s.linux-%s.tar.gz"
	latestVersionUrl = "https://go.dev/VERSION?m=text"

	supportedArchitectures = []string{"amd64", "arm64", "386"}
)

type Manager struct {
	*system.LocalSystem
	Version string
	Force   bool
}

func NewManager(l *system.LocalSystem, version string, force bool) *Manager {
	if version == "" {
		version = DefaultVersion
	}
	return &Manager{
		LocalSystem: l,
		Version:     version,
		Force:       force,
	}
}

func (m *Manager) downloadUrl() (string, error) {
	supported := false
	for _, arch := range supportedArchitectures {
		if m.LocalSystem.Arch == arch {
			supported = true
			break
		}
	}
	if !supported {
		return "", &errors.UnsupportedArchError{Tool: "go", Arch: m.LocalSystem.Arch}
	}
	return fmt.Sprintf(downloadUrl, m.Version, m.LocalSystem.Arch), nil
}

func (m *Manager) Installed() (bool, error) {
	isFile, err := file.IsFile(binPath)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing go installation at '%s': %w", installPath, err)
	}
	return isFile, nil
}

func (m *Manager) Install() error {
	slog.Info("Installing Go " + m.Version)

	installed, err := m.Installed()
	if err != nil {
		return err
	}
	if installed && !m.Force {
		return &errors.AlreadyExistsError{Pkg: "go", Path: installPath}
	}

	url, err := m.downloadUrl()
	if err != nil {
		return fmt.Errorf("failed to determine go download URL: %w", err)
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
	downloadPath := downloadDir + "/go.tar.gz"

	s, _ := pterm.DefaultSpinner.Start("Downloading Go " + m.Version + "...")
	if err := file.DownloadFile(url, downloadPath); err != nil {
		s.Fail("Download failed.")
		return &errors.DownloadFailedError{Tool: "go", URL: url, Err: err}
	}
	s.Success("Download complete.")

	if installed {
		slog.Info("Removing existing Go installation at " + installPath)
		if err := file.AppFs.RemoveAll(installPath); err != nil {
			return fmt.Errorf(errors.FileRemoveErrorTpl, installPath, err)
		}
	}

	// The archive extracts into a top-level go/ directory.
	if err := file.ExtractTarGz(downloadPath, installRoot); err != nil {
		return fmt.Errorf(errors.ToolInstallFailedErrorTpl, "go", err)
	}

	if err := file.WriteString(profilePath, pathEntry+"\n", 0644); err != nil {
		return fmt.Errorf("failed to add go to PATH via %s: %w", profilePath, err)
	}

	if v, err := m.CurrentVersion(); err == nil {
		slog.Info("Go " + v + " installed to " + installPath)
	} else {
		slog.Info("Go installed to " + installPath)
	}

	return nil
}

func (m *Manager) Update() error {
	slog.Info("Updating Go")
	installed, err := m.Installed()
	if err != nil {
		return err
	}
	if installed {
		if err := m.Remove(); err != nil {
			return fmt.Errorf(errors.ToolUpdateFailedErrorTpl, "go", err)
		}
	} else {
		slog.Info("Go is not installed")
	}

	return m.Install()
}

func (m *Manager) Remove() error {
	installed, err := m.Installed()
	if err != nil {
		return err
	}
	if !installed {
		slog.Info("Go is not installed")
		return nil
	}

	slog.Info("Removing Go from " + installPath)
	if err := file.AppFs.RemoveAll(installPath); err != nil {
		return fmt.Errorf(errors.ToolRemovalFailedErrorTpl, "go", installPath, err)
	}
	if err := file.AppFs.Remove(profilePath); err != nil {
		slog.Warn("Failed to remove " + profilePath + ": " + err.Error())
	}

	return nil
}

// CurrentVersion parses `go version` output, e.g.
// "go version go1.25.1 linux/amd64".
func (m *Manager) CurrentVersion() (string, error) {
	out, err := command.Output(binPath, "version")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return "", fmt.Errorf("unexpected go version output: %q", out)
	}
	return fields[2], nil
}

// LatestVersion queries the upstream release endpoint; the first line of
// the response is the latest stable version, e.g. "go1.25.1".
func (m *Manager) LatestVersion() (string, error) {
	res, err := http.Get(latestVersionUrl)
	if err != nil {
		return "", fmt.Errorf(errors.RequestFailedErrorTpl, latestVersionUrl, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("could not fetch go version list with status code %d", res.StatusCode)
	}

	scanner := bufio.NewScanner(res.Body)
	if !scanner.Scan() {
		return "", fmt.Errorf("empty response from %s", latestVersionUrl)
	}
	return strings.TrimSpace(scanner.Text()), nil
}
