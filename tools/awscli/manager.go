package awscli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"

	"dts/errors"
	"dts/system"
	"dts/system/command"
	"dts/system/file"
)

const (
	binPath       = "/usr/local/bin/aws"
	completerPath = "/usr/local/bin/aws_completer"
	installDir    = "/usr/local/aws-cli"
)

var downloadUrl = "https://awscli.amazonaws.com/awscli-exe-linux-%s.zip"

type Manager struct {
	*system.LocalSystem
	Force bool
}

func NewManager(l *system.LocalSystem, force bool) *Manager {
	return &Manager{
		LocalSystem: l,
		Force:       force,
	}
}

func (m *Manager) downloadUrl() (string, error) {
	arch := m.LocalSystem.GetAltArchName()
	if arch != "x86_64" && arch != "aarch64" {
		return "", &errors.UnsupportedArchError{Tool: "aws-cli", Arch: m.LocalSystem.Arch}
	}
	return fmt.Sprintf(downloadUrl, arch), nil
}

func (m *Manager) Installed() (bool, error) {
	isFile, err := file.IsFile(binPath)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing aws-cli installation at '%s': %w", binPath, err)
	}
	return isFile, nil
}

func (m *Manager) Install() error {
	slog.Info("Installing AWS CLI v2")

	installed, err := m.Installed()
	if err != nil {
		return err
	}
	if installed && !m.Force {
		return &errors.AlreadyExistsError{Pkg: "aws-cli", Path: binPath}
	}

	url, err := m.downloadUrl()
	if err != nil {
		return fmt.Errorf("failed to determine aws-cli download URL: %w", err)
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
	downloadPath := downloadDir + "/awscliv2.zip"

	s, _ := pterm.DefaultSpinner.Start("Downloading AWS CLI...")
	if err := file.DownloadFile(url, downloadPath); err != nil {
		s.Fail("Download failed.")
		return fmt.Errorf(errors.ToolDownloadFailedErrorTpl, "aws-cli", err)
	}
	s.Success("Download complete.")

	if err := file.ExtractZip(downloadPath, downloadDir); err != nil {
		return fmt.Errorf(errors.ToolInstallFailedErrorTpl, "aws-cli", err)
	}

	installerArgs := []string{}
	if installed {
		installerArgs = append(installerArgs, "--update")
	}
	installer := command.NewShellCommand(downloadDir+"/aws/install", installerArgs, nil, true)
	if err := installer.Run(); err != nil {
		return fmt.Errorf(errors.ToolInstallFailedErrorTpl, "aws-cli", err)
	}

	if v, err := m.CurrentVersion(); err == nil {
		slog.Info("AWS CLI " + v + " installed")
	}

	return nil
}

func (m *Manager) Update() error {
	slog.Info("Updating AWS CLI")
	m.Force = true
	return m.Install()
}

func (m *Manager) Remove() error {
	installed, err := m.Installed()
	if err != nil {
		return err
	}
	if !installed {
		slog.Info("AWS CLI is not installed")
		return nil
	}

	slog.Info("Removing AWS CLI")
	for _, p := range []string{binPath, completerPath} {
		if err := file.AppFs.Remove(p); err != nil {
			slog.Warn("Failed to remove " + p + ": " + err.Error())
		}
	}
	if err := file.AppFs.RemoveAll(installDir); err != nil {
		return fmt.Errorf(errors.ToolRemovalFailedErrorTpl, "aws-cli", installDir, err)
	}

	return nil
}

// CurrentVersion parses `aws --version` output, e.g.
// "aws-cli/2.17.0 Python/3.11.8 Linux/6.8.0 exe/x86_64.ubuntu.24".
func (m *Manager) CurrentVersion() (string, error) {
	out, err := command.Output(binPath, "--version")
	if err != nil {
		return "", err
	}
	first := strings.Fields(out)
	if len(first) == 0 {
		return "", fmt.Errorf("unexpected aws version output: %q", out)
	}
	_, v, found := strings.Cut(first[0], "/")
	if !found {
		return "", fmt.Errorf("unexpected aws version output: %q", out)
	}
	return v, nil
}
