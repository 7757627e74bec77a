package errors

import "fmt"

// Generic errors

var FileCreateErrorTpl = "failed to create file %s: %w"
var FileOpenErrorTpl = "failed to open %s: %w"
var FileStatErrorTpl = "failed to stat %s: %w"
var FileRemoveErrorTpl = "failed to remove %s: %w"
var FileMoveErrorTpl = "failed to move file from %s to %s: %w"
var OSVersionParseErrorTpl = "failed to parse OS version %s: %w"

// Request errors

var RequestFailedErrorTpl = "request to %s failed: %w"
var RequestCopyFailedErrorTpl = "failed to copy data to %s: %w"

// System package errors

var SystemUpdateErrorTpl = "failed to update system package manager: %w"
var SystemUpgradeErrorTpl = "failed to upgrade system packages: %w"
var SystemPackageInstallErrorTpl = "failed to install package(s): %w"
var SystemPackageRemoveErrorTpl = "failed to remove package(s): %w"
var SystemCleanErrorTpl = "failed to clean system package manager: %w"

// Symlink errors

var RemoveExistingSymlinkErrorTpl = "failed to remove existing symlink at %s: %w"
var CreateSymlinkErrorTpl = "failed to create symlink from %s to %s: %w"

// Tool errors

var ToolDownloadFailedErrorTpl = "failed to download %s: %w"
var ToolDependencyInstallFailedErrorTpl = "failed to install %s dependencies: %w"
var ToolInstallFailedErrorTpl = "failed to install %s: %w"
var ToolUpdateFailedErrorTpl = "failed to update %s: %w"
var ToolSetPermissionsFailedErrorTpl = "failed to set permissions on %s to %s: %w"
var ToolRemovalFailedErrorTpl = "failed to remove %s from %s: %w"
var ToolServiceEnableFailedErrorTpl = "failed to enable %s service: %w"
var ToolRepoSetupFailedErrorTpl = "failed to configure %s package repository: %w"

type UnsupportedOSError struct {
	Vendor  string
	Version string
}

func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("unsupported os %s %s", e.Vendor, e.Version)
}

type UnsupportedArchError struct {
	Tool string
	Arch string
}

func (e *UnsupportedArchError) Error() string {
	return fmt.Sprintf("%s is not supported on the %s architecture", e.Tool, e.Arch)
}

type BinaryDoesNotExistError struct {
	Pkg  string
	Path string
}

func (e *BinaryDoesNotExistError) Error() string {
	return fmt.Sprintf("binary %s does not exist at %s", e.Pkg, e.Path)
}

type AlreadyExistsError struct {
	Pkg  string
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists at %s, use --force to reinstall", e.Pkg, e.Path)
}

// DownloadFailedError marks failures to fetch a release artifact. The Go
// toolchain installer maps it to its reserved exit code.
type DownloadFailedError struct {
	Tool string
	URL  string
	Err  error
}

func (e *DownloadFailedError) Error() string {
	return fmt.Sprintf("failed to download %s from %s: %v", e.Tool, e.URL, e.Err)
}

func (e *DownloadFailedError) Unwrap() error {
	return e.Err
}
