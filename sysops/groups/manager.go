// Package groups wraps user, group, and ownership administration.
package groups

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"

	"dts/system"
	"dts/system/command"
	"dts/system/file"
)

// protectedPaths are never eligible for ownership changes, forced or not.
var protectedPaths = []string{
	"/",
	"/bin",
	"/boot",
	"/dev",
	"/etc",
	"/home",
	"/lib",
	"/lib64",
	"/proc",
	"/root",
	"/run",
	"/sbin",
	"/sys",
	"/usr",
	"/var",
}

var validNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

type ProtectedPathError struct {
	Path string
}

func (e *ProtectedPathError) Error() string {
	return fmt.Sprintf("refusing to change ownership of protected system path '%s'", e.Path)
}

type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("'%s' is not a valid user or group name", e.Name)
}

func validateName(name string) error {
	if !validNameRe.MatchString(name) {
		return &InvalidNameError{Name: name}
	}
	return nil
}

// adminGroup returns the sudo-capable group for the host's distro family.
func adminGroup(l *system.LocalSystem) string {
	if l.IsDebianFamily() {
		return "sudo"
	}
	return "wheel"
}

// MakeAdmin adds username to the distribution's administrator group.
func MakeAdmin(l *system.LocalSystem, username string) error {
	if err := validateName(username); err != nil {
		return err
	}

	group := adminGroup(l)
	slog.Info("Adding user '" + username + "' to the " + group + " group")

	s := command.NewShellCommand("usermod", []string{"-aG", group, username}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to add '%s' to the %s group: %w", username, group, err)
	}
	return nil
}

// AddGroup creates a new group.
func AddGroup(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	slog.Info("Creating group '" + name + "'")
	s := command.NewShellCommand("groupadd", []string{name}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to create group '%s': %w", name, err)
	}
	return nil
}

// AddUser adds username to an existing group.
func AddUser(username, group string) error {
	if err := validateName(username); err != nil {
		return err
	}
	if err := validateName(group); err != nil {
		return err
	}

	slog.Info("Adding user '" + username + "' to group '" + group + "'")
	s := command.NewShellCommand("usermod", []string{"-aG", group, username}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to add '%s' to group '%s': %w", username, group, err)
	}
	return nil
}

// TakeOwnership recursively chowns path to owner. Protected system paths
// are blocked unconditionally.
func TakeOwnership(path, owner string) error {
	if err := validateName(owner); err != nil {
		return err
	}

	cleaned := filepath.Clean(path)
	if !filepath.IsAbs(cleaned) {
		return fmt.Errorf("ownership target '%s' must be an absolute path", path)
	}
	if slices.Contains(protectedPaths, cleaned) {
		return &ProtectedPathError{Path: cleaned}
	}

	exists, err := file.IsPathExist(cleaned)
	if err != nil {
		return fmt.Errorf("failed to check if '%s' exists: %w", cleaned, err)
	}
	if !exists {
		return fmt.Errorf("path '%s' does not exist", cleaned)
	}

	slog.Info("Changing ownership of '" + cleaned + "' to '" + owner + "'")
	s := command.NewShellCommand("chown", []string{"-R", owner + ":" + owner, cleaned}, nil, true)
	if err := s.Run(); err != nil {
		return fmt.Errorf("failed to change ownership of '%s': %w", cleaned, err)
	}
	return nil
}
