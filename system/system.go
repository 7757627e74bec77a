package system

import (
	"fmt"
	"log"
	"os/user"

	"github.com/zcalusic/sysinfo"

	"dts/errors"
	"dts/system/syspkg"
)

type LocalSystem struct {
	Vendor         string
	Version        string
	Arch           string
	PackageManager syspkg.SystemPackageManager
}

var sysInfo = func() sysinfo.SysInfo {
	var si sysinfo.SysInfo
	si.GetSysInfo()
	return si
}

// GetLocalSystem detects the distribution and its package manager. The
// package manager comes from probing the search path (dnf, then yum, then
// apt); when probing finds nothing the distro vendor decides, and a host
// that matches neither is unsupported.
func GetLocalSystem() (*LocalSystem, error) {
	si := sysInfo()

	pm, err := syspkg.Detect()
	if err != nil {
		switch si.OS.Vendor {
		case "ubuntu", "debian":
			pm = syspkg.NewAptManager()
		case "almalinux", "centos", "rockylinux", "rhel":
			pm = syspkg.NewDnfManager()
		default:
			return nil, &errors.UnsupportedOSError{Vendor: si.OS.Vendor, Version: si.OS.Version}
		}
	}

	return &LocalSystem{
		Vendor:         si.OS.Vendor,
		Version:        si.OS.Version,
		Arch:           si.OS.Architecture,
		PackageManager: pm,
	}, nil
}

// IsDebianFamily reports whether the host uses deb packages.
func (l *LocalSystem) IsDebianFamily() bool {
	switch l.Vendor {
	case "ubuntu", "debian":
		return true
	}
	return l.PackageManager != nil && l.PackageManager.GetBin() == "apt-get"
}

// GetAltArchName returns the rpm-style architecture name.
func (l *LocalSystem) GetAltArchName() string {
	switch l.Arch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	}
	return l.Arch
}

var currentUser = func() (*user.User, error) {
	return user.Current()
}

func RequireSudo() error {
	current, err := currentUser()
	if err != nil {
		log.Fatal(err)
	}

	if current.Uid != "0" {
		return fmt.Errorf("this command must be run as root")
	}

	return nil
}
