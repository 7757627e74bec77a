package setuptest

import (
	"dts/system"
	"dts/system/syspkg"
)

func NewUbuntuSystem() *system.LocalSystem {
	return &system.LocalSystem{
		Vendor:         "ubuntu",
		Version:        "22.04",
		Arch:           "amd64",
		PackageManager: syspkg.NewAptManager(),
	}
}

func NewRockySystem() *system.LocalSystem {
	return &system.LocalSystem{
		Vendor:         "rockylinux",
		Version:        "8",
		Arch:           "amd64",
		PackageManager: syspkg.NewDnfManager(),
	}
}
