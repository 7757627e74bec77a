package cmd

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"dts/system/syspkg"
)

// baseline packages every setup starts from.
var initPackages = []string{
	"ca-certificates",
	"git",
	"gnupg",
	"unzip",
}

func initAction(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	if err := l.PackageManager.Update(); err != nil {
		return fmt.Errorf("failed to update package lists: %w", err)
	}
	defer func() {
		if err := l.PackageManager.Clean(); err != nil {
			slog.Warn("Package cache cleanup failed: " + err.Error())
		}
	}()

	slog.Info("Installing baseline packages")
	if err := l.PackageManager.Install(&syspkg.PackageList{Packages: initPackages}); err != nil {
		return fmt.Errorf("failed to install baseline packages: %w", err)
	}

	if l.PackageManager.GetBin() != "apt-get" {
		slog.Info("Installing EPEL repository")
		if err := l.PackageManager.Install(&syspkg.PackageList{Packages: []string{"epel-release"}}); err != nil {
			return fmt.Errorf("failed to install epel-release: %w", err)
		}
	}

	return nil
}
