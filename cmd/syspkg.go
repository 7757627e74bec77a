package cmd

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"dts/system/syspkg"
)

func sysPkgUpdate(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	return l.PackageManager.Update()
}

func sysPkgUpgrade(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	return l.PackageManager.Upgrade(cCtx.Bool("dist"))
}

func sysPkgInstall(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	list := &syspkg.PackageList{
		Packages:         cCtx.StringSlice("package"),
		PackageListFiles: cCtx.StringSlice("packages-file"),
	}
	return l.PackageManager.Install(list)
}

func sysPkgUninstall(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	packages := cCtx.StringSlice("package")
	if len(packages) == 0 {
		return nil
	}
	return l.PackageManager.Remove(&syspkg.PackageList{Packages: packages})
}

func sysPkgClean(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	return l.PackageManager.Clean()
}

// systemUpdate chains update, upgrade, and clean. Cleanup is best effort.
func systemUpdate(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	if err := l.PackageManager.Update(); err != nil {
		return err
	}
	if err := l.PackageManager.Upgrade(cCtx.Bool("dist")); err != nil {
		return err
	}
	if err := l.PackageManager.Clean(); err != nil {
		slog.Warn("Package cache cleanup failed: " + err.Error())
	}
	return nil
}
