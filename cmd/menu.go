package cmd

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"dts/menu"
	"dts/prompt"
	"dts/system"
	"dts/tools"
	"dts/tools/awscli"
	"dts/tools/docker"
	"dts/tools/golang"
	"dts/tools/node"
	"dts/tools/postgres"
	"dts/tools/redis"
	"dts/tools/terraform"
)

func menuAction(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	entries := []menu.Entry{
		toolEntry("Go toolchain", golang.NewManager(l, "", false)),
		toolEntry("Node.js", node.NewManager(l, "")),
		toolEntry("Docker Engine", docker.NewManager(l, "")),
		toolEntry("PostgreSQL", postgres.NewManager(l)),
		toolEntry("Redis", redis.NewManager(l)),
		toolEntry("Terraform", terraform.NewManager(l)),
		toolEntry("AWS CLI", awscli.NewManager(l, false)),
		{
			Title: "System update",
			Run: func() error {
				return runSystemUpdate(l)
			},
		},
	}

	return menu.New(entries).Run()
}

// toolEntry installs when absent and updates when already present. The
// prompt gate applies either way.
func toolEntry(title string, m tools.ToolManager) menu.Entry {
	return menu.Entry{
		Title: title,
		Tool:  m,
		Run: func() error {
			installed, err := m.Installed()
			if err != nil {
				return err
			}

			verb := "Install"
			if installed {
				verb = "Update"
			}
			if !prompt.Confirm(fmt.Sprintf("%s %s?", verb, title)) {
				slog.Info("Skipped " + title)
				return nil
			}

			if installed {
				return m.Update()
			}
			return m.Install()
		},
	}
}

func runSystemUpdate(l *system.LocalSystem) error {
	if !prompt.Confirm("Update and upgrade all system packages?") {
		slog.Info("Skipped system update")
		return nil
	}

	if err := l.PackageManager.Update(); err != nil {
		return err
	}
	if err := l.PackageManager.Upgrade(false); err != nil {
		return err
	}
	if err := l.PackageManager.Clean(); err != nil {
		slog.Warn("Package cache cleanup failed: " + err.Error())
	}
	return nil
}
