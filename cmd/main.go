package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"dts/prompt"
	"dts/system"
)

func Cli() *cli.App {
	app := &cli.App{
		Name:        "dts",
		Usage:       "Developer Tooling Setup",
		Description: "Install and manage developer tooling, databases, and system packages on Linux hosts",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug mode",
				Action: func(c *cli.Context, debugMode bool) error {
					if debugMode {
						slog.Info("Debug mode enabled")
						pterm.DefaultLogger.Level = pterm.LogLevelDebug
					}
					return nil
				},
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Assume yes for all confirmation prompts (non-interactive mode)",
				Action: func(c *cli.Context, yes bool) error {
					prompt.Default.Force = yes
					return nil
				},
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write log output to a file",
				Action: func(c *cli.Context, path string) error {
					fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
					if err != nil {
						return cli.Exit(fmt.Sprintf("failed to open log file '%s': %v", path, err), 1)
					}
					pterm.DefaultLogger.Writer = io.MultiWriter(os.Stderr, fh)
					return nil
				},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Initialize the host with baseline packages",
				Action: initAction,
			},
			{
				Name:   "menu",
				Usage:  "Run the interactive installer menu",
				Action: menuAction,
			},
			{
				Name:     "golang",
				Usage:    "Install or manage the Go toolchain",
				Category: "tools",
				Subcommands: []*cli.Command{
					{
						Name:  "install",
						Usage: "Install the Go toolchain to /usr/local/go",
						Flags: []cli.Flag{
							versionFlag("Go version to install", defaultGoVersionText),
							forceFlag("Reinstall even if Go is already present"),
						},
						Action: golangInstall,
					},
					{
						Name:  "update",
						Usage: "Remove and reinstall the Go toolchain",
						Flags: []cli.Flag{
							versionFlag("Go version to install", defaultGoVersionText),
						},
						Action: golangUpdate,
					},
					{
						Name:   "remove",
						Usage:  "Remove the Go toolchain",
						Action: golangRemove,
					},
				},
			},
			{
				Name:     "node",
				Usage:    "Install or manage Node.js",
				Category: "tools",
				Subcommands: []*cli.Command{
					{
						Name:  "install",
						Usage: "Install Node.js from the NodeSource repository",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:        "major",
								Aliases:     []string{"m"},
								Usage:       "Node.js release line to install",
								DefaultText: defaultNodeMajorText,
							},
						},
						Action: nodeInstall,
					},
					{
						Name:   "update",
						Usage:  "Update Node.js",
						Action: nodeUpdate,
					},
					{
						Name:   "remove",
						Usage:  "Remove Node.js and its repository",
						Action: nodeRemove,
					},
				},
			},
			{
				Name:     "docker",
				Usage:    "Install or manage Docker Engine",
				Category: "tools",
				Subcommands: []*cli.Command{
					{
						Name:  "install",
						Usage: "Install Docker Engine and enable its service",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "add-user",
								Usage: "User to add to the docker group",
							},
						},
						Action: dockerInstall,
					},
					{
						Name:   "update",
						Usage:  "Update Docker Engine",
						Action: dockerUpdate,
					},
					{
						Name:   "remove",
						Usage:  "Remove Docker Engine and its repository",
						Action: dockerRemove,
					},
				},
			},
			{
				Name:     "postgres",
				Usage:    "Install or manage PostgreSQL",
				Category: "tools",
				Subcommands: []*cli.Command{
					{
						Name:   "install",
						Usage:  "Install PostgreSQL and enable its service",
						Action: postgresInstall,
					},
					{
						Name:   "update",
						Usage:  "Update PostgreSQL",
						Action: postgresUpdate,
					},
					{
						Name:   "remove",
						Usage:  "Remove PostgreSQL",
						Action: postgresRemove,
					},
				},
			},
			{
				Name:     "redis",
				Usage:    "Install or manage Redis",
				Category: "tools",
				Subcommands: []*cli.Command{
					{
						Name:   "install",
						Usage:  "Install Redis and enable its service",
						Action: redisInstall,
					},
					{
						Name:   "update",
						Usage:  "Update Redis",
						Action: redisUpdate,
					},
					{
						Name:   "remove",
						Usage:  "Remove Redis",
						Action: redisRemove,
					},
				},
			},
			{
				Name:     "terraform",
				Usage:    "Install or manage Terraform",
				Category: "tools",
				Subcommands: []*cli.Command{
					{
						Name:   "install",
						Usage:  "Install Terraform from the HashiCorp repository",
						Action: terraformInstall,
					},
					{
						Name:   "update",
						Usage:  "Update Terraform",
						Action: terraformUpdate,
					},
					{
						Name:   "remove",
						Usage:  "Remove Terraform and its repository",
						Action: terraformRemove,
					},
				},
			},
			{
				Name:     "awscli",
				Usage:    "Install or manage the AWS CLI",
				Category: "tools",
				Subcommands: []*cli.Command{
					{
						Name:  "install",
						Usage: "Install AWS CLI v2",
						Flags: []cli.Flag{
							forceFlag("Reinstall even if the AWS CLI is already present"),
						},
						Action: awscliInstall,
					},
					{
						Name:   "update",
						Usage:  "Update the AWS CLI",
						Action: awscliUpdate,
					},
					{
						Name:   "remove",
						Usage:  "Remove the AWS CLI",
						Action: awscliRemove,
					},
				},
			},
			{
				Name:     "syspkg",
				Usage:    "Manage system package installations",
				Category: "system",
				Subcommands: []*cli.Command{
					{
						Name:   "update",
						Usage:  "Update package lists",
						Action: sysPkgUpdate,
					},
					{
						Name:  "upgrade",
						Usage: "Upgrade installed packages",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "dist",
								Usage: "Run dist-upgrade on Debian-based systems",
							},
						},
						Action: sysPkgUpgrade,
					},
					{
						Name:  "install",
						Usage: "Install system packages",
						Flags: []cli.Flag{
							packageFlag("Package(s) to install"),
							packageFileFlag("Path to file containing package names to install"),
						},
						Action: sysPkgInstall,
					},
					{
						Name:  "uninstall",
						Usage: "Uninstall system packages",
						Flags: []cli.Flag{
							packageFlag("Package(s) to uninstall"),
						},
						Action: sysPkgUninstall,
					},
					{
						Name:   "clean",
						Usage:  "Clean up package caches",
						Action: sysPkgClean,
					},
				},
			},
			{
				Name:     "update",
				Usage:    "Update package lists, upgrade all packages, and clean up",
				Category: "system",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dist",
						Usage: "Run dist-upgrade on Debian-based systems",
					},
				},
				Action: systemUpdate,
			},
			{
				Name:     "reboot",
				Usage:    "Schedule, cancel, or query a reboot",
				Category: "system",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "minutes",
						Aliases: []string{"m"},
						Usage:   "Reboot in N minutes (1-1440)",
					},
					&cli.IntFlag{
						Name:    "hours",
						Aliases: []string{"H"},
						Usage:   "Reboot in N hours (1-24)",
					},
					&cli.IntFlag{
						Name:    "days",
						Aliases: []string{"D"},
						Usage:   "Reboot in N days (1-7)",
					},
					&cli.BoolFlag{
						Name:    "now",
						Aliases: []string{"n"},
						Usage:   "Reboot immediately",
					},
					&cli.BoolFlag{
						Name:    "cancel",
						Aliases: []string{"c"},
						Usage:   "Cancel a scheduled reboot",
					},
					&cli.BoolFlag{
						Name:    "status",
						Aliases: []string{"s"},
						Usage:   "Show the scheduled reboot, if any",
					},
				},
				Action: rebootAction,
			},
			{
				Name:     "groups",
				Usage:    "Manage users, groups, and file ownership",
				Category: "system",
				Subcommands: []*cli.Command{
					{
						Name:      "make-admin",
						Usage:     "Add a user to the administrator group",
						ArgsUsage: "[user]",
						Action:    groupsMakeAdmin,
					},
					{
						Name:      "add-group",
						Usage:     "Create a new group",
						ArgsUsage: "<name>",
						Action:    groupsAddGroup,
					},
					{
						Name:      "add-user",
						Usage:     "Add a user to an existing group",
						ArgsUsage: "<user> <group>",
						Action:    groupsAddUser,
					},
					{
						Name:      "take-ownership",
						Usage:     "Recursively change ownership of a path",
						ArgsUsage: "<path> [owner]",
						Flags: []cli.Flag{
							forceFlag("Skip the confirmation prompt"),
						},
						Action: groupsTakeOwnership,
					},
				},
			},
		},
	}
	return app
}

// requireRoot maps a missing-root condition to exit code 1.
func requireRoot() error {
	if err := system.RequireSudo(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func localSystem() (*system.LocalSystem, error) {
	l, err := system.GetLocalSystem()
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}
	return l, nil
}
