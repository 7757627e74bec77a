package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"dts/prompt"
	"dts/sysops/groups"
)

func groupsMakeAdmin(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	username := cCtx.Args().First()
	if username == "" {
		username = os.Getenv("SUDO_USER")
	}
	if username == "" {
		return cli.Exit("no user given and SUDO_USER is not set", 1)
	}

	if !confirmed(fmt.Sprintf("Grant administrator privileges to '%s'?", username)) {
		return nil
	}
	return groups.MakeAdmin(l, username)
}

func groupsAddGroup(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}

	name := cCtx.Args().First()
	if name == "" {
		return cli.Exit("a group name is required", 1)
	}
	return groups.AddGroup(name)
}

func groupsAddUser(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}

	if cCtx.Args().Len() != 2 {
		return cli.Exit("a user and a group are required", 1)
	}
	return groups.AddUser(cCtx.Args().Get(0), cCtx.Args().Get(1))
}

func groupsTakeOwnership(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}

	path := cCtx.Args().First()
	if path == "" {
		return cli.Exit("a path is required", 1)
	}
	owner := cCtx.Args().Get(1)
	if owner == "" {
		owner = os.Getenv("SUDO_USER")
	}
	if owner == "" {
		return cli.Exit("no owner given and SUDO_USER is not set", 1)
	}

	p := prompt.Default
	if cCtx.Bool("force") {
		p = &prompt.Prompter{Force: true}
	}
	if !p.Confirm(fmt.Sprintf("Change ownership of '%s' to '%s'?", path, owner)) {
		return nil
	}
	return groups.TakeOwnership(path, owner)
}
