package cmd

import (
	stderrors "errors"
	"log/slog"

	"github.com/urfave/cli/v2"

	"dts/errors"
	"dts/prompt"
	"dts/tools/awscli"
	"dts/tools/docker"
	"dts/tools/golang"
	"dts/tools/node"
	"dts/tools/postgres"
	"dts/tools/redis"
	"dts/tools/terraform"
)

const (
	defaultGoVersionText = golang.DefaultVersion
	defaultNodeMajorText = node.DefaultMajor
)

func confirmed(question string) bool {
	if prompt.Confirm(question) {
		return true
	}
	slog.Info("Aborted")
	return false
}

func golangInstall(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Install the Go toolchain?") {
		return nil
	}

	m := golang.NewManager(l, cCtx.String("version"), cCtx.Bool("force"))
	return golangExit(m.Install())
}

func golangUpdate(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	m := golang.NewManager(l, cCtx.String("version"), true)
	return golangExit(m.Update())
}

func golangRemove(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Remove the Go toolchain?") {
		return nil
	}

	m := golang.NewManager(l, "", false)
	return m.Remove()
}

// golangExit preserves the Go installer's reserved exit code for download
// failures.
func golangExit(err error) error {
	if err == nil {
		return nil
	}
	var dlErr *errors.DownloadFailedError
	if stderrors.As(err, &dlErr) {
		return cli.Exit(err.Error(), 3)
	}
	return err
}

func nodeInstall(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Install Node.js?") {
		return nil
	}

	m := node.NewManager(l, cCtx.String("major"))
	return m.Install()
}

func nodeUpdate(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	m := node.NewManager(l, "")
	return m.Update()
}

func nodeRemove(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Remove Node.js?") {
		return nil
	}

	m := node.NewManager(l, "")
	return m.Remove()
}

func dockerInstall(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Install Docker Engine?") {
		return nil
	}

	m := docker.NewManager(l, cCtx.String("add-user"))
	return m.Install()
}

func dockerUpdate(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	m := docker.NewManager(l, "")
	return m.Update()
}

func dockerRemove(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Remove Docker Engine?") {
		return nil
	}

	m := docker.NewManager(l, "")
	return m.Remove()
}

func postgresInstall(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Install PostgreSQL?") {
		return nil
	}

	return postgres.NewManager(l).Install()
}

func postgresUpdate(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	return postgres.NewManager(l).Update()
}

func postgresRemove(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Remove PostgreSQL?") {
		return nil
	}

	return postgres.NewManager(l).Remove()
}

func redisInstall(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Install Redis?") {
		return nil
	}

	return redis.NewManager(l).Install()
}

func redisUpdate(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	return redis.NewManager(l).Update()
}

func redisRemove(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Remove Redis?") {
		return nil
	}

	return redis.NewManager(l).Remove()
}

func terraformInstall(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Install Terraform?") {
		return nil
	}

	return terraform.NewManager(l).Install()
}

func terraformUpdate(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	return terraform.NewManager(l).Update()
}

func terraformRemove(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Remove Terraform?") {
		return nil
	}

	return terraform.NewManager(l).Remove()
}

func awscliInstall(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Install the AWS CLI?") {
		return nil
	}

	m := awscli.NewManager(l, cCtx.Bool("force"))
	return m.Install()
}

func awscliUpdate(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}

	m := awscli.NewManager(l, true)
	return m.Update()
}

func awscliRemove(cCtx *cli.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}
	l, err := localSystem()
	if err != nil {
		return err
	}
	if !confirmed("Remove the AWS CLI?") {
		return nil
	}

	m := awscli.NewManager(l, false)
	return m.Remove()
}
