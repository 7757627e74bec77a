package cmd

import (
	stderrors "errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"dts/sysops/reboot"
)

func rebootAction(cCtx *cli.Context) error {
	if cCtx.Bool("status") {
		status, err := reboot.Status()
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	}

	if err := requireRoot(); err != nil {
		return err
	}

	if cCtx.Bool("cancel") {
		return reboot.Cancel()
	}

	if cCtx.Bool("now") {
		if !confirmed("Reboot the system now?") {
			return nil
		}
		return reboot.Now()
	}

	var unit reboot.Unit
	var n int
	switch {
	case cCtx.IsSet("minutes"):
		unit, n = reboot.Minutes, cCtx.Int("minutes")
	case cCtx.IsSet("hours"):
		unit, n = reboot.Hours, cCtx.Int("hours")
	case cCtx.IsSet("days"):
		unit, n = reboot.Days, cCtx.Int("days")
	default:
		return cli.ShowSubcommandHelp(cCtx)
	}

	if err := reboot.Validate(unit, n); err != nil {
		var rangeErr *reboot.RangeError
		if stderrors.As(err, &rangeErr) {
			return cli.Exit(err.Error(), 1)
		}
		return err
	}

	if !confirmed(fmt.Sprintf("Schedule a reboot in %d %s?", n, unit)) {
		return nil
	}
	return reboot.Schedule(unit, n)
}
