package main

import (
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/pterm/pterm"

	"dts/cmd"
)

func main() {
	if runtime.GOOS != "linux" {
		log.Fatal("dts is only supported on Linux")
	}

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	slog.SetDefault(logger)

	cli := cmd.Cli()
	if err := cli.Run(os.Args); err != nil {
		// cli.Exit errors have already been handled inside Run.
		slog.Error(err.Error())
		os.Exit(1)
	}
}
