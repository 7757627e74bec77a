package cmd

import "github.com/urfave/cli/v2"

func versionFlag(usage, defaultText string) *cli.StringFlag {
	f := &cli.StringFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   usage,
	}
	if defaultText != "" {
		f.DefaultText = defaultText
	}

	return f
}

func forceFlag(usage string) *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   usage,
	}
}

func packageFlag(usage string) *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "package",
		Aliases: []string{"p"},
		Usage:   usage,
	}
}

func packageFileFlag(usage string) *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "packages-file",
		Aliases: []string{"r"},
		Usage:   usage,
	}
}
