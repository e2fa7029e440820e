// Package cli implements the command-line interface for sheetcut.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"

	"github.com/nikakis16-prog/sheetcut/internal/vars"
)

// Root defines global CLI flags.
type Root struct{}

// CmdVersion prints build metadata.
type CmdVersion struct{}

// Execute runs the version command.
func (c *CmdVersion) Execute(args []string) error {
	vars.Print()
	return nil
}

// Run parses arguments and executes the selected command.
func Run(args []string) error {
	var root Root

	parser := flags.NewParser(&root, flags.Default)
	parser.Name = filepath.Base(os.Args[0])

	prog := parser.Name
	if _, err := parser.AddCommand(
		"pack",
		"Pack a piece list into sheets",
		fmt.Sprintf(
			`Run one optimize pass from flags and write a cut list.

Examples:
  %s pack --sheet 2440x1220 --kerf 3 --piece 600x400x4 --piece 500x700x2
  %s pack pieces.yaml --out layout.cutlist -r bssf --camel-case`,
			prog, prog,
		),
		&CmdPack{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"build",
		"Build all jobs from .sheetcut.yaml",
		fmt.Sprintf(
			`Run multiple pack jobs from a config file.

Examples:
  %s build ./my-sheetcut-config.yaml
  %s build --job kitchen --job bathroom`,
			prog, prog,
		),
		&CmdBuild{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"gen",
		"Generate a random piece-list fixture",
		fmt.Sprintf(
			`Generate a random piece list YAML file, useful for stress-testing
the driver.

Examples:
  %s gen ./pieces.yaml -c 200
  %s gen ./pieces.yaml --min-size 50 --max-size 900 --max-ratio 4`,
			prog, prog,
		),
		&CmdGen{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"version",
		"Print build metadata",
		fmt.Sprintf(
			`Show build information.

Examples:
  %s version`,
			prog,
		),
		&CmdVersion{},
	); err != nil {
		return err
	}

	_, err := parser.ParseArgs(args)

	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	return nil
}
