package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikakis16-prog/sheetcut/internal/jobconfig"
)

// CmdBuild runs one or more jobs from a .sheetcut.yaml config file.
type CmdBuild struct {
	Args struct {
		Path string `positional-arg-name:"path" description:"Path to job config file or directory (default: ./.sheetcut.yaml)"`
	} `positional-args:"yes"`

	Only          []string `short:"j" long:"job" description:"Build only selected job names (repeatable)"`
	OutDir        string   `short:"O" long:"out-dir" description:"Directory to write cut-list files into (default: alongside the config)"`
	YAMLOut       bool     `short:"y" long:"yaml" description:"Also write a .yaml cut-list alongside the text one"`
	Force         bool     `short:"f" long:"force" description:"Overwrite existing output files"`
	Skip          bool     `short:"u" long:"skip-unchanged" description:"Skip writing when a job is unchanged since its last run"`
	CamelCase     bool     `long:"camel-case" description:"Write each cut-list job name as CamelCase instead of snake_case"`
	MinOffcutSide int      `long:"min-offcut-side" description:"Minimum side length to report a scrap region as a reusable offcut (0=disabled)"`
	MinOffcutArea int      `long:"min-offcut-area" description:"Minimum area to report a scrap region as a reusable offcut"`
}

// Execute runs the build command.
func (c *CmdBuild) Execute(args []string) error {
	return runBuild(c)
}

func runBuild(opts *CmdBuild) error {
	configPath, err := resolveConfigPath(opts.Args.Path)
	if err != nil {
		return err
	}

	jobs, err := jobconfig.LoadFile(configPath)
	if err != nil {
		return err
	}

	selected, err := jobconfig.Select(jobs, opts.Only)
	if err != nil {
		return err
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Dir(configPath)
	}

	for _, job := range selected {
		outPath := filepath.Join(outDir, job.Name+".cutlist")
		if err := runJob(job, outPath, opts.YAMLOut, opts.Force, opts.Skip, opts.CamelCase, opts.MinOffcutSide, opts.MinOffcutArea); err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
	}

	return nil
}

// resolveConfigPath resolves the path to the job config file.
func resolveConfigPath(arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get cwd: %w", err)
		}
		path := filepath.Join(cwd, jobconfig.DefaultConfigName)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("job config not found: %s", path)
		}

		return path, nil
	}

	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("job config path: %w", err)
	}

	if info.IsDir() {
		path := filepath.Join(arg, jobconfig.DefaultConfigName)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("job config not found: %s", path)
		}
		return path, nil
	}

	return arg, nil
}
