package jobconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the conventional job file name a bare `sheetcut
// build` looks for in the current directory.
const DefaultConfigName = ".sheetcut.yaml"

// LoadFile reads and parses every job described in a .sheetcut.yaml file.
// The file may describe a single job at the document root, or multiple
// named jobs under a top-level "jobs" key (mirrors the teacher's single
// project vs. "projects" list in .imageset-packer.yaml).
func LoadFile(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job config: %w", err)
	}

	jobs, err := parseJobs(data)
	if err != nil {
		return nil, fmt.Errorf("parse job config: %w", err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs found in %q", path)
	}

	for i := range jobs {
		if err := defaults.Set(&jobs[i]); err != nil {
			return nil, fmt.Errorf("apply defaults: %w", err)
		}
		for j := range jobs[i].Pieces {
			if err := defaults.Set(&jobs[i].Pieces[j]); err != nil {
				return nil, fmt.Errorf("apply piece defaults: %w", err)
			}
		}
	}

	return jobs, nil
}

// parseJobs parses either a "jobs:" multi-document or a single job at the
// document root.
func parseJobs(data []byte) ([]Job, error) {
	var doc struct {
		Jobs []Job `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Jobs) > 0 {
		return doc.Jobs, nil
	}

	var single Job
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	if single.SheetW == 0 && single.SheetH == 0 && len(single.Pieces) == 0 {
		return nil, nil
	}

	return []Job{single}, nil
}

// Select filters jobs down to the requested names. An empty names list
// returns every job unchanged.
func Select(jobs []Job, names []string) ([]Job, error) {
	if len(names) == 0 {
		return jobs, nil
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		wanted[n] = struct{}{}
	}
	if len(wanted) == 0 {
		return nil, fmt.Errorf("no valid --job values")
	}

	var out []Job
	for _, j := range jobs {
		if _, ok := wanted[j.Name]; ok {
			out = append(out, j)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no jobs matched --job selection")
	}

	return out, nil
}
