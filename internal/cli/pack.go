package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nikakis16-prog/sheetcut/internal/cutlist"
	"github.com/nikakis16-prog/sheetcut/internal/jobcache"
	"github.com/nikakis16-prog/sheetcut/internal/jobconfig"
	"github.com/nikakis16-prog/sheetcut/internal/packing"
)

// CmdPack runs a single optimize pass and writes a cut list.
type CmdPack struct {
	// betteralign:ignore

	Name          string   `short:"n" long:"name" description:"Job name (default: input file base name, or \"job\")" yaml:"name"`
	Sheet         string   `long:"sheet" description:"Sheet size as WxH" yaml:"-"`
	Kerf          int      `short:"k" long:"kerf" description:"Kerf (blade width) in the same units as sheet/piece sizes" default:"0" yaml:"kerf"`
	Rule          string   `short:"r" long:"rule" description:"Packing rule" default:"bssf" choice:"bssf" choice:"blsf" choice:"baf" yaml:"rule"`
	Rotate        bool     `short:"R" long:"rotate" description:"Allow 90-degree rotation" yaml:"rotate"`
	Attempts      int      `short:"a" long:"attempts" description:"Multi-start attempt count" default:"8" yaml:"attempts"`
	Seed          int64    `long:"seed" description:"Random seed for deterministic multi-start runs" yaml:"seed"`
	Pieces        []string `short:"p" long:"piece" description:"Piece as WxHxQty or WxH (repeatable)" yaml:"-"`
	Out           string   `short:"o" long:"out" description:"Output cut-list path (default: <name>.cutlist)" yaml:"out"`
	YAMLOut       bool     `short:"y" long:"yaml" description:"Also write a .yaml cut-list alongside the text one" yaml:"yaml_out"`
	Force         bool     `short:"f" long:"force" description:"Overwrite an existing output file" yaml:"force"`
	Skip          bool     `short:"u" long:"skip-unchanged" description:"Skip writing when the job is unchanged since the last run" yaml:"skip_unchanged"`
	CamelCase     bool     `long:"camel-case" description:"Write the cut-list job name as CamelCase instead of snake_case" yaml:"camel_case"`
	MinOffcutSide int      `long:"min-offcut-side" description:"Minimum side length to report a scrap region as a reusable offcut (0=disabled)" default:"0" yaml:"min_offcut_side"`
	MinOffcutArea int      `long:"min-offcut-area" description:"Minimum area to report a scrap region as a reusable offcut" default:"0" yaml:"min_offcut_area"`

	Args struct {
		Input string `positional-arg-name:"input" description:"Optional piece-list YAML file (sheet/pieces may also come from flags)" yaml:"input"`
	} `positional-args:"yes" yaml:"args"`
}

// Execute runs the pack command.
func (c *CmdPack) Execute(args []string) error {
	job, err := c.resolveJob()
	if err != nil {
		return err
	}

	return runJob(job, c.Out, c.YAMLOut, c.Force, c.Skip, c.CamelCase, c.MinOffcutSide, c.MinOffcutArea)
}

// resolveJob builds a jobconfig.Job from CLI flags, optionally merged with
// a piece-list YAML file given positionally.
func (c *CmdPack) resolveJob() (jobconfig.Job, error) {
	var job jobconfig.Job

	if c.Args.Input != "" {
		jobs, err := jobconfig.LoadFile(c.Args.Input)
		if err != nil {
			return jobconfig.Job{}, err
		}
		job = jobs[0]
		if job.Name == "" {
			job.Name = strings.TrimSuffix(filepath.Base(c.Args.Input), filepath.Ext(c.Args.Input))
		}
	}

	if c.Sheet != "" {
		w, h, err := parseWxH(c.Sheet)
		if err != nil {
			return jobconfig.Job{}, fmt.Errorf("invalid --sheet: %w", err)
		}
		job.SheetW, job.SheetH = w, h
	}
	if job.SheetW <= 0 || job.SheetH <= 0 {
		return jobconfig.Job{}, fmt.Errorf("sheet dimensions are required (--sheet or input file)")
	}

	if c.Kerf != 0 {
		job.Kerf = c.Kerf
	}
	if c.Rule != "" {
		job.Strategy = c.Rule
	}
	job.AllowRotation = job.AllowRotation || c.Rotate
	if c.Attempts != 0 {
		job.Attempts = c.Attempts
	}
	if job.Attempts <= 0 {
		job.Attempts = 8
	}
	if c.Seed != 0 {
		job.Seed = c.Seed
	}
	if c.Name != "" {
		job.Name = c.Name
	}

	for _, spec := range c.Pieces {
		piece, err := parsePieceFlag(spec)
		if err != nil {
			return jobconfig.Job{}, fmt.Errorf("invalid --piece %q: %w", spec, err)
		}
		job.Pieces = append(job.Pieces, piece)
	}

	if len(job.Pieces) == 0 {
		return jobconfig.Job{}, fmt.Errorf("no pieces given (use --piece or an input file)")
	}

	if job.Name == "" {
		job.Name = "job"
	}

	return job, nil
}

// runJob runs the optimizer for a job and writes the resulting cut list.
func runJob(job jobconfig.Job, outPath string, writeYAML, force, skip, camelCase bool, minOffcutSide, minOffcutArea int) error {
	if outPath == "" {
		outPath = job.Name + ".cutlist"
	}

	cachePath := outPath + ".hash"
	nextHash := jobcache.Hash(job)
	if skip && jobcache.ShouldSkip(cachePath, outPath, nextHash) {
		fmt.Printf("Job %q unchanged; skipping write for %s\n", job.Name, outPath)
		return nil
	}

	if !force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("output file %q already exists (use --force)", outPath)
		}
	}

	strategy := packing.ParseStrategy(job.Strategy)
	pieces := toPieceSpecs(job.Pieces)
	pieceCount := len(packing.FlattenPieces(pieces))

	sheets, err := packing.Optimize(job.SheetW, job.SheetH, job.Kerf, pieces, strategy, job.AllowRotation, job.Attempts, job.Seed)
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	cl := buildCutList(job, strategy, sheets, minOffcutSide, minOffcutArea)

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create cut-list file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := cutlist.Write(out, cl, camelCase); err != nil {
		return fmt.Errorf("write cut-list file: %w", err)
	}

	if writeYAML {
		yamlPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".yaml"
		yamlFile, err := os.Create(yamlPath)
		if err != nil {
			return fmt.Errorf("create yaml cut-list file: %w", err)
		}
		defer func() { _ = yamlFile.Close() }()

		if err := cutlist.WriteYAML(yamlFile, cl); err != nil {
			return fmt.Errorf("write yaml cut-list file: %w", err)
		}
	}

	if skip {
		if err := jobcache.Write(cachePath, nextHash); err != nil {
			return err
		}
	}

	fmt.Printf("Packed %d pieces from job %q onto %d sheet(s)\n", pieceCount, job.Name, len(sheets))
	fmt.Printf("Output: %s\n", outPath)

	return nil
}

// toPieceSpecs converts a job's piece specs into packing.PieceSpec values.
func toPieceSpecs(specs []jobconfig.PieceSpec) []packing.PieceSpec {
	converted := make([]packing.PieceSpec, 0, len(specs))
	for _, s := range specs {
		qty := s.Quantity
		if qty <= 0 {
			qty = 1
		}
		converted = append(converted, packing.PieceSpec{W: s.Width, H: s.Height, Qty: qty})
	}

	return converted
}

// buildCutList converts optimizer output into a serializable cut list. When
// minOffcutSide/minOffcutArea are positive, each sheet's leftover scrap is
// also scanned for reusable offcuts.
func buildCutList(job jobconfig.Job, strategy packing.Strategy, sheets []*packing.SheetLayout, minOffcutSide, minOffcutArea int) *cutlist.CutList {
	cl := &cutlist.CutList{
		RunID:         uuid.NewString(),
		Name:          job.Name,
		SheetW:        job.SheetW,
		SheetH:        job.SheetH,
		Kerf:          job.Kerf,
		Strategy:      strategy.String(),
		AllowRotation: job.AllowRotation,
	}

	for i, sheet := range sheets {
		cs := cutlist.CutSheet{
			Index:     i,
			UsedArea:  sheet.UsedArea(),
			ScrapArea: sheet.ScrapArea(),
		}
		for _, p := range sheet.Placed {
			cs.Parts = append(cs.Parts, cutlist.CutPart{
				Name:    p.Part.Name,
				X:       p.X,
				Y:       p.Y,
				Width:   p.Part.W,
				Height:  p.Part.H,
				Rotated: p.Rotated,
			})
		}

		if minOffcutSide > 0 && minOffcutArea > 0 {
			for _, o := range packing.DetectOffcuts(sheet, i, minOffcutSide, minOffcutArea) {
				cs.Offcuts = append(cs.Offcuts, cutlist.CutOffcut{
					ID:     o.ID,
					X:      o.X,
					Y:      o.Y,
					Width:  o.W,
					Height: o.H,
				})
			}
		}

		cl.Sheets = append(cl.Sheets, cs)
	}

	return cl
}

// parseWxH parses a "WxH" dimension string.
func parseWxH(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WxH, got %q", s)
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("expected numeric WxH, got %q", s)
	}

	return w, h, nil
}

// parsePieceFlag parses a "WxHxQty" or "WxH" piece flag into a PieceSpec.
func parsePieceFlag(s string) (jobconfig.PieceSpec, error) {
	fields := strings.Split(strings.ToLower(s), "x")
	if len(fields) != 2 && len(fields) != 3 {
		return jobconfig.PieceSpec{}, fmt.Errorf("expected WxH or WxHxQty")
	}

	w, err1 := strconv.Atoi(strings.TrimSpace(fields[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err1 != nil || err2 != nil {
		return jobconfig.PieceSpec{}, fmt.Errorf("expected numeric width/height")
	}

	qty := 1
	if len(fields) == 3 {
		q, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return jobconfig.PieceSpec{}, fmt.Errorf("expected numeric quantity")
		}
		qty = q
	}

	return jobconfig.PieceSpec{Width: w, Height: h, Quantity: qty}, nil
}
