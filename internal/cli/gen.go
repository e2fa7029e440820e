package cli

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nikakis16-prog/sheetcut/internal/jobconfig"
)

// CmdGen generates a random piece-list fixture, for stress-testing the
// driver the way the teacher's testdata-generator stress-tests the atlas
// packer with random PNGs.
type CmdGen struct {
	Args struct {
		Output string `positional-arg-name:"output" description:"Output piece-list YAML path" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	MinSize  int   `short:"m" long:"min-size" description:"Minimum piece side" default:"10"`
	MaxSize  int   `short:"M" long:"max-size" description:"Maximum piece side" default:"500"`
	Count    int   `short:"c" long:"count" description:"Number of distinct piece entries to generate" default:"10"`
	MaxRatio int   `short:"r" long:"max-ratio" description:"Maximum side ratio (1=squares only)" default:"4"`
	MaxQty   int   `short:"q" long:"max-qty" description:"Maximum quantity per entry" default:"5"`
	Seed     int64 `long:"seed" description:"Random seed (0=derived from the process id)" default:"0"`
}

// Execute runs the gen command.
func (c *CmdGen) Execute(args []string) error {
	return runGen(c)
}

func runGen(opts *CmdGen) error {
	if opts.MinSize <= 0 || opts.MaxSize <= 0 {
		return fmt.Errorf("min-size and max-size must be positive")
	}
	if opts.MinSize > opts.MaxSize {
		return fmt.Errorf("min-size must be <= max-size")
	}
	if opts.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if opts.MaxRatio < 1 {
		return fmt.Errorf("max-ratio must be >= 1")
	}
	if opts.MaxQty < 1 {
		return fmt.Errorf("max-qty must be >= 1")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = int64(os.Getpid())
	}
	//nolint:gosec // Non-crypto randomness is fine for fixture generation.
	rng := rand.New(rand.NewSource(seed))

	pieces := make([]jobconfig.PieceSpec, opts.Count)
	for i := range pieces {
		w, h := generatePieceSize(rng, opts)
		pieces[i] = jobconfig.PieceSpec{
			Name:     fmt.Sprintf("piece_%d", i+1),
			Width:    w,
			Height:   h,
			Quantity: 1 + rng.Intn(opts.MaxQty),
		}
	}

	doc := struct {
		Pieces []jobconfig.PieceSpec `yaml:"pieces"`
	}{Pieces: pieces}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal generated pieces: %w", err)
	}

	if dir := filepath.Dir(opts.Args.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.Args.Output, data, 0o600); err != nil {
		return fmt.Errorf("write generated pieces: %w", err)
	}

	fmt.Printf("Generated %d piece entries into %s\n", opts.Count, opts.Args.Output)
	return nil
}

// generatePieceSize picks a random (width, height) within the configured
// bounds and ratio constraint.
func generatePieceSize(rng *rand.Rand, opts *CmdGen) (width, height int) {
	span := opts.MaxSize - opts.MinSize + 1

	if opts.MaxRatio == 1 {
		size := opts.MinSize + rng.Intn(span)
		return size, size
	}

	for i := 0; i < 24; i++ {
		width = opts.MinSize + rng.Intn(span)
		height = opts.MinSize + rng.Intn(span)
		ratio := float64(max(width, height)) / float64(min(width, height))
		if ratio <= float64(opts.MaxRatio) {
			return width, height
		}
	}

	// Fallback: clamp the larger side to respect max-ratio.
	if width >= height {
		width = min(opts.MaxSize, max(opts.MinSize, height*opts.MaxRatio))
	} else {
		height = min(opts.MaxSize, max(opts.MinSize, width*opts.MaxRatio))
	}

	return width, height
}
