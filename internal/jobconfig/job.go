// Package jobconfig loads sheet-cutting job definitions from YAML, the way
// the teacher loads pack projects from .imageset-packer.yaml.
package jobconfig

// PieceSpec describes one distinct rectangular piece requirement.
type PieceSpec struct {
	Name     string `yaml:"name"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Quantity int    `yaml:"quantity" default:"1"`
}

// Job is a single optimize() run, loaded from a .sheetcut.yaml job or built
// from ad hoc pack flags.
type Job struct {
	Name          string      `yaml:"name"`
	SheetW        int         `yaml:"sheet_w"`
	SheetH        int         `yaml:"sheet_h"`
	Kerf          int         `yaml:"kerf" default:"0"`
	Strategy      string      `yaml:"strategy" default:"bssf"`
	AllowRotation bool        `yaml:"allow_rotation" default:"true"`
	Attempts      int         `yaml:"attempts" default:"8"`
	Seed          int64       `yaml:"seed"`
	Pieces        []PieceSpec `yaml:"pieces"`
}
