package packing

import "fmt"

// OversizedPartError reports that a part could not fit into an empty sheet
// at any permitted orientation.
type OversizedPartError struct {
	PartName     string
	SheetW       int
	SheetH       int
}

func (e *OversizedPartError) Error() string {
	return fmt.Sprintf("packing: part %q does not fit into an empty %dx%d sheet", e.PartName, e.SheetW, e.SheetH)
}
