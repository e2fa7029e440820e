// Package cutlist serializes packing results to a plain structured text
// format, and to YAML, for external consumption. It never rasterizes or
// renders a layout; producing print-ready drawings is an explicit
// out-of-scope concern left to the caller.
package cutlist

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Write writes a CutList to the writer in cutlist text format.
func Write(w io.Writer, cl *CutList, useCamelCase bool) error {
	return writeCutList(w, cl, 0, useCamelCase)
}

// writeCutList writes CutList with indentation.
func writeCutList(w io.Writer, cl *CutList, indent int, useCamelCase bool) error {
	indentStr := strings.Repeat("\t", indent)

	if _, err := fmt.Fprintf(w, "%sCutListClass {\n", indentStr); err != nil {
		return err
	}

	name := NormalizeName(cl.Name, useCamelCase)
	if _, err := fmt.Fprintf(w, "%s\tName %q\n", indentStr, name); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\tRunId %q\n", indentStr, cl.RunID); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\tSheet %d %d\n", indentStr, cl.SheetW, cl.SheetH); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\tKerf %d\n", indentStr, cl.Kerf); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\tStrategy %q\n", indentStr, cl.Strategy); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\tAllowRotation %d\n", indentStr, boolInt(cl.AllowRotation)); err != nil {
		return err
	}

	if len(cl.Sheets) > 0 {
		if _, err := fmt.Fprintf(w, "%s\tSheets {\n", indentStr); err != nil {
			return err
		}
		for _, sheet := range cl.Sheets {
			if err := writeSheet(w, &sheet, indent+2); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\t}\n", indentStr); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s}\n", indentStr); err != nil {
		return err
	}

	return nil
}

// writeSheet writes CutSheet.
func writeSheet(w io.Writer, s *CutSheet, indent int) error {
	indentStr := strings.Repeat("\t", indent)

	if _, err := fmt.Fprintf(w, "%sCutSheetClass %d {\n", indentStr, s.Index); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\tUsedArea %d\n", indentStr, s.UsedArea); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\tScrapArea %d\n", indentStr, s.ScrapArea); err != nil {
		return err
	}

	if len(s.Parts) > 0 {
		if _, err := fmt.Fprintf(w, "%s\tParts {\n", indentStr); err != nil {
			return err
		}
		for _, p := range s.Parts {
			if err := writePart(w, &p, indent+2); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\t}\n", indentStr); err != nil {
			return err
		}
	}

	if len(s.Offcuts) > 0 {
		if _, err := fmt.Fprintf(w, "%s\tOffcuts {\n", indentStr); err != nil {
			return err
		}
		for _, o := range s.Offcuts {
			if err := writeOffcut(w, &o, indent+2); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\t}\n", indentStr); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s}\n", indentStr); err != nil {
		return err
	}

	return nil
}

// writeOffcut writes CutOffcut.
func writeOffcut(w io.Writer, o *CutOffcut, indent int) error {
	indentStr := strings.Repeat("\t", indent)

	if _, err := fmt.Fprintf(w, "%sCutOffcutClass %s {\n", indentStr, o.ID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\tPos %d %d\n", indentStr, o.X, o.Y); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\tSize %d %d\n", indentStr, o.Width, o.Height); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s}\n", indentStr); err != nil {
		return err
	}

	return nil
}

// writePart writes CutPart.
func writePart(w io.Writer, p *CutPart, indent int) error {
	indentStr := strings.Repeat("\t", indent)

	className := NormalizeName(p.Name, false)
	if className == "" {
		className = "default"
	}
	if _, err := fmt.Fprintf(w, "%sCutPartClass %s {\n", indentStr, className); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\tName %q\n", indentStr, p.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\tPos %d %d\n", indentStr, p.X, p.Y); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\tSize %d %d\n", indentStr, p.Width, p.Height); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\tRotated %d\n", indentStr, boolInt(p.Rotated)); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s}\n", indentStr); err != nil {
		return err
	}

	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// WriteYAML writes a CutList as YAML, for downstream tooling that prefers
// structured data over the block text format.
func WriteYAML(w io.Writer, cl *CutList) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(cl)
}
