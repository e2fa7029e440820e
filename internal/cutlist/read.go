package cutlist

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadFile parses a cutlist text file from disk.
func ReadFile(path string) (*CutList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	cl := &CutList{}
	sc := bufio.NewScanner(f)

	var (
		inSheets  bool
		inParts   bool
		inOffcuts bool

		curSheet   *CutSheet
		curPart    *CutPart
		curOffcut  *CutOffcut
	)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Sheets") && strings.HasSuffix(line, "{"):
			inSheets = true
			continue
		case strings.HasPrefix(line, "Parts") && strings.HasSuffix(line, "{"):
			inParts = true
			continue
		case strings.HasPrefix(line, "Offcuts") && strings.HasSuffix(line, "{"):
			inOffcuts = true
			continue
		case strings.HasPrefix(line, "CutSheetClass"):
			curSheet = &CutSheet{}
			if idx, ok := parseClassIndex(line); ok {
				curSheet.Index = idx
			}
			continue
		case strings.HasPrefix(line, "CutPartClass"):
			curPart = &CutPart{}
			continue
		case strings.HasPrefix(line, "CutOffcutClass"):
			curOffcut = &CutOffcut{ID: parseClassName(line)}
			continue
		}

		if line == "}" {
			switch {
			case inOffcuts && curOffcut != nil:
				if curSheet != nil {
					curSheet.Offcuts = append(curSheet.Offcuts, *curOffcut)
				}
				curOffcut = nil
			case inOffcuts:
				inOffcuts = false
			case inParts && curPart != nil:
				if curSheet != nil {
					curSheet.Parts = append(curSheet.Parts, *curPart)
				}
				curPart = nil
			case inParts:
				inParts = false
			case curSheet != nil && inSheets:
				cl.Sheets = append(cl.Sheets, *curSheet)
				curSheet = nil
			case inSheets:
				inSheets = false
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "Name":
			val := strings.Trim(strings.TrimSpace(line[len("Name"):]), "\"")
			if curPart != nil {
				curPart.Name = val
			} else {
				cl.Name = val
			}

		case "RunId":
			cl.RunID = strings.Trim(strings.TrimSpace(line[len("RunId"):]), "\"")

		case "Sheet":
			w, h, err := parseIntPair(fields, lineNo, "Sheet")
			if err != nil {
				return nil, err
			}
			cl.SheetW, cl.SheetH = w, h

		case "Kerf":
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid Kerf", lineNo)
			}
			cl.Kerf = v

		case "Strategy":
			cl.Strategy = strings.Trim(strings.TrimSpace(line[len("Strategy"):]), "\"")

		case "AllowRotation":
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid AllowRotation", lineNo)
			}
			cl.AllowRotation = v != 0

		case "UsedArea":
			if curSheet == nil {
				return nil, fmt.Errorf("line %d: UsedArea outside a sheet", lineNo)
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid UsedArea", lineNo)
			}
			curSheet.UsedArea = v

		case "ScrapArea":
			if curSheet == nil {
				return nil, fmt.Errorf("line %d: ScrapArea outside a sheet", lineNo)
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid ScrapArea", lineNo)
			}
			curSheet.ScrapArea = v

		case "Pos":
			x, y, err := parseIntPair(fields, lineNo, "Pos")
			if err != nil {
				return nil, err
			}
			switch {
			case curOffcut != nil:
				curOffcut.X, curOffcut.Y = x, y
			case curPart != nil:
				curPart.X, curPart.Y = x, y
			default:
				return nil, fmt.Errorf("line %d: Pos outside a part or offcut", lineNo)
			}

		case "Size":
			w, h, err := parseIntPair(fields, lineNo, "Size")
			if err != nil {
				return nil, err
			}
			switch {
			case curOffcut != nil:
				curOffcut.Width, curOffcut.Height = w, h
			case curPart != nil:
				curPart.Width, curPart.Height = w, h
			default:
				return nil, fmt.Errorf("line %d: Size outside a part or offcut", lineNo)
			}

		case "Rotated":
			if curPart == nil {
				return nil, fmt.Errorf("line %d: Rotated outside a part", lineNo)
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid Rotated", lineNo)
			}
			curPart.Rotated = v != 0
		}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cl, nil
}

// parseIntPair parses two trailing integer fields after a keyword.
func parseIntPair(fields []string, lineNo int, keyword string) (int, int, error) {
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("line %d: invalid %s", lineNo, keyword)
	}
	a, err1 := strconv.Atoi(fields[1])
	b, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("line %d: invalid %s values", lineNo, keyword)
	}
	return a, b, nil
}

// parseClassName parses the identifier following a class keyword, e.g.
// "CutOffcutClass a1b2c3d4 {" -> "a1b2c3d4".
func parseClassName(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	return strings.Trim(fields[1], "{")
}

// parseClassIndex parses the numeric index following "CutSheetClass".
func parseClassIndex(line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.Trim(fields[1], "{"))
	if err != nil {
		return 0, false
	}
	return idx, true
}
