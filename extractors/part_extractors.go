package extractors

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Dl0057754/Wex-PB-Tool/ingest"
)

// Column labels that mark a cell as the likely part/model number. Matched as
// case-insensitive substrings against the header label.
var partNumberLabels = []string{"model", "part", "item", "#"}

// Fallback for rows whose labels give nothing away: an uppercase run of
// letters, digits and hyphens between 4 and 20 characters, e.g. ZR34K3-PFV.
var partNumberPattern = regexp.MustCompile(`^[A-Z0-9-]{4,20}$`)

// Textual price like "$1,075.52" or "1075.52" embedded in a description cell.
var pricePattern = regexp.MustCompile(`[$]?\d[\d,]*(?:\.\d{1,2})?`)

// ExtractPartNumber pulls the best-guess part/model number out of a row.
//
// Labeled columns always win: the first non-empty, non-"nan" value in a
// column whose label contains "model", "part", "item" or "#" is returned
// as-is. Only when no such column exists does the pattern fallback scan all
// cell values in row order. Returns "" when neither method finds anything.
func ExtractPartNumber(row ingest.RawRow) string {
	for _, cell := range row.Cells {
		label := strings.ToLower(cell.Label)
		for _, want := range partNumberLabels {
			if !strings.Contains(label, want) {
				continue
			}
			value := strings.TrimSpace(cell.Value)
			if value != "" && strings.ToLower(value) != "nan" {
				return value
			}
		}
	}

	for _, cell := range row.Cells {
		value := strings.TrimSpace(cell.Value)
		if partNumberPattern.MatchString(value) {
			return value
		}
	}

	return ""
}

// ExtractPrice pulls the best-guess unit price out of a row.
//
// Any cell whose whole value parses as a number greater than zero wins
// outright, first occurrence in row order. Only when no such cell exists are
// string cells scanned for an embedded price pattern ("$1,075.52"), with
// thousands separators stripped before parsing. Returns 0 when nothing
// matches; zero is the "unknown price" sentinel, not an error.
func ExtractPrice(row ingest.RawRow) float64 {
	for _, cell := range row.Cells {
		value := strings.TrimSpace(cell.Value)
		if value == "" {
			continue
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil && n > 0 {
			return n
		}
	}

	for _, cell := range row.Cells {
		match := pricePattern.FindString(cell.Value)
		if match == "" {
			continue
		}
		cleaned := strings.NewReplacer("$", "", ",", "").Replace(match)
		if n, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return n
		}
	}

	return 0
}
