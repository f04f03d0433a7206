// Package templates projects accepted part records into the three fixed
// output schemas the field-service tool imports.
package templates

import (
	"fmt"
	"strconv"

	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
)

// Kind selects one of the three output schemas.
type Kind string

const (
	KindBundle         Kind = "bundle"
	KindSinglePart     Kind = "single_part"
	KindSupplierLoader Kind = "supplier_loader"
)

// DisplayNames as the downstream tool labels the templates.
var DisplayNames = map[Kind]string{
	KindBundle:         "Part + Labor Bundle",
	KindSinglePart:     "Single Part",
	KindSupplierLoader: "Supplier Loader",
}

// ParseKind maps a config string onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBundle, KindSinglePart, KindSupplierLoader:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown template kind %q", s)
	}
}

// Config carries the run-level pricing figures. Markup, labor rate and
// labor cost are business defaults the caller may override, not derived
// values.
type Config struct {
	SupplierName string
	LaborRate    float64
	LaborCost    float64
	Markup       float64
}

// Default pricing figures used when the caller overrides nothing.
const (
	DefaultMarkup    = 1.5
	DefaultLaborRate = 141.43
	DefaultLaborCost = 54.40
)

// withDefaults fills zero-valued pricing figures.
func (c Config) withDefaults() Config {
	if c.Markup == 0 {
		c.Markup = DefaultMarkup
	}
	if c.LaborRate == 0 {
		c.LaborRate = DefaultLaborRate
	}
	if c.LaborCost == 0 {
		c.LaborCost = DefaultLaborCost
	}
	return c
}

// OutputRow is one formatted row: a fixed column list with values in the
// same order. Rows have no identity of their own; they are deterministic
// projections of a record plus config.
type OutputRow struct {
	Kind    Kind
	Columns []string
	Values  []string
}

// Headers returns the column list for a template kind.
func Headers(kind Kind) []string {
	switch kind {
	case KindBundle:
		return []string{
			"Folder 1", "Folder 2", "Folder 3", "Item Name", "Description",
			"Part Number", "Manufacturer", "Part Cost", "Part Sell Price",
			"Standard Price", "Labor Hours", "Labor Cost", "Supplier",
		}
	case KindSinglePart:
		return []string{
			"Folder 1", "Folder 2", "Folder 3", "Item Name", "Description",
			"Part Number", "Manufacturer", "Part Cost", "Sell Price", "Supplier",
		}
	case KindSupplierLoader:
		return []string{
			"Supplier", "Part Number", "Description", "Cost", "Category", "Manufacturer",
		}
	default:
		return nil
	}
}

// Format projects a record into one output row. Missing record fields
// format as empty defaults; formatting never fails.
func Format(record enrichment.PartRecord, kind Kind, config Config) OutputRow {
	config = config.withDefaults()

	switch kind {
	case KindBundle:
		partSell := record.Cost * config.Markup
		standardPrice := record.Cost*config.Markup + record.LaborHours*config.LaborRate
		laborCost := record.LaborHours * config.LaborCost
		return OutputRow{
			Kind:    kind,
			Columns: Headers(kind),
			Values: []string{
				record.Folder1, record.Folder2, record.Folder3,
				record.StandardName, record.Description,
				record.ModelNumber, record.Manufacturer,
				money(record.Cost), money(partSell),
				money(standardPrice), hours(record.LaborHours), money(laborCost),
				config.SupplierName,
			},
		}
	case KindSinglePart:
		return OutputRow{
			Kind:    kind,
			Columns: Headers(kind),
			Values: []string{
				record.Folder1, record.Folder2, record.Folder3,
				record.StandardName, record.Description,
				record.ModelNumber, record.Manufacturer,
				money(record.Cost), money(record.Cost * config.Markup),
				config.SupplierName,
			},
		}
	case KindSupplierLoader:
		return OutputRow{
			Kind:    kind,
			Columns: Headers(kind),
			Values: []string{
				config.SupplierName, record.ModelNumber, record.Description,
				money(record.Cost), record.Folder2, record.Manufacturer,
			},
		}
	default:
		return OutputRow{Kind: kind}
	}
}

// FormatAll projects a batch of records, preserving order.
func FormatAll(records []enrichment.PartRecord, kind Kind, config Config) []OutputRow {
	rows := make([]OutputRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, Format(r, kind, config))
	}
	return rows
}

// Field returns a row value by column name, "" when absent.
func (r OutputRow) Field(name string) string {
	for i, col := range r.Columns {
		if col == name && i < len(r.Values) {
			return r.Values[i]
		}
	}
	return ""
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
