package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestLocateHeader(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want int
	}{
		{
			name: "noise rows before header",
			rows: [][]string{
				{"Acme Supply Co", "Phone: 555-0100"},
				{""},
				{"Part Number", "Description", "Price"},
				{"CAP-4455", "Dual Run Capacitor", "18.75"},
			},
			want: 2,
		},
		{
			name: "header on first row",
			rows: [][]string{
				{"Model", "List"},
				{"ZR34K3", "612.40"},
			},
			want: 0,
		},
		{
			name: "hash column counts as header",
			rows: [][]string{
				{"Acme Supply"},
				{"#", "Desc", "Cost"},
			},
			want: 1,
		},
		{
			name: "no header anywhere falls back to zero",
			rows: [][]string{
				{"alpha", "beta"},
				{"gamma", "delta"},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocateHeader(tt.rows); got != tt.want {
				t.Errorf("LocateHeader() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	src := strings.Join([]string{
		"Acme Supply Co,Quote 2024",
		",",
		"Part Number,Description,Price",
		"CAP-4455,Dual Run Capacitor 45/5 MFD,18.75",
		",,",
		"ZR34K3-PFV,Copeland Scroll Compressor,$612.40",
	}, "\n")

	rows, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (empty rows dropped)", len(rows))
	}

	first := rows[0]
	if first.Cells[0].Label != "Part Number" || first.Cells[0].Value != "CAP-4455" {
		t.Errorf("unexpected first cell: %+v", first.Cells[0])
	}
	if rows[1].Index != 1 {
		t.Errorf("row index = %d, want 1", rows[1].Index)
	}
	if !strings.Contains(rows[1].Render(), "Description: Copeland Scroll Compressor") {
		t.Errorf("unexpected render: %q", rows[1].Render())
	}
}

func TestReadCSVWindows1252(t *testing.T) {
	// "Olé" with a Windows-1252 e-acute, invalid as UTF-8.
	src := append([]byte("Part,Description,Price\nX123,Ol"), 0xE9)
	src = append(src, []byte(" heater,5\n")...)

	rows, err := ReadCSV(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Cells[1].Value != "Olé heater" {
		t.Errorf("transcoded value = %q, want %q", rows[0].Cells[1].Value, "Olé heater")
	}
}

func TestReadCSVFileMissing(t *testing.T) {
	_, err := ReadCSVFile("no/such/file.csv")
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("error = %v, want ErrSourceUnreadable", err)
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Acme Supply Co"},
		{},
		{"Item #", "Description", "List Price"},
		{"HC39GE237", "Blower Motor 1/2 HP", 214.99},
		{},
		{"TXV-0034", "Expansion Valve", "$88.10"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	parsed, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadXLSX() error: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("got %d rows, want 2", len(parsed))
	}
	if parsed[0].Cells[0].Label != "Item #" || parsed[0].Cells[0].Value != "HC39GE237" {
		t.Errorf("unexpected first cell: %+v", parsed[0].Cells[0])
	}
}

func TestReadXLSXGarbage(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("this is not a workbook"))
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("error = %v, want ErrSourceUnreadable", err)
	}
}

func TestRawRowRender(t *testing.T) {
	row := RawRow{Cells: []Cell{
		{Label: "Part", Value: "CAP-4455"},
		{Label: "", Value: "18.75"},
		{Label: "Empty", Value: ""},
	}}
	got := row.Render()
	want := "Part: CAP-4455 | 18.75"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
