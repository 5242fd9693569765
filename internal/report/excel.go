package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mutscan/mutscan/internal/mutation"
)

// Sheet and fill conventions carried over from the lab's previous
// report format: silent mutations green, missense orange.
const (
	sheetSummary = "Mutation Summary"
	sheetStats   = "Summary Statistics"
	sheetCodon   = "Codon Analysis"
	sheetVariant = "Variant Analysis"

	fillHeader   = "DDEBF7"
	fillSilent   = "E2EFDA"
	fillMissense = "FCE4D6"
)

var summaryHeaders = []string{
	"Sample", "Orientation", "Nucleotide Pos", "Original Codon",
	"Mutated Codon", "AA Pos", "Original AA", "Mutated AA",
	"Silent?", "Mutation Type",
}

// WriteExcel writes the full styled workbook: the per-record mutation
// table, summary statistics, per-site codon analysis, and variant
// clustering. Records are sorted by sample then position before writing.
func WriteExcel(records []mutation.Record, path string) error {
	sorted := make([]mutation.Record, len(records))
	copy(sorted, records)
	SortRecords(sorted)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetSummary)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{fillHeader}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Style: 2, Color: "000000"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	silentStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fillSilent}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create silent style: %w", err)
	}
	missenseStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fillMissense}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create missense style: %w", err)
	}

	if err := writeSummarySheet(f, sorted, headerStyle, silentStyle, missenseStyle); err != nil {
		return err
	}
	if err := writeStatsSheet(f, sorted); err != nil {
		return err
	}
	if err := writeCodonSheet(f, sorted, headerStyle, silentStyle); err != nil {
		return err
	}
	if err := writeVariantSheet(f, sorted, headerStyle); err != nil {
		return err
	}

	if err := autoFitColumns(f); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func setHeaderRow(f *excelize.File, sheet string, row int, headers []string, style int) error {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := setRow(f, sheet, row, values); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	return f.SetCellStyle(sheet, first, last, style)
}

func writeSummarySheet(f *excelize.File, records []mutation.Record, headerStyle, silentStyle, missenseStyle int) error {
	if err := setHeaderRow(f, sheetSummary, 1, summaryHeaders, headerStyle); err != nil {
		return err
	}

	row := 2
	prevSample := ""
	for _, r := range records {
		// Blank row between samples for readability.
		if prevSample != "" && r.Sample != prevSample {
			row++
		}
		prevSample = r.Sample

		values := []any{
			r.Sample, r.Orientation.String(), r.NucleotidePos,
			r.OriginalCodon, r.MutatedCodon, r.CodonPos,
			string(r.OriginalAA), string(r.MutatedAA),
			r.IsSilent, r.Type.String(),
		}
		if err := setRow(f, sheetSummary, row, values); err != nil {
			return err
		}

		if r.IsSilent {
			cell, _ := excelize.CoordinatesToCellName(9, row)
			if err := f.SetCellStyle(sheetSummary, cell, cell, silentStyle); err != nil {
				return err
			}
		} else {
			cell, _ := excelize.CoordinatesToCellName(10, row)
			if err := f.SetCellStyle(sheetSummary, cell, cell, missenseStyle); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

func writeStatsSheet(f *excelize.File, records []mutation.Record) error {
	if _, err := f.NewSheet(sheetStats); err != nil {
		return err
	}

	perSample := make(map[string]int)
	var samples []string
	silent := 0
	for _, r := range records {
		if _, seen := perSample[r.Sample]; !seen {
			samples = append(samples, r.Sample)
		}
		perSample[r.Sample]++
		if r.IsSilent {
			silent++
		}
	}
	sort.Strings(samples)

	rows := [][]any{
		{"Total Samples Analyzed:", len(samples)},
		{},
		{"Mutation Statistics"},
		{"Total Mutations:", len(records)},
		{"Silent Mutations:", silent},
		{"Missense Mutations:", len(records) - silent},
		{},
		{"Mutations per Sample"},
		{"Sample", "Mutation Count"},
	}
	for _, s := range samples {
		rows = append(rows, []any{s, perSample[s]})
	}

	for i, values := range rows {
		if err := setRow(f, sheetStats, i+1, values); err != nil {
			return err
		}
	}
	return nil
}

// codonSite aggregates occurrences of one (position, codon change) pair
// across samples.
type codonSite struct {
	rec     mutation.Record
	count   int
	samples []string
}

func writeCodonSheet(f *excelize.File, records []mutation.Record, headerStyle, silentStyle int) error {
	if _, err := f.NewSheet(sheetCodon); err != nil {
		return err
	}

	headers := []string{
		"Position", "Original Codon", "Mutated Codon", "Occurrence Count",
		"AA Pos", "Original AA", "Mutated AA", "Silent", "Samples",
	}
	if err := setHeaderRow(f, sheetCodon, 1, headers, headerStyle); err != nil {
		return err
	}

	sites := make(map[string]*codonSite)
	var keys []string
	for _, r := range records {
		key := fmt.Sprintf("%d:%s>%s", r.NucleotidePos, r.OriginalCodon, r.MutatedCodon)
		s, ok := sites[key]
		if !ok {
			s = &codonSite{rec: r}
			sites[key] = s
			keys = append(keys, key)
		}
		s.count++
		s.samples = append(s.samples, r.Sample)
	}

	ordered := make([]*codonSite, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, sites[k])
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].rec.NucleotidePos != ordered[j].rec.NucleotidePos {
			return ordered[i].rec.NucleotidePos < ordered[j].rec.NucleotidePos
		}
		return ordered[i].count > ordered[j].count
	})

	for i, s := range ordered {
		row := i + 2
		samples := uniqueSorted(s.samples)
		values := []any{
			s.rec.NucleotidePos, s.rec.OriginalCodon, s.rec.MutatedCodon, s.count,
			s.rec.CodonPos, string(s.rec.OriginalAA), string(s.rec.MutatedAA),
			s.rec.IsSilent, strings.Join(samples, ", "),
		}
		if err := setRow(f, sheetCodon, row, values); err != nil {
			return err
		}
		if s.rec.IsSilent {
			cell, _ := excelize.CoordinatesToCellName(8, row)
			if err := f.SetCellStyle(sheetCodon, cell, cell, silentStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeVariantSheet(f *excelize.File, records []mutation.Record, headerStyle int) error {
	if _, err := f.NewSheet(sheetVariant); err != nil {
		return err
	}

	headers := []string{"Variant", "Frequency", "Mutation Count", "Mutations", "Samples"}
	if err := setHeaderRow(f, sheetVariant, 1, headers, headerStyle); err != nil {
		return err
	}

	for i, v := range ClusterVariants(records) {
		values := []any{
			v.Name, len(v.Samples), len(v.Mutations),
			v.MutationSummary(), strings.Join(v.Samples, ", "),
		}
		if err := setRow(f, sheetVariant, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

// autoFitColumns widens each column to its longest cell value, capping
// the variant mutation-summary column so one wide variant does not blow
// up the sheet.
func autoFitColumns(f *excelize.File) error {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return err
		}
		widths := make(map[int]int)
		for _, row := range rows {
			for i, val := range row {
				n := len(val)
				if sheet == sheetVariant && i == 3 && n > 100 {
					n = 100
				}
				if n > widths[i] {
					widths[i] = n
				}
			}
		}
		for i, w := range widths {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(sheet, name, name, float64(w+2)); err != nil {
				return err
			}
		}
	}
	return nil
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
