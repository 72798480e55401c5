package wordlist

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/wordmatch/internal/model"
)

// XLSXOptions configures spreadsheet import. Every sheet becomes a unit; the
// German word is read from SourceColumn and the English one from TargetColumn.
type XLSXOptions struct {
	SourceColumn string
	TargetColumn string
	SkipHeader   bool
}

func (o XLSXOptions) withDefaults() XLSXOptions {
	if o.SourceColumn == "" {
		o.SourceColumn = "A"
	}
	if o.TargetColumn == "" {
		o.TargetColumn = "B"
	}
	return o
}

// LoadXLSX reads units from a workbook.
func LoadXLSX(path string, opts XLSXOptions) ([]model.SourceUnit, error) {
	opts = opts.withDefaults()
	srcIdx, err := columnIndex(opts.SourceColumn)
	if err != nil {
		return nil, err
	}
	dstIdx, err := columnIndex(opts.TargetColumn)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only workbook.
			_ = cerr
		}
	}()

	var units []model.SourceUnit
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		unit := model.SourceUnit{ID: Slug(sheet), Name: sheet}
		for i, row := range rows {
			if i == 0 && opts.SkipHeader {
				continue
			}
			unit.Pairs = append(unit.Pairs, model.SourcePair{
				DE: cell(row, srcIdx),
				EN: cell(row, dstIdx),
			})
		}
		units = append(units, unit)
	}

	units = Normalize(units)
	if err := Validate(units); err != nil {
		return nil, err
	}
	return units, nil
}

// Slug turns a display name into a unit id.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(NormalizeText(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func columnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", name, err)
	}
	return n - 1, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
