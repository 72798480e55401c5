package wordlist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/wordmatch/internal/model"
)

func writeWorkbook(t *testing.T, sheets map[string][][]string, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
	}()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			for c, value := range row {
				ref, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, ref, value))
			}
		}
	}
	path := filepath.Join(t.TempDir(), "units.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Animals": {
			{"de", "en"},
			{"Hund", "Dog"},
			{" Katze ", "Cat"},
		},
		"At home": {
			{"de", "en"},
			{"Tür", "Door"},
		},
	}, []string{"Animals", "At home"})

	units, err := LoadXLSX(path, XLSXOptions{SkipHeader: true})
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "animals", units[0].ID)
	assert.Equal(t, []model.SourcePair{{EN: "Dog", DE: "Hund"}, {EN: "Cat", DE: "Katze"}}, units[0].Pairs)
	assert.Equal(t, "at-home", units[1].ID)
	assert.Equal(t, "At home", units[1].Name)
}

func TestLoadXLSXCustomColumns(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Food": {{"Cheese", "ignored", "Käse"}},
	}, []string{"Food"})

	units, err := LoadXLSX(path, XLSXOptions{SourceColumn: "C", TargetColumn: "A"})
	require.NoError(t, err)
	assert.Equal(t, []model.SourcePair{{EN: "Cheese", DE: "Käse"}}, units[0].Pairs)
}

func TestLoadXLSXRejectsIncompleteRows(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Food": {{"Brot"}},
	}, []string{"Food"})

	_, err := LoadXLSX(path, XLSXOptions{})
	assert.Error(t, err)

	_, err = LoadXLSX(path, XLSXOptions{SourceColumn: "1"})
	assert.Error(t, err)
}

func TestLoadUnitsDispatchesXLSX(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Verbs": {{"de", "en"}, {"gehen", "to go"}},
	}, []string{"Verbs"})

	units, err := LoadUnits(path)
	require.NoError(t, err)
	assert.Equal(t, "verbs", units[0].ID)
}
