package workbook

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ReadFile reads the first sheet of an .xlsx file, or a .csv file, into a Table.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, eris.Wrapf(err, "workbook: open %s", path)
	}
	defer f.Close()

	return Read(f, filepath.Base(path))
}

// Read parses r as a spreadsheet. name picks the format by extension (".csv" or anything else for xlsx)
// and becomes the table name.
func Read(r io.Reader, name string) (Table, error) {
	start := time.Now()

	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		rows, err = readCSV(r)
	} else {
		rows, err = readXLSX(r)
	}
	if err != nil {
		return Table{}, eris.Wrapf(err, "workbook: read %s", name)
	}

	t, err := fromRows(name, rows)
	if err != nil {
		return Table{}, err
	}

	log.Debug().
		Str("file", name).
		Int("columns", len(t.Headers)).
		Int("rows", len(t.Rows)).
		Dur("elapsed", time.Since(start)).
		Msg("Workbook loaded")

	return t, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, eris.New("no sheets found")
	}
	return f.GetRows(sheets[0])
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// Excel writes a UTF-8 BOM on "CSV UTF-8" exports.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// fromRows turns raw grid rows into a Table: the first row is the header, ragged rows are padded,
// cells are trimmed, and fully blank rows are skipped.
func fromRows(name string, rows [][]string) (Table, error) {
	if len(rows) == 0 {
		return Table{}, eris.Errorf("workbook: %s has no header row", name)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	t := Table{Name: name, Headers: headers}
	for _, raw := range rows[1:] {
		row := make([]string, len(headers))
		blank := true
		for j := 0; j < len(headers) && j < len(raw); j++ {
			row[j] = strings.TrimSpace(raw[j])
			if row[j] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
