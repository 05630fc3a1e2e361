package enrich

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedInput is returned for input list formats the reader does
// not understand.
var ErrUnsupportedInput = errors.New("unsupported input list format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// innHeaders are the column labels recognized as the INN column.
var innHeaders = []string{"ИНН", "INN", "ИННФЛ", "ИННЮЛ"}

// ReadINNList reads an ordered INN list from a CSV/TXT or XLSX file. The
// list keeps input order and duplicates; validation happens later in the
// matcher.
func ReadINNList(path string) ([]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt", "":
		return readCSVList(path)
	case ".xlsx":
		return readExcelList(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, ext)
	}
}

func readCSVList(path string) ([]string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input list: %w", err)
	}
	payload = bytes.TrimPrefix(payload, byteOrderMark)

	// Lists exported from older Russian office tooling arrive in
	// Windows-1251 rather than UTF-8.
	if !utf8.Valid(payload) {
		decoded, err := charmap.Windows1251.NewDecoder().Bytes(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode input list: %w", err)
		}
		payload = decoded
	}

	reader := csv.NewReader(bytes.NewReader(payload))
	reader.Comma = detectDelimiter(payload)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse input list: %w", err)
	}
	return collectINNColumn(records), nil
}

func readExcelList(path string) ([]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx input list: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx input list has no sheets")
	}
	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}
	return collectINNColumn(records), nil
}

// detectDelimiter picks the delimiter from the first line; registry
// exports use both ';' and ','.
func detectDelimiter(payload []byte) rune {
	line := payload
	if idx := bytes.IndexByte(payload, '\n'); idx >= 0 {
		line = payload[:idx]
	}
	if bytes.Count(line, []byte{';'}) >= bytes.Count(line, []byte{','}) && bytes.ContainsRune(line, ';') {
		return ';'
	}
	return ','
}

// collectINNColumn finds the INN column (labelled header or first column)
// and returns its values in row order.
func collectINNColumn(records [][]string) []string {
	column := 0
	start := 0
	for rowIdx, row := range records {
		if len(row) == 0 {
			continue
		}
		for colIdx, cell := range row {
			if isINNHeader(cell) {
				column = colIdx
				start = rowIdx + 1
			}
		}
		break
	}

	var inns []string
	for _, row := range records[min(start, len(records)):] {
		if column >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[column])
		if value == "" || isINNHeader(value) {
			continue
		}
		inns = append(inns, value)
	}
	return inns
}

func isINNHeader(cell string) bool {
	cell = strings.TrimSpace(cell)
	for _, header := range innHeaders {
		if strings.EqualFold(cell, header) {
			return true
		}
	}
	return false
}
