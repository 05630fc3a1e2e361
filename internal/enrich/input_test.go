package enrich

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func writeInput(t *testing.T, name string, payload []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

func assertINNs(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d inns, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("inn %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestReadINNListSemicolonCSV(t *testing.T) {
	path := writeInput(t, "list.csv", []byte("ИНН;Название\n7707329152;ООО Ромашка\n500100732259;ИП Иванов\n"))

	inns, err := ReadINNList(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	assertINNs(t, inns, "7707329152", "500100732259")
}

func TestReadINNListBareValues(t *testing.T) {
	path := writeInput(t, "list.txt", []byte("7707329152\n\n500100732259\n12345\n"))

	inns, err := ReadINNList(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	assertINNs(t, inns, "7707329152", "500100732259", "12345")
}

func TestReadINNListHeaderColumn(t *testing.T) {
	path := writeInput(t, "list.csv", []byte("Название,INN\nООО Ромашка,7707329152\nИП Иванов,500100732259\n"))

	inns, err := ReadINNList(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	assertINNs(t, inns, "7707329152", "500100732259")
}

func TestReadINNListWindows1251(t *testing.T) {
	payload, err := charmap.Windows1251.NewEncoder().Bytes([]byte("ИНН;Регион\n7707329152;Москва\n"))
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	path := writeInput(t, "list.csv", payload)

	inns, err := ReadINNList(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	assertINNs(t, inns, "7707329152")
}

func TestReadINNListByteOrderMark(t *testing.T) {
	payload := append([]byte{0xEF, 0xBB, 0xBF}, []byte("ИНН\n7707329152\n")...)
	path := writeInput(t, "list.csv", payload)

	inns, err := ReadINNList(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	assertINNs(t, inns, "7707329152")
}

func TestReadINNListXLSX(t *testing.T) {
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	cells := map[string]string{
		"A1": "ИНН", "B1": "Название",
		"A2": "7707329152", "B2": "ООО Ромашка",
		"A3": "500100732259", "B3": "ИП Иванов",
	}
	for cell, value := range cells {
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("failed to build fixture: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "list.xlsx")
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("failed to save fixture: %v", err)
	}

	inns, err := ReadINNList(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	assertINNs(t, inns, "7707329152", "500100732259")
}

func TestReadINNListUnsupportedFormat(t *testing.T) {
	path := writeInput(t, "list.pdf", []byte("%PDF-1.4"))

	_, err := ReadINNList(path)
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Fatalf("expected ErrUnsupportedInput, got %v", err)
	}
}

func TestDetectDelimiter(t *testing.T) {
	if got := detectDelimiter([]byte("a;b;c\n1,2")); got != ';' {
		t.Fatalf("expected semicolon, got %q", got)
	}
	if got := detectDelimiter([]byte("a,b,c")); got != ',' {
		t.Fatalf("expected comma, got %q", got)
	}
	if got := detectDelimiter([]byte("7707329152")); got != ',' {
		t.Fatalf("expected comma default, got %q", got)
	}
}
