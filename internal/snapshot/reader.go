package snapshot

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rmsp-tools/registry/internal/registry"
)

// SnapshotReadError marks a missing or corrupt snapshot file. Unlike row
// level rejections it is fatal to the load.
type SnapshotReadError struct {
	File string
	Err  error
}

func (e *SnapshotReadError) Error() string {
	return fmt.Sprintf("snapshot read failure in %s: %v", e.File, e.Err)
}

func (e *SnapshotReadError) Unwrap() error {
	return e.Err
}

// documentElements are the record container element names seen across
// snapshot vintages. Anything inside one of them becomes a raw row.
var documentElements = map[string]struct{}{
	"Документ": {},
	"Запись":   {},
	"СвЮЛ":     {},
	"СвИП":     {},
	"Record":   {},
	"Row":      {},
}

// readShard streams every record of one XML shard through fn. Parse and
// I/O failures are returned as *SnapshotReadError.
func readShard(path string, fn func(*registry.RawRow)) error {
	file, err := os.Open(path)
	if err != nil {
		return &SnapshotReadError{File: path, Err: err}
	}
	defer file.Close()

	if err := streamDocuments(file, filepath.Base(path), fn); err != nil {
		return &SnapshotReadError{File: path, Err: err}
	}
	return nil
}

func streamDocuments(r io.Reader, file string, fn func(*registry.RawRow)) error {
	decoder := xml.NewDecoder(r)
	index := 0

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if _, ok := documentElements[start.Name.Local]; !ok {
			continue
		}

		index++
		row := &registry.RawRow{File: file, Index: index}
		for _, attr := range start.Attr {
			row.Set(attr.Name.Local, strings.TrimSpace(attr.Value))
		}
		if err := flattenDocument(decoder, row); err != nil {
			return err
		}
		fn(row)
	}
}

// flattenDocument consumes tokens until the document element closes,
// recording attributes and character data under dot-joined element paths.
func flattenDocument(decoder *xml.Decoder, row *registry.RawRow) error {
	var path []string

	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			prefix := strings.Join(path, ".")
			for _, attr := range t.Attr {
				row.Set(prefix+"."+attr.Name.Local, strings.TrimSpace(attr.Value))
			}
		case xml.EndElement:
			if len(path) == 0 {
				return nil
			}
			path = path[:len(path)-1]
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text != "" && len(path) > 0 {
				row.Set(strings.Join(path, "."), text)
			}
		}
	}
}

var shardDatePattern = regexp.MustCompile(`\d{8}`)

// shardDate extracts the publication date token from a shard file name
// (registry shards carry a YYYYMMDD stamp). Used as a fallback when the
// documents themselves state no date.
func shardDate(name string) (time.Time, bool) {
	for _, match := range shardDatePattern.FindAllString(name, -1) {
		date, err := time.Parse("20060102", match)
		if err != nil {
			continue
		}
		if date.Year() < 2000 || date.Year() > 2100 {
			continue
		}
		return date, true
	}
	return time.Time{}, false
}
