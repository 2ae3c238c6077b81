package ingest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is an input container kind.
type Kind string

const (
	KindDelimited  Kind = "delimited"
	KindWorkbook   Kind = "workbook"
	KindFixedLines Kind = "fixedLines"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Detect decides the container kind from magic bytes first and the file
// extension second. Extension-less text is delimited when its first line
// contains a separator candidate.
func Detect(name string, data []byte) (Kind, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return KindWorkbook, nil
	case bytes.HasPrefix(data, oleMagic):
		return "", fmt.Errorf("%w: legacy .xls workbooks are not supported", ErrUnsupportedFormat)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return "", fmt.Errorf("%w: %s is not a valid workbook", ErrUnsupportedFormat, name)
	case ".xls":
		return "", fmt.Errorf("%w: legacy .xls workbooks are not supported", ErrUnsupportedFormat)
	case ".csv", ".tsv":
		return KindDelimited, nil
	case ".rem", ".ret", ".dat":
		return KindFixedLines, nil
	}

	first, _, _ := bytes.Cut(data, []byte("\n"))
	if _, ok := SniffSeparator(string(first)); ok {
		return KindDelimited, nil
	}

	return KindFixedLines, nil
}

// Parse detects the container kind and reads it.
func Parse(name string, data []byte) (*Table, error) {
	kind, err := Detect(name, data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindWorkbook:
		return ReadWorkbook(data)
	case KindDelimited:
		return ReadDelimited(data)
	case KindFixedLines:
		return ReadFixedLines(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
	}
}
