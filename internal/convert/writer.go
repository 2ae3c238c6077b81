package convert

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteResult writes the result into dir under its proposed filename and
// returns the path. The directory is created if it doesn't exist.
func WriteResult(res *Result, dir string) (string, error) {
	err := os.MkdirAll(dir, dirPerm)
	if err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, res.Filename)

	err = os.WriteFile(path, res.Data, filePerm)
	if err != nil {
		return "", fmt.Errorf("writing file %s: %w", res.Filename, err)
	}

	return path, nil
}
