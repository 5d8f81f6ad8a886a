package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetPathInfo resolves relPath to an absolute path and its directory.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadSource reads a whole source file in one call.
func ReadSource(path string) (fullPath string, data []byte, err error) {
	fullPath, _, err = GetPathInfo(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	data, err = os.ReadFile(fullPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fullPath, data, nil
}
