package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ScannedFile is a cache file found in an input directory.
type ScannedFile struct {
	Hash uint32 // file name parsed as hex
	Path string
	Size int64
}

// Name returns the file's base name.
func (f ScannedFile) Name() string {
	return filepath.Base(f.Path)
}

// ScanFiles walks dir and returns every file named <hex hash>.pc in lexical
// path order. Other files are skipped.
func ScanFiles(dir string) ([]ScannedFile, error) {
	var files []ScannedFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != Ext {
			return nil
		}

		stem := strings.TrimSuffix(filepath.Base(path), Ext)
		h, err := strconv.ParseUint(stem, 16, 32)
		if err != nil {
			return nil // Skip
		}

		files = append(files, ScannedFile{
			Hash: uint32(h),
			Path: path,
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	return files, nil
}
