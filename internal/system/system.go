package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputPath builds a timestamped output file name in dir derived from the
// source document name.
func OutputPath(dir, source, suffix, ext string) string {
	baseName := filepath.Base(source)
	nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s.%s", cleanName, suffix, timestamp, ext))
}

// EnsureDirs creates the working directories if they are missing.
func EnsureDirs(dirs ...string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
