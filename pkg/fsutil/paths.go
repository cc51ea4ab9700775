// Package fsutil provides path defaults and small file system helpers shared
// by the config, store and package database layers.
package fsutil

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// GetConfigDir returns the directory holding the bridge config file.
// Root uses the system directory, everyone else the per-user config dir
// (~/.config/aptbridge on Linux).
func GetConfigDir() (string, error) {
	if os.Geteuid() == 0 {
		return SystemConfigDir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListFiles returns the regular files directly under dir whose names end in
// one of the given suffixes, sorted by name. A missing directory yields an
// empty list.
func ListFiles(dir string, suffixes ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(suffixes) > 0 && !hasAnySuffix(name, suffixes) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	slices.Sort(files)
	return files, nil
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
