// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// EnsureFileFolderHierarchy creates the directory a file path lives in.
func EnsureFileFolderHierarchy(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// ExpandHomePath expands a leading ~ because Go does not.
func ExpandHomePath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("./", path[1:])
		}

		return filepath.Join(home, path[1:])
	}

	return path
}
