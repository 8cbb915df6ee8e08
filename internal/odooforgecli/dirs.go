/*
 * Copyright (c) 2026. AXIOM STUDIO AI Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package odooforgecli

import (
	"fmt"
	"os"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// isHidden reports whether a directory entry name is hidden by dotfile
// convention.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// visibleEntries drops hidden names and passes everything else through
// unchanged, in order.
func visibleEntries(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if isHidden(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// listDirs returns the visible subdirectory names of path, sorted by name.
func listDirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return visibleEntries(names), nil
}

// createFolder creates name under base and returns the resulting path. The
// name is clamped under base, so "../escape" lands in base/escape rather
// than above it. Creating an already existing folder succeeds.
func createFolder(base, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("folder name is empty")
	}
	path, err := securejoin.SecureJoin(base, name)
	if err != nil {
		return "", fmt.Errorf("resolve folder path: %w", err)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	return path, nil
}

// dirExists reports whether path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// pathExists reports whether anything exists at path.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
