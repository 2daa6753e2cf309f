// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads provider credentials from a directory of
// plain-text files, one secret per file: the filename is the key and the
// trimmed contents are the value. Resolution works without any of them,
// just at the providers' public rate limits.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store holds loaded secrets keyed by filename. The engine consults
// crossref-mailto, openalex-email, semantic-scholar-api-key and
// pubmed-api-key; other keys load fine and are never read.
type Store map[string]string

// Get returns the secret for key. A non-empty fallback wins, so values
// set through flags or config files override the secrets directory.
func (s Store) Get(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// Keys returns the loaded key names, sorted. Values are never exposed in
// bulk; this is what gets logged at startup.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads every regular file in dir into a Store. A missing directory
// yields an empty store, not an error. Dotfiles, subdirectories and
// empty files are skipped; an unreadable file is reported on stderr and
// skipped, so one bad file never blocks the rest.
func Load(dir string) (Store, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return Store{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := Store{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		value, err := readSecret(dir, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping secret %s: %v\n", name, err)
			continue
		}
		if value != "" {
			store[name] = value
		}
	}
	return store, nil
}

func readSecret(dir, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
