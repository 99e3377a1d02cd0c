// Package fuzzyfind implements the DisplayFuzzy overlay: a flat,
// recursively-collected file list fuzzy-matched against the user's query
// as they type, reusing sahilm/fuzzy the same way internal/completion does
// for the command-line prompts.
package fuzzyfind

import (
	"os"
	"path/filepath"

	"github.com/sahilm/fuzzy"
)

// MaxCandidates bounds how many paths a single walk collects, so fuzzy
// find on a huge tree degrades instead of hanging the event loop.
const MaxCandidates = 50000

// Collect walks root depth-first and returns every regular file and
// directory path found, skipping the usual noise directories.
func Collect(root string) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if len(out) >= MaxCandidates {
			return filepath.SkipAll
		}
		if d.IsDir() && (d.Name() == ".git" || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		if path != root {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// Match ranks candidates against query using sahilm/fuzzy, best match
// first.
func Match(query string, candidates []string) []string {
	if query == "" {
		return candidates
	}
	matches := fuzzy.Find(query, candidates)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
