// Package gitinfo answers questions about a skills repository's git history.
package gitinfo

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
)

// DateFormat is the date layout used throughout manifests.
const DateFormat = "2006-01-02"

// LastModified returns the date of the most recent commit touching relPath
// (slash separated, relative to repoRoot). ok is false when the directory is
// not a git repository, the file has no recorded history, or ctx expires
// before the log walk finishes.
func LastModified(ctx context.Context, repoRoot, relPath string) (date string, ok bool) {
	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return "", false
	}

	iter, err := repo.Log(&git.LogOptions{FileName: &relPath})
	if err != nil {
		return "", false
	}
	defer iter.Close()

	type result struct {
		date string
		ok   bool
	}
	done := make(chan result, 1)
	go func() {
		commit, err := iter.Next()
		if err != nil {
			done <- result{}
			return
		}
		done <- result{commit.Committer.When.Format(DateFormat), true}
	}()

	// The log walk has no context hook, so bound it from the outside. The
	// goroutine finishes on its own; the buffered channel keeps it from
	// leaking when we give up first.
	select {
	case <-ctx.Done():
		return "", false
	case r := <-done:
		return r.date, r.ok
	}
}

// LastModifiedOrFallback returns the git last-commit date for relPath,
// falling back to the file's modification time, then to today.
func LastModifiedOrFallback(ctx context.Context, repoRoot, relPath string) string {
	if date, ok := LastModified(ctx, repoRoot, relPath); ok {
		return date
	}
	if info, err := os.Stat(filepath.Join(repoRoot, filepath.FromSlash(relPath))); err == nil {
		return info.ModTime().Format(DateFormat)
	}
	return time.Now().Format(DateFormat)
}
