// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package git

import (
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/jenkinsci/literate-api/lib/repository"
)

// Tree is a read-only view of the files of one commit. It implements
// [repository.Repository]; paths are relative to the directory the
// [Repository] was opened on, so a project in a subdirectory of a
// working tree sees its own files at the root.
type Tree struct {
	repo   *Repository
	commit string
	prefix string
}

// Tree pins revision to a commit and returns a view of its files.
func (r *Repository) Tree(ctx context.Context, revision string) (*Tree, error) {
	commit, err := r.ResolveCommit(ctx, revision)
	if err != nil {
		return nil, err
	}
	prefix, err := r.prefix(ctx)
	if err != nil {
		return nil, err
	}
	return &Tree{repo: r, commit: commit, prefix: prefix}, nil
}

// Commit returns the commit id the tree reads from.
func (t *Tree) Commit() string {
	return t.commit
}

// entry is one line of git ls-tree output.
type entry struct {
	kind string // blob, tree or commit
	path string // relative to the top of the repository
}

// resolve maps a repository path to a path from the top of the git
// tree. Empty, "/" and "." name the root. Paths that escape the root
// are rejected.
func (t *Tree) resolve(name string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(name), "/")
	cleaned := path.Clean(trimmed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q: path is outside of repository", repository.ErrPathNotFound, name)
	}
	if trimmed == "" || cleaned == "." {
		return strings.TrimSuffix(t.prefix, "/"), nil
	}
	return t.prefix + cleaned, nil
}

func (t *Tree) listTree(ctx context.Context, pathspec string) ([]entry, error) {
	args := []string{"ls-tree", "-z", "--full-tree", t.commit}
	if pathspec != "" {
		args = append(args, "--", pathspec)
	}
	output, err := t.repo.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	var entries []entry
	for record := range strings.SplitSeq(output, "\x00") {
		meta, name, found := strings.Cut(record, "\t")
		if !found {
			continue
		}
		fields := strings.Fields(meta)
		if len(fields) != 3 {
			return nil, fmt.Errorf("unexpected ls-tree record %q", record)
		}
		entries = append(entries, entry{kind: fields[1], path: name})
	}
	return entries, nil
}

// lookup returns the entry at full, or nil when there is none.
func (t *Tree) lookup(ctx context.Context, full string) (*entry, error) {
	if full == "" {
		return &entry{kind: "tree"}, nil
	}
	entries, err := t.listTree(ctx, full)
	if err != nil {
		return nil, err
	}
	for _, candidate := range entries {
		if candidate.path == full {
			return &candidate, nil
		}
	}
	return nil, nil
}

func (t *Tree) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	full, err := t.resolve(name)
	if err != nil {
		return nil, err
	}
	found, err := t.lookup(ctx, full)
	if err != nil {
		return nil, err
	}
	if found == nil || found.kind != "blob" {
		return nil, fmt.Errorf("%w: %q", repository.ErrPathNotFound, name)
	}
	content, err := t.repo.Run(ctx, "cat-file", "blob", t.commit+":"+full)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (t *Tree) IsFile(ctx context.Context, name string) (bool, error) {
	found, err := t.stat(ctx, name)
	return found != nil && found.kind == "blob", err
}

func (t *Tree) IsDirectory(ctx context.Context, name string) (bool, error) {
	found, err := t.stat(ctx, name)
	return found != nil && found.kind == "tree", err
}

func (t *Tree) stat(ctx context.Context, name string) (*entry, error) {
	full, err := t.resolve(name)
	if err != nil {
		return nil, err
	}
	return t.lookup(ctx, full)
}

func (t *Tree) Paths(ctx context.Context, name string) ([]string, error) {
	full, err := t.resolve(name)
	if err != nil {
		return nil, err
	}
	pathspec := ""
	if full != "" {
		pathspec = full + "/"
	}
	entries, err := t.listTree(ctx, pathspec)
	if err != nil {
		return nil, err
	}
	// Git stores no empty directories: no children means no directory.
	if len(entries) == 0 && full != "" {
		return nil, fmt.Errorf("%w: %q: path does not exist or is not a directory", repository.ErrPathNotFound, name)
	}
	paths := make([]string, 0, len(entries))
	for _, child := range entries {
		relative := strings.TrimPrefix(child.path, t.prefix)
		if child.kind == "tree" {
			relative += "/"
		}
		paths = append(paths, "/"+relative)
	}
	slices.Sort(paths)
	return paths, nil
}
