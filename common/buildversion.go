// Package common holds build and source-tree provenance helpers shared by the
// commands.
package common

import (
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// Version is set at link time with -ldflags "-X .../common.Version=v1.2.3".
var Version = "dev"

// Provenance describes the git state of a directory of simulator results.
type Provenance struct {
	Dir    string `json:"dir"`
	InRepo bool   `json:"in_repo"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty,omitempty"`
}

// GetCommitHash returns the short commit of the working directory's
// repository, else of the executable's, else "unknown".
func GetCommitHash() string {
	if cwd, err := os.Getwd(); err == nil {
		if hash := computeHashFromPath(cwd); hash != "" {
			return shortHash(hash)
		}
	}

	if exePath, err := os.Executable(); err == nil {
		repoPath := filepath.Dir(exePath)
		if hash := computeHashFromPath(repoPath); hash != "" {
			return shortHash(hash)
		}
	}

	return "unknown"
}

func shortHash(hash string) string {
	if len(hash) >= 8 {
		return hash[:8]
	}
	return hash
}

func computeHashFromPath(path string) string {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}

// GetProvenance inspects the repository enclosing dir, if any. A directory
// outside any repository is not an error.
func GetProvenance(dir string) Provenance {
	p := Provenance{Dir: dir}
	if abs, err := filepath.Abs(dir); err == nil {
		p.Dir = abs
	}
	repo, err := git.PlainOpenWithOptions(p.Dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return p
	}
	p.InRepo = true
	head, err := repo.Head()
	if err != nil {
		return p
	}
	p.Commit = shortHash(head.Hash().String())
	if head.Name().IsBranch() {
		p.Branch = head.Name().Short()
	}
	if wt, err := repo.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil {
			p.Dirty = !status.IsClean()
		}
	}
	return p
}
