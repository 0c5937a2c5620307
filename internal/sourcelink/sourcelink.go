// Package sourcelink derives repository URLs for declaration files.
package sourcelink

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// DefaultRemote is the remote whose URL identifies the repository.
const DefaultRemote = "origin"

// Repository describes the git checkout that contains the model files.
type Repository struct {
	// WebURL is the browsable https URL of the remote.
	WebURL string
	// Ref is the checked out branch, or the commit hash when detached.
	Ref string
	// Root is the worktree directory.
	Root string
}

// Detect opens the repository containing dir and reads its origin remote.
func Detect(dir string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Repository{}, fmt.Errorf("open repository: %w", err)
	}

	remote, err := repo.Remote(DefaultRemote)
	if err != nil {
		return Repository{}, fmt.Errorf("remote %s: %w", DefaultRemote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return Repository{}, fmt.Errorf("remote %s has no URL", DefaultRemote)
	}
	web, err := NormalizeRemoteURL(urls[0])
	if err != nil {
		return Repository{}, err
	}

	out := Repository{WebURL: web, Ref: "HEAD"}
	if head, err := repo.Head(); err == nil {
		out.Ref = refName(head)
	}
	if wt, err := repo.Worktree(); err == nil {
		out.Root = wt.Filesystem.Root()
	}
	return out, nil
}

func refName(ref *plumbing.Reference) string {
	if ref.Name().IsBranch() || ref.Name().IsTag() {
		return ref.Name().Short()
	}
	return ref.Hash().String()
}

// NormalizeRemoteURL turns ssh, scp-like and credentialed remote URLs into
// a browsable https URL without the .git suffix.
func NormalizeRemoteURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty remote URL")
	}

	// scp-like syntax: git@host:owner/repo.git
	if !strings.Contains(raw, "://") {
		userHost, path, ok := strings.Cut(raw, ":")
		if !ok {
			return "", fmt.Errorf("unsupported remote URL %q", raw)
		}
		host := userHost
		if _, h, found := strings.Cut(userHost, "@"); found {
			host = h
		}
		return "https://" + host + "/" + cleanPath(path), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse remote URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ssh", "git":
	default:
		return "", fmt.Errorf("unsupported remote URL scheme %q", u.Scheme)
	}
	return "https://" + u.Hostname() + "/" + cleanPath(u.Path), nil
}

func cleanPath(p string) string {
	p = strings.Trim(p, "/")
	return strings.TrimSuffix(p, ".git")
}

// Resolver builds repository URLs for declaration file paths.
type Resolver struct {
	base string
}

// NewResolver resolves paths relative to base, e.g.
// https://github.com/owner/repo/blob/main/packages/core.
func NewResolver(base string) *Resolver {
	return &Resolver{base: strings.TrimRight(base, "/")}
}

// ForDirectory returns a Resolver for files under dir, a directory inside
// repo's worktree. GitLab hosts use their /-/blob/ route.
func ForDirectory(repo Repository, dir string) (*Resolver, error) {
	route := "/blob/"
	if strings.Contains(repo.WebURL, "gitlab") {
		route = "/-/blob/"
	}
	base := repo.WebURL + route + repo.Ref

	if repo.Root != "" && dir != "" {
		absRoot, err := filepath.Abs(repo.Root)
		if err != nil {
			return nil, err
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(absRoot, absDir)
		if err != nil {
			return nil, err
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("%s is outside the repository", dir)
		}
		if rel != "." {
			base += "/" + filepath.ToSlash(rel)
		}
	}
	return NewResolver(base), nil
}

// Base returns the URL prefix.
func (r *Resolver) Base() string { return r.base }

// URL returns the repository URL of a declaration file path.
func (r *Resolver) URL(fileURLPath string) string {
	if fileURLPath == "" {
		return ""
	}
	return r.base + "/" + strings.TrimLeft(filepath.ToSlash(fileURLPath), "/")
}
