// Package git provides the minimal git operations needed to identify the
// tracked repository.
package git

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/cgardner/epicsync/internal/model"
)

// Client provides git operations for a repository.
type Client struct {
	gitRoot string
}

// NewClient creates a new git client for the current directory.
func NewClient() (*Client, error) {
	gitRoot, err := getGitRoot()
	if err != nil {
		return nil, err
	}
	return &Client{gitRoot: gitRoot}, nil
}

// GitRoot returns the root directory of the git repository.
func (c *Client) GitRoot() string {
	return c.gitRoot
}

// GetRemoteName returns the remote to use, preferring origin.
func (c *Client) GetRemoteName() (string, error) {
	output, err := exec.Command("git", "remote").Output()
	if err != nil {
		return "", fmt.Errorf("failed to list remotes: %w", err)
	}

	remotes := strings.Fields(string(output))
	if len(remotes) == 0 {
		return "", fmt.Errorf("no git remotes configured")
	}
	for _, r := range remotes {
		if r == "origin" {
			return r, nil
		}
	}
	return remotes[0], nil
}

// RepoContext derives the repository identity from the remote URL.
func (c *Client) RepoContext() (model.RepoContext, error) {
	remote, err := c.GetRemoteName()
	if err != nil {
		return model.RepoContext{}, err
	}

	output, err := exec.Command("git", "remote", "get-url", remote).Output()
	if err != nil {
		return model.RepoContext{}, fmt.Errorf("failed to get remote URL: %w", err)
	}

	owner, name, err := parseRemoteURL(strings.TrimSpace(string(output)))
	if err != nil {
		return model.RepoContext{}, err
	}
	return model.RepoContext{Owner: owner, Name: name}, nil
}

// parseRemoteURL extracts owner and repository name from an https or ssh
// GitHub remote URL.
func parseRemoteURL(url string) (owner string, name string, err error) {
	path := url
	switch {
	case strings.HasPrefix(url, "git@"):
		// git@github.com:owner/repo.git
		if idx := strings.Index(url, ":"); idx >= 0 {
			path = url[idx+1:]
		}
	case strings.Contains(url, "://"):
		// https://github.com/owner/repo.git
		rest := url[strings.Index(url, "://")+3:]
		if idx := strings.Index(rest, "/"); idx >= 0 {
			path = rest[idx+1:]
		}
	}

	path = strings.TrimSuffix(path, ".git")
	path = strings.Trim(path, "/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse owner/repo from remote URL %q", url)
	}
	return parts[0], parts[1], nil
}

// getGitRoot returns the root of the current repository.
func getGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
