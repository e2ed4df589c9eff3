// Package gh provides issue and project-board operations via the gh CLI.
//
// Every operation is idempotent-safe to retry: duplicate creates recover
// by looking up the existing object, and rate-limit-class failures are
// retried with bounded exponential backoff before surfacing. The client
// holds no mutable state and is safe to invoke concurrently.
package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Client provides GitHub operations via gh CLI.
type Client struct {
	retry RetryConfig
}

// NewClient creates a new GitHub client.
func NewClient(retry RetryConfig) *Client {
	return &Client{retry: retry}
}

// GetRepoInfo returns the owner and name of the current repository.
func (c *Client) GetRepoInfo(ctx context.Context) (owner string, repoName string, err error) {
	output, err := c.run(ctx, "repo", "view", "--json", "owner,name")
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve repository: %w", err)
	}

	var repo struct {
		Name  string `json:"name"`
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	}
	if err := json.Unmarshal(output, &repo); err != nil {
		return "", "", fmt.Errorf("failed to parse repository info: %w", err)
	}

	return repo.Owner.Login, repo.Name, nil
}

// CreateIssue creates a new issue idempotently. If GitHub reports the
// issue already exists, the existing issue is looked up by title and
// returned instead of failing.
func (c *Client) CreateIssue(ctx context.Context, spec IssueSpec) (*Issue, error) {
	args := []string{
		"issue", "create",
		"--title", spec.Title,
		"--body-file", "-",
	}
	for _, label := range spec.Labels {
		args = append(args, "--label", label)
	}

	output, err := c.runWithInput(ctx, spec.Body, args...)
	if err != nil {
		if isAlreadyExistsError(err) {
			if existing, findErr := c.findIssueByTitle(ctx, spec.Title); findErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	// gh prints the new issue URL on stdout.
	number, parseErr := numberFromURL(strings.TrimSpace(string(output)))
	if parseErr != nil {
		return nil, fmt.Errorf("issue was created but URL %q is unparseable: %w", strings.TrimSpace(string(output)), parseErr)
	}

	return c.GetIssue(ctx, number)
}

// CreateSubIssue creates an issue and links it under a parent issue using
// the sub-issue GraphQL mutation. A link that already exists is treated as
// success.
func (c *Client) CreateSubIssue(ctx context.Context, parent int, spec IssueSpec) (*Issue, error) {
	issue, err := c.CreateIssue(ctx, spec)
	if err != nil {
		return nil, err
	}

	parentID, err := c.GetIssueNodeID(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parent issue #%d: %w", parent, err)
	}
	childID, err := c.GetIssueNodeID(ctx, issue.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve issue #%d: %w", issue.Number, err)
	}

	_, err = c.run(ctx,
		"api", "graphql",
		"-f", "query=mutation($parent: ID!, $child: ID!) { addSubIssue(input: {issueId: $parent, subIssueId: $child}) { issue { number } } }",
		"-f", "parent="+parentID,
		"-f", "child="+childID,
	)
	if err != nil && !isAlreadyExistsError(err) {
		return nil, fmt.Errorf("failed to link issue #%d under #%d: %w", issue.Number, parent, err)
	}

	return issue, nil
}

// EditIssueBody replaces the body of an issue. The body is passed on stdin
// to avoid argument-length limits on large journey logs.
func (c *Client) EditIssueBody(ctx context.Context, number int, body string) error {
	_, err := c.runWithInput(ctx, body,
		"issue", "edit", strconv.Itoa(number),
		"--body-file", "-",
	)
	if err != nil {
		return fmt.Errorf("failed to edit issue #%d body: %w", number, err)
	}
	return nil
}

// AddComment adds a comment to an issue.
func (c *Client) AddComment(ctx context.Context, number int, body string) error {
	_, err := c.runWithInput(ctx, body,
		"issue", "comment", strconv.Itoa(number),
		"--body-file", "-",
	)
	if err != nil {
		return fmt.Errorf("failed to comment on issue #%d: %w", number, err)
	}
	return nil
}

// CloseIssue closes an issue. Closing an already-closed issue is success.
func (c *Client) CloseIssue(ctx context.Context, number int) error {
	_, err := c.run(ctx, "issue", "close", strconv.Itoa(number))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already closed") {
			return nil
		}
		return fmt.Errorf("failed to close issue #%d: %w", number, err)
	}
	return nil
}

// GetIssue fetches one issue by number from the current repository.
func (c *Client) GetIssue(ctx context.Context, number int) (*Issue, error) {
	output, err := c.run(ctx,
		"issue", "view", strconv.Itoa(number),
		"--json", "number,title,url,state,labels,updatedAt",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d: %w", number, err)
	}

	var raw issueJSON
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse issue JSON: %w", err)
	}
	return raw.toIssue(), nil
}

// ListIssues lists issues in the current repository in any state. Used by
// the pull refresh to pick up remote status and closure changes.
func (c *Client) ListIssues(ctx context.Context) ([]*Issue, error) {
	output, err := c.run(ctx,
		"issue", "list",
		"--state", "all",
		"--json", "number,title,url,state,labels,updatedAt",
		"--limit", "500",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return parseIssueList(output)
}

// ListOpenIssues lists open issues in an arbitrary repository, optionally
// filtered by a label. Pass an empty label for no filter.
func (c *Client) ListOpenIssues(ctx context.Context, repo string, label string) ([]*Issue, error) {
	args := []string{
		"issue", "list",
		"--repo", repo,
		"--state", "open",
		"--json", "number,title,url,state,labels,updatedAt",
		"--limit", "200",
	}
	if label != "" {
		args = append(args, "--label", label)
	}

	output, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list open issues in %s: %w", repo, err)
	}
	return parseIssueList(output)
}

// GetIssueNodeID returns the GraphQL node ID for an issue, needed by
// sub-issue and board mutations.
func (c *Client) GetIssueNodeID(ctx context.Context, number int) (string, error) {
	output, err := c.run(ctx,
		"api", fmt.Sprintf("repos/{owner}/{repo}/issues/%d", number),
		"--jq", ".node_id",
	)
	if err != nil {
		return "", fmt.Errorf("failed to get node ID for issue #%d: %w", number, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// FindBoard looks up a project board by title under an owner. Returns nil
// when no board matches.
func (c *Client) FindBoard(ctx context.Context, owner string, title string) (*Board, error) {
	output, err := c.run(ctx,
		"project", "list",
		"--owner", owner,
		"--format", "json",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for %s: %w", owner, err)
	}

	var result struct {
		Projects []struct {
			ID     string `json:"id"`
			Number int    `json:"number"`
			Title  string `json:"title"`
			URL    string `json:"url"`
		} `json:"projects"`
	}
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse project list: %w", err)
	}

	for _, p := range result.Projects {
		if p.Title == title {
			return &Board{ID: p.ID, Number: p.Number, Title: p.Title, URL: p.URL}, nil
		}
	}
	return nil, nil
}

// AddItemToBoard adds an issue to a project board by URL and returns the
// new item's ID. Adding an item that is already on the board returns the
// existing item, which gh reports as success.
func (c *Client) AddItemToBoard(ctx context.Context, boardNumber int, owner string, issueURL string) (string, error) {
	output, err := c.run(ctx,
		"project", "item-add", strconv.Itoa(boardNumber),
		"--owner", owner,
		"--url", issueURL,
		"--format", "json",
	)
	if err != nil {
		return "", fmt.Errorf("failed to add item to board %d: %w", boardNumber, err)
	}

	var item struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(output, &item); err != nil {
		return "", fmt.Errorf("failed to parse board item: %w", err)
	}
	return item.ID, nil
}

// UpdateBoardItemField sets a single-select field value on a board item.
func (c *Client) UpdateBoardItemField(ctx context.Context, boardID, itemID, fieldID, optionID string) error {
	_, err := c.run(ctx,
		"project", "item-edit",
		"--id", itemID,
		"--project-id", boardID,
		"--field-id", fieldID,
		"--single-select-option-id", optionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update board item field: %w", err)
	}
	return nil
}

// findIssueByTitle finds an open issue by exact title (private helper used
// by duplicate-create recovery).
func (c *Client) findIssueByTitle(ctx context.Context, title string) (*Issue, error) {
	output, err := c.run(ctx,
		"issue", "list",
		"--state", "open",
		"--search", title,
		"--json", "number,title,url,state,labels,updatedAt",
		"--limit", "10",
	)
	if err != nil {
		return nil, err
	}

	issues, err := parseIssueList(output)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		if issue.Title == title {
			return issue, nil
		}
	}
	return nil, nil
}

// run executes a gh CLI command with retry for rate-limit-class errors.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	return c.runWithInput(ctx, "", args...)
}

// runWithInput executes a gh CLI command, feeding stdin when non-empty.
func (c *Client) runWithInput(ctx context.Context, stdin string, args ...string) ([]byte, error) {
	var output []byte
	err := c.withRetry(ctx, func() error {
		var execErr error
		output, execErr = execGH(ctx, stdin, args...)
		return execErr
	})
	return output, err
}

// execGH executes one gh CLI invocation and returns its stdout.
func execGH(ctx context.Context, stdin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("gh CLI error: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("failed to execute gh: %w", err)
	}
	return output, nil
}

// parseIssueList parses issue data from gh CLI JSON output (issue array).
func parseIssueList(data []byte) ([]*Issue, error) {
	var raw []issueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse issue list: %w", err)
	}

	issues := make([]*Issue, 0, len(raw))
	for i := range raw {
		issues = append(issues, raw[i].toIssue())
	}
	return issues, nil
}

// numberFromURL extracts the trailing issue number from an issue URL.
func numberFromURL(url string) (int, error) {
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return 0, fmt.Errorf("no issue number in %q", url)
	}
	return strconv.Atoi(url[idx+1:])
}

// isAlreadyExistsError checks if an error indicates the object already
// exists (duplicate create must be treated as success, not failure).
func isAlreadyExistsError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate")
}

// normalizeState converts GitHub API state to our internal format.
// GitHub returns OPEN and CLOSED (uppercase); the cache stores lowercase.
func normalizeState(state string) string {
	return strings.ToLower(state)
}
