// Package engine implements the synchronization core: the dirty-flag
// batched flush, the event-driven status state machine, the pull refresh,
// and the external-repository reconciler.
//
// All operations mutate the snapshot they are given in memory only; the
// caller owns persistence. The only side effects are remote calls through
// the RemoteClient interface.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cgardner/epicsync/internal/gh"
)

// RemoteClient defines the GitHub operations needed by the engine.
type RemoteClient interface {
	CreateIssue(ctx context.Context, spec gh.IssueSpec) (*gh.Issue, error)
	CreateSubIssue(ctx context.Context, parent int, spec gh.IssueSpec) (*gh.Issue, error)
	EditIssueBody(ctx context.Context, number int, body string) error
	ListIssues(ctx context.Context) ([]*gh.Issue, error)
	ListOpenIssues(ctx context.Context, repo string, label string) ([]*gh.Issue, error)
	FindBoard(ctx context.Context, owner string, title string) (*gh.Board, error)
	AddItemToBoard(ctx context.Context, boardNumber int, owner string, issueURL string) (string, error)
}

// Engine drives cache mutations and batched remote synchronization.
type Engine struct {
	remote RemoteClient

	// ladder is the ordered list of label filters tried in sequence
	// during external reconciliation; an empty string means no filter.
	ladder []string

	// boardTitle is the project board to track epics on, empty to disable.
	boardTitle string
}

// NewEngine creates an engine. The ladder and board title normally come
// from the config package.
func NewEngine(remote RemoteClient, ladder []string, boardTitle string) *Engine {
	return &Engine{
		remote:     remote,
		ladder:     ladder,
		boardTitle: boardTitle,
	}
}

// timeNow is swapped in tests for deterministic timestamps.
var timeNow = time.Now

// newID generates a 16-character hex identifier for journey entries.
func newID() string {
	u := uuid.New()
	hexStr := strings.ReplaceAll(u.String(), "-", "")
	return hexStr[:16]
}
