package engine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cgardner/epicsync/internal/gh"
)

type MockRemoteClient struct {
	mock.Mock
}

// CreateIssue implements RemoteClient.
func (m *MockRemoteClient) CreateIssue(ctx context.Context, spec gh.IssueSpec) (*gh.Issue, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gh.Issue), args.Error(1)
}

// CreateSubIssue implements RemoteClient.
func (m *MockRemoteClient) CreateSubIssue(ctx context.Context, parent int, spec gh.IssueSpec) (*gh.Issue, error) {
	args := m.Called(ctx, parent, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gh.Issue), args.Error(1)
}

// EditIssueBody implements RemoteClient.
func (m *MockRemoteClient) EditIssueBody(ctx context.Context, number int, body string) error {
	args := m.Called(ctx, number, body)
	return args.Error(0)
}

// ListIssues implements RemoteClient.
func (m *MockRemoteClient) ListIssues(ctx context.Context) ([]*gh.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gh.Issue), args.Error(1)
}

// ListOpenIssues implements RemoteClient.
func (m *MockRemoteClient) ListOpenIssues(ctx context.Context, repo string, label string) ([]*gh.Issue, error) {
	args := m.Called(ctx, repo, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gh.Issue), args.Error(1)
}

// FindBoard implements RemoteClient.
func (m *MockRemoteClient) FindBoard(ctx context.Context, owner string, title string) (*gh.Board, error) {
	args := m.Called(ctx, owner, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gh.Board), args.Error(1)
}

// AddItemToBoard implements RemoteClient.
func (m *MockRemoteClient) AddItemToBoard(ctx context.Context, boardNumber int, owner string, issueURL string) (string, error) {
	args := m.Called(ctx, boardNumber, owner, issueURL)
	return args.String(0), args.Error(1)
}
