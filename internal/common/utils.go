package common

import (
	"fmt"

	"github.com/cgardner/epicsync/internal/cache"
	"github.com/cgardner/epicsync/internal/config"
	"github.com/cgardner/epicsync/internal/engine"
	"github.com/cgardner/epicsync/internal/gh"
	"github.com/cgardner/epicsync/internal/git"
	"github.com/cgardner/epicsync/internal/model"
	"github.com/cgardner/epicsync/internal/ui"
)

// Clients bundles everything a command needs to operate on the cache.
type Clients struct {
	Git    *git.Client
	GH     *gh.Client
	Store  *cache.Store
	Engine *engine.Engine
	Repo   model.RepoContext
}

// InitClients initializes git, GitHub, cache, and engine clients.
// Returns an error that is suitable for use in PreRunE hooks.
func InitClients() (*Clients, error) {
	gitClient, err := git.NewClient()
	if err != nil {
		ui.Error("Not in a git repository")
		return nil, fmt.Errorf("git client initialization failed: %w", err)
	}

	repo, err := gitClient.RepoContext()
	if err != nil {
		return nil, fmt.Errorf("failed to identify repository: %w", err)
	}

	ghClient := gh.NewClient(gh.RetryConfig{
		MaxAttempts: config.RetryMaxAttempts(),
		BaseDelay:   config.RetryBaseDelay(),
	})

	return &Clients{
		Git:    gitClient,
		GH:     ghClient,
		Store:  cache.NewStore(config.CacheDir()),
		Engine: engine.NewEngine(ghClient, config.ExternalLabelLadder(), config.BoardTitle()),
		Repo:   repo,
	}, nil
}
