package mcp

import (
	"context"

	"github.com/claude/aceest/internal/client"
	"github.com/claude/aceest/internal/models"
	"github.com/claude/aceest/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. StoreSource (local file)
// and *client.Client (remote via REST API) satisfy this interface.
type DataSource interface {
	ListWorkouts(ctx context.Context) (models.WorkoutsResponse, error)
	AddWorkout(ctx context.Context, name, duration string) (string, error)
	ResetWorkouts(ctx context.Context) (string, error)
}

// Compile-time checks.
var (
	_ DataSource = StoreSource{}
	_ DataSource = (*client.Client)(nil)
)

// StoreSource serves MCP calls straight from a local Store.
type StoreSource struct {
	Store *storage.Store
}

func (s StoreSource) ListWorkouts(context.Context) (models.WorkoutsResponse, error) {
	workouts, total := s.Store.Snapshot()
	return models.WorkoutsResponse{Workouts: workouts, TotalDuration: total}, nil
}

func (s StoreSource) AddWorkout(_ context.Context, name, duration string) (string, error) {
	res, err := s.Store.Add(name, duration)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

func (s StoreSource) ResetWorkouts(context.Context) (string, error) {
	return s.Store.Reset()
}
