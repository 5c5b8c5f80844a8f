package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VaibhavKawatra/copy-job-tracker/pkg/health"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/health/checkers"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestReady(t *testing.T) {
	assert.NoError(t, health.NewService().Ready(context.Background()))
	assert.NoError(t, health.NewService(checkers.NewPostgresChecker(pinger{})).Ready(context.Background()))

	down := errors.New("connection refused")
	err := health.NewService(checkers.NewPostgresChecker(pinger{err: down})).Ready(context.Background())
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "postgres: ")
}
