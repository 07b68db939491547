package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/views"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingClient struct {
	failures int32
	calls    atomic.Int32
}

func (p *pingClient) Login(context.Context, views.Credentials) (views.LoginResponse, error) {
	return views.LoginResponse{}, nil
}
func (p *pingClient) Register(context.Context, views.Registration) (views.RegisterResponse, error) {
	return views.RegisterResponse{}, nil
}
func (p *pingClient) Predict(context.Context, views.ApplicantRecord) (views.PredictionResult, error) {
	return views.PredictionResult{}, nil
}
func (p *pingClient) Ping(context.Context) error {
	if p.calls.Add(1) <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitReady_RetriesUntilUp(t *testing.T) {
	client := &pingClient{failures: 2}
	err := WaitReady(context.Background(), zap.NewNop(), client, 5*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), client.calls.Load())
}

func TestWaitReady_GivesUp(t *testing.T) {
	client := &pingClient{failures: 1 << 30}
	err := WaitReady(context.Background(), zap.NewNop(), client, 300*time.Millisecond)
	assert.Error(t, err)
}

func TestWaitReady_ZeroSkips(t *testing.T) {
	client := &pingClient{failures: 1 << 30}
	assert.NoError(t, WaitReady(context.Background(), zap.NewNop(), client, 0))
	assert.Equal(t, int32(0), client.calls.Load())
}
