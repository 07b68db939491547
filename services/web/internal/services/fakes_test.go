package services

import (
	"context"
	"sync"

	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/views"
)

// fakeClient records calls and returns canned answers.
type fakeClient struct {
	mu            sync.Mutex
	loginCalls    int
	registerCalls int
	predictCalls  int
	lastRecord    views.ApplicantRecord

	loginResp    views.LoginResponse
	loginErr     error
	registerErr  error
	predictResp  views.PredictionResult
	predictErr   error
	predictEnter chan struct{} // signalled when Predict starts, if set
	predictGate  chan struct{} // Predict blocks until closed, if set
}

func (f *fakeClient) Login(_ context.Context, _ views.Credentials) (views.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeClient) Register(_ context.Context, _ views.Registration) (views.RegisterResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	return views.RegisterResponse{OK: f.registerErr == nil}, f.registerErr
}

func (f *fakeClient) Predict(_ context.Context, record views.ApplicantRecord) (views.PredictionResult, error) {
	f.mu.Lock()
	f.predictCalls++
	f.lastRecord = record
	f.mu.Unlock()

	if f.predictEnter != nil {
		f.predictEnter <- struct{}{}
	}
	if f.predictGate != nil {
		<-f.predictGate
	}
	return f.predictResp, f.predictErr
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) calls() (login, register, predict int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls, f.registerCalls, f.predictCalls
}
