package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alloc8-join/models"
)

func TestClientJoin(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/join", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"ok":true,"id":"msg-1"}`)
	}))
	defer srv.Close()

	id, err := New(srv.URL+"/", srv.Client()).Join(context.Background(), models.Submission{
		EmailAddress:       "a@uni.ac.uk",
		FeaturesMatterMost: "rotas",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, map[string]string{
		"emailAddress":           "a@uni.ac.uk",
		"featuresMatterMost":     "rotas",
		"currentPlacementSystem": "",
		"mainChallenges":         "",
	}, got)
}

func TestClientJoinFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"validation", http.StatusBadRequest, `{"ok":false,"error":"Missing fields"}`},
		{"provider", http.StatusInternalServerError, `{"ok":false,"error":"boom"}`},
		{"ok false with 200", http.StatusOK, `{"ok":false}`},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL, srv.Client()).Join(context.Background(), models.Submission{EmailAddress: "a@uni.ac.uk"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSubmissionFailed))
			assert.NotContains(t, err.Error(), "boom")
		})
	}
}

type stubSubmitter struct {
	calls atomic.Int32
	err   error
}

func (s *stubSubmitter) Join(context.Context, models.Submission) (string, error) {
	s.calls.Add(1)
	return "id", s.err
}

func TestFlowHappyPath(t *testing.T) {
	sub := &stubSubmitter{}
	f := NewFlow(sub)
	f.ResetDelay = 20 * time.Millisecond
	defer f.Close()

	assert.Equal(t, StepLanding, f.Step())
	f.Next()
	assert.Equal(t, StepFeedback, f.Step())

	f.Fill(models.Submission{EmailAddress: "a@uni.ac.uk", MainChallenges: "paper forms"})
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, StepSuccess, f.Step())
	assert.EqualValues(t, 1, sub.calls.Load())

	assert.Eventually(t, func() bool {
		return f.Step() == StepLanding
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.Submission{}, f.Form())
}

func TestFlowFailureAlerts(t *testing.T) {
	sub := &stubSubmitter{err: ErrSubmissionFailed}
	f := NewFlow(sub)
	var alerts int
	f.OnAlert = func() { alerts++ }

	f.Next()
	f.Fill(models.Submission{EmailAddress: "a@uni.ac.uk"})
	err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionFailed)

	assert.Equal(t, 1, alerts)
	assert.Equal(t, StepFeedback, f.Step())
	assert.Equal(t, "a@uni.ac.uk", f.Form().EmailAddress)
}

func TestFlowRequiresEmail(t *testing.T) {
	sub := &stubSubmitter{}
	f := NewFlow(sub)

	f.Next()
	f.Fill(models.Submission{FeaturesMatterMost: "hi"})
	require.ErrorIs(t, f.Submit(context.Background()), ErrEmailRequired)
	assert.Zero(t, sub.calls.Load())
	assert.Equal(t, StepFeedback, f.Step())
}

func TestFlowTransitions(t *testing.T) {
	sub := &stubSubmitter{}
	f := NewFlow(sub)

	// Submit outside the form step is ignored.
	require.NoError(t, f.Submit(context.Background()))
	assert.Zero(t, sub.calls.Load())

	f.Back()
	assert.Equal(t, StepLanding, f.Step())

	f.Next()
	f.Fill(models.Submission{EmailAddress: "a@uni.ac.uk"})
	f.Back()
	assert.Equal(t, StepLanding, f.Step())
	assert.Equal(t, "a@uni.ac.uk", f.Form().EmailAddress)

	assert.Equal(t, "feedback", StepFeedback.String())
	assert.Equal(t, "unknown", Step(9).String())
}

type blockingSubmitter struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSubmitter) Join(context.Context, models.Submission) (string, error) {
	s.calls.Add(1)
	s.entered <- struct{}{}
	<-s.release
	return "id", nil
}

func TestFlowWhileSubmitting(t *testing.T) {
	sub := &blockingSubmitter{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	f := NewFlow(sub)
	defer f.Close()

	f.Next()
	f.Fill(models.Submission{EmailAddress: "a@uni.ac.uk"})

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()

	select {
	case <-sub.entered:
	case <-time.After(time.Second):
		t.Fatal("submitter was not called")
	}

	require.ErrorIs(t, f.Submit(context.Background()), ErrSubmitInProgress)
	f.Back()
	f.Fill(models.Submission{EmailAddress: "other@uni.ac.uk"})
	assert.Equal(t, StepFeedback, f.Step())
	assert.Equal(t, "a@uni.ac.uk", f.Form().EmailAddress)

	close(sub.release)
	require.NoError(t, <-done)

	assert.Equal(t, StepSuccess, f.Step())
	assert.EqualValues(t, 1, sub.calls.Load())
}
