package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"alloc8-join/models"
)

// Step is the position in the landing → feedback → success sequence.
type Step int

const (
	StepLanding Step = iota
	StepFeedback
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepLanding:
		return "landing"
	case StepFeedback:
		return "feedback"
	case StepSuccess:
		return "success"
	}
	return "unknown"
}

// DefaultResetDelay is how long the thank-you state stays up.
const DefaultResetDelay = 4 * time.Second

// ErrEmailRequired mirrors the form's required email input.
var ErrEmailRequired = errors.New("email address is required")

// ErrSubmitInProgress is returned by Submit while an earlier send is in flight.
var ErrSubmitInProgress = errors.New("submission already in progress")

// Submitter is satisfied by *Client.
type Submitter interface {
	Join(ctx context.Context, s models.Submission) (string, error)
}

// Flow holds the form state. It is safe for concurrent use; the reset after a
// successful submit fires from a timer goroutine.
type Flow struct {
	Submitter  Submitter
	ResetDelay time.Duration
	// OnAlert is called when a submission fails.
	OnAlert func()

	mu      sync.Mutex
	step    Step
	form    models.Submission
	timer   *time.Timer
	sending bool
}

func NewFlow(s Submitter) *Flow {
	return &Flow{Submitter: s, ResetDelay: DefaultResetDelay}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Form() models.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// Next moves from the landing step to the feedback form.
func (f *Flow) Next() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == StepLanding {
		f.step = StepFeedback
	}
}

// Back returns from the feedback form to the landing step, keeping input.
// It is ignored while a submission is in flight.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == StepFeedback && !f.sending {
		f.step = StepLanding
	}
}

// Fill replaces the form fields unless a submission is in flight.
func (f *Flow) Fill(s models.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.sending {
		f.form = s
	}
}

// Submit sends the form from the feedback step. On success the flow shows
// the thank-you step and resets itself after ResetDelay; on failure it stays
// put and raises the alert.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.step != StepFeedback {
		f.mu.Unlock()
		return nil
	}
	if f.sending {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	form := f.form
	if strings.TrimSpace(form.EmailAddress) == "" {
		f.mu.Unlock()
		return ErrEmailRequired
	}
	f.sending = true
	f.mu.Unlock()

	_, err := f.Submitter.Join(ctx, form)

	f.mu.Lock()
	f.sending = false
	if err != nil {
		f.mu.Unlock()
		if f.OnAlert != nil {
			f.OnAlert()
		}
		return err
	}
	defer f.mu.Unlock()
	if f.step != StepFeedback {
		return nil
	}
	f.step = StepSuccess
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.ResetDelay, f.reset)
	return nil
}

func (f *Flow) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepLanding
	f.form = models.Submission{}
	f.timer = nil
}

// Close stops a pending reset.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
