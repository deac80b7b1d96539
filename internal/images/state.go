package images

import (
	"sync"

	"pixelup-backend/internal/shared/telemetry"
)

// Run states for a user's enhancement pipeline.
const (
	StateIdle       = "idle"
	StateReady      = "ready"
	StateProcessing = "processing"
	StateComplete   = "complete"
	StateError      = "error"
)

// RunStatus is the poll snapshot for one user's pipeline.
type RunStatus struct {
	State       string `json:"state"`
	Message     string `json:"message,omitempty"`
	ImageID     string `json:"imageId,omitempty"`
	EnhancedURL string `json:"enhancedUrl,omitempty"`
	Fallback    bool   `json:"fallback,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Strategy    string `json:"strategy,omitempty"`
}

// StateTracker holds per-user run state. Exactly one run may be processing
// per user at a time.
type StateTracker struct {
	mu   sync.Mutex
	runs map[string]RunStatus
}

// NewStateTracker constructs a StateTracker.
func NewStateTracker() *StateTracker {
	return &StateTracker{runs: make(map[string]RunStatus)}
}

// Snapshot returns the current status for a user. Unknown users are idle.
func (t *StateTracker) Snapshot(userID string) RunStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	status, ok := t.runs[userID]
	if !ok {
		return RunStatus{State: StateIdle}
	}
	return status
}

// MarkReady records that a file is staged and the run can start. A run that
// is already processing keeps its state.
func (t *StateTracker) MarkReady(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if current, ok := t.runs[userID]; ok && current.State == StateProcessing {
		return
	}
	t.transition(userID, RunStatus{State: StateReady})
}

// StartProcessing moves the user's run to processing. It fails with
// ErrRunInFlight when a run is already processing.
func (t *StateTracker) StartProcessing(userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if current, ok := t.runs[userID]; ok && current.State == StateProcessing {
		return ErrRunInFlight
	}
	t.transition(userID, RunStatus{State: StateProcessing})
	return nil
}

// Complete records a finished run.
func (t *StateTracker) Complete(userID string, status RunStatus) {
	status.State = StateComplete
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transition(userID, status)
}

// Fail records a failed run with a human-readable message.
func (t *StateTracker) Fail(userID, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transition(userID, RunStatus{State: StateError, Message: message})
}

// Reset returns the user's run to idle. Resetting an idle run is a no-op.
func (t *StateTracker) Reset(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.runs[userID]
	if !ok || current.State == StateIdle {
		return
	}
	t.transition(userID, RunStatus{State: StateIdle})
}

// transition must be called with the lock held.
func (t *StateTracker) transition(userID string, next RunStatus) {
	prev := t.runs[userID].State
	if prev == "" {
		prev = StateIdle
	}
	t.runs[userID] = next
	telemetry.Info("enhance.state", map[string]any{
		"user_id":         userID,
		"stateTransition": prev + "->" + next.State,
	})
}
