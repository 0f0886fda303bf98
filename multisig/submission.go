package multisig

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dymensionxyz/multisig-client/types"
)

type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionSettled    SubmissionState = "settled"
	SubmissionFailed     SubmissionState = "failed"
	// SubmissionPending means the tx was broadcast but not seen in a block
	// before the confirmation timeout.
	SubmissionPending SubmissionState = "pending"
)

type Submission struct {
	ID        string
	Sender    string
	State     SubmissionState
	TxHash    string
	Err       error
	StartedAt time.Time
	UpdatedAt time.Time
}

// submissionTracker allows a single in flight submission per sender.
type submissionTracker struct {
	mu     sync.Mutex
	latest map[string]*Submission
	now    func() time.Time
}

func newSubmissionTracker() *submissionTracker {
	return &submissionTracker{
		latest: make(map[string]*Submission),
		now:    time.Now,
	}
}

func (t *submissionTracker) begin(sender string) (*Submission, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sub, ok := t.latest[sender]; ok && sub.State == SubmissionSubmitting {
		return nil, types.ErrSubmissionInFlight.Wrapf("submission %s", sub.ID)
	}

	now := t.now()
	sub := &Submission{
		ID:        uuid.New().String(),
		Sender:    sender,
		State:     SubmissionSubmitting,
		StartedAt: now,
		UpdatedAt: now,
	}
	t.latest[sender] = sub
	return sub, nil
}

func (t *submissionTracker) settle(sub *Submission, txHash string) {
	t.finish(sub, SubmissionSettled, txHash, nil)
}

func (t *submissionTracker) pending(sub *Submission, txHash string) {
	t.finish(sub, SubmissionPending, txHash, nil)
}

func (t *submissionTracker) fail(sub *Submission, txHash string, err error) {
	t.finish(sub, SubmissionFailed, txHash, err)
}

func (t *submissionTracker) finish(sub *Submission, state SubmissionState, txHash string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sub.State = state
	sub.TxHash = txHash
	sub.Err = err
	sub.UpdatedAt = t.now()
}

// state returns a copy of the latest submission for sender.
func (t *submissionTracker) state(sender string) Submission {
	t.mu.Lock()
	defer t.mu.Unlock()

	sub, ok := t.latest[sender]
	if !ok {
		return Submission{Sender: sender, State: SubmissionIdle}
	}
	return *sub
}
