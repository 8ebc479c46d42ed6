package domain

import (
	"errors"
	"fmt"
	"strings"

	apperrors "logbook/internal/platform/errors"
)

// State is one of Idle, AwaitingFollowupStart, QuestionnaireOpen or Complete.
type State interface {
	Name() string
	pending() bool
	isState()
}

// Idle has no submission in progress. Pending is set while an entry is being
// posted.
type Idle struct {
	Pending bool
}

// AwaitingFollowupStart holds the temp submission returned for a non-leave
// entry until the user starts the follow-up.
type AwaitingFollowupStart struct {
	Entry   ActivityEntry
	TempID  string
	Message string
	Pending bool
}

type QuestionnaireOpen struct {
	Entry   ActivityEntry
	Session Session
	Answers []string
	Index   int
	Pending bool
}

// Complete is terminal for one flow instance.
type Complete struct {
	Entry      ActivityEntry
	Leave      bool
	Message    string
	RecordID   string
	IsOverride bool
	Completion Completion
}

func (Idle) Name() string                  { return "idle" }
func (AwaitingFollowupStart) Name() string { return "awaiting_followup_start" }
func (QuestionnaireOpen) Name() string     { return "questionnaire_open" }
func (Complete) Name() string              { return "complete" }

func (s Idle) pending() bool                  { return s.Pending }
func (s AwaitingFollowupStart) pending() bool { return s.Pending }
func (s QuestionnaireOpen) pending() bool     { return s.Pending }
func (Complete) pending() bool                { return false }

func (Idle) isState()                  {}
func (AwaitingFollowupStart) isState() {}
func (QuestionnaireOpen) isState()     {}
func (Complete) isState()              {}

// AnsweredCount counts answers that are non-blank after trimming.
func (q QuestionnaireOpen) AnsweredCount() int {
	n := 0
	for _, a := range q.Answers {
		if strings.TrimSpace(a) != "" {
			n++
		}
	}
	return n
}

func (q QuestionnaireOpen) Current() (string, string) {
	return q.Session.Questions[q.Index], q.Answers[q.Index]
}

func (q QuestionnaireOpen) IsLast() bool {
	return q.Index == len(q.Session.Questions)-1
}

// Ticket identifies the flow instance a backend call was issued for. Results
// presented with a ticket from an earlier instance are discarded.
type Ticket struct {
	epoch uint64
}

// Flow is the follow-up state machine. Begin* methods validate locally and
// mark a call as pending; the caller performs the backend call and reports
// the outcome through the matching Finish* method with the same ticket. A
// Flow is not safe for concurrent use.
type Flow struct {
	state State
	epoch uint64
	// posting is the normalized entry while Idle is pending.
	posting ActivityEntry
}

func NewFlow() *Flow {
	return &Flow{state: Idle{}}
}

// State returns a copy of the current state.
func (f *Flow) State() State {
	if q, ok := f.state.(QuestionnaireOpen); ok {
		q.Answers = append([]string(nil), q.Answers...)
		return q
	}
	return f.state
}

func (f *Flow) Ticket() Ticket {
	return Ticket{epoch: f.epoch}
}

// Current reports whether t still belongs to the live flow instance.
func (f *Flow) Current(t Ticket) bool {
	return t.epoch == f.epoch
}

// Reset abandons whatever the flow holds and returns it to Idle. Pending
// results become stale.
func (f *Flow) Reset() {
	f.epoch++
	f.state = Idle{}
	f.posting = ActivityEntry{}
}

func (f *Flow) BeginEntry(entry ActivityEntry) (ActivityEntry, Ticket, error) {
	s, ok := f.state.(Idle)
	if !ok {
		return ActivityEntry{}, Ticket{}, f.transitionErr("submit entry")
	}
	if s.Pending {
		return ActivityEntry{}, Ticket{}, apperrors.ErrCallInFlight
	}
	if err := entry.Validate(); err != nil {
		return ActivityEntry{}, Ticket{}, err
	}
	entry = entry.Normalize()
	f.posting = entry
	f.state = Idle{Pending: true}
	return entry, f.Ticket(), nil
}

// FinishEntry applies the backend response to a submitted entry. Leave
// entries go straight to Complete; others wait for the follow-up to start.
func (f *Flow) FinishEntry(t Ticket, result EntryResult, callErr error) error {
	if err := f.checkPending(t, Idle{}.Name()); err != nil {
		return err
	}
	entry := f.posting
	f.posting = ActivityEntry{}
	if callErr != nil {
		return f.fail(Idle{}, callErr)
	}
	if entry.Status == StatusLeave || result.OnLeave {
		f.state = Complete{
			Entry:      entry,
			Leave:      true,
			Message:    result.Message,
			RecordID:   result.RecordID,
			IsOverride: result.IsOverride,
		}
		return nil
	}
	if strings.TrimSpace(result.TempID) == "" {
		f.state = Idle{}
		return fmt.Errorf("%w: work update response has no tempWorkUpdateId", apperrors.ErrNetwork)
	}
	f.state = AwaitingFollowupStart{Entry: entry, TempID: result.TempID, Message: result.Message}
	return nil
}

func (f *Flow) BeginStart() (string, Ticket, error) {
	s, ok := f.state.(AwaitingFollowupStart)
	if !ok {
		return "", Ticket{}, f.transitionErr("start follow-up")
	}
	if s.Pending {
		return "", Ticket{}, apperrors.ErrCallInFlight
	}
	s.Pending = true
	f.state = s
	return s.TempID, f.Ticket(), nil
}

func (f *Flow) FinishStart(t Ticket, session Session, callErr error) error {
	if err := f.checkPending(t, AwaitingFollowupStart{}.Name()); err != nil {
		return err
	}
	s := f.state.(AwaitingFollowupStart)
	s.Pending = false
	if callErr != nil {
		return f.fail(s, callErr)
	}
	if len(session.Questions) == 0 {
		f.state = s
		return fmt.Errorf("%w: follow-up session %s has no questions", apperrors.ErrNetwork, session.ID)
	}
	f.state = QuestionnaireOpen{
		Entry:   s.Entry,
		Session: Session{ID: session.ID, Questions: append([]string(nil), session.Questions...)},
		Answers: make([]string, len(session.Questions)),
	}
	return nil
}

// Next moves to the following question; it is a no-op on the last one.
func (f *Flow) Next() error {
	return f.move(1)
}

// Previous moves to the preceding question; it is a no-op on the first one.
func (f *Flow) Previous() error {
	return f.move(-1)
}

func (f *Flow) move(delta int) error {
	q, ok := f.state.(QuestionnaireOpen)
	if !ok {
		return f.transitionErr("navigate questions")
	}
	next := q.Index + delta
	if next < 0 || next >= len(q.Session.Questions) {
		return nil
	}
	q.Index = next
	f.state = q
	return nil
}

func (f *Flow) SetAnswer(index int, text string) error {
	q, ok := f.state.(QuestionnaireOpen)
	if !ok {
		return f.transitionErr("answer question")
	}
	if q.Pending {
		return apperrors.ErrCallInFlight
	}
	if index < 0 || index >= len(q.Answers) {
		return apperrors.Invalid("answer", fmt.Sprintf("question %d does not exist", index+1))
	}
	q.Answers[index] = text
	f.state = q
	return nil
}

// BeginSubmit returns the session id and a snapshot of the answers to send.
// It is rejected locally, with no state change, unless every answer is
// non-blank after trimming.
func (f *Flow) BeginSubmit() (string, []string, Ticket, error) {
	q, ok := f.state.(QuestionnaireOpen)
	if !ok {
		return "", nil, Ticket{}, f.transitionErr("submit answers")
	}
	if q.Pending {
		return "", nil, Ticket{}, apperrors.ErrCallInFlight
	}
	if q.AnsweredCount() != len(q.Answers) {
		return "", nil, Ticket{}, apperrors.Invalid("answers", "Please answer all questions before submitting.")
	}
	answers := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		answers[i] = strings.TrimSpace(a)
	}
	q.Pending = true
	f.state = q
	return q.Session.ID, answers, f.Ticket(), nil
}

func (f *Flow) FinishSubmit(t Ticket, completion Completion, callErr error) error {
	if err := f.checkPending(t, QuestionnaireOpen{}.Name()); err != nil {
		return err
	}
	q := f.state.(QuestionnaireOpen)
	q.Pending = false
	if callErr != nil {
		return f.fail(q, callErr)
	}
	f.state = Complete{Entry: q.Entry, Completion: completion, Message: completion.Message}
	return nil
}

// Cancel discards the temp submission or the open questionnaire. The backend
// is not told; a call still in flight becomes stale.
func (f *Flow) Cancel() error {
	switch f.state.(type) {
	case AwaitingFollowupStart, QuestionnaireOpen:
		f.Reset()
		return nil
	default:
		return f.transitionErr("cancel")
	}
}

// Close ends the Complete display and clears the finished entry.
func (f *Flow) Close() error {
	if _, ok := f.state.(Complete); !ok {
		return f.transitionErr("close")
	}
	f.Reset()
	return nil
}

// Expire closes Complete only if t still names the current instance, so a
// timer armed for an earlier completion cannot close a later one.
func (f *Flow) Expire(t Ticket) error {
	if !f.Current(t) {
		return apperrors.ErrStaleResult
	}
	return f.Close()
}

func (f *Flow) checkPending(t Ticket, want string) error {
	if !f.Current(t) {
		return apperrors.ErrStaleResult
	}
	if f.state.Name() != want || !f.state.pending() {
		return f.transitionErr("finish call")
	}
	return nil
}

// fail settles a failed call. 401 abandons the flow instance; anything else
// leaves the flow in settled so the step can be retried.
func (f *Flow) fail(settled State, callErr error) error {
	if errors.Is(callErr, apperrors.ErrReauthRequired) {
		f.Reset()
		return callErr
	}
	if errors.Is(callErr, apperrors.ErrUnauthorized) {
		f.Reset()
		return fmt.Errorf("%w: %w", apperrors.ErrReauthRequired, callErr)
	}
	f.state = settled
	return callErr
}

func (f *Flow) transitionErr(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", apperrors.ErrInvalidTransition, op, f.state.Name())
}
