package usecase

import (
	"context"
	"sync"
	"time"

	"logbook/internal/modules/worklog/domain"
	"logbook/internal/modules/worklog/dto"
	worklogin "logbook/internal/modules/worklog/port/in"
	"logbook/internal/platform/schedule"
)

// Controller drives one domain.Flow against the backend. Each step begins on
// the flow, performs the call without holding the lock, then finishes with
// the ticket it was given, so results that arrive after Cancel or Close are
// dropped. Completion arms an auto-close timer that Close and Stop release.
type Controller struct {
	mu        sync.Mutex
	flow      *domain.Flow
	usecase   worklogin.Usecase
	sched     schedule.Scheduler
	delay     time.Duration
	autoClose schedule.Handle
	onChange  func(domain.State)
}

func NewController(usecase worklogin.Usecase, sched schedule.Scheduler, delay time.Duration) *Controller {
	return &Controller{flow: domain.NewFlow(), usecase: usecase, sched: sched, delay: delay}
}

// OnChange registers fn to receive every state the flow settles in, including
// the Idle reached through auto-close. fn runs without the lock held.
func (c *Controller) OnChange(fn func(domain.State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flow.State()
}

func (c *Controller) SubmitEntry(ctx context.Context, input dto.EntryInput) error {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return err
	}
	c.mu.Lock()
	entry, ticket, err := c.flow.BeginEntry(domain.ActivityEntry{
		Stack:    input.Stack,
		Task:     input.Task,
		Progress: input.Progress,
		Blockers: input.Blockers,
		Status:   status,
	})
	c.mu.Unlock()
	if err != nil {
		return err
	}

	out, callErr := c.usecase.SubmitEntry(ctx, dto.EntryInput{
		Status:   string(entry.Status),
		Stack:    entry.Stack,
		Task:     entry.Task,
		Progress: entry.Progress,
		Blockers: entry.Blockers,
	})
	return c.finish(func() error {
		return c.flow.FinishEntry(ticket, domain.EntryResult{
			Message:            out.Message,
			OnLeave:            out.OnLeave,
			TempID:             out.TempID,
			RedirectToFollowup: out.RedirectToFollowup,
			RecordID:           out.RecordID,
			IsOverride:         out.IsOverride,
		}, callErr)
	})
}

func (c *Controller) StartFollowup(ctx context.Context) error {
	c.mu.Lock()
	tempID, ticket, err := c.flow.BeginStart()
	c.mu.Unlock()
	if err != nil {
		return err
	}
	session, callErr := c.usecase.StartFollowup(ctx, tempID)
	return c.finish(func() error {
		return c.flow.FinishStart(ticket, domain.Session{ID: session.ID, Questions: session.Questions}, callErr)
	})
}

func (c *Controller) Next() error {
	return c.apply(c.flow.Next)
}

func (c *Controller) Previous() error {
	return c.apply(c.flow.Previous)
}

func (c *Controller) SetAnswer(index int, text string) error {
	return c.apply(func() error { return c.flow.SetAnswer(index, text) })
}

func (c *Controller) SubmitAnswers(ctx context.Context) error {
	c.mu.Lock()
	sessionID, answers, ticket, err := c.flow.BeginSubmit()
	c.mu.Unlock()
	if err != nil {
		return err
	}
	completion, callErr := c.usecase.CompleteFollowup(ctx, dto.CompleteInput{SessionID: sessionID, Answers: answers})
	return c.finish(func() error {
		return c.flow.FinishSubmit(ticket, domain.Completion{
			Message:             completion.Message,
			SessionID:           completion.SessionID,
			DailyRecordID:       completion.DailyRecordID,
			WorkUpdateCompleted: completion.WorkUpdateCompleted,
		}, callErr)
	})
}

func (c *Controller) Cancel() error {
	return c.apply(c.flow.Cancel)
}

// Close ends the completion display before the auto-close timer fires.
func (c *Controller) Close() error {
	return c.apply(func() error {
		c.releaseTimer()
		return c.flow.Close()
	})
}

// Stop releases the auto-close timer. The flow itself is left as is.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseTimer()
}

func (c *Controller) apply(op func() error) error {
	c.mu.Lock()
	err := op()
	state, notify := c.flow.State(), c.onChange
	c.mu.Unlock()
	if err == nil && notify != nil {
		notify(state)
	}
	return err
}

// finish applies a Finish* call and arms the auto-close timer when the flow
// reached Complete.
func (c *Controller) finish(op func() error) error {
	c.mu.Lock()
	err := op()
	state, notify := c.flow.State(), c.onChange
	if _, done := state.(domain.Complete); done && err == nil {
		c.armAutoClose()
	}
	c.mu.Unlock()
	if notify != nil {
		notify(state)
	}
	return err
}

func (c *Controller) armAutoClose() {
	c.releaseTimer()
	if c.sched == nil {
		return
	}
	ticket := c.flow.Ticket()
	c.autoClose = c.sched.After(c.delay, func() {
		c.mu.Lock()
		err := c.flow.Expire(ticket)
		state, notify := c.flow.State(), c.onChange
		c.mu.Unlock()
		if err == nil && notify != nil {
			notify(state)
		}
	})
}

func (c *Controller) releaseTimer() {
	if c.autoClose != nil {
		c.autoClose.Cancel()
		c.autoClose = nil
	}
}
