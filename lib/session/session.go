// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/ostara/kiosk/lib/clock"
	"github.com/ostara/kiosk/lib/config"
	"github.com/ostara/kiosk/lib/exchange"
)

// Default display durations.
const (
	DefaultResultDisplay = 2 * time.Second
	DefaultErrorDisplay  = 3 * time.Second
)

// eventBuffer lets callers post a burst of key presses without
// waiting on the loop.
const eventBuffer = 32

// Options configures a Session. Authenticator, Submitter, and Loader
// are required.
type Options struct {
	Authenticator Authenticator
	Submitter     Submitter
	Loader        ConfigLoader

	// Observer is notified after every transition. Optional.
	Observer Observer

	// Clock defaults to clock.Real().
	Clock clock.Clock

	// Logger defaults to a discard logger.
	Logger *slog.Logger

	// ResultDisplay and ErrorDisplay default to 2s and 3s.
	ResultDisplay time.Duration
	ErrorDisplay  time.Duration

	// InactivityTimeout resets CollectingPin and SelectingAction after
	// this long without input. Zero disables it.
	InactivityTimeout time.Duration
}

// Session is one kiosk's state machine. Create it with New, start it
// with Run, and drive it with the input methods.
type Session struct {
	authenticator Authenticator
	submitter     Submitter
	loader        ConfigLoader
	observer      Observer
	clock         clock.Clock
	logger        *slog.Logger

	resultDisplay     time.Duration
	errorDisplay      time.Duration
	inactivityTimeout time.Duration

	events  chan event
	done    chan struct{}
	running atomic.Bool

	// Fields below are owned by the Run goroutine.

	state         State
	cfg           config.Config
	configProblem string
	pin           []byte
	identity      exchange.Identity
	selected      exchange.Action
	result        exchange.Result
	errorMessage  string

	timer           *clock.Timer
	timerGeneration uint64
	resetAt         time.Time

	exchangeGeneration uint64
}

// New validates options and returns a Session in StateIdle. Nothing
// happens until Run is called.
func New(options Options) (*Session, error) {
	if options.Authenticator == nil {
		return nil, errors.New("session: Authenticator is required")
	}
	if options.Submitter == nil {
		return nil, errors.New("session: Submitter is required")
	}
	if options.Loader == nil {
		return nil, errors.New("session: Loader is required")
	}
	if options.InactivityTimeout < 0 {
		return nil, errors.New("session: InactivityTimeout must not be negative")
	}

	session := &Session{
		authenticator:     options.Authenticator,
		submitter:         options.Submitter,
		loader:            options.Loader,
		observer:          options.Observer,
		clock:             options.Clock,
		logger:            options.Logger,
		resultDisplay:     options.ResultDisplay,
		errorDisplay:      options.ErrorDisplay,
		inactivityTimeout: options.InactivityTimeout,
		events:            make(chan event, eventBuffer),
		done:              make(chan struct{}),
		state:             StateIdle,
	}
	if session.observer == nil {
		session.observer = ObserverFunc(func(Snapshot) {})
	}
	if session.clock == nil {
		session.clock = clock.Real()
	}
	if session.logger == nil {
		session.logger = slog.New(slog.DiscardHandler)
	}
	if session.resultDisplay <= 0 {
		session.resultDisplay = DefaultResultDisplay
	}
	if session.errorDisplay <= 0 {
		session.errorDisplay = DefaultErrorDisplay
	}
	return session, nil
}

// Run loads the config, enters Idle or ConfigMissing, and processes
// events until ctx is cancelled. Exchanges in flight are cancelled
// with ctx. Run may be called once.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("session: Run called more than once")
	}
	defer close(s.done)
	defer s.stopTimer()

	s.reloadConfig(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case current := <-s.events:
			s.handle(ctx, current)
		}
	}
}

// Start leaves Idle and begins PIN entry.
func (s *Session) Start() { s.post(startEvent{}) }

// AppendDigit adds digit (0-9) to the PIN. Ignored outside
// CollectingPin and once four digits have been entered.
func (s *Session) AppendDigit(digit int) { s.post(digitEvent{digit: digit}) }

// DeleteDigit removes the last entered digit.
func (s *Session) DeleteDigit() { s.post(deleteDigitEvent{}) }

// SelectAction submits the action with the given id. Ignored outside
// SelectingAction or if id is not in the resolved list.
func (s *Session) SelectAction(id int) { s.post(selectEvent{id: id}) }

// Cancel abandons PIN entry or action selection and returns to Idle.
func (s *Session) Cancel() { s.post(cancelEvent{}) }

// EditConfig enters ConfigEditing from Idle or ConfigMissing.
func (s *Session) EditConfig() { s.post(editConfigEvent{}) }

// FinishConfigEdit leaves ConfigEditing by reloading the config.
func (s *Session) FinishConfigEdit() { s.post(finishConfigEditEvent{}) }

// Current returns the session's snapshot as of the moment the loop
// handles the request. Because events are handled in order, Current
// also waits for every previously posted event to be processed.
func (s *Session) Current(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case s.events <- queryEvent{reply: reply}:
	case <-s.done:
		return Snapshot{}, errors.New("session: not running")
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case snapshot := <-reply:
		return snapshot, nil
	case <-s.done:
		return Snapshot{}, errors.New("session: not running")
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// post queues an event for the loop. Events posted after Run returns
// are dropped.
func (s *Session) post(current event) {
	select {
	case s.events <- current:
	case <-s.done:
	}
}

func (s *Session) handle(ctx context.Context, current event) {
	switch current := current.(type) {
	case startEvent:
		s.handleStart()
	case digitEvent:
		s.handleDigit(ctx, current.digit)
	case deleteDigitEvent:
		s.handleDeleteDigit()
	case selectEvent:
		s.handleSelect(ctx, current.id)
	case cancelEvent:
		s.handleCancel()
	case editConfigEvent:
		s.handleEditConfig()
	case finishConfigEditEvent:
		s.handleFinishConfigEdit(ctx)
	case authDoneEvent:
		s.handleAuthDone(current)
	case submitDoneEvent:
		s.handleSubmitDone(current)
	case timerEvent:
		s.handleTimer(current.generation)
	case queryEvent:
		current.reply <- s.snapshot()
	}
}

func (s *Session) handleStart() {
	if s.state != StateIdle {
		s.ignored("start")
		return
	}
	s.pin = s.pin[:0]
	s.armInactivity()
	s.transition(StateCollectingPIN)
}

func (s *Session) handleDigit(ctx context.Context, digit int) {
	if s.state != StateCollectingPIN || len(s.pin) >= exchange.PINLength {
		s.ignored("digit")
		return
	}
	if digit < 0 || digit > 9 {
		s.logger.Warn("rejected non-decimal digit", "digit", digit)
		return
	}

	s.pin = append(s.pin, byte('0'+digit))
	if len(s.pin) < exchange.PINLength {
		s.armInactivity()
		s.notify()
		return
	}

	s.stopTimer()
	s.transition(StateAuthenticating)
	s.dispatchAuthenticate(ctx)
}

func (s *Session) handleDeleteDigit() {
	if s.state != StateCollectingPIN || len(s.pin) == 0 {
		s.ignored("delete digit")
		return
	}
	s.pin = s.pin[:len(s.pin)-1]
	s.armInactivity()
	s.notify()
}

func (s *Session) handleSelect(ctx context.Context, id int) {
	if s.state != StateSelectingAction {
		s.ignored("select action")
		return
	}
	index := slices.IndexFunc(s.identity.Actions, func(action exchange.Action) bool {
		return action.ID == id
	})
	if index < 0 {
		s.logger.Warn("rejected unknown action", "id", id)
		return
	}

	s.selected = s.identity.Actions[index]
	s.stopTimer()
	s.transition(StateSubmitting)
	s.dispatchSubmit(ctx)
}

func (s *Session) handleCancel() {
	if s.state != StateCollectingPIN && s.state != StateSelectingAction {
		s.ignored("cancel")
		return
	}
	s.reset()
}

func (s *Session) handleEditConfig() {
	if s.state != StateIdle && s.state != StateConfigMissing {
		s.ignored("edit config")
		return
	}
	s.clearSession()
	s.transition(StateConfigEditing)
}

func (s *Session) handleFinishConfigEdit(ctx context.Context) {
	if s.state != StateConfigEditing {
		s.ignored("finish config edit")
		return
	}
	s.reloadConfig(ctx)
}

func (s *Session) handleAuthDone(done authDoneEvent) {
	if s.state != StateAuthenticating || done.generation != s.exchangeGeneration {
		s.logger.Warn("dropped stale authentication result", "state", s.state)
		return
	}
	if done.err != nil {
		s.showError(done.err)
		return
	}

	s.identity = exchange.Identity{
		DisplayName: done.identity.DisplayName,
		Actions:     slices.Clone(done.identity.Actions),
	}
	s.armInactivity()
	s.transition(StateSelectingAction)
}

func (s *Session) handleSubmitDone(done submitDoneEvent) {
	if s.state != StateSubmitting || done.generation != s.exchangeGeneration {
		s.logger.Warn("dropped stale submission result", "state", s.state)
		return
	}
	if done.err != nil {
		s.showError(done.err)
		return
	}

	s.result = done.result
	s.armTimer(s.resultDisplay)
	s.transition(StateShowingResult)
}

func (s *Session) handleTimer(generation uint64) {
	if generation != s.timerGeneration {
		return
	}
	switch s.state {
	case StateShowingResult, StateShowingError:
		s.reset()
	case StateCollectingPIN, StateSelectingAction:
		s.logger.Info("session abandoned", "state", s.state)
		s.reset()
	}
}

// dispatchAuthenticate runs the exchange with ctx, the Run context, so
// shutting the loop down abandons the request.
func (s *Session) dispatchAuthenticate(ctx context.Context) {
	s.exchangeGeneration++
	generation := s.exchangeGeneration
	pin := exchange.PIN(s.pin)
	cfg := s.cfg

	go func() {
		identity, err := s.authenticator.Authenticate(ctx, pin, cfg)
		s.post(authDoneEvent{generation: generation, identity: identity, err: err})
	}()
}

func (s *Session) dispatchSubmit(ctx context.Context) {
	s.exchangeGeneration++
	generation := s.exchangeGeneration
	pin := exchange.PIN(s.pin)
	action := s.selected
	cfg := s.cfg

	go func() {
		result, err := s.submitter.Submit(ctx, pin, action, cfg)
		s.post(submitDoneEvent{generation: generation, result: result, err: err})
	}()
}

func (s *Session) showError(err error) {
	s.errorMessage = err.Error()
	s.logger.Warn("exchange failed", "state", s.state, "error", err)
	s.armTimer(s.errorDisplay)
	s.transition(StateShowingError)
}

func (s *Session) reloadConfig(ctx context.Context) {
	s.clearSession()
	cfg, err := s.loader.LoadConfig(ctx)
	if err != nil {
		s.cfg = config.Config{}
		s.configProblem = err.Error()
		s.logger.Warn("kiosk is not configured", "error", err)
		s.transition(StateConfigMissing)
		return
	}
	s.cfg = cfg
	s.configProblem = ""
	s.transition(StateIdle)
}

// reset clears everything tied to the current user and returns to
// Idle.
func (s *Session) reset() {
	s.clearSession()
	s.transition(StateIdle)
}

func (s *Session) clearSession() {
	s.stopTimer()
	s.pin = s.pin[:0]
	s.identity = exchange.Identity{}
	s.selected = exchange.Action{}
	s.result = 0
	s.errorMessage = ""
}

func (s *Session) armInactivity() {
	if s.inactivityTimeout <= 0 {
		s.stopTimer()
		return
	}
	s.armTimer(s.inactivityTimeout)
}

// armTimer replaces any pending timer with one firing after d.
func (s *Session) armTimer(d time.Duration) {
	s.stopTimer()
	generation := s.timerGeneration
	s.resetAt = s.clock.Now().Add(d)
	s.timer = s.clock.AfterFunc(d, func() {
		s.post(timerEvent{generation: generation})
	})
}

// stopTimer cancels the pending timer. Bumping the generation also
// invalidates a firing that is already queued behind this event.
func (s *Session) stopTimer() {
	s.timer.Stop()
	s.timer = nil
	s.timerGeneration++
	s.resetAt = time.Time{}
}

func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	if from != to {
		s.logger.Info("session state changed", "from", from, "to", to)
	}
	s.notify()
}

func (s *Session) notify() {
	s.observer.OnStateChange(s.snapshot())
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		State:         s.state,
		PINLength:     len(s.pin),
		DisplayName:   s.identity.DisplayName,
		Actions:       slices.Clone(s.identity.Actions),
		Selected:      s.selected,
		Result:        s.result,
		Error:         s.errorMessage,
		ConfigProblem: s.configProblem,
		ResetAt:       s.resetAt,
	}
}

func (s *Session) ignored(input string) {
	s.logger.Debug("input ignored", "input", input, "state", s.state)
}
