// Package scan models device-side asynchronous operations reachable only
// through a "start" and a "poll status" endpoint, where the device answers
// 202 Accepted until the work is done.
package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sprinklerworks/sprinklerctl/internal/console/api"
	"github.com/sprinklerworks/sprinklerctl/internal/console/notify"
	"github.com/sprinklerworks/sprinklerctl/internal/console/resource"
)

// Status is the poll session state machine.
type Status int

const (
	StatusIdle Status = iota
	StatusRequesting
	StatusPolling
	StatusSucceeded
	StatusFailed
	StatusTimedOut
)

// Defaults observed on the device: ten polls half a second apart.
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultMaxAttempts  = 10
)

// Config parameterizes a Poller.
type Config struct {
	StartPath  string
	StatusPath string

	// Label names the operation in notifications ("Problem <label>: ...").
	Label string

	// TimeoutMessage is reported on poll exhaustion. It is deliberately
	// distinct from a transport error: the operation didn't necessarily
	// fail, it just didn't finish in time.
	TimeoutMessage string

	// Interval and MaxAttempts default to the device-observed values.
	Interval    time.Duration
	MaxAttempts int
}

// Poller drives one bounded-retry polling protocol. Each Start opens a fresh
// poll session identified by a UUID; scheduled polls verify at fire time that
// their session is still the current one, so stale timers left over from a
// finished session or a closed poller never mutate state.
type Poller[R any] struct {
	cfg      Config
	fetch    resource.Doer
	notifier notify.Notifier
	finalize func(*R)

	mu      sync.Mutex
	status  Status
	attempt int
	current uuid.UUID
	closed  bool
	result  *R
	errMsg  string
	timer   *time.Timer
	done    chan struct{}
}

// NewPoller builds a poller. finalize, if non-nil, post-processes a
// successful result before it is published (the scanner sorts with it).
func NewPoller[R any](cfg Config, fetch resource.Doer, notifier notify.Notifier, finalize func(*R)) *Poller[R] {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.TimeoutMessage == "" {
		cfg.TimeoutMessage = "Device did not complete the operation in a timely manner."
	}
	return &Poller[R]{cfg: cfg, fetch: fetch, notifier: notifier, finalize: finalize, status: StatusIdle}
}

// Status returns the session state.
func (p *Poller[R]) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Attempt returns how many polls have answered 202 in the current session.
func (p *Poller[R]) Attempt() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempt
}

// Result returns the published result once the session succeeded.
func (p *Poller[R]) Result() (R, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		var zero R
		return zero, false
	}
	return *p.result, true
}

// ErrorMessage returns the terminal failure message, or "".
func (p *Poller[R]) ErrorMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// Wait returns a channel closed when the current session reaches a terminal
// state. Returns nil when no session was ever started.
func (p *Poller[R]) Wait() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Start begins a new poll session. It is a no-op while a session is
// Requesting or Polling: a second operation must not be started while one is
// outstanding.
func (p *Poller[R]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.closed || p.status == StatusRequesting || p.status == StatusPolling {
		p.mu.Unlock()
		return
	}
	sid := uuid.New()
	p.current = sid
	p.status = StatusRequesting
	p.attempt = 0
	p.result = nil
	p.errMsg = ""
	p.done = make(chan struct{})
	p.mu.Unlock()

	resp, err := p.fetch.Do(ctx, http.MethodGet, p.cfg.StartPath, nil)
	if err != nil {
		p.fail(sid, err)
		return
	}
	status := resp.StatusCode
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if status != http.StatusAccepted {
		p.fail(sid, fmt.Errorf("Device returned unexpected response code: %d", status))
		return
	}

	p.mu.Lock()
	if p.closed || p.current != sid {
		p.mu.Unlock()
		return
	}
	p.status = StatusPolling
	p.schedule(ctx, sid)
	p.mu.Unlock()
}

// schedule arms the next poll timer; the caller holds p.mu.
func (p *Poller[R]) schedule(ctx context.Context, sid uuid.UUID) {
	p.timer = time.AfterFunc(p.cfg.Interval, func() { p.poll(ctx, sid) })
}

func (p *Poller[R]) poll(ctx context.Context, sid uuid.UUID) {
	p.mu.Lock()
	if p.closed || p.current != sid {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	resp, err := p.fetch.Do(ctx, http.MethodGet, p.cfg.StatusPath, nil)
	if err != nil {
		p.fail(sid, err)
		return
	}

	switch resp.StatusCode {
	case http.StatusOK:
		result := new(R)
		err := decodeJSON(resp.Body, result)
		_ = resp.Body.Close()
		if err != nil {
			p.fail(sid, err)
			return
		}
		if p.finalize != nil {
			p.finalize(result)
		}
		p.succeed(sid, result)

	case http.StatusAccepted:
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		p.mu.Lock()
		if p.closed || p.current != sid {
			p.mu.Unlock()
			return
		}
		p.attempt++
		if p.attempt >= p.cfg.MaxAttempts {
			p.mu.Unlock()
			p.timeout(sid)
			return
		}
		p.schedule(ctx, sid)
		p.mu.Unlock()

	default:
		status := resp.StatusCode
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		p.fail(sid, fmt.Errorf("Device returned unexpected response code: %d", status))
	}
}

// finish commits a terminal state if sid is still the current session.
func (p *Poller[R]) finish(sid uuid.UUID, status Status, result *R, errMsg string) {
	p.mu.Lock()
	if p.closed || p.current != sid {
		p.mu.Unlock()
		return
	}
	p.status = status
	p.result = result
	p.errMsg = errMsg
	done := p.done
	p.mu.Unlock()
	if done != nil {
		close(done)
	}
}

func (p *Poller[R]) succeed(sid uuid.UUID, result *R) {
	p.finish(sid, StatusSucceeded, result, "")
}

func (p *Poller[R]) fail(sid uuid.UUID, err error) {
	// The 401 path already invalidated the session and notified; just end
	// the poll session quietly.
	if errors.Is(err, api.ErrUnauthorized) {
		p.finish(sid, StatusFailed, nil, "")
		return
	}
	p.notifier.Error(fmt.Sprintf("Problem %s: %s", p.cfg.Label, err.Error()))
	p.finish(sid, StatusFailed, nil, err.Error())
}

func (p *Poller[R]) timeout(sid uuid.UUID) {
	p.notifier.Error(fmt.Sprintf("Problem %s: %s", p.cfg.Label, p.cfg.TimeoutMessage))
	p.finish(sid, StatusTimedOut, nil, p.cfg.TimeoutMessage)
}

// Close suppresses any scheduled poll: after Close no callback mutates state.
// The owning view calls it on unmount.
func (p *Poller[R]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
	}
}

func decodeJSON(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
