// Package resource generalizes "fetch one typed resource, let the view edit
// it in memory, submit the whole object back" over any endpoint and type.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/sprinklerworks/sprinklerctl/internal/console/api"
	"github.com/sprinklerworks/sprinklerctl/internal/console/notify"
)

// Doer issues one request against the device. Satisfied by
// api.RedirectingClient, so 401 handling is already taken care of before a
// controller sees the response.
type Doer interface {
	Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error)
}

// Controller binds a typed resource to one REST endpoint with uniform
// loading/error/success semantics.
//
// Only one Load or Save should be in flight per controller; Loading is the
// only signal callers have to prevent overlapping submissions, and nothing
// stops a caller from deliberately firing both. When saves do overlap, the
// last response to arrive wins — responses are not sequenced.
type Controller[T any] struct {
	endpoint string
	fetch    Doer
	notifier notify.Notifier

	mu      sync.Mutex
	data    *T
	loading bool
	errMsg  string
}

func NewController[T any](endpoint string, fetch Doer, notifier notify.Notifier) *Controller[T] {
	return &Controller[T]{endpoint: endpoint, fetch: fetch, notifier: notifier}
}

// Data returns the current in-memory resource, if one is present.
func (c *Controller[T]) Data() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		var zero T
		return zero, false
	}
	return *c.data, true
}

// Loading reports whether a Load or Save is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ErrorMessage returns the failure message of the last operation, or "".
func (c *Controller[T]) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller[T]) commit(data *T, errMsg string) {
	c.mu.Lock()
	c.data = data
	c.errMsg = errMsg
	c.loading = false
	c.mu.Unlock()
}

// Load fetches the resource. A 200 commits the parsed body and clears any
// previous error; any other status, parse failure or transport failure
// clears the data, records a message and notifies the user. Loading is
// cleared on every path, the 401 redirect included.
func (c *Controller[T]) Load(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.data = nil
	c.errMsg = ""
	c.mu.Unlock()

	data, err := c.roundTrip(ctx, http.MethodGet, nil)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.commit(nil, "")
			return
		}
		c.notifier.Error("Problem fetching: " + err.Error())
		c.commit(nil, err.Error())
		return
	}
	c.commit(data, "")
}

// Save submits the current in-memory data and replaces it with the device's
// returned representation — the device is the authority on the persisted
// shape. On failure the attempted edits are discarded: data goes absent and
// an error message takes its place; no partial-save state is modeled.
func (c *Controller[T]) Save(ctx context.Context) {
	c.mu.Lock()
	if c.data == nil {
		c.mu.Unlock()
		return
	}
	body, err := json.Marshal(c.data)
	c.loading = true
	c.mu.Unlock()

	if err != nil {
		c.notifier.Error("Problem updating: " + err.Error())
		c.commit(nil, err.Error())
		return
	}

	data, err := c.roundTrip(ctx, http.MethodPost, bytes.NewReader(body))
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.commit(nil, "")
			return
		}
		c.notifier.Error("Problem updating: " + err.Error())
		c.commit(nil, err.Error())
		return
	}
	c.notifier.Success("Update successful.")
	c.commit(data, "")
}

func (c *Controller[T]) roundTrip(ctx context.Context, method string, body io.Reader) (*T, error) {
	resp, err := c.fetch.Do(ctx, method, c.endpoint, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("Invalid status code: %d", resp.StatusCode)
	}

	data := new(T)
	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Set replaces the in-memory data without any network effect; the view uses
// it to accumulate edits before Save. then, if given, runs once the new data
// is visible, so a save can be chained right after a structural edit.
func (c *Controller[T]) Set(data T, then func()) {
	c.mu.Lock()
	c.data = &data
	c.errMsg = ""
	c.loading = false
	c.mu.Unlock()
	if then != nil {
		then()
	}
}

// ApplyChange folds one typed field edit into the current data, preserving
// every other field. Field names are the resource's JSON keys.
func (c *Controller[T]) ApplyChange(field string, in Input) error {
	value, err := ExtractValue(in)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.data == nil {
		c.mu.Unlock()
		return errors.New("no data loaded")
	}
	raw, err := json.Marshal(c.data)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	if _, ok := fields[field]; !ok {
		return fmt.Errorf("unknown field: %q", field)
	}
	fields[field] = value

	merged, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	data := new(T)
	if err := json.Unmarshal(merged, data); err != nil {
		return fmt.Errorf("invalid value for %q: %w", field, err)
	}

	c.Set(*data, nil)
	return nil
}
