// Package client keeps a front end's view of who is logged in, backed by
// the session endpoints of the DineDash API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"

	"dinedash/models"
)

const msgUnexpected = "Something went wrong. Please try again."

// State is a snapshot of the cache.
type State struct {
	Identity    *models.Identity
	IsResolving bool
}

// Outcome is the result of a login or signup attempt, ready for display.
type Outcome struct {
	Success     bool
	Message     string
	FieldErrors map[string]string
}

// Session caches the current identity. The zero value is not usable; use New.
// A new Session reports IsResolving until its first Initialize or Refresh
// completes, so nothing redirects on a state that was never resolved.
type Session struct {
	baseURL string
	http    *http.Client

	initOnce sync.Once

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// New returns a cache talking to the API at baseURL. httpClient must keep
// cookies; when nil a client with a fresh cookie jar is used.
func New(baseURL string, httpClient *http.Client) (*Session, error) {
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{Jar: jar}
	}
	return &Session{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		state:     State{IsResolving: true},
		listeners: map[int]func(State){},
	}, nil
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() State {
	st := s.state
	if st.Identity != nil {
		id := *st.Identity
		st.Identity = &id
	}
	return st
}

// Subscribe registers fn to run after every state change. The returned
// function removes it.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// update applies fn under the lock, then notifies listeners outside it.
func (s *Session) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	st := s.snapshot()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(st)
	}
}

// setIdentity records an identity the server just confirmed, which also
// settles a cache that was never resolved.
func (s *Session) setIdentity(id *models.Identity) {
	s.update(func(st *State) {
		st.Identity = id
		st.IsResolving = false
	})
}

// Initialize resolves the session once per Session. Concurrent callers
// wait for the first resolve to finish.
func (s *Session) Initialize(ctx context.Context) {
	s.initOnce.Do(func() { s.Refresh(ctx) })
}

// Refresh asks the server who is logged in. Any failure leaves the cache
// logged out.
func (s *Session) Refresh(ctx context.Context) {
	s.update(func(st *State) { st.IsResolving = true })

	var body struct {
		User *models.Identity `json:"user"`
	}
	status, err := s.call(ctx, http.MethodGet, "/api/auth/session", nil, &body)
	if err != nil || status != http.StatusOK {
		body.User = nil
	}

	s.update(func(st *State) {
		st.Identity = body.User
		st.IsResolving = false
	})
}

// Login sends the credentials. On success the identity from the response
// becomes current; on failure the cache is left as it was.
func (s *Session) Login(ctx context.Context, email, password string) Outcome {
	return s.authenticate(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Signup creates an account and logs it in, with the same rules as Login.
func (s *Session) Signup(ctx context.Context, name, email, password string) Outcome {
	return s.authenticate(ctx, "/api/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (s *Session) authenticate(ctx context.Context, path string, payload map[string]string) Outcome {
	var body struct {
		Message string            `json:"message"`
		Error   string            `json:"error"`
		Errors  map[string]string `json:"errors"`
		User    *models.Identity  `json:"user"`
	}
	status, err := s.call(ctx, http.MethodPost, path, payload, &body)
	if err != nil {
		return Outcome{Message: msgUnexpected}
	}
	if status/100 != 2 || body.User == nil {
		msg := body.Error
		if msg == "" {
			msg = msgUnexpected
		}
		return Outcome{Message: msg, FieldErrors: body.Errors}
	}
	s.setIdentity(body.User)
	return Outcome{Success: true, Message: body.Message}
}

// Logout tells the server to drop the session and clears the cache even if
// that call fails.
func (s *Session) Logout(ctx context.Context) {
	_, _ = s.call(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	s.setIdentity(nil)
}

// call sends a JSON request and decodes a JSON response into out. Non-2xx
// responses are not errors; the status is returned for the caller to judge.
func (s *Session) call(ctx context.Context, method, path string, payload, out interface{}) (int, error) {
	var rd io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, rd)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return resp.StatusCode, nil
}
