package client

import "sync"

const (
	LoginView   = "/login"
	SignupView  = "/signup"
	DefaultView = "/orders"
)

var publicViews = map[string]bool{
	LoginView:  true,
	SignupView: true,
}

// IsPublic reports whether view can be shown without a login.
func IsPublic(view string) bool {
	return publicViews[view]
}

// Redirect decides where a user in state should be sent from view. It
// returns the target and true, or "" and false to stay. Nothing moves while
// the session is still resolving.
func Redirect(state State, view string) (string, bool) {
	switch {
	case state.IsResolving:
		return "", false
	case state.Identity == nil && !IsPublic(view):
		return LoginView, true
	case state.Identity != nil && IsPublic(view):
		return DefaultView, true
	}
	return "", false
}

// Guard tracks the active view and applies Redirect after every session
// change and every navigation.
type Guard struct {
	session    *Session
	onRedirect func(from, to string)

	mu          sync.Mutex
	view        string
	unsubscribe func()
}

// NewGuard starts on view and immediately applies the policy. onRedirect,
// if not nil, is told about every redirect.
func NewGuard(s *Session, view string, onRedirect func(from, to string)) *Guard {
	g := &Guard{session: s, view: view, onRedirect: onRedirect}
	g.unsubscribe = s.Subscribe(g.apply)
	g.apply(s.State())
	return g
}

// View is the view currently shown.
func (g *Guard) View() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view
}

// Navigate moves to view, subject to the policy, and returns where the
// user ended up.
func (g *Guard) Navigate(view string) string {
	g.mu.Lock()
	g.view = view
	g.mu.Unlock()
	g.apply(g.session.State())
	return g.View()
}

// Close stops following the session.
func (g *Guard) Close() {
	g.unsubscribe()
}

func (g *Guard) apply(state State) {
	g.mu.Lock()
	from := g.view
	to, ok := Redirect(state, from)
	if ok {
		g.view = to
	}
	g.mu.Unlock()

	if ok && g.onRedirect != nil {
		g.onRedirect(from, to)
	}
}
