// Package guard decides whether a navigation may render or must redirect,
// based on the client-local session. Each guard is a two-state machine:
// checking until the session probe resolves, then a terminal decision.
package guard

import "net/url"

// Well-known destinations.
const (
	SignInPath    = "/auth/sign-in"
	DashboardPath = "/dashboard/customers"
)

// Action is what the caller should do with the guarded view.
type Action int

const (
	// ActionRender shows the guarded children.
	ActionRender Action = iota
	// ActionRedirect navigates to Decision.Target exactly once.
	ActionRedirect
	// ActionError renders an inline error instead of redirecting.
	ActionError
)

// Decision is the resolved outcome of a guard check.
type Decision struct {
	Action Action
	Target string
	Err    error
}

// Session is the slice of session state the guards need.
type Session interface {
	HasToken() bool
}

// SessionProbe resolves the current session, reporting a probe failure
// separately from "nobody is signed in".
type SessionProbe func() (loggedIn bool, err error)

// Auth gates authenticated-only views. The one-shot flag mirrors the
// redirect ref in the dashboard: repeated checks after a redirect decision
// keep reporting checking rather than deciding twice.
type Auth struct {
	probe      SessionProbe
	redirected bool
}

// NewAuth builds an auth guard over a session probe.
func NewAuth(probe SessionProbe) *Auth {
	return &Auth{probe: probe}
}

// Check resolves the guard for an attempted path.
func (g *Auth) Check(attemptedPath string) Decision {
	loggedIn, err := g.probe()
	if err != nil {
		// terminal failure: render the error, do not redirect
		return Decision{Action: ActionError, Err: err}
	}
	if !loggedIn {
		if g.redirected {
			return Decision{Action: ActionRedirect, Target: ""}
		}
		g.redirected = true
		next := url.QueryEscape(attemptedPath)
		if next == "" {
			next = url.QueryEscape("/")
		}
		return Decision{Action: ActionRedirect, Target: SignInPath + "?next=" + next}
	}
	return Decision{Action: ActionRender}
}

// Guest gates guest-only views (sign-in, sign-up): a signed-in user is sent
// to the dashboard, or to the next parameter when one is carried.
type Guest struct {
	probe      SessionProbe
	redirected bool
}

// NewGuest builds a guest guard over a session probe.
func NewGuest(probe SessionProbe) *Guest {
	return &Guest{probe: probe}
}

// Check resolves the guard. next is the optional ?next= parameter from the
// sign-in URL, already unescaped; blank means the dashboard.
func (g *Guest) Check(next string) Decision {
	loggedIn, err := g.probe()
	if err != nil {
		return Decision{Action: ActionError, Err: err}
	}
	if loggedIn {
		if g.redirected {
			return Decision{Action: ActionRedirect, Target: ""}
		}
		g.redirected = true
		target := next
		if target == "" {
			target = DashboardPath
		}
		return Decision{Action: ActionRedirect, Target: target}
	}
	return Decision{Action: ActionRender}
}

// ProbeStore adapts a session store into a SessionProbe that never errors.
func ProbeStore(s Session) SessionProbe {
	return func() (bool, error) { return s.HasToken(), nil }
}
