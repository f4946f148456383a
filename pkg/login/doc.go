// Package login holds the login form component: the in-memory form state, the
// pure credential validation rules, and the four event handlers that mutate
// the state (email change, password change, submit, logout).
//
// A Form is owned by a single caller. Front ends (the HTML component and the
// terminal session) serialise access themselves and redraw after every event,
// either by re-rendering Snapshot directly or by subscribing a Listener.
package login
