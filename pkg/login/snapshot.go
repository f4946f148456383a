package login

// Snapshot is the data a renderer needs to draw the current view. Password is
// kept so the form view can redisplay the controlled input value, but it is
// never serialised.
type Snapshot struct {
	View     View        `json:"view"`
	Email    string      `json:"email"`
	Password string      `json:"-"`
	Errors   FieldErrors `json:"errors"`
	Welcome  string      `json:"welcome,omitempty"`
}

// NewSnapshot derives a snapshot from state.
func NewSnapshot(state FormState) Snapshot {
	snap := Snapshot{
		View:     state.View(),
		Email:    state.Email,
		Password: state.Password,
		Errors:   state.Errors.Clone(),
	}
	if snap.View == ViewSuccess {
		snap.Welcome = WelcomeText(state.Email)
	}
	return snap
}

// ErrorFor returns the message attached to field, or an empty string.
func (s Snapshot) ErrorFor(field string) string {
	if len(s.Errors) == 0 {
		return ""
	}
	return s.Errors[field]
}

// WelcomeText is the greeting shown on the success panel.
func WelcomeText(email string) string {
	return "Welcome, " + email
}
