package login

import "fmt"

// View selects which panel a front end draws.
type View int

const (
	// ViewForm shows the email/password inputs. It is the initial view.
	ViewForm View = iota
	// ViewSuccess shows the welcome panel with a logout control.
	ViewSuccess
)

func (v View) String() string {
	switch v {
	case ViewForm:
		return "form"
	case ViewSuccess:
		return "success"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// MarshalText encodes the view by name so JSON payloads stay readable.
func (v View) MarshalText() ([]byte, error) {
	switch v {
	case ViewForm, ViewSuccess:
		return []byte(v.String()), nil
	default:
		return nil, fmt.Errorf("login: unknown view %d", int(v))
	}
}

// UnmarshalText decodes a view name produced by MarshalText.
func (v *View) UnmarshalText(text []byte) error {
	switch string(text) {
	case "form":
		*v = ViewForm
	case "success":
		*v = ViewSuccess
	default:
		return fmt.Errorf("login: unknown view %q", string(text))
	}
	return nil
}

// FormState is the in-memory record of one form instance.
type FormState struct {
	Email     string
	Password  string
	Errors    FieldErrors
	Submitted bool
}

// InitialState returns the state a freshly mounted form starts with.
func InitialState() FormState {
	return FormState{Errors: FieldErrors{}}
}

// Clone returns a deep copy of the state.
func (s FormState) Clone() FormState {
	s.Errors = s.Errors.Clone()
	return s
}

// View derives the panel from the submission flag.
func (s FormState) View() View {
	if s.Submitted {
		return ViewSuccess
	}
	return ViewForm
}

// Event names the handler that produced a state change.
type Event string

const (
	EventEmailChange    Event = "email"
	EventPasswordChange Event = "password"
	EventSubmit         Event = "submit"
	EventLogout         Event = "logout"
)

// Listener is notified after every handler runs, with the resulting snapshot.
type Listener func(event Event, snapshot Snapshot)

// Form is one login form instance. It is not safe for concurrent use.
type Form struct {
	state     FormState
	listeners []Listener
}

// New mounts a form in its initial state.
func New() *Form {
	return &Form{state: InitialState()}
}

// Subscribe registers fn as a redraw hook. Nil listeners are ignored.
func (f *Form) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	f.listeners = append(f.listeners, fn)
}

// State returns a copy of the current state.
func (f *Form) State() FormState {
	return f.state.Clone()
}

// View returns the panel the form is currently showing.
func (f *Form) View() View {
	return f.state.View()
}

// OnEmailChange stores the new email value and drops any email error.
func (f *Form) OnEmailChange(value string) {
	f.state.Email = value
	delete(f.state.Errors, FieldEmail)
	f.notify(EventEmailChange)
}

// OnPasswordChange stores the new password value and drops any password error.
func (f *Form) OnPasswordChange(value string) {
	f.state.Password = value
	delete(f.state.Errors, FieldPassword)
	f.notify(EventPasswordChange)
}

// OnSubmit validates the current values. On success the form switches to the
// success view and stays frozen there until logout; otherwise the errors are
// stored and the form view remains. It reports whether the form is submitted.
func (f *Form) OnSubmit() bool {
	if f.state.Submitted {
		return true
	}
	errs := Validate(f.state.Email, f.state.Password)
	if len(errs) == 0 {
		f.state.Errors = FieldErrors{}
		f.state.Submitted = true
	} else {
		f.state.Errors = errs
	}
	f.notify(EventSubmit)
	return f.state.Submitted
}

// OnLogout resets every value to the initial state.
func (f *Form) OnLogout() {
	f.state = InitialState()
	f.notify(EventLogout)
}

// Snapshot returns render-ready view data for the current state.
func (f *Form) Snapshot() Snapshot {
	return NewSnapshot(f.state)
}

func (f *Form) notify(event Event) {
	if len(f.listeners) == 0 {
		return
	}
	snapshot := f.Snapshot()
	for _, fn := range f.listeners {
		fn(event, snapshot)
	}
}
