package login_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-loginform/pkg/login"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     login.FieldErrors
	}{
		{
			name: "both empty",
			want: login.FieldErrors{
				login.FieldEmail:    login.MessageEmailRequired,
				login.FieldPassword: login.MessagePasswordRequired,
			},
		},
		{
			name:     "short password",
			email:    "test@example.com",
			password: "pw",
			want:     login.FieldErrors{login.FieldPassword: login.MessagePasswordTooShort},
		},
		{
			name:     "five characters is too short",
			email:    "test@example.com",
			password: "12345",
			want:     login.FieldErrors{login.FieldPassword: login.MessagePasswordTooShort},
		},
		{
			name:     "six characters is enough",
			email:    "test@example.com",
			password: "123456",
			want:     login.FieldErrors{},
		},
		{
			name:     "missing at sign",
			email:    "invalidemail",
			password: "password123",
			want:     login.FieldErrors{login.FieldEmail: login.MessageEmailInvalid},
		},
		{
			name:     "whitespace only email is required",
			email:    "   ",
			password: "password123",
			want:     login.FieldErrors{login.FieldEmail: login.MessageEmailRequired},
		},
		{
			name:     "whitespace only password is required",
			email:    "test@example.com",
			password: "   ",
			want:     login.FieldErrors{login.FieldPassword: login.MessagePasswordRequired},
		},
		{
			name:     "padded email is not trimmed before the pattern",
			email:    " test@example.com ",
			password: "password123",
			want:     login.FieldErrors{login.FieldEmail: login.MessageEmailInvalid},
		},
		{
			name:     "padded password counts raw length",
			email:    "test@example.com",
			password: "  abc ",
			want:     login.FieldErrors{},
		},
		{
			name:     "multiple dots in domain",
			email:    "user@mail.co.uk",
			password: "password123",
			want:     login.FieldErrors{},
		},
		{
			name:     "consecutive dots are accepted",
			email:    "a..b@c..d.e",
			password: "password123",
			want:     login.FieldErrors{},
		},
		{
			name:     "no dot after at sign",
			email:    "user@localhost",
			password: "password123",
			want:     login.FieldErrors{login.FieldEmail: login.MessageEmailInvalid},
		},
		{
			name:     "two at signs",
			email:    "a@b@c.d",
			password: "password123",
			want:     login.FieldErrors{login.FieldEmail: login.MessageEmailInvalid},
		},
		{
			name:     "non-breaking space inside address",
			email:    "a\u00a0b@c.d",
			password: "password123",
			want:     login.FieldErrors{login.FieldEmail: login.MessageEmailInvalid},
		},
		{
			name:     "non-breaking spaces only",
			email:    "\u00a0\u3000",
			password: "\ufeff\u2003",
			want: login.FieldErrors{
				login.FieldEmail:    login.MessageEmailRequired,
				login.FieldPassword: login.MessagePasswordRequired,
			},
		},
		{
			name:     "astral runes count as two units",
			email:    "test@example.com",
			password: "\U0001F600\U0001F600\U0001F600",
			want:     login.FieldErrors{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := login.Validate(tt.email, tt.password)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateIssues_Kinds(t *testing.T) {
	got := login.ValidateIssues("", "abc")
	want := []login.Issue{
		{Field: login.FieldEmail, Kind: login.MissingField, Message: login.MessageEmailRequired},
		{Field: login.FieldPassword, Kind: login.InvalidField, Message: login.MessagePasswordTooShort},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	if issues := login.ValidateIssues("user@mail.co.uk", "password123"); len(issues) != 0 {
		t.Fatalf("expected no issues, got %#v", issues)
	}
}

func TestValidate_EmailWithoutAtIsInvalid(t *testing.T) {
	samples := []string{"a", "plainaddress", "example.com", "user.name", "x y", "--", "été"}
	for _, email := range samples {
		errs := login.Validate(email, "password123")
		if got := errs[login.FieldEmail]; got != login.MessageEmailInvalid {
			t.Fatalf("email %q: expected %q, got %q", email, login.MessageEmailInvalid, got)
		}
	}
}

func TestValidate_BlankIsRequiredNeverInvalid(t *testing.T) {
	samples := []string{"", " ", "\t", "\n\r", "  \t  ", "\v\f"}
	for _, blank := range samples {
		errs := login.Validate(blank, blank)
		if got := errs[login.FieldEmail]; got != login.MessageEmailRequired {
			t.Fatalf("email %q: expected required, got %q", blank, got)
		}
		if got := errs[login.FieldPassword]; got != login.MessagePasswordRequired {
			t.Fatalf("password %q: expected required, got %q", blank, got)
		}
	}
}

func TestValidate_PasswordLengthBoundary(t *testing.T) {
	for n := 1; n <= 12; n++ {
		password := strings.Repeat("x", n)
		errs := login.Validate("test@example.com", password)
		_, hasErr := errs[login.FieldPassword]
		if n < login.MinPasswordLength && !hasErr {
			t.Fatalf("length %d: expected length error", n)
		}
		if n >= login.MinPasswordLength && hasErr {
			t.Fatalf("length %d: unexpected error %q", n, errs[login.FieldPassword])
		}
	}
}

func TestFieldErrors_CloneIsIndependent(t *testing.T) {
	var nilErrs login.FieldErrors
	if clone := nilErrs.Clone(); clone == nil || len(clone) != 0 {
		t.Fatalf("expected empty non-nil clone, got %#v", clone)
	}

	errs := login.FieldErrors{login.FieldEmail: login.MessageEmailInvalid}
	clone := errs.Clone()
	delete(clone, login.FieldEmail)
	if !errs.Has(login.FieldEmail) {
		t.Fatalf("clone mutation leaked into original")
	}
}
