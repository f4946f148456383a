package loginform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-loginform/internal/instances"
	"github.com/goliatone/go-loginform/pkg/login"
	"github.com/goliatone/go-loginform/pkg/renderers/jsonview"
)

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestValidate_ReturnsErrorsAndIssues(t *testing.T) {
	h := New().Handler()
	rec := serve(h, http.MethodPost, "/api/login/validate", `{"email":"nope","password":"123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var got validateResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := validateResponse{
		Valid: false,
		Errors: login.FieldErrors{
			"email":    "Email is invalid",
			"password": "Password must be at least 6 characters",
		},
		Issues: []login.Issue{
			{Field: "email", Kind: login.InvalidField, Message: "Email is invalid"},
			{Field: "password", Kind: login.InvalidField, Message: "Password must be at least 6 characters"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Valid(t *testing.T) {
	h := New().Handler()
	rec := serve(h, http.MethodPost, "/api/login/validate", `{"email":"test@example.com","password":"123456"}`)

	var got validateResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Valid || len(got.Errors) != 0 || len(got.Issues) != 0 {
		t.Fatalf("expected valid response, got %+v", got)
	}
}

func TestValidate_BadRequests(t *testing.T) {
	h := New().Handler()
	for name, body := range map[string]string{
		"empty":         "",
		"malformed":     `{"email":`,
		"unknown field": `{"username":"x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(h, http.MethodPost, "/api/login/validate", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}

	rec := serve(h, http.MethodGet, "/api/login/validate", "")
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("expected 405 with Allow POST, got %d %q", rec.Code, rec.Header().Get("Allow"))
	}
}

func TestInstances_Lifecycle(t *testing.T) {
	store := instances.New()
	h := New(WithStore(store)).Handler()

	rec := serve(h, http.MethodPost, "/api/login/instances", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	var mounted jsonview.Payload
	if err := json.NewDecoder(rec.Body).Decode(&mounted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mounted.Instance == "" || mounted.View != login.ViewForm {
		t.Fatalf("unexpected mounted payload %+v", mounted)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/login/instances/"+mounted.Instance {
		t.Fatalf("unexpected Location %q", loc)
	}

	if _, err := store.Apply(mounted.Instance, func(f *login.Form) {
		f.OnEmailChange("test@example.com")
		f.OnPasswordChange("123456")
		f.OnSubmit()
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	rec = serve(h, http.MethodGet, "/api/login/instances/"+mounted.Instance, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got jsonview.Payload
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := jsonview.Payload{
		Instance: mounted.Instance,
		View:     login.ViewSuccess,
		Email:    "test@example.com",
		Errors:   login.FieldErrors{},
		Welcome:  "Welcome, test@example.com",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	rec = serve(h, http.MethodDelete, "/api/login/instances/"+mounted.Instance, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	rec = serve(h, http.MethodGet, "/api/login/instances/"+mounted.Instance, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
	rec = serve(h, http.MethodDelete, "/api/login/instances/"+mounted.Instance, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", rec.Code)
	}
}

func TestInstances_MethodNotAllowed(t *testing.T) {
	h := New().Handler()

	rec := serve(h, http.MethodGet, "/api/login/instances", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	rec = serve(h, http.MethodPut, "/api/login/instances/abc", "")
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != "GET, HEAD, DELETE" {
		t.Fatalf("expected 405 with Allow header, got %d %q", rec.Code, rec.Header().Get("Allow"))
	}
}

func TestOpenAPI_DocumentServedAndValid(t *testing.T) {
	mux := http.NewServeMux()
	if _, err := RegisterRoutes(mux, "/admin"); err != nil {
		t.Fatalf("register: %v", err)
	}

	rec := serve(mux, http.MethodGet, "/admin/api/login/openapi.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("load served document: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "/admin/api/login" {
		t.Fatalf("unexpected servers %+v", doc.Servers)
	}
	for _, path := range []string{"/validate", "/instances", "/instances/{id}"} {
		if doc.Paths.Value(path) == nil {
			t.Fatalf("document missing path %s", path)
		}
	}
	item := doc.Paths.Value("/instances/{id}")
	if item.Get == nil || item.Delete == nil {
		t.Fatalf("expected GET and DELETE on /instances/{id}")
	}
}

func TestOpenAPI_Helper(t *testing.T) {
	doc, err := OpenAPI(context.Background(), "", WithAPIPath("/v1/auth"))
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	if doc.Servers[0].URL != "/v1/auth" {
		t.Fatalf("unexpected server url %q", doc.Servers[0].URL)
	}
	if doc.Info.Title != "Login form API" {
		t.Fatalf("unexpected title %q", doc.Info.Title)
	}
}
