package loginform

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-loginform/internal/instances"
	"github.com/goliatone/go-loginform/pkg/login"
	"github.com/goliatone/go-loginform/pkg/renderers/jsonview"
)

const maxRequestBody = 64 << 10

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type validateResponse struct {
	Valid  bool              `json:"valid"`
	Errors login.FieldErrors `json:"errors"`
	Issues []login.Issue     `json:"issues"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// validate runs the form rules against a JSON body without mounting a form.
func (s *server) validate(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, http.MethodPost) {
		return
	}

	var body credentials
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	issues := login.ValidateIssues(body.Email, body.Password)
	if issues == nil {
		issues = []login.Issue{}
	}
	writeJSON(w, r, http.StatusOK, validateResponse{
		Valid:  len(issues) == 0,
		Errors: login.Validate(body.Email, body.Password),
		Issues: issues,
	})
}

// instances serves the collection (POST mounts) and single instances (GET
// reads, DELETE unmounts).
func (s *server) instances(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, s.routes.Instances), "/")
	if id == "" {
		if !s.allow(w, r, http.MethodPost) {
			return
		}
		mounted, snap := s.store.Mount()
		w.Header().Set("Location", s.routes.Instances+"/"+mounted)
		writeJSON(w, r, http.StatusCreated, jsonview.NewPayload(mounted, snap))
		return
	}
	if strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	if !s.allow(w, r, http.MethodGet, http.MethodHead, http.MethodDelete) {
		return
	}

	if r.Method == http.MethodDelete {
		if !s.store.Unmount(id) {
			writeJSON(w, r, http.StatusNotFound, errorResponse{Error: instances.ErrNotFound.Error()})
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	snap, err := s.store.Snapshot(id)
	if err != nil {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, r, http.StatusOK, jsonview.NewPayload(id, snap))
}

func (s *server) openapi(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(s.openAPI)
}

// allow writes 405 and reports false unless the method is listed. It also
// applies the guard.
func (s *server) allow(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	permitted := false
	for _, method := range methods {
		if r.Method == method {
			permitted = true
			break
		}
	}
	if !permitted {
		w.Header().Set("Allow", strings.Join(methods, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}
	if s.opts.Guard != nil {
		if err := s.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
