// Package loginform mounts the login form on a net/http mux.
//
// The page route renders the form (or the success panel) as HTML, or as JSON
// when the request prefers application/json. Each GET mounts a new form
// instance whose id travels in a hidden "instance" input; POSTs name the
// event to apply (submit, logout, email, password). A small JSON API exposes
// stateless validation and instance inspection, described by an OpenAPI
// document served next to it.
package loginform
