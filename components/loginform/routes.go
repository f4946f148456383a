package loginform

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-loginform/pkg/renderers/html"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the patterns registered under one base path.
type Routes struct {
	Page      string
	Assets    string
	Validate  string
	Instances string
	OpenAPI   string
}

// MountPath returns the full mount path of the page route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RoutesFor returns every pattern the component registers under basePath.
func RoutesFor(basePath string, fns ...OptionFn) Routes {
	return routesFor(basePath, NewOptions(fns...))
}

func routesFor(basePath string, opts Options) Routes {
	page := mountPath(basePath, opts.RoutePath)
	api := mountPath(basePath, opts.APIPath)
	return Routes{
		Page:      page,
		Assets:    strings.TrimRight(page, "/") + assetsSegment + "/",
		Validate:  api + "/validate",
		Instances: api + "/instances",
		OpenAPI:   api + "/openapi.json",
	}
}

// RegisterRoutes registers the login handlers under basePath on mux and
// returns the page pattern.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the handlers under basePath using a pre-built Options value.
// Callers are expected to pass an Options value produced by NewOptions (or equivalent) so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("loginform: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	routes := routesFor(basePath, opts)

	srv, err := newServer(opts, routes)
	if err != nil {
		return "", err
	}

	mux.Handle(routes.Page, http.HandlerFunc(srv.page))
	mux.Handle(routes.Assets, http.StripPrefix(strings.TrimSuffix(routes.Assets, "/"), http.FileServer(http.FS(html.AssetsFS()))))
	mux.Handle(routes.Validate, http.HandlerFunc(srv.validate))
	mux.Handle(routes.Instances, http.HandlerFunc(srv.instances))
	mux.Handle(routes.Instances+"/", http.HandlerFunc(srv.instances))
	mux.Handle(routes.OpenAPI, http.HandlerFunc(srv.openapi))
	return routes.Page, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	routePath = strings.TrimRight(routePath, "/")
	if routePath == "" {
		routePath = "/"
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
