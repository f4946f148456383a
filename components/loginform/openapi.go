package loginform

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.json
var openAPIDocument []byte

// OpenAPI returns the validated document describing the JSON API mounted
// under basePath.
func OpenAPI(ctx context.Context, basePath string, fns ...OptionFn) (*openapi3.T, error) {
	return openAPIDoc(ctx, RoutesFor(basePath, fns...))
}

func openAPIDoc(ctx context.Context, routes Routes) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("loginform: load openapi document: %w", err)
	}
	doc.Servers = openapi3.Servers{
		{URL: strings.TrimSuffix(routes.Validate, "/validate")},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("loginform: validate openapi document: %w", err)
	}
	return doc, nil
}

func openAPIJSON(ctx context.Context, routes Routes) ([]byte, error) {
	doc, err := openAPIDoc(ctx, routes)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("loginform: encode openapi document: %w", err)
	}
	return raw, nil
}
