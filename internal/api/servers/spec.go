package servers

import (
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// GetSwagger parses the embedded OpenAPI document. Every call returns a fresh copy,
// so callers may mutate it.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	return loader.LoadFromData(openAPIDocument)
}
