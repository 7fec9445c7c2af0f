// Package openapi embeds the OpenAPI 3.0 specification for the report API.
// The file is embedded at build time and served by the API server at runtime.
package openapi

import _ "embed"

// SpecYAML contains the OpenAPI 3.0 specification in YAML format.
// Served at: GET /api/v1/openapi.yaml
//
//go:embed openapi.yaml
var SpecYAML []byte
