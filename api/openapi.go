package api

import _ "embed"

// Spec is the OpenAPI 3 description of the JSON API, served at /openapi.yml.
//
//go:embed openapi.yml
var Spec []byte
