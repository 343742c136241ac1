// Package api embeds the OpenAPI document for the trip catalog API.
// It is imported by main and handed to the HTTP server, which serves it at
// /openapi.yaml.
package api

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
