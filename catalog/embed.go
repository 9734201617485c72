// Package catalog provides the embedded product catalog data.
package catalog

import _ "embed"

// Data contains the canonical catalog as JSON, produced by cmd/catalog-ingest.
//
//go:embed catalog.json
var Data []byte
