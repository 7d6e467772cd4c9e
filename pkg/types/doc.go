// Package types defines the Go types shared by the crop table, the scorer and
// every renderer. These are the canonical in-memory representations of crop
// requirements, observed field conditions and recommendation results,
// independent of the YAML, JSON or Prometheus encodings built on top of them.
package types
