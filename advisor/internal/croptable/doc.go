// Package croptable holds the static crop reference table.
//
// The default dataset is crops.yaml, embedded into the binary and parsed once
// per process by Default. Load and Parse build tables from other YAML sources
// with the same layout; New builds one from records directly.
//
// Every constructor validates the records (lowercase unique ids, finite
// intervals with min <= max, at most MaxCrops entries) and the resulting
// Table is never modified afterwards.
package croptable
