// Package sensor reads observed field conditions from files.
//
// Three formats are accepted: a flat YAML or JSON mapping using the request
// keys (temperature, humidity, rainfall, ph, N, P, K), and a Prometheus text
// exposition such as a node_exporter textfile written by a weather station.
// For the exposition each factor is read from a configurable metric family
// (DefaultMetrics), averaging across series when several probes report.
//
// Every factor must be present; an absent one yields ErrMissingFactor.
// Watch (watch.go) re-reads the file once each burst of writes settles.
package sensor
