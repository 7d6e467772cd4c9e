// Package exporter turns recommendation results into Prometheus metrics.
//
// Each evaluation sets cropadvisor_suitability_score{crop} for every crop,
// cropadvisor_recommended{crop}=1 for the winner only, and the observed
// inputs as cropadvisor_observed_condition{factor}. WriteTextfile dumps the
// registry for node_exporter's textfile collector, which is how the watch
// and schedule commands publish without running an HTTP server.
package exporter
