// Package config loads and watches the cropadvisor configuration file.
//
// Top-level types:
//   - Config{Table, Sensor, Output, Schedule, Alerts}, parsed from YAML
//   - SensorConfig: observation file path, format (yaml|json|prometheus),
//     factor to metric name mapping for textfile input
//   - OutputConfig: format (text|json|yaml) and optional Prometheus textfile
//   - ScheduleConfig: cron spec for periodic evaluation
//   - AlertsConfig: alerts.Rule list
//
// Load(path) reads the YAML file, applies defaults (field.prom, text output,
// "@every 1h", default metric names), then validates enums, the cron spec
// and every alert rule.
//
// Watch(ctx, path, onChange) reloads the file after each settled save and
// calls onChange only when the effective Config differs from the last one.
package config
