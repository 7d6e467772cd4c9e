// Package report renders recommendation results for people and machines.
// Text output follows the chat assistant's layout; JSON and YAML wrap the
// result in an Envelope carrying a uuid and a UTC timestamp.
package report
