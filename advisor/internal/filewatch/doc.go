// Package filewatch follows a single file with fsnotify and calls back once
// each burst of writes has settled. The config and sensor packages build
// their hot reload on it.
package filewatch
