// Package tui renders an interactive progress view for batch runs.
//
// The view is a Bubbletea program fed by the batch runner's progress
// callback. It only runs when the output is a terminal.
package tui
