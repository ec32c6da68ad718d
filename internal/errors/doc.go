// Package errors provides coded, categorized errors for the withhover
// server and CLI. Codes are registered in registry.go; New fills message
// and suggestion from the registry and Format renders an error for the
// terminal.
package errors
