// Package routepath validates the literal paths the server mounts its live
// and metrics endpoints on.
package routepath
