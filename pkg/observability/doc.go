// Package observability provides structured logging and Prometheus metrics
// for the grid services. Engine packages stay free of it; the service layer
// and the CLI wire it in.
package observability
