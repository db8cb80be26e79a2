// Package config loads CLI and service configuration from OMNIGRID_*
// environment variables.
package config
