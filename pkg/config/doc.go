// Package config loads layout settings from YAML, a .env file and the
// environment, and linearizes the record types it declares.
package config
