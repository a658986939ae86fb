// Package config loads run configuration from environment variables, with an
// optional YAML file underlay for local development.
//
// Precedence, highest first:
//  1. Environment variables (SNOWFLAKE_*, COINGECKO_*, COINLAKE_*)
//  2. YAML config file passed via -config (supports ${VAR} expansion)
//  3. Built-in defaults
package config
