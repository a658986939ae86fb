// Package warehouse implements the load stage.
//
// Rows are append-only: (generated id, server-assigned ingestion timestamp,
// raw JSON payload). Two backends exist — Snowflake for real runs and
// Postgres for local development — behind the same Store interface. Each run
// opens one connection, issues one idempotent CREATE TABLE, one multi-row
// insert, one commit, and closes.
package warehouse
