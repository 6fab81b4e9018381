// Package config provides configuration helpers for the library circulation system.
//
// It contains factory functions for PostgreSQL connections using the supported drivers
// (pgx.Pool, sql.DB, sqlx.DB), the OpenTelemetry provider setup, and the loader
// for the circulation policy file.
//
// This package is part of the shell (infrastructure) layer.
package config
