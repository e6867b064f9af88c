// Package config loads runtime configuration for the rollcall CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. ROLLCALL_* environment variables (SERVER_ADDR, USER, PASSWORD,
//     LANGUAGE, TIMEOUT).
//  3. Command-line flags bound by the cli package, which override earlier
//     values.
package config
