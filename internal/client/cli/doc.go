// Package cli provides the rollcall command-line client.
//
// Every one-shot command (mark, mark-voice, report, daily, export,
// provision) logs in as the configured user, performs one call and logs
// out again. The repl command keeps one session open for an interactive
// loop. Passwords are read from the terminal without echo unless
// ROLLCALL_PASSWORD is set.
package cli
