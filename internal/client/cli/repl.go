package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/rollcall/internal/client/client"
	"github.com/dmitrijs2005/rollcall/internal/voice"
)

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Provision(ctx context.Context, username string) error
	Mark(ctx context.Context, name, event string) error
	MarkVoice(ctx context.Context, in voice.Input, language, event string) error
	Report(ctx context.Context, f client.Filter, asCSV bool) error
	Daily(ctx context.Context) error
	Export(ctx context.Context, f client.Filter, keep bool) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
//	help                 show available commands
//	login | logout       open or close the session
//	mark [name...]       mark a person present (prompts when no name)
//	voice [event]        mark from a typed transcription
//	report [name...]     list records, optionally for one name
//	daily                counts per day
//	export [save]        publish a CSV report, optionally downloading it
//	provision [username] create an operator (admin only)
//
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer, language string) {
	for {
		fmt.Fprintf(out, "rollcall %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		rest := strings.Join(args, " ")

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}

		if cmd != "help" && cmd != "login" && !a.isLoggedIn() {
			fmt.Fprintln(out, "Not logged in, type 'login'")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: mark, voice, report, daily, export, provision, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: login, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "mark":
			name, event := rest, ""
			if name == "" {
				if name, cmdErr = GetSimpleText(reader, "Name", out); cmdErr != nil {
					break
				}
				if event, cmdErr = GetSimpleText(reader, "Event (empty for General)", out); cmdErr != nil {
					break
				}
			}
			cmdErr = a.Mark(ctx, name, event)

		case "voice":
			cmdErr = a.MarkVoice(ctx, promptInput{reader: reader, out: out}, language, rest)

		case "report":
			var f client.Filter
			if rest != "" {
				f.Name = &rest
			}
			cmdErr = a.Report(ctx, f, false)

		case "daily":
			cmdErr = a.Daily(ctx)

		case "export":
			cmdErr = a.Export(ctx, client.Filter{}, rest == "save")

		case "provision":
			cmdErr = a.Provision(ctx, rest)

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
	}
}
