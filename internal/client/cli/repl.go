package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sgrsensor/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Sensors(ctx context.Context) error
	Sensor(ctx context.Context, args []string) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	State(ctx context.Context) error
	Mode(ctx context.Context, args []string) error
	Signals(ctx context.Context) error
	Setpoint(ctx context.Context, args []string) error
	Data(ctx context.Context, args []string) error
	Users(ctx context.Context) error
}

const (
	guestHelp = "Available commands: login, register, restore, whoami, help, exit"
	userHelp  = "Available commands: sensors, sensor [id], start, stop, state, mode [n], " +
		"signals, setpoint <id> <value>, data [minutes], users, whoami, register, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the SGR Sensor CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its arguments, and dispatches to methods on 'a'. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help               show available commands
//	  - login              authenticate
//	  - register           create an account
//	  - restore            ask for a new password by email
//	  - whoami             show the logged-in user
//	  - exit | quit        leave the program
//
//	Logged in:
//	  - sensors            list sensors
//	  - sensor [id]        show (and select) a sensor
//	  - start | stop       run control of the current sensor
//	  - state              running state of the current sensor
//	  - mode [n]           show or set the operating mode
//	  - signals            list signals of the current sensor
//	  - setpoint <id> <v>    change an input setpoint
//	  - data [minutes]     recent samples of the current sensor
//	  - users              list users
//	  - logout             close the session
//
// Command errors are reported to the user and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sgr> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "login":
			report(a.Login(ctx))

		case "register":
			report(a.Register(ctx))

		case "restore":
			report(a.Restore(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "sensors":
			report(a.Sensors(ctx))

		case "sensor":
			report(a.Sensor(ctx, args))

		case "start":
			report(a.Start(ctx))

		case "stop":
			report(a.Stop(ctx))

		case "state":
			report(a.State(ctx))

		case "mode":
			report(a.Mode(ctx, args))

		case "signals":
			report(a.Signals(ctx))

		case "setpoint":
			report(a.Setpoint(ctx, args))

		case "data":
			report(a.Data(ctx, args))

		case "users":
			report(a.Users(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func protected(cmd string) bool {
	switch cmd {
	case "logout", "sensors", "sensor", "start", "stop", "state", "mode",
		"signals", "setpoint", "data", "users":
		return true
	}
	return false
}

func report(err error) {
	if err == nil {
		return
	}

	var apiErr *services.APIError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		printlnFn("Not authorized. Please log in.")
	case errors.As(err, &apiErr) && apiErr.Message != "":
		printlnFn("Error:", apiErr.Message)
	default:
		printlnFn("Error:", err)
	}
}
