package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.user != nil {
		s = a.user.Username
	} else if a.machine.Username() != "" {
		s = a.machine.Username() + " " + string(a.machine.State())
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the Universe CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.Login(ctx)

	for {
		fmt.Fprintf(a.out, "universe %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: whoami, update-profile, change-password, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, reset, exit")
			}

		case "login":
			a.Login(ctx)
		case "reset":
			a.machine.ResetLogin()
			fmt.Fprintln(a.out, "Login flow reset")
		case "whoami":
			a.whoami(ctx)
		case "update-profile":
			a.updateProfile(ctx)
		case "change-password":
			a.changePassword(ctx)
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) Logout(ctx context.Context) {
	a.session.Logout()
	a.user = nil
	a.machine.ResetLogin()
	fmt.Fprintln(a.out, "Logged out")
}
