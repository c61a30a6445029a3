package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/lumina-journal/lumina/internal/client/connectivity"
)

func (a *App) getStatus() string {
	name := ""
	if a.session != nil {
		name = a.session.DisplayName + " "
	}

	var status string
	switch a.monitor.CurrentStatus() {
	case connectivity.StatusOffline:
		status = color.RedString("offline")
	case connectivity.StatusUnstable:
		status = color.YellowString("unstable")
	default:
		if a.monitor.IsStable() {
			status = color.GreenString("online")
		} else {
			status = color.YellowString("connecting")
		}
	}
	return fmt.Sprintf("(%s%s)", name, status)
}

// root runs the interactive command loop until the user exits. The loop
// reads through the same buffered reader as the interactive prompts so no
// input is lost between them.
func (a *App) root(ctx context.Context) {
	fmt.Println("Lumina CLI (type 'help' for commands)")

	for {
		fmt.Printf("lumina %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "unlock":
			a.offlineUnlock(ctx)
		case "resend":
			a.resendConfirmation(ctx)
		case "logout":
			a.logout(ctx)

		case "today", "day":
			a.showDay(ctx, args)
		case "task":
			a.taskCmd(ctx, args)
		case "hour":
			a.tagHour(ctx, args)
		case "mood":
			a.setMood(ctx, args)
		case "expense":
			a.addExpense(ctx, args)
		case "journal":
			a.addJournalEntry(ctx)
		case "weight":
			a.setWeight(ctx, args)

		case "highlight":
			a.highlightCmd(ctx, args)

		case "export":
			a.exportBackup(ctx, args)
		case "import":
			a.importBackup(ctx, args)

		case "status":
			a.showStatus()
		case "save":
			a.coordinator.Kick(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Println("Available commands:")
		fmt.Println("  today [date]        show a day")
		fmt.Println("  task add|done|list  manage tasks")
		fmt.Println("  hour <h> <cat,...>  tag an hour with categories")
		fmt.Println("  mood <id>           set today's mood")
		fmt.Println("  expense <amt> <cat> [description]")
		fmt.Println("  journal             add a journal entry")
		fmt.Println("  weight <kg>         record today's weight")
		fmt.Println("  highlight add|list|remove")
		fmt.Println("  export [file] / import <file>")
		fmt.Println("  status, save, logout, exit")
	} else {
		fmt.Println("Available commands: register, login, unlock, resend, status, exit")
	}
}
