package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	s := a.sessions.Snapshot()
	if s.Authenticated() {
		return fmt.Sprintf("(%s)", s.Identity)
	}
	return "(anonymous)"
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to PasteFlow CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "pf %s> ", a.getStatus())
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
		case "login":
			a.Login(ctx)
		case "register":
			a.Register(ctx)
		case "logout":
			a.Logout(ctx)
		case "new":
			a.newPaste(ctx)
		case "show":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: show <id>")
				continue
			}
			a.show(ctx, args[0])
		case "download":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: download <id> [file]")
				continue
			}
			name := ""
			if len(args) > 1 {
				name = args[1]
			}
			a.download(ctx, args[0], name)
		case "mine":
			a.mine(ctx)
		case "search":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: search <query>")
				continue
			}
			a.search(ctx, strings.Join(args, " "))
		case "save":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: save <id>")
				continue
			}
			a.save(ctx, args[0])
		case "delete":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: delete <id>")
				continue
			}
			a.deletePaste(ctx, args[0])
		case "claim":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: claim <id> [secret]")
				continue
			}
			secret := ""
			if len(args) > 1 {
				secret = args[1]
			}
			a.claim(ctx, args[0], secret)
		case "stats":
			a.stats(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.sessions.Snapshot().Authenticated() {
		fmt.Fprintln(a.out, "Available commands: new, show <id>, download <id>, mine, search <q>, save <id>, delete <id>, claim <id>, stats, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: new, show <id>, download <id>, search <q>, claim <id>, stats, login, register, exit")
	}
}
