package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"docket-system/config"
	"docket-system/db"
	"docket-system/models"
	"docket-system/notify"
	"docket-system/services"
	"docket-system/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(ctx, cfg)
		return
	}

	st, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "store:", err)
		os.Exit(1)
	}
	defer cleanup()

	sess := services.NewSession(st, logger)
	if cfg.Kitchen.BotToken != "" {
		kb, err := notify.New(cfg.Kitchen.BotToken, cfg.Kitchen.ChatID, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "kitchen bot:", err)
			os.Exit(1)
		}
		sess.SetNotifier(kb)
		fmt.Println("Kitchen notifications enabled.")
	}

	runTerminal(ctx, sess)
}

func runMigrate(ctx context.Context, cfg *config.Config) {
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := applyMigrations(ctx, pool, true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Store.Driver {
	case "sqlite":
		s, err := store.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "memory":
		return store.NewMemory(), func() {}, nil
	default:
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		// Optional auto-migration (useful for fresh DBs). Set AUTO_MIGRATE=1.
		if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
			if err := applyMigrations(ctx, pool, false); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return store.NewPostgres(pool), pool.Close, nil
	}
}

// runTerminal is the thin order-entry front end: it only collects input
// and prints, all behavior lives in the session.
func runTerminal(ctx context.Context, sess *services.Session) {
	fmt.Println("Docket ordering system. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		cmd, rest, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "":
		case "help":
			printHelp()
		case "menu":
			printMenu()
		case "list":
			for _, line := range sess.Draft().Lines() {
				fmt.Println(line)
			}
		case "add":
			sess.Draft().InsertText(rest)
		case "remove":
			sess.Draft().Remove(rest)
		case "modify":
			parts := strings.Split(rest, " | ")
			selection := parts[0]
			comment := ""
			allergy := false
			if len(parts) > 1 {
				comment = parts[1]
			}
			if len(parts) > 2 && parts[2] == "allergy" {
				allergy = true
			}
			if newText, ok := sess.Draft().Modify(selection, comment, allergy); ok {
				fmt.Println("->", newText)
			}
		case "place":
			res, err := sess.PlaceOrder(ctx, rest)
			if err != nil {
				fmt.Println("⚠️", err)
				break
			}
			for _, skipped := range res.Skipped {
				fmt.Printf("⚠️ %q not on the menu, skipped.\n", skipped)
			}
			fmt.Printf("✅ Order %d placed, docket %d.\n", res.OrderID, res.DocketID)
		case "active":
			printViews(ctx, sess.ProjectActive)
		case "archived":
			printViews(ctx, sess.ProjectArchived)
		case "bump":
			if err := sess.Bump(ctx, rest); err != nil {
				fmt.Println("⚠️", err)
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func printHelp() {
	fmt.Println(`menu                                   show the menu
list                                   show the current docket
add <item>                             add an item, e.g. add Steak (Med Rare)
remove <line>                          remove the matching docket line
modify <line> | <comment> [| allergy]  replace a line's adjustment
place <table>                          place the order for a table
active / archived                      show the docket screens
bump Table <n>                         archive a table's oldest order
quit`)
}

func printMenu() {
	for _, c := range models.Categories {
		fmt.Println(c.Header())
		for _, name := range models.MenuFor(c) {
			fmt.Println("  " + name)
		}
	}
}

func printViews(ctx context.Context, project func(context.Context) ([]models.DocketView, error)) {
	views, err := project(ctx)
	if err != nil {
		fmt.Println("⚠️", err)
		return
	}
	for _, v := range views {
		fmt.Println(v.Title())
		for _, g := range v.Groups {
			fmt.Printf("  %s: %s\n", g.Category, g.Line)
		}
	}
}
