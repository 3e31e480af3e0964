package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"hark-back/internal/empathy"
	"hark-back/internal/store"
	"hark-back/internal/tui"
)

// runChat opens the Empathy Engine TUI, preselecting chat.role and chat.mode from config.
func runChat(ctx context.Context) error {
	opts := tui.Options{Mode: cfg.Chat.Mode}
	if cfg.Chat.Role != "" {
		role, err := empathy.ParseRole(cfg.Chat.Role)
		if err != nil {
			return err
		}
		opts.Role = role
	}
	session, _, closeStore, err := openChat(empathy.Context{UserRole: string(opts.Role), Mode: opts.Mode})
	if err != nil {
		return err
	}
	defer closeStore()
	return tui.Run(ctx, session, opts)
}

func printHistory(ctx context.Context, out io.Writer, n int) error {
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("closing history store", zap.Error(err))
		}
	}()

	recent, err := db.Recent(ctx, n)
	if err != nil {
		return err
	}
	convs, err := db.Transcripts(ctx, recent)
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		fmt.Fprintln(out, "no conversations yet")
		return nil
	}
	for _, c := range convs {
		fmt.Fprintf(out, "%s  %s/%s  %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Role, c.Mode, c.Title)
		for _, m := range c.Messages {
			fmt.Fprintf(out, "  %-9s %s\n", m.Role+":", strings.ReplaceAll(m.Content, "\n", "\n            "))
		}
		fmt.Fprintln(out)
	}
	return nil
}
