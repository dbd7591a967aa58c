package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldboost/internal/api"
	"github.com/san-kum/fieldboost/internal/viz"
)

var serveAddr string

func runServe(cmd *cobra.Command, args []string) error {
	base, err := scenario(cmd)
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &api.Server{
		Base:    base,
		Policy:  cfg.Policy(),
		DB:      db,
		Theme:   viz.GetTheme(cfg.Theme),
		Workers: cfg.Sweep.Workers,
	}
	return srv.ListenAndServe(ctx, serveAddr)
}
