package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func listScenarios(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	scenarios, err := db.List(context.Background())
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		fmt.Println("no scenarios found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUPDATED\tQUERY")
	for _, sc := range scenarios {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sc.ID, sc.Name, humanize.Time(sc.UpdatedAt), sc.Query)
	}
	return w.Flush()
}

func runLoad(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sc, err := db.Load(context.Background(), args[0])
	if err != nil {
		return err
	}
	base, err := cfg.InitialState()
	if err != nil {
		return err
	}
	s, warnings, err := sc.State(base)
	if err != nil {
		return err
	}
	logWarnings(warnings)
	return show(cfg.Policy().Apply(s))
}

func runDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}
