// Command pagedb browses a PostgreSQL database the way a page would: list
// tables and routines, show a table, describe a routine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Konsultn-Engineering/pagedb"
	"github.com/Konsultn-Engineering/pagedb/connector"
	"github.com/Konsultn-Engineering/pagedb/engine"
	"github.com/Konsultn-Engineering/pagedb/sink"
)

const usage = `usage: pagedb [flags] <command> [arg]

commands:
  tables               list the tables of the public schema
  functions            list stored functions and procedures
  show <table>         print every row of a table
  describe <function>  print the comment attached to a routine

flags:
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "pagedb:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pagedb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "YAML connection config")
	dsn := fs.String("dsn", os.Getenv("DATABASE_URL"), "connection URL, overrides -config")
	driver := fs.String("driver", "", "driver: pgx or pq")
	verbose := fs.Bool("v", false, "log statements to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd, arg, err := command(fs.Args())
	if err != nil {
		fs.Usage()
		return err
	}

	cfg, err := loadConfig(*configPath, *dsn, *driver)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	db, err := pagedb.New(cfg, pagedb.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := db.Connect(ctx); err != nil {
		return err
	}
	defer db.Close()

	return execute(ctx, db, cmd, arg, stdout)
}

func command(args []string) (string, string, error) {
	if len(args) == 0 {
		return "", "", errors.New("missing command")
	}
	cmd := args[0]
	switch cmd {
	case "tables", "functions":
		if len(args) != 1 {
			return "", "", fmt.Errorf("%s takes no arguments", cmd)
		}
		return cmd, "", nil
	case "show", "describe":
		if len(args) != 2 {
			return "", "", fmt.Errorf("%s takes exactly one argument", cmd)
		}
		return cmd, args[1], nil
	default:
		return "", "", fmt.Errorf("unknown command %q", cmd)
	}
}

func loadConfig(path, dsn, driver string) (connector.Config, error) {
	var cfg connector.Config
	switch {
	case dsn != "":
		cfg = connector.Config{URL: dsn}
	case path != "":
		var err error
		if cfg, err = connector.LoadConfig(path); err != nil {
			return cfg, err
		}
	default:
		return cfg, errors.New("no database: set -dsn, -config or DATABASE_URL")
	}
	if driver != "" {
		cfg.Driver = driver
	}
	return cfg, nil
}

func execute(ctx context.Context, db *pagedb.Database, cmd, arg string, w io.Writer) error {
	page := &sink.MemoryPage{Table: arg}

	var out *pagedb.Outcome
	switch cmd {
	case "tables":
		out = db.GetTableNames(ctx)
	case "functions":
		out = db.GetFunctions(ctx)
	case "show":
		out = db.GetResultTable(ctx, page)
	case "describe":
		out = db.GetFunctionDescription(ctx, arg)
	}
	if err := out.Err(); err != nil {
		return err
	}
	out.Apply(page)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	switch cmd {
	case "tables":
		for _, name := range page.TableNames {
			fmt.Fprintln(tw, name)
		}
		fmt.Fprintln(tw, engine.Count(int64(len(page.TableNames)), "table"))
	case "functions":
		fmt.Fprintln(tw, "KIND\tSIGNATURE\tINPUTS")
		for _, fn := range page.Functions {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", fn.Kind, fn.Signature(), strings.Join(fn.InputArgs(), ", "))
		}
		fmt.Fprintln(tw, engine.Count(int64(len(page.Functions)), "routine"))
	case "show":
		fmt.Fprintln(tw, strings.Join(page.ColumnNames, "\t"))
		for _, row := range page.Data {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = sink.Text(v)
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		fmt.Fprintln(tw, engine.Count(int64(len(page.Data)), "row"))
	case "describe":
		if page.Description == "" {
			fmt.Fprintf(tw, "%s has no description\n", arg)
		} else {
			fmt.Fprintln(tw, page.Description)
		}
	}
	return nil
}
