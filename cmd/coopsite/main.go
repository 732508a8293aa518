package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/goliatone/go-coopsite"
	"github.com/goliatone/go-coopsite/internal/contact"
	"github.com/goliatone/go-coopsite/internal/schema"
)

const usage = `usage: coopsite <command> [flags]

commands:
  serve        run the JSON API
  render       print one page view model as JSON
  schema       print the content type catalog as JSON Schema
  submissions  list recorded contact submissions
`

var moduleBuilder = func(cfg coopsite.Config) (*coopsite.Module, error) {
	return coopsite.New(cfg)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("coopsite: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("missing command")
	}
	switch args[0] {
	case "serve":
		return runServe(args[1:])
	case "render":
		return runRender(args[1:], out)
	case "schema":
		return runSchema(args[1:], out)
	case "submissions":
		return runSubmissions(args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func loadModule(configPath string) (*coopsite.Module, coopsite.Config, error) {
	cfg, err := coopsite.LoadConfig(configPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("load config: %w", err)
	}
	module, err := moduleBuilder(cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("bootstrap module: %w", err)
	}
	return module, cfg, nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	addr := fs.String("addr", "", "Listen address (overrides http.addr)")
	lang := fs.String("lang", "", "Default language (overrides site.default_language)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, cfg, err := loadModule(*configPath)
	if err != nil {
		return err
	}
	defer module.Close()

	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *lang != "" {
		module.SetDefaultLanguage(*lang)
	}
	logger := module.Logger()
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           module.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http.listen", "addr", cfg.HTTP.Addr, "lang", module.DefaultLanguage().String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	logger.Info("http.shutdown")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runRender(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	page := fs.String("page", string(coopsite.PageHome), "Page to render (home, about, pilot, contact, blog)")
	lang := fs.String("lang", "", "Language code (en, du); defaults to site.default_language")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, cfg, err := loadModule(*configPath)
	if err != nil {
		return err
	}
	defer module.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sanity.Timeout+5*time.Second)
	defer cancel()

	view, err := module.Render(ctx, coopsite.Page(*page), *lang)
	if err != nil {
		return err
	}
	return writeJSON(out, view)
}

func runSchema(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	typeName := fs.String("type", "", "Print only this content type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *typeName == "" {
		return writeJSON(out, schema.JSONSchemas())
	}
	t, ok := schema.Lookup(*typeName)
	if !ok {
		return fmt.Errorf("%w: %s", schema.ErrUnknownType, *typeName)
	}
	return writeJSON(out, schema.JSONSchema(t))
}

func runSubmissions(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("submissions", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	status := fs.String("status", "", "Filter by status (pending, sent, failed)")
	limit := fs.Int("limit", 20, "Maximum rows to print")
	offset := fs.Int("offset", 0, "Rows to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, _, err := loadModule(*configPath)
	if err != nil {
		return err
	}
	defer module.Close()

	records, total, err := module.Contact().List(context.Background(), contact.ListOptions{
		Status: contact.Status(*status),
		Limit:  *limit,
		Offset: *offset,
	})
	if err != nil {
		return fmt.Errorf("list submissions: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REFERENCE\tSTATUS\tLANG\tEMAIL\tSUBMITTED")
	for _, record := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			record.Reference, record.Status, record.Language, record.Email,
			record.SubmittedAt.UTC().Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d submissions\n", len(records), total)
	return nil
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
