package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/example/tryon/internal/catalog"
)

type catalogCmd struct {
	*root
	fs   *flag.FlagSet
	addr string
}

func (c *catalogCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCatalogCmd(args []string, r *root) (*catalogCmd, error) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	c := &catalogCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.addr, "addr", ":8080", "listen address for serve")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *catalogCmd) Run() error {
	args := c.fs.Args()
	switch args[0] {
	case "lookup":
		if len(args) < 2 {
			return &UsageError{of: c}
		}
		return c.runLookup(args[1:])
	case "codes":
		return c.runCodes()
	case "serve":
		return c.runServe()
	default:
		return fmt.Errorf("unknown catalog command: %s", args[0])
	}
}

func (c *catalogCmd) runLookup(codes []string) error {
	lookup, _, err := c.openCatalog()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, code := range codes {
		p, err := lookup.Lookup(ctx, code)
		if err != nil {
			return fmt.Errorf("lookup %s: %w", code, err)
		}
		data, err := sonic.ConfigStd.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out(), string(data))
	}
	return nil
}

func (c *catalogCmd) runCodes() error {
	lookup, _, err := c.openCatalog()
	if err != nil {
		return err
	}
	m, ok := lookup.(*catalog.Memory)
	if !ok {
		return errors.New("codes needs a catalog file")
	}
	for _, code := range m.Codes() {
		fmt.Fprintln(c.out(), code)
	}
	return nil
}

func (c *catalogCmd) runServe() error {
	lookup, _, err := c.openCatalog()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              c.addr,
		Handler:           catalog.NewHandler(lookup).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", c.addr).Msg("serving catalog")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
