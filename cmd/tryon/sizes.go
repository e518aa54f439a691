package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/example/tryon/internal/sizing"
)

type sizesCmd struct {
	*root
	fs   *flag.FlagSet
	base string
	code string
}

func (c *sizesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseSizesCmd(args []string, r *root) (*sizesCmd, error) {
	fs := flag.NewFlagSet("sizes", flag.ExitOnError)
	cmd := &sizesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.base, "base", "", "size the product image was photographed at")
	fs.StringVar(&cmd.code, "code", "", "article code whose sizes and SKUs to list")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.code == "" && (cmd.base == "" || fs.NArg() == 0) {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *sizesCmd) Run() error {
	labels := c.fs.Args()
	base := c.base
	var variants []sizing.Variant
	if c.code != "" {
		lookup, _, err := c.openCatalog()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		p, err := lookup.Lookup(ctx, c.code)
		if err != nil {
			return fmt.Errorf("lookup %s: %w", c.code, err)
		}
		if base == "" {
			base = p.InitialSize()
		}
		if len(labels) == 0 {
			labels = p.Sizes
		}
		variants = p.Variants
	}
	opts := sizing.Options(labels, base, variants)
	if len(opts) == 0 {
		fmt.Fprintln(c.out(), "no sizes available")
		return nil
	}
	for _, o := range opts {
		marker := " "
		if sizing.NormalizeKey(o.Label) == sizing.NormalizeKey(base) {
			marker = "*"
		}
		fmt.Fprintf(c.out(), "%s %-16s x%.3f %s\n", marker, o.Label, o.Scale, o.SKU)
	}
	return nil
}
