package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jafarshop/storemigrate/internal/config"
	"github.com/jafarshop/storemigrate/internal/connector"
	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/logger"
	"github.com/jafarshop/storemigrate/internal/normalize"
	"github.com/jafarshop/storemigrate/internal/reconcile"
	"github.com/jafarshop/storemigrate/internal/service"
	"github.com/jafarshop/storemigrate/internal/shopify"
	"github.com/jafarshop/storemigrate/internal/woocommerce"
)

const usage = `Usage: go run cmd/compare/main.go <type> [source] [destination] [json|yaml]

  type         product, customer, order, collection, coupon, page, blog_post,
               or inventory for stock deltas of matched products
  source       woocommerce (default) or shopify
  destination  shopify (default) or woocommerce
  format       json (default) or yaml

Example: go run cmd/compare/main.go customer woocommerce shopify yaml`

func main() {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s\n", err, usage)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so the report can be piped
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()

	connectors := connector.Set{
		domain.PlatformWooCommerce: woocommerce.NewClient(cfg.WooCommerce, cfg.Fetch, log),
		domain.PlatformShopify:     shopify.NewClient(cfg.Shopify, cfg.Fetch, log),
	}
	registry := normalize.NewRegistry(woocommerce.Normalizer{}, shopify.Normalizer{})
	svc := service.NewCompareService(connectors, registry, reconcile.NewEngine(registry, log), log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	req := service.CompareRequest{Type: args.entity, Source: args.source, Destination: args.destination}
	var report interface{}
	if args.entity == domain.EntityInventory {
		report, err = svc.InventoryDeltas(ctx, req)
	} else {
		report, err = svc.Gaps(ctx, req)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Comparison failed: %v\n", err)
		os.Exit(1)
	}

	if err := render(os.Stdout, report, args.format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		os.Exit(1)
	}
}

type arguments struct {
	entity      domain.EntityType
	source      domain.Platform
	destination domain.Platform
	format      string
}

func parseArgs(args []string) (arguments, error) {
	out := arguments{
		source:      domain.PlatformWooCommerce,
		destination: domain.PlatformShopify,
		format:      "json",
	}
	if len(args) < 1 || len(args) > 4 {
		return out, fmt.Errorf("expected 1 to 4 arguments, got %d", len(args))
	}

	out.entity = domain.EntityType(args[0])
	if !out.entity.IsValid() {
		return out, fmt.Errorf("unknown type %q", args[0])
	}
	if len(args) > 1 {
		out.source = domain.Platform(args[1])
	}
	if len(args) > 2 {
		out.destination = domain.Platform(args[2])
	}
	if len(args) > 3 {
		out.format = args[3]
	}

	if !out.source.IsValid() || !out.destination.IsValid() {
		return out, fmt.Errorf("platforms must be woocommerce or shopify")
	}
	if out.source == out.destination {
		return out, fmt.Errorf("source and destination are both %s", out.source)
	}
	if out.format != "json" && out.format != "yaml" {
		return out, fmt.Errorf("unknown format %q", out.format)
	}
	return out, nil
}

func render(w io.Writer, report interface{}, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
