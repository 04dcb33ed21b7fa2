package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/reconcile"
)

func TestParseArgs(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		args, err := parseArgs([]string{"product"})
		require.NoError(t, err)
		assert.Equal(t, domain.EntityProduct, args.entity)
		assert.Equal(t, domain.PlatformWooCommerce, args.source)
		assert.Equal(t, domain.PlatformShopify, args.destination)
		assert.Equal(t, "json", args.format)
	})

	t.Run("reverse direction as yaml", func(t *testing.T) {
		args, err := parseArgs([]string{"customer", "shopify", "woocommerce", "yaml"})
		require.NoError(t, err)
		assert.Equal(t, domain.PlatformShopify, args.source)
		assert.Equal(t, "yaml", args.format)
	})

	bad := map[string][]string{
		"no arguments":   {},
		"unknown type":   {"widget"},
		"same platform":  {"product", "shopify", "shopify"},
		"unknown format": {"product", "woocommerce", "shopify", "xml"},
		"too many":       {"product", "woocommerce", "shopify", "json", "extra"},
	}
	for name, args := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := parseArgs(args)
			assert.Error(t, err)
		})
	}
}

func TestRenderYAML(t *testing.T) {
	report := &reconcile.GapReport{
		Entity: domain.EntityCoupon,
		Differences: []interface{}{
			domain.CouponDifference{ID: "2", Code: "WELCOME", DiscountType: domain.DiscountTypeFixedCart, Amount: "5.00"},
		},
		Summary: reconcile.Summary{SourceTotal: 2, DestinationTotal: 1, Matched: 1, OnlyInSource: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, report, "yaml"))

	var decoded struct {
		Entity      string `yaml:"entity"`
		Differences []struct {
			Code string `yaml:"code"`
		} `yaml:"differences"`
		Summary reconcile.Summary `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "coupon", decoded.Entity)
	require.Len(t, decoded.Differences, 1)
	assert.Equal(t, "WELCOME", decoded.Differences[0].Code)
	assert.Equal(t, 1, decoded.Summary.OnlyInSource)
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, &reconcile.InventoryReport{Deltas: []domain.InventoryDifference{}}, "json"))
	assert.Contains(t, buf.String(), `"deltas": []`)
}
