// cmd/seeditems/main.go: fills the configured storage slot with demo items.
// Uso: go run ./cmd/seeditems
// Items whose id already exists are overwritten; other items are left alone.
package main

import (
	"context"
	"os"
	"time"

	"bisnispintar/internal/config"
	"bisnispintar/internal/dto"
	"bisnispintar/internal/infra"
	"bisnispintar/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var demo = []dto.SaveItemRequest{
	{ID: "demo-kopi", Name: "Kopi Bubuk 250g", Stock: 50, CapitalPrice: decimal.NewFromInt(18000), SellingPrice: decimal.NewFromInt(25000), Category: "Minuman"},
	{ID: "demo-teh", Name: "Teh Celup isi 25", Stock: 40, CapitalPrice: decimal.NewFromInt(6500), SellingPrice: decimal.NewFromInt(9000), Category: "Minuman"},
	{ID: "demo-gula", Name: "Gula Pasir 1kg", Stock: 3, CapitalPrice: decimal.NewFromInt(14500), SellingPrice: decimal.NewFromInt(17000), Category: "Sembako"},
	{ID: "demo-beras", Name: "Beras Premium 5kg", Stock: 12, CapitalPrice: decimal.NewFromInt(68000), SellingPrice: decimal.NewFromInt(76000), Category: "Sembako"},
	{ID: "demo-minyak", Name: "Minyak Goreng 2L", Stock: 4, CapitalPrice: decimal.NewFromInt(32000), SellingPrice: decimal.NewFromInt(36500), Category: "Sembako"},
	{ID: "demo-sabun", Name: "Sabun Mandi", Stock: 30, CapitalPrice: decimal.NewFromInt(3000), SellingPrice: decimal.NewFromInt(4500), Category: "Kebersihan"},
	{ID: "demo-keripik", Name: "Keripik Singkong", Stock: 25, CapitalPrice: decimal.NewFromInt(7000), SellingPrice: decimal.NewFromInt(12000)},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	repo, err := infra.NewItemRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	inv, err := service.NewInventoryService(ctx, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load inventory")
	}

	for _, req := range demo {
		if err := inv.Add(ctx, req.ToItem(req.ID)); err != nil {
			log.Fatal().Err(err).Str("item_id", req.ID).Msg("seed failed")
		}
	}

	m := inv.Metrics()
	log.Info().
		Str("driver", repo.Driver()).
		Str("slot", cfg.StorageSlot).
		Int("items", m.TotalItems).
		Str("total_capital", infra.FormatRupiah(m.TotalCapital)).
		Msg("demo items seeded")
}
