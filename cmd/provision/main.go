// Command provision creates the wallet schema and optionally seeds a demo
// wallet so the wiring can be verified end to end.
package main

import (
	"context"
	"log"
	"os"

	"purse/internal/config"
	"purse/internal/metrics"
	"purse/internal/repositories"
	"purse/internal/services/wallet"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer repositories.CloseDB()

	if err := repositories.Migrate(); err != nil {
		log.Fatal("Failed to migrate wallet schema:", err)
	}
	log.Println("Wallet schema ready")

	seedUserID := os.Getenv("SEED_USER_ID")
	if seedUserID == "" {
		return
	}

	store := repositories.NewGormStore(repositories.DB)
	cache := repositories.NewWalletCache(
		repositories.RedisClient,
		config.GetDurationEnv("WALLET_CACHE_TTL", wallet.DefaultCacheTTL),
	)
	collector := metrics.NewPrometheusCollector(prometheus.NewRegistry())
	svc := wallet.NewService(store, cache, collector)

	ctx := context.Background()

	w, err := svc.Create(ctx, seedUserID, config.GetEnv("SEED_WALLET_NAME", "Demo Wallet"))
	if err != nil {
		log.Fatal("Failed to create seed wallet:", err)
	}
	log.Printf("Seed wallet %s ready, balance %s", w.ID, w.Balance)

	amount := config.GetEnv("SEED_CREDIT_AMOUNT", "")
	if amount == "" {
		return
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		log.Fatal("Invalid SEED_CREDIT_AMOUNT:", err)
	}

	res, err := svc.Credit(ctx, w.ID, value, "Provisioning seed credit", nil)
	if err != nil {
		log.Fatal("Failed to credit seed wallet:", err)
	}
	if !res.Success {
		log.Fatalf("Seed credit rejected: %s", res.Message)
	}
	log.Printf("Seed credit posted, reference %s, balance %s",
		res.Transaction.Reference, res.Transaction.Balance)
}
