// CLI tool to seed the key-value store with the full reference food catalog.
// The app reads it back under the "foodCatalog" key when no CATALOG_URL is set.
// Usage: go run ./cmd/seed-catalog (from the repo root)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// catalogEntry mirrors the JSON shape the app expects from a catalog source.
type catalogEntry struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
}

// referenceCatalog is the full food table. Order matters: name lookup in the
// app returns the first substring match, so broad names stay near the top.
var referenceCatalog = []catalogEntry{
	{Name: "白飯", Unit: "碗", Calories: 280, ProteinG: 5},
	{Name: "糙米飯", Unit: "碗", Calories: 220, ProteinG: 6},
	{Name: "雞腿", Unit: "隻", Calories: 350, ProteinG: 30},
	{Name: "排骨", Unit: "塊", Calories: 400, ProteinG: 25},
	{Name: "雞胸肉", Unit: "份", Calories: 180, ProteinG: 35},
	{Name: "炒青菜", Unit: "份", Calories: 150, ProteinG: 3},
	{Name: "蒸蛋", Unit: "份", Calories: 130, ProteinG: 12},
	{Name: "貢丸湯", Unit: "碗", Calories: 200, ProteinG: 10},
	{Name: "滷蛋", Unit: "顆", Calories: 90, ProteinG: 7},
	{Name: "無糖豆漿", Unit: "杯", Calories: 110, ProteinG: 10},
	{Name: "乳清蛋白", Unit: "份", Calories: 150, ProteinG: 25},
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	raw, err := json.Marshal(referenceCatalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshalling catalog: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := client.Set(ctx, "foodCatalog", raw, 0).Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing catalog to %s: %v\n", addr, err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d catalog entries to %s under key %q.\n", len(referenceCatalog), addr, "foodCatalog")
}
