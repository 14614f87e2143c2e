package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/distrocart/backend/internal/catalog"
	"github.com/distrocart/backend/pkg/cache"
	"github.com/distrocart/backend/pkg/config"
	"github.com/distrocart/backend/pkg/db"
	"github.com/distrocart/backend/pkg/db/models"
	"github.com/distrocart/backend/pkg/logger"
)

type seedOffering struct {
	productSKU      string
	distributorCode string
	sku             string
	priceCents      int
	deliveryDays    int
	inStock         bool
	stockQuantity   int
}

var seedProducts = []models.Product{
	{Name: "Thermal Shipping Labels 4x6 (500ct)", SKU: "LBL-4X6-500"},
	{Name: "Heavy Duty Packing Tape 48mm", SKU: "TPE-HD-48"},
	{Name: "Corrugated Box 12x12x12 (25pk)", SKU: "BOX-121212-25"},
	{Name: "Bubble Mailer #5 10.5x16 (100ct)", SKU: "MLR-5-100"},
}

var seedDistributors = []models.Distributor{
	{Name: "Acme Supply", Code: "ACME", AverageDeliveryDays: 2, ReliabilityScore: 0.98},
	{Name: "Northline Wholesale", Code: "NORTH", AverageDeliveryDays: 4, ReliabilityScore: 0.93},
	{Name: "Pacific Distribution", Code: "PACIFIC", AverageDeliveryDays: 6, ReliabilityScore: 0.90},
}

var seedOfferings = []seedOffering{
	{"LBL-4X6-500", "ACME", "ACME-LBL-001", 2499, 2, true, 120},
	{"LBL-4X6-500", "NORTH", "NW-88101", 2199, 4, true, 340},
	{"LBL-4X6-500", "PACIFIC", "PD-LBL-46", 1999, 6, true, 75},
	{"TPE-HD-48", "ACME", "ACME-TPE-014", 899, 2, true, 500},
	{"TPE-HD-48", "PACIFIC", "PD-TPE-48", 749, 6, false, 0},
	{"BOX-121212-25", "NORTH", "NW-88412", 3299, 4, true, 60},
	{"BOX-121212-25", "PACIFIC", "PD-BOX-12", 2899, 6, true, 200},
	{"MLR-5-100", "ACME", "ACME-MLR-005", 1599, 2, true, 90},
	{"MLR-5-100", "NORTH", "NW-88550", 1449, 4, true, 150},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a production database", nil)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := catalog.NewRepository(dbClient.DB())
	svc, err := catalog.NewService(repo, cache.NewMemoryStore(), logg)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	productsBySKU := map[string]*models.Product{}
	for i := range seedProducts {
		product, err := repo.CreateProduct(ctx, &seedProducts[i])
		if err != nil {
			logg.Error(logg.WithField(ctx, "sku", seedProducts[i].SKU), "failed to seed product", err)
			os.Exit(1)
		}
		productsBySKU[product.SKU] = product
	}

	distributorsByCode := map[string]*models.Distributor{}
	for i := range seedDistributors {
		distributor, err := repo.CreateDistributor(ctx, &seedDistributors[i])
		if err != nil {
			logg.Error(logg.WithField(ctx, "code", seedDistributors[i].Code), "failed to seed distributor", err)
			os.Exit(1)
		}
		distributorsByCode[distributor.Code] = distributor
	}

	batch := make([]catalog.OfferingSyncInput, 0, len(seedOfferings))
	for _, row := range seedOfferings {
		sku := row.sku
		batch = append(batch, catalog.OfferingSyncInput{
			ProductID:      productsBySKU[row.productSKU].ID,
			DistributorID:  distributorsByCode[row.distributorCode].ID,
			DistributorSKU: &sku,
			PriceCents:     row.priceCents,
			DeliveryDays:   row.deliveryDays,
			InStock:        row.inStock,
			StockQuantity:  row.stockQuantity,
		})
	}
	if err := svc.SyncOfferings(ctx, batch); err != nil {
		logg.Error(ctx, "failed to seed offerings", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"products":     len(seedProducts),
		"distributors": len(seedDistributors),
		"offerings":    len(seedOfferings),
	})
	logg.Info(ctx, "catalog seed complete")
}
