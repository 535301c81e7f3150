package main

import (
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.MustLoad()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	db, err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.EnsureAdminUser(db, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("Failed to ensure admin: %v", err)
	}

	repo := repository.NewProductRepository(db)
	products := service.NewProductService(repo)
	for _, input := range seedProducts() {
		existing, err := repo.GetByID(input.ID, false)
		if err != nil {
			log.Fatalf("Failed to load product %s: %v", input.ID, err)
		}
		if existing != nil {
			log.Infof("Product already exists: %s", input.ID)
			continue
		}
		if _, err := products.Create(input); err != nil {
			log.Errorf("Failed to create product %s: %v", input.ID, err)
			continue
		}
		log.Infof("Created product: %s", input.ID)
	}

	log.Info("Seed data completed")
}

func seedProducts() []service.CreateProductInput {
	oldDeskPrice := decimal.RequireFromString("599.00")
	return []service.CreateProductInput{
		{
			ID:               "standing-desk",
			Title:            "Electric Standing Desk",
			ShortDescription: "Dual-motor height adjustable desk",
			Description:      "A sturdy dual-motor desk with memory presets.",
			Price:            decimal.RequireFromString("499.00"),
			OldPrice:         &oldDeskPrice,
			Images:           []string{"/images/desk-1.jpg", "/images/desk-2.jpg"},
			Discount:         true,
			StockQuantity:    25,
			Specifications:   map[string]string{"width": "140cm", "motor": "dual"},
			Options: models.OptionGroups{
				"height": {
					{ID: "standard", Name: "Standard (70-118cm)", Price: models.NewMoney(0)},
					{ID: "tall", Name: "Tall (80-128cm)", Price: models.NewMoney(40)},
				},
				"adapter": {
					{ID: "eu", Name: "EU plug", Price: models.NewMoney(0)},
					{ID: "us", Name: "US plug", Price: models.NewMoney(0)},
				},
			},
			Category: "furniture",
			Tags:     []string{"office", "ergonomic"},
			SKU:      "DESK-001",
		},
		{
			ID:               "mechanical-keyboard",
			Title:            "Mechanical Keyboard",
			ShortDescription: "Hot-swappable 75% keyboard",
			Description:      "Gasket mounted keyboard with PBT keycaps.",
			Price:            decimal.RequireFromString("129.90"),
			Images:           []string{"/images/keyboard.jpg"},
			IsNew:            true,
			StockQuantity:    80,
			Specifications:   map[string]string{"layout": "75%", "switch": "linear"},
			Options: models.OptionGroups{
				"switch": {
					{ID: "linear", Name: "Linear", Price: models.NewMoney(0)},
					{ID: "tactile", Name: "Tactile", Price: models.NewMoney(5)},
				},
			},
			Category: "accessories",
			Tags:     []string{"keyboard"},
			SKU:      "KB-075",
		},
		{
			ID:               "usb-c-hub",
			Title:            "USB-C Hub",
			ShortDescription: "7-in-1 aluminium hub",
			Price:            decimal.RequireFromString("39.99"),
			StockQuantity:    0,
			Category:         "accessories",
			Tags:             []string{"usb", "hub"},
			SKU:              "HUB-007",
		},
	}
}
