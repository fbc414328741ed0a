package config

import (
	"log"
	"strings"

	"food-marketplace-api/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Settings holds runtime configuration. Tax rate and delivery fee are
// deliberately config values, not constants.
type Settings struct {
	Port        string
	DBPath      string
	JWTSecret   []byte
	TaxRate     decimal.Decimal
	DeliveryFee decimal.Decimal
}

var S = defaultSettings()

func defaultSettings() Settings {
	return Settings{
		Port:        "8080",
		DBPath:      "food_marketplace.db",
		JWTSecret:   []byte("food_marketplace_super_secret_2026"),
		TaxRate:     decimal.NewFromFloat(0.08),
		DeliveryFee: decimal.NewFromFloat(4.99),
	}
}

// Load reads config.yaml (if present) and environment overrides into S.
func Load() {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", S.Port)
	v.SetDefault("db_path", S.DBPath)
	v.SetDefault("jwt_secret", string(S.JWTSecret))
	v.SetDefault("tax_rate", 0.08)
	v.SetDefault("delivery_fee", 4.99)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal("Failed to read config file:", err)
		}
	}

	S = Settings{
		Port:        v.GetString("port"),
		DBPath:      v.GetString("db_path"),
		JWTSecret:   []byte(v.GetString("jwt_secret")),
		TaxRate:     decimal.NewFromFloat(v.GetFloat64("tax_rate")),
		DeliveryFee: decimal.NewFromFloat(v.GetFloat64("delivery_fee")),
	}
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(S.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	Migrate(DB)
	log.Println("Database connected and migrated")
}

// Migrate auto-migrates all models; shared with the test database setup.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Restaurant{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.MenuItemOption{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Payment{},
		&models.Review{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}
