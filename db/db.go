package db

import (
	"os"

	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.LogError(err, "Warning: impossible to load the .env file")
		utils.LogInfo("The environment variable DB_URL must be defined in the system environment")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		utils.LogError(nil, "Variable DB_URL is not defined")
		panic("Database URL is not configured")
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: utils.GetGormLogger(),
	})
	if err != nil {
		utils.LogError(err, "Error connecting to the database")
		panic("Could not connect to the database")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ContentPost{},
		&models.Like{},
		&models.Message{},
		&models.SubscriptionTier{},
		&models.FanSubscription{},
		&models.CreatorSubscription{},
		&models.ContentPurchase{},
		&models.MessagePurchase{},
		&models.Transaction{},
	)
	if err != nil {
		utils.LogError(err, "Error migrating database")
		panic("Could not migrate database")
	}

	// AutoMigrate cannot express a partial unique index; this one is the
	// real single-active-subscription guard per (fan, creator).
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_fan_subscriptions_one_active
		ON fan_subscriptions (fan_id, creator_id) WHERE status = 'active'`).Error
	if err != nil {
		utils.LogError(err, "Error creating fan subscription unique index")
		panic("Could not create fan subscription unique index")
	}

	utils.LogSuccess("Database connection successful")
}
