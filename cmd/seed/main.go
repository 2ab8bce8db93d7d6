package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"

	"parish_app_echo/internal/models"
	"parish_app_echo/internal/services"
)

var wardNames = []string{
	"Carmel Mai Ward",
	"Christ King Ward",
	"Don Bosco Ward",
	"Fathima Ward",
	"Holy Cross Ward",
	"Holy Family Ward",
	"Immaculate Heart Of Mary Ward",
	"Infant Jesus Ward",
	"Lourdes Ward",
	"Mother Teresa Ward",
	"Our Lady Of Dolours Ward",
	"Our Lady Of Rosary Ward",
	"Sacred Heart Ward",
	"St. Antony Ward",
	"St. Francis Xavier Ward",
	"St. Joseph Ward",
	"St. Joseph Worker Ward",
	"St. Lawrence Ward",
	"St. Michael Ward",
	"St. Peter Ward",
	"Velankani Ward",
	"Nithyadhar Ward",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	wards := make([]models.Ward, 0, len(wardNames))
	for _, name := range wardNames {
		wards = append(wards, models.Ward{Name: name})
	}

	// Skip wards that already exist so the seeder stays idempotent
	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&wards).Error
	if err != nil {
		log.Fatalf("Failed to seed wards: %v", err)
	}

	log.Printf("Seeded %d wards", len(wards))
}
