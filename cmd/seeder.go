package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			fmt.Println("clearing existing data")
			for _, table := range []string{"notifications", "expenses", "category_limits", "budgets", "categories", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		demoEmail := "demo@mail.com"
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", demoEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("demo user already exists; nothing to do")
			return
		}

		userID := internal.NewID("usr")
		if err := db.Exec(
			"INSERT INTO users (id, email, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
			userID, demoEmail, string(hash)).Error; err != nil {
			log.Fatalf("failed to insert demo user: %v", err)
		}

		categoryIDs := make(map[string]string)
		for _, name := range []string{"Groceries", "Transport", "Entertainment"} {
			id := internal.NewID("cat")
			categoryIDs[name] = id
			if err := db.Exec(
				"INSERT INTO categories (id, user_id, name) VALUES (?, ?, ?)",
				id, userID, name).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", name, err)
			}
		}

		month := time.Now().UTC().Format("2006-01")
		budgetID := internal.NewID("bud")
		if err := db.Exec(
			"INSERT INTO budgets (id, user_id, month, total_limit_cents, warning_threshold_pct, created_at, updated_at) VALUES (?, ?, ?, 100000, 80, now(), now())",
			budgetID, userID, month).Error; err != nil {
			log.Fatalf("failed to insert budget: %v", err)
		}
		if err := db.Exec(
			"INSERT INTO category_limits (id, budget_id, category_id, limit_cents) VALUES (?, ?, ?, 30000)",
			internal.NewID("clm"), budgetID, categoryIDs["Groceries"]).Error; err != nil {
			log.Fatalf("failed to insert category limit: %v", err)
		}

		fmt.Printf("seeded demo user %s with budget for %s\n", demoEmail, month)
	},
}
