package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
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

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"email_outbox", "audit_trails", "claim_details", "claim_requests", "project_enrollments", "projects", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seedUsers := []struct {
			Email  string
			Name   string
			Rank   string
			Salary int64
			Role   string
		}{
			{"admin@mail.com", "Ayu Admin", "Manager", 38400, "ADMIN"},
			{"staff@mail.com", "Sari Staff", "Junior", 19200, "STAFF"},
			{"approver@mail.com", "Andi Approver", "Senior", 28800, "APPROVER"},
			{"finance@mail.com", "Fina Finance", "Senior", 28800, "FINANCE"},
		}

		for _, u := range seedUsers {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			err := db.Exec(
				"INSERT INTO users (email, name, password_hash, department, rank, monthly_salary, role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, true, now(), now())",
				u.Email, u.Name, string(hash), "Engineering", u.Rank, u.Salary, u.Role,
			).Error
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}

		projectCode := "PRJ-001"
		var exists int
		if err := db.Raw("SELECT 1 FROM projects WHERE code = ?", projectCode).Row().Scan(&exists); err != nil {
			err := db.Exec(
				"INSERT INTO projects (code, name, budget, project_status, start_date, end_date, created_at, updated_at) VALUES (?, ?, ?, 'active', now(), now() + interval '6 months', now(), now())",
				projectCode, "Internal Portal", 500000,
			).Error
			if err != nil {
				log.Fatalf("failed to insert project: %v", err)
			}
			fmt.Println("Seeded project:", projectCode)
		}

		var projectID, approverID, staffID int64
		if err := db.Raw("SELECT id FROM projects WHERE code = ?", projectCode).Row().Scan(&projectID); err != nil {
			log.Fatalf("failed to lookup project id: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "approver@mail.com").Row().Scan(&approverID); err != nil {
			log.Fatalf("failed to lookup approver id: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "staff@mail.com").Row().Scan(&staffID); err != nil {
			log.Fatalf("failed to lookup staff id: %v", err)
		}

		enrollments := []struct {
			UserID int64
			Role   string
		}{
			{approverID, "ProjectManager"},
			{staffID, "Developer"},
		}

		for _, e := range enrollments {
			var exists int
			if err := db.Raw(
				"SELECT 1 FROM project_enrollments WHERE project_id = ? AND user_id = ? AND project_role = ?",
				projectID, e.UserID, e.Role,
			).Row().Scan(&exists); err == nil {
				continue
			}

			err := db.Exec(
				"INSERT INTO project_enrollments (project_id, user_id, project_role, enroll_status, created_at, updated_at) VALUES (?, ?, ?, 'active', now(), now())",
				projectID, e.UserID, e.Role,
			).Error
			if err != nil {
				log.Fatalf("failed to insert enrollment %s: %v", e.Role, err)
			}
			fmt.Printf("Seeded enrollment: user %d as %s on project %d\n", e.UserID, e.Role, projectID)
		}

		fmt.Println("Seeding finished")
	},
}
