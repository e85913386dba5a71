package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"seatbook/internal/auth"
	"seatbook/internal/bookings"
	"seatbook/internal/seats"
	"seatbook/internal/shared/config"
	"seatbook/internal/shared/constants"
	"seatbook/internal/shared/database"
	"seatbook/internal/users"
	"seatbook/pkg/cache"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
}

func main() {
	fmt.Println("🌱 Starting Seatbook Database Seeder...")

	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, cfg: cfg}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase deletes every link, booking, seat and user in one
// transaction, children first
func (s *Seeder) CleanDatabase() error {
	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		tables := []interface{}{
			&bookings.BookingSeat{},
			&bookings.Booking{},
			&seats.Seat{},
			&users.User{},
		}
		for _, model := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clean %T: %w", model, err)
			}
		}
		return nil
	})
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedSeats(ctx); err != nil {
		return fmt.Errorf("failed to seed seats: %w", err)
	}

	if err := s.SeedUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	// Drop cached availability so the API sees the new layout
	if err := cache.NewService(s.db.GetRedis()).DeletePattern(ctx, constants.PATTERN_INVALIDATE_SEATS_ALL); err != nil {
		log.Printf("Warning: Failed to clear seat cache: %v", err)
	}

	return nil
}

// SeedSeats writes the configured venue layout
func (s *Seeder) SeedSeats(ctx context.Context) error {
	fmt.Println("  💺 Seeding seats...")

	layout, err := seats.BuildLayout(s.cfg.Layout.Rows, s.cfg.Layout.SeatsPerRow, s.cfg.Layout.LastRowSeats, s.cfg.Layout.Blocked)
	if err != nil {
		return err
	}
	if err := seats.NewRepository(s.db.PostgreSQL).CreateSeats(ctx, layout); err != nil {
		return err
	}

	fmt.Printf("    ✅ Created %d seats in %d rows (%d blocked)\n", len(layout), s.cfg.Layout.Rows, len(s.cfg.Layout.Blocked))
	return nil
}

// SeedUsers creates 1 admin and 2 regular users and prints a token for each
func (s *Seeder) SeedUsers(ctx context.Context) error {
	fmt.Println("  👤 Seeding users...")

	usersData := []struct {
		name  string
		email string
		phone string
		role  users.Role
	}{
		{"Admin User", "admin@seatbook.local", "+10000000000", users.RoleAdmin},
		{"Asha Patel", "asha@seatbook.local", "+10000000001", users.RoleUser},
		{"Rohan Mehta", "rohan@seatbook.local", "+10000000002", users.RoleUser},
	}

	repo := users.NewRepository(s.db.PostgreSQL)
	for _, userData := range usersData {
		email := userData.email
		user := users.User{
			Name:        userData.name,
			Email:       &email,
			PhoneNumber: userData.phone,
			Role:        userData.role,
		}
		if err := repo.Create(ctx, &user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", email, err)
		}

		token, err := auth.IssueAccessToken(s.cfg.JWT.Secret, user.ID, email, user.Role, 30*24*time.Hour)
		if err != nil {
			return fmt.Errorf("failed to issue token for %s: %w", email, err)
		}
		fmt.Printf("    ✅ Created user: %s (%s)\n       token: %s\n", email, user.Role, token)
	}

	return nil
}
