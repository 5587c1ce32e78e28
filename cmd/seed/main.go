package main

import (
	"context"
	"errors"
	"log"
	"os"

	"fixify/internal/database"
	"fixify/internal/domain"
	"fixify/internal/repository"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Services []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Category    string `yaml:"category"`
		PriceRange  string `yaml:"priceRange"`
	} `yaml:"services"`
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	Name               string   `yaml:"name"`
	Email              string   `yaml:"email"`
	Password           string   `yaml:"password"`
	Role               string   `yaml:"role"`
	Phone              string   `yaml:"phone"`
	Address            string   `yaml:"address"`
	ServicesOffered    []string `yaml:"servicesOffered"`
	Experience         int      `yaml:"experience"`
	Documents          int      `yaml:"documents"`
	VerificationStatus string   `yaml:"verificationStatus"`
}

func main() {
	file := flag.StringP("file", "f", "configs/seed.yaml", "seed data file")
	reset := flag.Bool("reset", false, "delete all existing data first")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "fixify.db"
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read seed file: %v", err)
	}
	var data seedFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		log.Fatalf("parse seed file: %v", err)
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	ctx := context.Background()
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	if *reset {
		log.Println("Cleaning old data...")
		// Children before parents.
		for _, table := range []string{"notifications", "withdrawals", "provider_earnings", "service_requests", "services", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				log.Fatalf("reset %s: %v", table, err)
			}
		}
	}

	services := repository.NewServiceRepository(db)
	for _, s := range data.Services {
		err := services.Create(ctx, &domain.Service{
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
			PriceRange:  s.PriceRange,
		})
		if skipExisting(err, "service", s.Name) {
			continue
		}
		log.Printf("service created: %s", s.Name)
	}

	users := repository.NewUserRepository(db)
	for _, su := range data.Users {
		u, err := toUser(su)
		if err != nil {
			log.Fatalf("user %s: %v", su.Email, err)
		}
		if skipExisting(users.Create(ctx, u), "user", su.Email) {
			continue
		}
		log.Printf("user created: %s (%s) / %s", u.Email, u.Role, su.Password)
	}

	log.Println("Seed completed")
}

func toUser(su seedUser) (*domain.User, error) {
	role := domain.UserRole(su.Role)
	if !role.Valid() {
		return nil, errors.New("unknown role " + su.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         su.Name,
		Email:        su.Email,
		PasswordHash: string(hash),
		Phone:        su.Phone,
		Address:      su.Address,
		Role:         role,
		Availability: true,
	}
	if role == domain.RoleProvider {
		u.ServicesOffered = su.ServicesOffered
		u.Experience = su.Experience
		u.Documents = su.Documents
		u.VerificationStatus = domain.VerificationStatus(su.VerificationStatus)
		if !u.VerificationStatus.Valid() {
			u.VerificationStatus = domain.VerificationPending
		}
	}
	return u, nil
}

// skipExisting reports whether err means the row is already there. Any
// other error is fatal.
func skipExisting(err error, kind, key string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrConflict) {
		log.Printf("%s exists, skipping: %s", kind, key)
		return true
	}
	log.Fatalf("create %s %s: %v", kind, key, err)
	return false
}
