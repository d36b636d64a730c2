package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/barberx/BarberX-BookingService/internal/config"
	"github.com/barberx/BarberX-BookingService/internal/domain"
	adminRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/admin"
	serviceRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/service"
	"github.com/barberx/BarberX-BookingService/pkg/ptr"
)

// Наполняет базу стартовыми данными: администратор и базовый каталог услуг
//
// Использование:
//
//	seed -config config.toml -admin-password <пароль>
func main() {
	configPath := flag.String("config", "config.toml", "путь к файлу конфигурации")
	adminUsername := flag.String("admin-username", "admin", "логин администратора")
	adminPassword := flag.String("admin-password", "", "пароль администратора")
	flag.Parse()

	if *adminPassword == "" {
		fmt.Println("-admin-password is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	admin, err := adminRepo.NewRepository(db).Upsert(ctx, *adminUsername, string(hash))
	if err != nil {
		fmt.Printf("Failed to seed admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Admin %q ready (id=%s)\n", admin.Username, admin.ID)

	services := []*domain.Service{
		{
			Name:        "Haircut & Wash",
			Description: ptr.Ptr("Classic haircut with shampoo and styling"),
			Price:       50000,
			Duration:    45,
		},
		{
			Name:        "Beard Trim",
			Description: ptr.Ptr("Beard shaping with hot towel finish"),
			Price:       30000,
			Duration:    30,
		},
		{
			Name:        "Hair Treatment (Creambath)",
			Description: ptr.Ptr("Deep conditioning treatment with scalp massage"),
			Price:       75000,
			Duration:    60,
		},
	}

	repo := serviceRepo.NewRepository(db)
	for _, svc := range services {
		created, err := repo.Create(ctx, svc)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrDuplicateName) {
				fmt.Printf("Service %q already exists, skipping\n", svc.Name)
				continue
			}
			fmt.Printf("Failed to seed service %q: %v\n", svc.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Service %q created (id=%s)\n", created.Name, created.ID)
	}

	fmt.Println("Seed completed")
}
