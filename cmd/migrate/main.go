package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/barberx/BarberX-BookingService/internal/config"
)

// Применяет миграции схемы БД
//
// Использование:
//
//	migrate -config config.toml up
//	migrate -config config.toml down 1
func main() {
	configPath := flag.String("config", "config.toml", "путь к файлу конфигурации")
	migrationsPath := flag.String("migrations", "migrations", "путь к директории миграций")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	m, err := migrate.New("file://"+*migrationsPath, cfg.Database.URL())
	if err != nil {
		fmt.Printf("Failed to initialize migrations: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	command := flag.Arg(0)
	switch command {
	case "up", "":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "drop":
		err = m.Drop()
	default:
		fmt.Printf("Unknown command %q, expected up, down or drop\n", command)
		os.Exit(1)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	version, dirty, _ := m.Version()
	fmt.Printf("Migrations applied, schema version=%d dirty=%t\n", version, dirty)
}
