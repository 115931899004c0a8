package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"tour-route-service/internal/adapters/repositories"
	"tour-route-service/internal/config"
	"tour-route-service/internal/platform/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	seedPath := flag.String("seed", cfg.SeedPath, "YAML file of points to load")
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	dialect, err := repositories.ParseDialect(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}
	dsn := cfg.DBPath
	if dialect == repositories.Postgres {
		dsn = cfg.DatabaseURL
	}

	conn, err := db.Open(context.Background(), string(dialect), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(conn, dialect, *seedPath, *schemaOnly); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, seedPath string, schemaOnly bool) error {
	log.Printf("Initializing database schema... driver=%s", dialect)
	if err := repositories.InitSchema(conn, dialect); err != nil {
		return err
	}
	log.Println("Schema ready.")

	if schemaOnly {
		return nil
	}

	log.Printf("Seeding database... path=%s", seedPath)
	if err := repositories.SeedFromYAML(conn, dialect, seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
