package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"neoverse-be/internal/config"
	"neoverse-be/internal/db"
	"neoverse-be/internal/user"
)

func main() {
	username := flag.String("username", "admin", "admin account username")
	email := flag.String("email", "admin@neoverse.local", "admin account email")
	password := flag.String("password", "", "admin account password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	cfg := config.LoadConfig()
	database := db.InitDB(cfg)
	defer database.Close()

	svc := user.NewService(user.NewRepository(database))

	created, err := svc.CreateAdmin(context.Background(), *username, *email, *password)
	if errors.Is(err, user.ErrUserExists) {
		fmt.Printf("admin %q already exists, nothing to do\n", *username)
		return
	}
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("admin %q created (id=%d)\n", created.Username, created.ID)
}
