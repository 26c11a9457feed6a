// Command issue-token prints a signed manager access token. It is used to
// bootstrap managers and admins; there is no login endpoint.
//
// Usage:
//
//	issue-token --name="Alice" [--role=admin] [--user-id=<uuid>]
//
// Requires AUTH_JWT_SECRET environment variable to be set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/stockcheck-backend/internal/auth"
	"github.com/heartmarshall/stockcheck-backend/internal/config"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

func main() {
	name := flag.String("name", "", "manager display name, used as the actor")
	role := flag.String("role", string(domain.UserRoleManager), "manager or admin")
	rawID := flag.String("user-id", "", "stable user id (random when empty)")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "Usage: issue-token --name=Alice [--role=admin] [--user-id=<uuid>]")
		os.Exit(1)
	}
	if !domain.UserRole(*role).IsValid() {
		log.Fatalf("invalid role %q", *role)
	}

	userID := uuid.New()
	if *rawID != "" {
		parsed, err := uuid.Parse(*rawID)
		if err != nil {
			log.Fatalf("invalid user id: %v", err)
		}
		userID = parsed
	}

	var cfg config.AuthConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("read auth config: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL)
	token, err := jwtManager.GenerateAccessToken(auth.Identity{
		UserID: userID,
		Name:   *name,
		Role:   *role,
	})
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Token for %q (%s, %s) valid for %s.\n", *name, *role, userID, cfg.AccessTokenTTL)
	fmt.Println(token)
}
