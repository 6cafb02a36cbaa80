// tokengen mints a bearer token for local development, standing in for the
// external login system.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"kudos/internal/auth"
)

func main() {
	secret := flag.String("secret", "", "JWT signing secret (must match JWT_SECRET)")
	email := flag.String("email", "", "email claim for the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *secret == "" || *email == "" {
		log.Fatal("usage: tokengen -secret <secret> -email <email> [-ttl 24h]")
	}

	token, err := auth.GenerateToken(*secret, *email, *ttl)
	if err != nil {
		log.Fatalf("token generation failed: %v", err)
	}
	fmt.Println(token)
}
