package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/m04kA/SMC-EventSlots/internal/config"
	"github.com/m04kA/SMC-EventSlots/pkg/jwtauth"
)

// tokengen выпускает токен x-auth-token тем же секретом, что и сервис
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	callerID := flag.Int64("id", 0, "caller id written into the token")
	isAdmin := flag.Bool("admin", false, "issue an admin token")
	flag.Parse()

	if *callerID <= 0 {
		fmt.Fprintln(os.Stderr, "tokengen: -id must be positive")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}

	issuer := jwtauth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	token, err := issuer.Issue(*callerID, *isAdmin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
