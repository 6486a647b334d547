// Command devtoken mints a wallet session token pair for local testing,
// bypassing the signature challenge. Uses the same JWT_* environment
// variables as the server.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"pfp-registry.backend/internal/config"
	"pfp-registry.backend/pkg/jwt"
)

var (
	printfFn = fmt.Printf
	fatalfFn = log.Fatalf
)

func resolveWallet(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: devtoken <wallet-address>")
	}
	if !common.IsHexAddress(args[0]) {
		return "", fmt.Errorf("invalid wallet address: %s", args[0])
	}
	return args[0], nil
}

func main() {
	_ = godotenv.Load()

	wallet, err := resolveWallet(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	cfg := config.Load()
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	pair, err := jwtService.GenerateTokenPair(wallet)
	if err != nil {
		fatalfFn("Failed to generate tokens: %v", err)
		return
	}

	printfFn("Access token:\n%s\n\n", pair.AccessToken)
	printfFn("Refresh token:\n%s\n", pair.RefreshToken)
}
