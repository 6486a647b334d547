// Command hash-gen prints the bcrypt hash for an admin API key, for use as
// ADMIN_API_KEY_HASH.
package main

import (
	"fmt"
	"log"
	"os"

	"pfp-registry.backend/pkg/crypto"
)

var (
	printfFn    = fmt.Printf
	hashKeyFn   = crypto.HashKey
	genRandomFn = crypto.GenerateRandomToken
	fatalfFn    = log.Fatalf
)

const randomKeyLen = 24

// resolveKey returns the key from args, or generates a random one
func resolveKey(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return genRandomFn(randomKeyLen)
}

func main() {
	key, err := resolveKey(os.Args[1:])
	if err != nil {
		fatalfFn("Failed to generate key: %v", err)
	}

	hash, err := hashKeyFn(key)
	if err != nil {
		fatalfFn("Failed to hash key: %v", err)
	}

	printfFn("Admin key:  %s\n", key)
	printfFn("Key hash:   %s\n", hash)
}
