// Scratch tool: prints the 4-byte selectors for the view functions the
// verifier calls, handy when eyeballing raw eth_call payloads.
//
// Run with: go run debug_selector.go
package main

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

func main() {
	sigs := []string{
		"ownerOf(uint256)",
		"balanceOf(address,uint256)",
		"Error(string)",
		"Panic(uint256)",
	}

	for _, sig := range sigs {
		hash := crypto.Keccak256([]byte(sig))
		selector := hex.EncodeToString(hash[:4])
		fmt.Printf("%s: 0x%s\n", sig, selector)
	}
}
