package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash-api-key/main.go <api-key>")
		fmt.Println("Example: go run cmd/hash-api-key/main.go \"migration-key-12345\"")
		os.Exit(1)
	}

	apiKey := os.Args[1]

	// Hash the API key
	apiKeyHash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("API_KEY_HASH=%s\n\n", apiKeyHash)
	fmt.Printf("Set it in the server environment and send the key as:\n")
	fmt.Printf("Authorization: Bearer %s\n", apiKey)
}
