//go:build ignore

// Generates the secrets the auth configuration needs.
// Run with: go run scripts/generate_keys.go [admin-password]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func randomKey(nbytes int) string {
	buf := make([]byte, nbytes)
	if _, err := rand.Read(buf); err != nil {
		fmt.Fprintf(os.Stderr, "reading random bytes: %v\n", err)
		os.Exit(1)
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func main() {
	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Printf("JWT_SECRET_KEY=%s\n", randomKey(32))
	fmt.Printf("API_KEYS=%s\n", randomKey(24))

	if len(os.Args) > 1 {
		hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hashing admin password: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", string(hash))
	}

	fmt.Println()
	fmt.Println("Keep production keys in a secret manager, never in version control,")
	fmt.Println("and use different keys per environment.")
}
