// Command create-admin provisions the developer account with a random
// password and prints the credentials once.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"secure-share-backend/internal/account"
	"secure-share-backend/internal/model"
	"secure-share-backend/internal/server"
	"secure-share-backend/internal/utilities"
)

// generateRandomString creates a random hex string of n bytes
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

func main() {
	accounts, _, err := server.BuildStores()
	if err != nil {
		log.Fatalf("failed to build stores: %v", err)
	}

	email := utilities.AdminEmail()
	password := generateRandomString(8)

	hashed, err := utilities.HashPassword(password)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	ctx := context.Background()
	err = accounts.Create(ctx, &model.User{Email: email, Password: hashed})
	if errors.Is(err, account.ErrDuplicateEmail) {
		log.Fatalf("developer account %s already exists", email)
	}
	if err != nil {
		log.Fatal("failed to create developer account: ", err)
	}

	fmt.Println("Developer credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email:    %s\n", email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")

	os.Exit(0)
}
