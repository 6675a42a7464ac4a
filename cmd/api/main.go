// Command api runs the SecureShare backend HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"secure-share-backend/internal/account"
	"secure-share-backend/internal/model"
	"secure-share-backend/internal/registry"
	"secure-share-backend/internal/server"
	"secure-share-backend/internal/utilities"
)

func main() {
	accounts, regStore, err := server.BuildStores()
	if err != nil {
		log.Fatalf("failed to build stores: %v", err)
	}

	storageClient := server.BuildStorageClient()

	var index registry.SecondaryIndex
	if storageClient != nil {
		index = storageClient
	}
	reg := registry.New(regStore, index)

	seedDefaultUsers(accounts)

	srv := server.NewServer(accounts, reg, storageClient)

	go func() {
		log.Printf("SecureShare backend listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}

// seedDefaultUsers creates the demo and developer accounts when they are
// absent, matching the credentials the frontend ships with.
func seedDefaultUsers(accounts account.Store) {
	ctx := context.Background()

	defaults := []struct {
		email    string
		password string
	}{
		{"test@test.com", "test123"},
		{utilities.AdminEmail(), "dev123"},
	}

	for _, d := range defaults {
		if _, err := accounts.GetByEmail(ctx, d.email); err == nil {
			continue
		}
		hash, err := utilities.HashPassword(d.password)
		if err != nil {
			log.Printf("failed to hash default password for %s: %v", d.email, err)
			continue
		}
		if err := accounts.Create(ctx, &model.User{Email: d.email, Password: hash}); err != nil {
			log.Printf("failed to seed account %s: %v", d.email, err)
		}
	}
}
