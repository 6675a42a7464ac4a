// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"secure-share-backend/internal/account"
	"secure-share-backend/internal/controller/storage"
	"secure-share-backend/internal/registry"
)

// MyServer bundles the stores and clients the route handlers depend on.
type MyServer struct {
	Accounts account.Store
	Registry *registry.Registry
	Storage  storage.StorageClient
}

// NewServer construct new Server instance
func NewServer(accounts account.Store, reg *registry.Registry, storageClient storage.StorageClient) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 5002
	}

	s := &MyServer{
		Accounts: accounts,
		Registry: reg,
		Storage:  storageClient,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
