package server

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"secure-share-backend/internal/account"
	"secure-share-backend/internal/controller/storage"
	"secure-share-backend/internal/database"
	"secure-share-backend/internal/registry"
	"secure-share-backend/internal/utilities"
)

var storeBackends = []string{"memory", "file", "postgres"}

// BuildStores selects the persistence backend from STORE_BACKEND and returns
// the account and registry stores. Supported values are "memory", "file"
// (default) and "postgres".
func BuildStores() (account.Store, registry.Store, error) {
	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "file"
	}
	if !utilities.Contains(storeBackends, backend) {
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}

	switch backend {
	case "memory":
		return account.NewMemoryStore(), registry.NewMemoryStore(), nil

	case "file":
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		return account.NewFileStore(filepath.Join(dataDir, "users.json")),
			registry.NewFileStore(filepath.Join(dataDir, "uploads.json")),
			nil

	case "postgres":
		db, err := database.GetMainDB()
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		return account.NewGormStore(db.DB), registry.NewGormStore(db.DB), nil

	default:
		// Unreachable, backends are validated above
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}
}

// BuildStorageClient connects to the bucket named by GCS_BUCKET. The returned
// interface is nil when no bucket is configured, which disables the upload
// endpoint and the provider-side registry fallback.
func BuildStorageClient() storage.StorageClient {
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		log.Println("GCS_BUCKET not set, cloud storage disabled")
		return nil
	}

	client, err := storage.NewCloudStorageClient(bucket)
	if err != nil {
		log.Printf("cloud storage unavailable: %v", err)
		return nil
	}
	return client
}

// storageLimitBytes reads the advertised quota override, falling back to the
// controller default when unset or invalid.
func storageLimitBytes() int64 {
	raw := os.Getenv("STORAGE_LIMIT_BYTES")
	if raw == "" {
		return 0
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		log.Printf("invalid STORAGE_LIMIT_BYTES %q, using default", raw)
		return 0
	}
	return limit
}
