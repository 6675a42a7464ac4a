// Command-line tool to clear every provider object and every registered code.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"secure-share-backend/internal/server"
)

func main() {

	// Warning message
	fmt.Println("⚠️ WARNING: This command will DELETE ALL uploaded objects and every registered access code.")
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	// Ask for confirmation
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	input = strings.TrimSpace(strings.ToLower(input))

	if input != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	_, regStore, err := server.BuildStores()
	if err != nil {
		log.Fatalf("failed to build stores: %v", err)
	}

	ctx := context.Background()

	if storageClient := server.BuildStorageClient(); storageClient != nil {
		deleted, err := storageClient.Purge(ctx)
		if err != nil {
			log.Fatalf("failed to purge provider objects: %v", err)
		}
		fmt.Printf("Deleted %d provider object(s).\n", deleted)
	}

	if err := regStore.DeleteAll(ctx); err != nil {
		log.Fatalf("failed to clear code registry: %v", err)
	}

	fmt.Println("✅ All storage cleared successfully.")
}
