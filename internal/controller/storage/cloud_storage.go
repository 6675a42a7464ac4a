package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"secure-share-backend/internal/model"
)

// CloudStorageClient talks to the Google Cloud Storage bucket that holds the
// uploaded bytes. Access codes are attached to objects as metadata, which
// doubles as the registry's secondary search index.
type CloudStorageClient struct {
	BucketName string
	Client     *gcs.Client
}

// NewCloudStorageClient connects to the bucket using ambient credentials.
func NewCloudStorageClient(bucketName string) (*CloudStorageClient, error) {
	client, err := gcs.NewClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		Client:     client,
	}, nil
}

// UploadFile writes the object and waits for the provider to acknowledge it.
func (c *CloudStorageClient) UploadFile(ctx context.Context, objectName string, fileData io.Reader) error {
	obj := c.Client.Bucket(c.BucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	if _, err := io.Copy(wc, fileData); err != nil {
		return fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %v", err)
	}
	return nil
}

// ObjectURL returns the public download location for an object.
func (c *CloudStorageClient) ObjectURL(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.BucketName, objectName)
}

// SetAccessCode tags an object with the access code it was registered under.
func (c *CloudStorageClient) SetAccessCode(ctx context.Context, publicID, code string) error {
	obj := c.Client.Bucket(c.BucketName).Object(publicID)
	_, err := obj.Update(ctx, gcs.ObjectAttrsToUpdate{
		Metadata: map[string]string{
			"access_code": code,
			"created_at":  time.Now().UTC().Format(time.RFC3339),
		},
	})
	return err
}

// FindByCode lists bucket objects tagged with the access code and translates
// them into file descriptors.
func (c *CloudStorageClient) FindByCode(ctx context.Context, code string) ([]model.FileDescriptor, error) {
	var files []model.FileDescriptor

	it := c.Client.Bucket(c.BucketName).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %v", err)
		}
		if attrs.Metadata["access_code"] != code {
			continue
		}
		files = append(files, model.FileDescriptor{
			URL:      c.ObjectURL(attrs.Name),
			PublicID: attrs.Name,
			Filename: path.Base(attrs.Name),
			Size:     attrs.Size,
			Kind:     model.KindFile,
			Format:   strings.TrimPrefix(path.Ext(attrs.Name), "."),
		})
	}
	return files, nil
}

// Usage sums the stored bytes across the bucket.
func (c *CloudStorageClient) Usage(ctx context.Context) (int64, error) {
	var used int64

	it := c.Client.Bucket(c.BucketName).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to list objects: %v", err)
		}
		used += attrs.Size
	}
	return used, nil
}

// Purge deletes every object in the bucket. Per-object failures are logged
// and skipped so the sweep finishes; the returned count is objects deleted.
func (c *CloudStorageClient) Purge(ctx context.Context) (int, error) {
	bucket := c.Client.Bucket(c.BucketName)

	var names []string
	it := bucket.Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to list objects: %v", err)
		}
		names = append(names, attrs.Name)
	}

	deleted := 0
	for _, name := range names {
		if err := bucket.Object(name).Delete(ctx); err != nil {
			log.Printf("failed to delete object %s: %v", name, err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
