//go:build integration

// Package testutil starts MongoDB testcontainers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoDBContainer wraps a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a fresh MongoDB container. Packages with many
// integration tests should prefer the shared container via
// SetupTestMainWithMongoDB; a container takes tens of seconds to boot.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	container, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("failed to terminate container: %w", err)
	}
	return nil
}

var (
	shared     *MongoDBContainer
	sharedErr  error
	sharedOnce sync.Once
	sharedMu   sync.RWMutex
)

// GetSharedMongoDB starts the package-wide container on first use and
// returns it on every later call.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedOnce.Do(func() {
		sharedMu.Lock()
		defer sharedMu.Unlock()
		shared, sharedErr = SetupMongoDB(ctx)
	})

	sharedMu.RLock()
	defer sharedMu.RUnlock()
	return shared, sharedErr
}

// GetSharedContainerURI returns the shared container's connection string.
// The container must have been started by GetSharedMongoDB first.
func GetSharedContainerURI() string {
	sharedMu.RLock()
	defer sharedMu.RUnlock()

	if shared == nil {
		panic("shared MongoDB container not initialized, call GetSharedMongoDB first")
	}
	return shared.URI
}

// CleanupSharedMongoDB terminates the shared container. Call it in
// TestMain after m.Run.
func CleanupSharedMongoDB(ctx context.Context) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return nil
	}
	return shared.Cleanup(ctx)
}

// SetupTestMainWithMongoDB runs a package's tests against one shared
// container:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	if err := CleanupSharedMongoDB(ctx); err != nil {
		// Docker reaps leaked containers eventually, so a failed
		// teardown only warrants a warning.
		fmt.Fprintf(os.Stderr, "warning: failed to clean up shared MongoDB container: %v\n", err)
	}
	return code
}

// SanitizeDBName turns a test name into a valid, unique MongoDB database
// name so tests sharing the container stay isolated.
func SanitizeDBName(testName string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(testName)
	if len(name) > 50 {
		name = name[:50]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
