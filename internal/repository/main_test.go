//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chasecee/cut-calc/internal/testutil"
)

// One MongoDB container serves every integration test in this package;
// booting one per test would dominate the suite's runtime.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func getSharedContainerURI() string {
	return testutil.GetSharedContainerURI()
}

func sanitizeDBName(testName string) string {
	return testutil.SanitizeDBName(testName)
}

// setupTestDBFromSharedContainer connects to the shared container under a
// per-test database name so tests do not see each other's documents.
func setupTestDBFromSharedContainer(t *testing.T) *MongoDB {
	db, err := NewMongoDB(getSharedContainerURI(), sanitizeDBName(t.Name()))
	require.NoError(t, err)
	return db
}
