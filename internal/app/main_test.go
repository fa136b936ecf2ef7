//go:build integration

package app

import (
	"context"
	"os"
	"testing"

	"github.com/chasecee/cut-calc/internal/testutil"
)

// One MongoDB container serves every integration test in this package.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func getSharedContainerURI() string {
	return testutil.GetSharedContainerURI()
}

func sanitizeDBNameForApp(testName string) string {
	return testutil.SanitizeDBName(testName)
}
