package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/quangoinc/qscore/internal/app/store/oauthstate"
	"github.com/quangoinc/qscore/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SetupTestDB connects to the test MongoDB instance and hands the test
// a fresh database with all indexes ensured. The database is dropped
// when the test finishes.
//
// Tests that need Mongo are skipped unless MONGO_TEST_URI is set, e.g.
//
//	MONGO_TEST_URI=mongodb://localhost:27017 go test ./...
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set; skipping database test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Fatalf("ping test mongo: %v", err)
	}

	// One database per test run keeps tests independent.
	db := client.Database(fmt.Sprintf("qscore_test_%d", time.Now().UnixNano()))

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	if err := oauthstate.New(db).EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure oauth state indexes: %v", err)
	}

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()
		if err := db.Drop(cleanupCtx); err != nil {
			t.Logf("drop test database: %v", err)
		}
		_ = client.Disconnect(cleanupCtx)
	})

	return db
}

// TestContext returns a context with the standard test timeout.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
