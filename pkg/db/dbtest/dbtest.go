package dbtest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Bezneima/Kucher-retro-back/pkg/db"
	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// GetTestDB opens a uniquely named in-memory database so parallel tests
// never share state, and applies the schema.
func GetTestDB(ctx context.Context) (*sql.DB, error) {
	uniqueName := ulid.Make().String()
	// The foreign_keys pragma is per-connection, so it goes in the DSN
	// where every pooled connection picks it up.
	connStr := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uniqueName)

	testDB, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.CreateLocalTables(ctx, testDB); err != nil {
		return nil, err
	}

	return testDB, nil
}

func GetTestQueries(ctx context.Context) (*sql.DB, *gen.Queries, error) {
	testDB, err := GetTestDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return testDB, gen.New(testDB), nil
}
