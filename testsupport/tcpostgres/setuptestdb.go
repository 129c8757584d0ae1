//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/openf1db/openf1-ingest-go/pkg/db/migrate"
	database "github.com/openf1db/openf1-ingest-go/pkg/db/postgres"
	"github.com/openf1db/openf1-ingest-go/pkg/model"
)

// create a pg connection pool for the openf1 testdatabase
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("openf1-ingest-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbUrl := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	if err = migrate.MigrateDb(dbUrl); err != nil {
		log.Fatal(err)
	}

	pool := database.InitWithUrl(dbUrl)
	return pool
}

// create a pg connection pool for the database at TESTDB_URL
func SetupExternalTestDb() *pgxpool.Pool {
	dbUrl := os.Getenv("TESTDB_URL")
	if err := migrate.MigrateDb(dbUrl); err != nil {
		log.Fatal(err)
	}
	return database.InitWithUrl(dbUrl)
}

func ClearCollectionTables(pool *pgxpool.Pool) {
	for _, c := range model.Collections {
		pool.Exec(context.Background(), fmt.Sprintf("delete from %s", c))
	}
}

func ClearIngestRunsTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from ingest_runs")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearIngestRunsTable(pool)
	ClearCollectionTables(pool)
}
