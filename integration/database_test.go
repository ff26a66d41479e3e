//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// runWarehouseWorkflow exercises the full CLI lifecycle against the
// configured backend: migrate, seed, report, persist and inspect.
func runWarehouseWorkflow(t *testing.T) {
	err := runMillpulseCommand(t, "warehouse", "migrate")
	require.NoError(t, err)

	err = runMillpulseCommand(t, "seed",
		"--seed-start", "2025-01-01", "--seed-end", "2025-06-30", "--shipments", "300")
	require.NoError(t, err)

	err = runMillpulseCommand(t, "kpi", "--run-date", "2025-06-30")
	require.NoError(t, err)

	err = runMillpulseCommand(t, "briefing", "--run-date", "2025-06-30", "--persist")
	require.NoError(t, err)

	err = runMillpulseCommand(t, "copilot", "--run-date", "2025-06-30")
	require.NoError(t, err)

	err = runMillpulseCommand(t, "export", "--view", "vw_production", "--output", "csv")
	require.NoError(t, err)

	err = runMillpulseCommand(t, "warehouse", "status")
	require.NoError(t, err)

	err = runMillpulseCommand(t, "warehouse", "reports")
	require.NoError(t, err)
}

// TestMillpulseWithMySQL tests the millpulse CLI with a MySQL backend.
func TestMillpulseWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "millpulse",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/millpulse?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("MILLPULSE_WAREHOUSE_BACKEND", "mysql")
	_ = os.Setenv("MILLPULSE_WAREHOUSE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("MILLPULSE_WAREHOUSE_BACKEND") }()
	defer func() { _ = os.Unsetenv("MILLPULSE_WAREHOUSE_DB_CONNECT") }()

	runWarehouseWorkflow(t)
}

// TestMillpulseWithPostgres tests the millpulse CLI with a PostgreSQL backend.
func TestMillpulseWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("MILLPULSE_WAREHOUSE_BACKEND", "postgresql")
	_ = os.Setenv("MILLPULSE_WAREHOUSE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("MILLPULSE_WAREHOUSE_BACKEND") }()
	defer func() { _ = os.Unsetenv("MILLPULSE_WAREHOUSE_DB_CONNECT") }()

	runWarehouseWorkflow(t)
}
