package database_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/clubworks/clubhub/internal/config"
	"github.com/clubworks/clubhub/internal/database"
	"github.com/clubworks/clubhub/internal/models"
	"github.com/clubworks/clubhub/internal/services"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestWithMySQL exercises the portal against a real MySQL container. It
// verifies the pieces the in-memory unit tests cannot: duplicate-key
// translation and the atomic visit counter on a networked store.
func TestWithMySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mysql:8.4"
	}

	mysqlContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MySQL container: %v", err)
	}
	defer func() {
		if err := mysqlContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MySQL container: %v", err)
		}
	}()

	host, err := mysqlContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := mysqlContainer.MappedPort(ctx, nat.Port("3306/tcp"))
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	waitForMySQL(t, host, port.Port())

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Club ids are Authorizer user ids, which are UUIDs in production.
	club := &models.Club{ID: uuid.NewString(), Name: "Chess Club", Description: "integration"}
	if err := db.Create(club).Error; err != nil {
		t.Fatalf("Failed to create club: %v", err)
	}

	t.Run("DuplicateKeyTranslation", func(t *testing.T) {
		if _, err := services.CreateShortcut(db, club, "taken", "https://example.com/a"); err != nil {
			t.Fatalf("Failed to create shortcut: %v", err)
		}
		_, err := services.CreateShortcut(db, club, "taken", "https://example.com/b")
		if !errors.Is(err, services.ErrConflict) {
			t.Fatalf("Expected ErrConflict from MySQL duplicate key, got %v", err)
		}
	})

	t.Run("SameValueUpdate", func(t *testing.T) {
		if _, err := services.CreateShortcut(db, club, "steady", "https://example.com/page"); err != nil {
			t.Fatalf("Failed to create shortcut: %v", err)
		}

		// MySQL reports changed rows by default, not matched rows; the DSN
		// sets clientFoundRows so a no-change update is not read as a
		// missing row.
		if _, err := services.UpdateShortcut(db, club, "steady", "https://example.com/page"); err != nil {
			t.Fatalf("Expected no-change update to succeed on MySQL, got %v", err)
		}
	})

	t.Run("AtomicVisitCounter", func(t *testing.T) {
		if _, err := services.CreateShortcut(db, club, "count", "https://example.com"); err != nil {
			t.Fatalf("Failed to create shortcut: %v", err)
		}

		done := make(chan error, 10)
		for i := 0; i < 10; i++ {
			go func() {
				_, err := services.ResolveShortcut(db, "count")
				done <- err
			}()
		}
		for i := 0; i < 10; i++ {
			if err := <-done; err != nil {
				t.Fatalf("Concurrent resolve failed: %v", err)
			}
		}

		var shortcut models.Shortcut
		if err := db.First(&shortcut, "id = ?", "count").Error; err != nil {
			t.Fatalf("Failed to load shortcut: %v", err)
		}
		if shortcut.Visits != 10 {
			t.Errorf("Expected 10 visits with no lost updates, got %d", shortcut.Visits)
		}
	})
}

// waitForMySQL pings the server until it accepts application connections.
// The "ready for connections" log line can fire before the grant tables are
// loaded, so the log wait alone is not enough.
func waitForMySQL(t *testing.T, host, port string) {
	t.Helper()

	dsn := fmt.Sprintf("testuser:testpass@tcp(%s:%s)/testdb", host, port)
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := sql.Open("mysql", dsn)
		if err == nil {
			if err := conn.Ping(); err == nil {
				conn.Close()
				return
			}
			conn.Close()
		}
		time.Sleep(time.Second)
	}
	t.Fatal("MySQL did not become ready in time")
}
