package integration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	handler "github.com/foodapp/api/internal/adapters/handler/http"
	repo "github.com/foodapp/api/internal/adapters/repository/postgres"
	"github.com/foodapp/api/internal/adapters/token/jwt"
	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
	"github.com/foodapp/api/internal/core/services"
)

const testJWTSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Signer      ports.TokenSigner
	AuthSvc     ports.AuthService
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	userRepo := repo.NewUserRepository(db)
	tokenRepo := repo.NewRefreshTokenRepository(db)
	categoryRepo := repo.NewCategoryRepository(db)
	productRepo := repo.NewProductRepository(db)

	signer := jwt.NewSigner(testJWTSecret, 15*time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authSvc := services.NewAuthService(userRepo, tokenRepo, signer, 7*24*time.Hour, logger)
	categorySvc := services.NewCategoryService(categoryRepo)
	productSvc := services.NewProductService(productRepo, categoryRepo)
	userSvc := services.NewUserService(userRepo)

	router := handler.NewHandler(
		handler.NewAuthHandler(authSvc),
		handler.NewCategoryHandler(categorySvc),
		handler.NewProductHandler(productSvc),
		handler.NewUserHandler(userSvc),
		signer,
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Signer:      signer,
		AuthSvc:     authSvc,
		DBContainer: dbContainer,
	}
}

// createUserWithRole inserts a user directly and returns a signed access
// token for it.
func (app *TestApp) createUserWithRole(t *testing.T, username, password, role string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	email := fmt.Sprintf("%s@example.com", username)
	_, err = app.DB.Exec(
		"INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, $4)",
		username, email, string(hash), role,
	)
	require.NoError(t, err)

	token, err := app.Signer.Issue(username, role)
	require.NoError(t, err)
	return token
}

func (app *TestApp) createAdminToken(t *testing.T) string {
	t.Helper()
	return app.createUserWithRole(t, "admin", "admin-password", domain.RoleAdmin)
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
