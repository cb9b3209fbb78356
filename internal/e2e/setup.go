//go:build integration

package e2e

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinic-management/clinic-service/internal/auth"
	"github.com/clinic-management/clinic-service/internal/config"
	"github.com/clinic-management/clinic-service/internal/db"
	httpserver "github.com/clinic-management/clinic-service/internal/http"
	"github.com/clinic-management/clinic-service/internal/testutil"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	adminUser     = "Ejaz"
	adminPassword = "Ejaz3021"
	deskUser      = "desk"
	deskPassword  = "desk-pass"
)

// TestServer is the full service over a real PostgreSQL database
type TestServer struct {
	Server        *httptest.Server
	DB            *gorm.DB
	MockPublisher *testutil.MockPublisher
}

// SetupE2ETest migrates a clean schema and serves every route with authentication on
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	gdb := testutil.SetupTestDB(t)
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	// doctors keep their seeded rows
	testutil.ResetTables(t, gdb, "appointments", "patient_history", "patients")

	log := logrus.New()
	log.SetOutput(io.Discard)

	perms, err := auth.LoadPermissions("../../permissions.yml")
	if err != nil {
		t.Fatalf("Failed to load permissions: %v", err)
	}
	creds, err := auth.NewCredentialStore([]config.UserConfig{
		{Username: adminUser, Password: adminPassword, Role: "ADMIN"},
		{Username: deskUser, Password: deskPassword, Role: "RECEPTIONIST"},
	}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to build credential store: %v", err)
	}
	tokens := auth.NewTokenManager("e2e-secret", "clinic-service", time.Hour)

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}

	mockPublisher := testutil.NewMockPublisher()
	router := httpserver.SetupRouter(httpserver.Dependencies{
		Repositories: httpserver.NewGormRepositories(gdb),
		Publisher:    mockPublisher,
		Guard:        auth.NewGuard(true, tokens, perms, nil, log),
		Login:        auth.NewLoginHandler(creds, tokens, nil, log),
		HealthCheck: func(ctx context.Context) error {
			return db.Ping(ctx, sqlDB)
		},
		AllowedOrigins: []string{"*"},
		Log:            log,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:        server,
		DB:            gdb,
		MockPublisher: mockPublisher,
	}
}

// Client logs in and returns a client carrying the bearer token
func (ts *TestServer) Client(t *testing.T, username, password string) *testutil.HTTPTestClient {
	t.Helper()

	anon := testutil.NewHTTPTestClient(ts.Server.URL, "")
	resp := anon.POST(t, "/login", map[string]string{"username": username, "password": password})
	testutil.AssertStatusCode(t, resp, 200)

	var body auth.LoginResponse
	testutil.DecodeJSON(t, resp, &body)
	return testutil.NewHTTPTestClient(ts.Server.URL, body.Token)
}
