package sqlite

import (
	"fmt"
	"testing"

	migrations "github.com/jobtracker/backend/db"
	"github.com/jobtracker/backend/internal/db"
	"github.com/jobtracker/backend/internal/models"
)

func setupRepo(t *testing.T) *SQLiteRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := db.New(t.Context(), dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := db.Migrate(t.Context(), d, migrations.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return New(d, nil)
}

func mustCreateUser(t *testing.T, r *SQLiteRepo, username, email string) int64 {
	t.Helper()
	id, err := r.CreateUser(t.Context(), &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleUser,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return id
}

func mustCreateApp(t *testing.T, r *SQLiteRepo, userID int64, title, company string, status models.ApplicationStatus, appliedDate string) int64 {
	t.Helper()
	id, err := r.CreateApplication(t.Context(), &models.JobApplication{
		UserID:      userID,
		Title:       title,
		Company:     company,
		Status:      status,
		AppliedDate: appliedDate,
	})
	if err != nil {
		t.Fatalf("create application %s: %v", title, err)
	}
	return id
}
