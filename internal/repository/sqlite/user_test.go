package sqlite

import (
	"strings"
	"testing"

	"github.com/jobtracker/backend/internal/models"
)

func TestCreateAndGetUser(t *testing.T) {
	repo := setupRepo(t)

	id := mustCreateUser(t, repo, "alice", "alice@example.com")
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	u, err := repo.GetUserByID(t.Context(), id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u == nil || u.Username != "alice" || u.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Created == 0 {
		t.Fatalf("created timestamp not set: %+v", u)
	}

	byName, err := repo.GetUserByUsername(t.Context(), "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName == nil || byName.ID != id {
		t.Fatalf("unexpected user by name: %+v", byName)
	}

	missing, err := repo.GetUserByID(t.Context(), 9999)
	if err != nil || missing != nil {
		t.Fatalf("missing user: got (%+v, %v), want (nil, nil)", missing, err)
	}
}

func TestCreateUserDefaultsRole(t *testing.T) {
	repo := setupRepo(t)

	id, err := repo.CreateUser(t.Context(), &models.User{
		Username: "norole", Email: "norole@example.com", PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	u, err := repo.GetUserByID(t.Context(), id)
	if err != nil || u == nil {
		t.Fatalf("get: (%+v, %v)", u, err)
	}
	if u.Role != models.RoleUser {
		t.Fatalf("role = %q, want USER", u.Role)
	}
}

func TestCreateUserUniqueConstraints(t *testing.T) {
	repo := setupRepo(t)
	mustCreateUser(t, repo, "alice", "alice@example.com")

	if _, err := repo.CreateUser(t.Context(), &models.User{
		Username: "alice", Email: "other@example.com", PasswordHash: "x", Role: models.RoleUser,
	}); err == nil || !strings.Contains(err.Error(), "UNIQUE") {
		t.Fatalf("duplicate username: expected UNIQUE violation, got %v", err)
	}

	if _, err := repo.CreateUser(t.Context(), &models.User{
		Username: "bob", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser,
	}); err == nil || !strings.Contains(err.Error(), "UNIQUE") {
		t.Fatalf("duplicate email: expected UNIQUE violation, got %v", err)
	}
}

func TestExistenceChecks(t *testing.T) {
	repo := setupRepo(t)
	mustCreateUser(t, repo, "alice", "alice@example.com")

	cases := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"UsernameTaken", func() (bool, error) { return repo.UsernameExists(t.Context(), "alice") }, true},
		{"UsernameFree", func() (bool, error) { return repo.UsernameExists(t.Context(), "bob") }, false},
		{"EmailTaken", func() (bool, error) { return repo.EmailExists(t.Context(), "alice@example.com") }, true},
		{"EmailFree", func() (bool, error) { return repo.EmailExists(t.Context(), "bob@example.com") }, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.check()
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestUserSummaries(t *testing.T) {
	repo := setupRepo(t)

	aliceID := mustCreateUser(t, repo, "alice", "alice@example.com")
	bobID := mustCreateUser(t, repo, "bob", "bob@example.com")
	mustCreateApp(t, repo, aliceID, "Dev", "Acme", models.StatusApplied, "2024-01-10")
	mustCreateApp(t, repo, aliceID, "SRE", "Globex", models.StatusInterview, "2024-02-10")

	summaries, err := repo.ListUserSummaries(t.Context())
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("want 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != aliceID || summaries[0].ApplicationCount != 2 {
		t.Fatalf("alice summary: %+v", summaries[0])
	}
	if summaries[1].ID != bobID || summaries[1].ApplicationCount != 0 {
		t.Fatalf("bob summary: %+v", summaries[1])
	}

	one, err := repo.GetUserSummary(t.Context(), aliceID)
	if err != nil || one == nil {
		t.Fatalf("get summary: (%+v, %v)", one, err)
	}
	if one.Username != "alice" || one.ApplicationCount != 2 {
		t.Fatalf("unexpected summary: %+v", one)
	}

	missing, err := repo.GetUserSummary(t.Context(), 9999)
	if err != nil || missing != nil {
		t.Fatalf("missing summary: got (%+v, %v), want (nil, nil)", missing, err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	repo := setupRepo(t)

	aliceID := mustCreateUser(t, repo, "alice", "alice@example.com")
	bobID := mustCreateUser(t, repo, "bob", "bob@example.com")
	appID := mustCreateApp(t, repo, aliceID, "Dev", "Acme", models.StatusApplied, "2024-01-10")
	bobAppID := mustCreateApp(t, repo, bobID, "Dev", "Acme", models.StatusApplied, "2024-01-10")

	found, err := repo.DeleteUser(t.Context(), aliceID)
	if err != nil || !found {
		t.Fatalf("delete: (%v, %v)", found, err)
	}

	if u, _ := repo.GetUserByID(t.Context(), aliceID); u != nil {
		t.Fatalf("user still present: %+v", u)
	}
	if a, _ := repo.GetByIDAndOwner(t.Context(), appID, aliceID); a != nil {
		t.Fatalf("application survived user delete: %+v", a)
	}
	// the other user's data is untouched
	if a, _ := repo.GetByIDAndOwner(t.Context(), bobAppID, bobID); a == nil {
		t.Fatal("unrelated application was deleted")
	}

	found, err = repo.DeleteUser(t.Context(), aliceID)
	if err != nil || found {
		t.Fatalf("second delete: (%v, %v), want (false, nil)", found, err)
	}
}
