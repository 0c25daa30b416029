package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jobtracker/backend/internal/models"
	"github.com/jobtracker/backend/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Users *UserRepo
	Apps  *ApplicationRepo
}

func NewMocks() *Mocks {
	apps := &ApplicationRepo{Apps: make(map[int64]*models.JobApplication)}
	return &Mocks{
		Users: &UserRepo{Users: make(map[int64]*models.User), apps: apps},
		Apps:  apps,
	}
}

type UserRepo struct {
	Users     map[int64]*models.User
	CreateErr error
	nextID    int64
	apps      *ApplicationRepo
}

var _ repository.UserRepo = (*UserRepo)(nil)

// Add stores a user directly, assigning an id when missing.
func (m *UserRepo) Add(u *models.User) *models.User {
	if u.ID == 0 {
		m.nextID++
		u.ID = m.nextID
	} else if u.ID > m.nextID {
		m.nextID = u.ID
	}
	m.Users[u.ID] = u
	return u
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, e := range m.Users {
		if e.Username == u.Username || e.Email == u.Email {
			return 0, fmt.Errorf("UNIQUE constraint failed")
		}
	}
	return m.Add(u).ID, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return m.Users[id], nil
}

func (m *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	u, _ := m.GetUserByUsername(ctx, username)
	return u != nil, nil
}

func (m *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *UserRepo) summary(u *models.User) models.UserSummary {
	var count int64
	for _, a := range m.apps.Apps {
		if a.UserID == u.ID {
			count++
		}
	}
	return models.UserSummary{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Role:             u.Role,
		Created:          u.Created,
		ApplicationCount: count,
	}
}

func (m *UserRepo) ListUserSummaries(ctx context.Context) ([]models.UserSummary, error) {
	var out []models.UserSummary
	for _, u := range m.Users {
		out = append(out, m.summary(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *UserRepo) GetUserSummary(ctx context.Context, id int64) (*models.UserSummary, error) {
	u := m.Users[id]
	if u == nil {
		return nil, nil
	}
	s := m.summary(u)
	return &s, nil
}

func (m *UserRepo) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if m.Users[id] == nil {
		return false, nil
	}
	delete(m.Users, id)
	for appID, a := range m.apps.Apps {
		if a.UserID == id {
			delete(m.apps.Apps, appID)
		}
	}
	return true, nil
}

type ApplicationRepo struct {
	Apps      map[int64]*models.JobApplication
	CreateErr error
	nextID    int64
	clock     int64
}

var _ repository.ApplicationRepo = (*ApplicationRepo)(nil)

var mockSortFields = map[string]bool{
	"id": true, "title": true, "company": true, "status": true,
	"appliedDate": true, "deadline": true, "created": true, "updated": true,
}

func (m *ApplicationRepo) tick() int64 {
	m.clock++
	return m.clock
}

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.JobApplication) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	ts := m.tick()
	stored := *a
	stored.ID = m.nextID
	stored.Created = ts
	stored.Updated = ts
	m.Apps[stored.ID] = &stored
	a.ID = stored.ID
	a.Created = ts
	a.Updated = ts
	return stored.ID, nil
}

func (m *ApplicationRepo) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.JobApplication, error) {
	a := m.Apps[id]
	if a == nil || a.UserID != ownerID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *ApplicationRepo) UpdateApplication(ctx context.Context, a *models.JobApplication) (bool, error) {
	cur := m.Apps[a.ID]
	if cur == nil || cur.UserID != a.UserID {
		return false, nil
	}
	cur.Title = a.Title
	cur.Company = a.Company
	cur.Status = a.Status
	cur.AppliedDate = a.AppliedDate
	cur.Deadline = a.Deadline
	cur.Notes = a.Notes
	cur.Updated = m.tick()
	return true, nil
}

func (m *ApplicationRepo) DeleteApplication(ctx context.Context, id, ownerID int64) (bool, error) {
	a := m.Apps[id]
	if a == nil || a.UserID != ownerID {
		return false, nil
	}
	delete(m.Apps, id)
	return true, nil
}

func (m *ApplicationRepo) ListByOwner(ctx context.Context, ownerID int64, f repository.ListFilter, o repository.ListOptions) ([]models.JobApplication, int64, error) {
	if !mockSortFields[o.SortBy] {
		return nil, 0, repository.ErrInvalidSortField
	}

	var matched []models.JobApplication
	for _, a := range m.Apps {
		if a.UserID != ownerID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Keyword != "" {
			kw := strings.ToLower(f.Keyword)
			if !strings.Contains(strings.ToLower(a.Title), kw) && !strings.Contains(strings.ToLower(a.Company), kw) {
				continue
			}
		}
		if f.StartDate != "" && a.AppliedDate < f.StartDate {
			continue
		}
		if f.EndDate != "" && a.AppliedDate > f.EndDate {
			continue
		}
		matched = append(matched, *a)
	}

	asc := strings.EqualFold(o.SortDir, "asc")
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	size := o.Size
	if size <= 0 {
		size = 10
	}
	start := o.Page * size
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *ApplicationRepo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var cnt int64
	for _, a := range m.Apps {
		if a.UserID == ownerID {
			cnt++
		}
	}
	return cnt, nil
}

func (m *ApplicationRepo) CountByOwnerPerStatus(ctx context.Context, ownerID int64) (map[models.ApplicationStatus]int64, error) {
	counts := make(map[models.ApplicationStatus]int64)
	for _, a := range m.Apps {
		if a.UserID == ownerID {
			counts[a.Status]++
		}
	}
	return counts, nil
}
