package repository

import (
	"context"
	"errors"

	"github.com/jobtracker/backend/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ErrInvalidSortField is returned by ListByOwner when the requested sort
// field does not map to a known column.
var ErrInvalidSortField = errors.New("invalid sort field")

// ListFilter narrows an owner's application listing. Zero values mean "no
// constraint", never "match empty". Filters combine conjunctively.
type ListFilter struct {
	Status    models.ApplicationStatus
	Keyword   string
	StartDate string // inclusive, ISO date (2006-01-02)
	EndDate   string // inclusive, ISO date (2006-01-02)
}

// ListOptions controls pagination and ordering. Page is zero-indexed.
type ListOptions struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string // "asc" or "desc", case-insensitive
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUserSummaries(ctx context.Context) ([]models.UserSummary, error)
	GetUserSummary(ctx context.Context, id int64) (*models.UserSummary, error)
	// DeleteUser removes the user and every application the user owns.
	// The returned bool reports whether the user existed.
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.JobApplication) (int64, error)
	// GetByIDAndOwner returns (nil, nil) when no application with that id is
	// owned by ownerID, whether or not the id exists for someone else.
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.JobApplication, error)
	// UpdateApplication replaces the mutable fields of a.ID for owner
	// a.UserID and advances the update timestamp strictly forward. The
	// returned bool reports whether a matching row existed.
	UpdateApplication(ctx context.Context, a *models.JobApplication) (bool, error)
	DeleteApplication(ctx context.Context, id, ownerID int64) (bool, error)
	// ListByOwner returns one page of the owner's applications plus the
	// total number of rows matching the filter.
	ListByOwner(ctx context.Context, ownerID int64, f ListFilter, o ListOptions) ([]models.JobApplication, int64, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	CountByOwnerPerStatus(ctx context.Context, ownerID int64) (map[models.ApplicationStatus]int64, error)
}
