package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jobtracker/backend/internal/models"
	"github.com/jobtracker/backend/pkg/repository"
)

// sortColumns maps API sort field names to columns. Anything else is an
// ErrInvalidSortField.
var sortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"company":     "company",
	"status":      "status",
	"appliedDate": "applied_date",
	"deadline":    "deadline",
	"created":     "created",
	"updated":     "updated",
}

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.JobApplication) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO job_applications (user_id, title, company, status, applied_date, deadline, notes, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.Title, a.Company, a.Status, a.AppliedDate, a.Deadline, a.Notes, ts, ts)
	if err != nil {
		return 0, err
	}

	a.Created = ts
	a.Updated = ts
	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.JobApplication, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, title, company, status, applied_date, deadline, notes, created, updated FROM job_applications WHERE id = ? AND user_id = ?`, id, ownerID)
	var a models.JobApplication
	if err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Company, &a.Status, &a.AppliedDate, &a.Deadline, &a.Notes, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}

func (r *SQLiteRepo) UpdateApplication(ctx context.Context, a *models.JobApplication) (bool, error) {
	if a == nil {
		return false, fmt.Errorf("application is nil")
	}

	// MAX keeps the update timestamp strictly increasing even when two
	// updates land within the same millisecond.
	res, err := r.conn.Exec(ctx, `UPDATE job_applications SET title = ?, company = ?, status = ?, applied_date = ?, deadline = ?, notes = ?, updated = MAX(?, updated + 1) WHERE id = ? AND user_id = ?`,
		a.Title, a.Company, a.Status, a.AppliedDate, a.Deadline, a.Notes, now(), a.ID, a.UserID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *SQLiteRepo) DeleteApplication(ctx context.Context, id, ownerID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM job_applications WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *SQLiteRepo) ListByOwner(ctx context.Context, ownerID int64, f repository.ListFilter, o repository.ListOptions) ([]models.JobApplication, int64, error) {
	where := []string{"user_id = ?"}
	args := []any{ownerID}

	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Keyword != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(company) LIKE ?)")
		kw := "%" + strings.ToLower(f.Keyword) + "%"
		args = append(args, kw, kw)
	}
	if f.StartDate != "" {
		where = append(where, "applied_date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		where = append(where, "applied_date <= ?")
		args = append(args, f.EndDate)
	}

	cond := strings.Join(where, " AND ")

	var total int64
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications WHERE `+cond, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[o.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", repository.ErrInvalidSortField, o.SortBy)
	}
	dir := "DESC"
	if strings.EqualFold(o.SortDir, "asc") {
		dir = "ASC"
	}

	size := o.Size
	if size <= 0 {
		size = 10
	}
	page := o.Page
	if page < 0 {
		page = 0
	}

	query := fmt.Sprintf(`SELECT id, user_id, title, company, status, applied_date, deadline, notes, created, updated FROM job_applications WHERE %s ORDER BY %s %s LIMIT ? OFFSET ?`, cond, col, dir)
	rows, err := r.conn.QueryRows(ctx, query, append(args, size, page*size)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.JobApplication
	for rows.Next() {
		var a models.JobApplication
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Company, &a.Status, &a.AppliedDate, &a.Deadline, &a.Notes, &a.Created, &a.Updated); err != nil {
			return nil, 0, err
		}

		out = append(out, a)
	}

	return out, total, rows.Err()
}

func (r *SQLiteRepo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications WHERE user_id = ?`, ownerID)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) CountByOwnerPerStatus(ctx context.Context, ownerID int64) (map[models.ApplicationStatus]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT status, COUNT(*) FROM job_applications WHERE user_id = ? GROUP BY status`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.ApplicationStatus]int64)
	for rows.Next() {
		var st models.ApplicationStatus
		var cnt int64
		if err := rows.Scan(&st, &cnt); err != nil {
			return nil, err
		}

		counts[st] = cnt
	}

	return counts, rows.Err()
}
