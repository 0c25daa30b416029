package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jobtracker/backend/internal/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (username, email, password_hash, role, created) VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.Role, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, role, created FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, role, created FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}

func (r *SQLiteRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, username)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *SQLiteRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

const userSummaryQuery = `SELECT u.id, u.username, u.email, u.role, u.created, COUNT(a.id)
FROM users u
LEFT JOIN job_applications a ON a.user_id = u.id`

func (r *SQLiteRepo) ListUserSummaries(ctx context.Context) ([]models.UserSummary, error) {
	rows, err := r.conn.QueryRows(ctx, userSummaryQuery+` GROUP BY u.id ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserSummary
	for rows.Next() {
		var s models.UserSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.Email, &s.Role, &s.Created, &s.ApplicationCount); err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) GetUserSummary(ctx context.Context, id int64) (*models.UserSummary, error) {
	row := r.conn.QueryRow(ctx, userSummaryQuery+` WHERE u.id = ? GROUP BY u.id`, id)
	var s models.UserSummary
	if err := row.Scan(&s.ID, &s.Username, &s.Email, &s.Role, &s.Created, &s.ApplicationCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}

// DeleteUser removes the user's applications and then the user itself in one
// transaction, keeping the ownership invariant explicit instead of leaning on
// a foreign-key cascade.
func (r *SQLiteRepo) DeleteUser(ctx context.Context, id int64) (bool, error) {
	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return false, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM job_applications WHERE user_id = ?`, id); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	committed = true
	if err := tx.Commit(); err != nil {
		return false, err
	}

	return n > 0, nil
}
