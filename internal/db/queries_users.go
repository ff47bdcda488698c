package db

import (
	"database/sql"

	"github.com/nlowell/fsubs/internal/model"
)

const userColumns = `id, username, email, access, verified, salt, hashed_password,
	date_created, created_by, last_modified, modified_by`

func CreateUser(database *sql.DB, u *model.User) error {
	_, err := database.Exec(
		`INSERT INTO users (id, username, email, access, verified, salt, hashed_password,
			date_created, created_by, last_modified, modified_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, string(u.Access), u.Verified, u.Salt, u.HashedPassword,
		storeTime(u.Metadata.DateCreated), u.Metadata.CreatedBy,
		storeTime(u.Metadata.LastModified), u.Metadata.ModifiedBy,
	)
	return err
}

func scanUser(row *sql.Row) (*model.User, error) {
	u := &model.User{}
	var access string
	var created, modified SQLiteTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &access, &u.Verified, &u.Salt,
		&u.HashedPassword, &created, &u.Metadata.CreatedBy, &modified, &u.Metadata.ModifiedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Access = model.Access(access)
	u.Metadata.DateCreated = created.Time
	u.Metadata.LastModified = modified.Time
	return u, nil
}

func GetUserByID(database *sql.DB, id string) (*model.User, error) {
	return scanUser(database.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func GetUserByUsername(database *sql.DB, username string) (*model.User, error) {
	return scanUser(database.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func GetUserByEmail(database *sql.DB, email string) (*model.User, error) {
	return scanUser(database.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func ListUsers(database *sql.DB, limit, offset int) ([]model.User, error) {
	rows, err := database.Query(
		`SELECT `+userColumns+` FROM users ORDER BY username LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u := model.User{}
		var access string
		var created, modified SQLiteTime
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &access, &u.Verified, &u.Salt,
			&u.HashedPassword, &created, &u.Metadata.CreatedBy, &modified, &u.Metadata.ModifiedBy); err != nil {
			return nil, err
		}
		u.Access = model.Access(access)
		u.Metadata.DateCreated = created.Time
		u.Metadata.LastModified = modified.Time
		users = append(users, u)
	}
	return users, rows.Err()
}

func UpdateUser(database *sql.DB, u *model.User) error {
	_, err := database.Exec(
		`UPDATE users SET username = ?, email = ?, access = ?, verified = ?, salt = ?,
			hashed_password = ?, date_created = ?, created_by = ?, last_modified = ?, modified_by = ?
		WHERE id = ?`,
		u.Username, u.Email, string(u.Access), u.Verified, u.Salt, u.HashedPassword,
		storeTime(u.Metadata.DateCreated), u.Metadata.CreatedBy,
		storeTime(u.Metadata.LastModified), u.Metadata.ModifiedBy,
		u.ID,
	)
	return err
}

func DeleteUser(database *sql.DB, id string) error {
	_, err := database.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}

// EmailInUse reports whether another user than excludeID already has the
// given email address.
func EmailInUse(database *sql.DB, email, excludeID string) (bool, error) {
	var count int
	err := database.QueryRow(
		`SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`, email, excludeID).Scan(&count)
	return count > 0, err
}
