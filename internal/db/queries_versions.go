package db

import (
	"database/sql"
	"encoding/json"

	"github.com/nlowell/fsubs/internal/model"
)

const versionColumns = `id, video_base_id, disc_type, region, sub_type, timestamps,
	description, track, date_created, created_by, last_modified, modified_by`

func CreateVersion(database *sql.DB, v *model.Version) error {
	ts, err := json.Marshal(v.Timestamps)
	if err != nil {
		return err
	}
	_, err = database.Exec(
		`INSERT INTO versions (id, video_base_id, disc_type, region, sub_type, timestamps,
			description, track, date_created, created_by, last_modified, modified_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.VideoBaseID, v.DiscType, v.Region, v.SubType, string(ts),
		v.Description, v.Track,
		storeTime(v.Metadata.DateCreated), v.Metadata.CreatedBy,
		storeTime(v.Metadata.LastModified), v.Metadata.ModifiedBy,
	)
	return err
}

func scanVersion(scan func(dest ...any) error) (*model.Version, error) {
	v := &model.Version{}
	var ts string
	var created, modified SQLiteTime
	err := scan(&v.ID, &v.VideoBaseID, &v.DiscType, &v.Region, &v.SubType, &ts,
		&v.Description, &v.Track,
		&created, &v.Metadata.CreatedBy, &modified, &v.Metadata.ModifiedBy)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ts), &v.Timestamps); err != nil {
		return nil, err
	}
	v.Metadata.DateCreated = created.Time
	v.Metadata.LastModified = modified.Time
	return v, nil
}

func GetVersion(database *sql.DB, id string) (*model.Version, error) {
	row := database.QueryRow(`SELECT `+versionColumns+` FROM versions WHERE id = ?`, id)
	v, err := scanVersion(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return v, err
}

func ListVersionsByVideo(database *sql.DB, videoID string) ([]model.Version, error) {
	rows, err := database.Query(
		`SELECT `+versionColumns+` FROM versions WHERE video_base_id = ? ORDER BY date_created`,
		videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []model.Version
	for rows.Next() {
		v, err := scanVersion(rows.Scan)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

func UpdateVersion(database *sql.DB, v *model.Version) error {
	ts, err := json.Marshal(v.Timestamps)
	if err != nil {
		return err
	}
	_, err = database.Exec(
		`UPDATE versions SET video_base_id = ?, disc_type = ?, region = ?, sub_type = ?,
			timestamps = ?, description = ?, track = ?,
			date_created = ?, created_by = ?, last_modified = ?, modified_by = ?
		WHERE id = ?`,
		v.VideoBaseID, v.DiscType, v.Region, v.SubType, string(ts), v.Description, v.Track,
		storeTime(v.Metadata.DateCreated), v.Metadata.CreatedBy,
		storeTime(v.Metadata.LastModified), v.Metadata.ModifiedBy,
		v.ID,
	)
	return err
}

func DeleteVersion(database *sql.DB, id string) error {
	_, err := database.Exec(`DELETE FROM versions WHERE id = ?`, id)
	return err
}

func DeleteVersionsByVideo(database *sql.DB, videoID string) error {
	_, err := database.Exec(`DELETE FROM versions WHERE video_base_id = ?`, videoID)
	return err
}
