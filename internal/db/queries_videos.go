package db

import (
	"database/sql"

	"github.com/nlowell/fsubs/internal/model"
)

// Movies and tv shows have the same record shape; each lives in its own
// table and the exported functions pin the table name.
const (
	tableMovies  = "movies"
	tableTVShows = "tv_shows"
)

const videoColumns = `id, title, imdb_id, description,
	date_created, created_by, last_modified, modified_by`

func createVideo(database *sql.DB, table string, v *model.Video) error {
	_, err := database.Exec(
		`INSERT INTO `+table+` (id, title, imdb_id, description,
			date_created, created_by, last_modified, modified_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.ImdbID, v.Description,
		storeTime(v.Metadata.DateCreated), v.Metadata.CreatedBy,
		storeTime(v.Metadata.LastModified), v.Metadata.ModifiedBy,
	)
	return err
}

func getVideo(database *sql.DB, table, id string) (*model.Video, error) {
	v := &model.Video{}
	var created, modified SQLiteTime
	err := database.QueryRow(
		`SELECT `+videoColumns+` FROM `+table+` WHERE id = ?`, id,
	).Scan(&v.ID, &v.Title, &v.ImdbID, &v.Description,
		&created, &v.Metadata.CreatedBy, &modified, &v.Metadata.ModifiedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v.Metadata.DateCreated = created.Time
	v.Metadata.LastModified = modified.Time
	return v, nil
}

func listVideos(database *sql.DB, table string, limit, offset int) ([]model.Video, error) {
	rows, err := database.Query(
		`SELECT `+videoColumns+` FROM `+table+` ORDER BY title LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		v := model.Video{}
		var created, modified SQLiteTime
		if err := rows.Scan(&v.ID, &v.Title, &v.ImdbID, &v.Description,
			&created, &v.Metadata.CreatedBy, &modified, &v.Metadata.ModifiedBy); err != nil {
			return nil, err
		}
		v.Metadata.DateCreated = created.Time
		v.Metadata.LastModified = modified.Time
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func updateVideo(database *sql.DB, table string, v *model.Video) error {
	_, err := database.Exec(
		`UPDATE `+table+` SET title = ?, imdb_id = ?, description = ?,
			date_created = ?, created_by = ?, last_modified = ?, modified_by = ?
		WHERE id = ?`,
		v.Title, v.ImdbID, v.Description,
		storeTime(v.Metadata.DateCreated), v.Metadata.CreatedBy,
		storeTime(v.Metadata.LastModified), v.Metadata.ModifiedBy,
		v.ID,
	)
	return err
}

func deleteVideo(database *sql.DB, table, id string) error {
	_, err := database.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	return err
}

func CreateMovie(database *sql.DB, v *model.Video) error { return createVideo(database, tableMovies, v) }

func GetMovie(database *sql.DB, id string) (*model.Video, error) {
	return getVideo(database, tableMovies, id)
}

func ListMovies(database *sql.DB, limit, offset int) ([]model.Video, error) {
	return listVideos(database, tableMovies, limit, offset)
}

func UpdateMovie(database *sql.DB, v *model.Video) error { return updateVideo(database, tableMovies, v) }

func DeleteMovie(database *sql.DB, id string) error { return deleteVideo(database, tableMovies, id) }

func CreateTVShow(database *sql.DB, v *model.Video) error {
	return createVideo(database, tableTVShows, v)
}

func GetTVShow(database *sql.DB, id string) (*model.Video, error) {
	return getVideo(database, tableTVShows, id)
}

func ListTVShows(database *sql.DB, limit, offset int) ([]model.Video, error) {
	return listVideos(database, tableTVShows, limit, offset)
}

func UpdateTVShow(database *sql.DB, v *model.Video) error {
	return updateVideo(database, tableTVShows, v)
}

func DeleteTVShow(database *sql.DB, id string) error { return deleteVideo(database, tableTVShows, id) }
