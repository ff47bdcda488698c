package db

import (
	"database/sql"

	"github.com/nlowell/fsubs/internal/model"
)

const episodeColumns = `id, tv_show_id, title, imdb_id, description, season, episode,
	date_created, created_by, last_modified, modified_by`

func CreateEpisode(database *sql.DB, e *model.Episode) error {
	_, err := database.Exec(
		`INSERT INTO tv_episodes (id, tv_show_id, title, imdb_id, description, season, episode,
			date_created, created_by, last_modified, modified_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TVShowID, e.Title, e.ImdbID, e.Description, e.Season, e.Episode,
		storeTime(e.Metadata.DateCreated), e.Metadata.CreatedBy,
		storeTime(e.Metadata.LastModified), e.Metadata.ModifiedBy,
	)
	return err
}

func scanEpisode(scan func(dest ...any) error) (*model.Episode, error) {
	e := &model.Episode{}
	var created, modified SQLiteTime
	err := scan(&e.ID, &e.TVShowID, &e.Title, &e.ImdbID, &e.Description, &e.Season, &e.Episode,
		&created, &e.Metadata.CreatedBy, &modified, &e.Metadata.ModifiedBy)
	if err != nil {
		return nil, err
	}
	e.Metadata.DateCreated = created.Time
	e.Metadata.LastModified = modified.Time
	return e, nil
}

func GetEpisode(database *sql.DB, id string) (*model.Episode, error) {
	row := database.QueryRow(`SELECT `+episodeColumns+` FROM tv_episodes WHERE id = ?`, id)
	e, err := scanEpisode(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func ListEpisodesByShow(database *sql.DB, showID string) ([]model.Episode, error) {
	rows, err := database.Query(
		`SELECT `+episodeColumns+` FROM tv_episodes WHERE tv_show_id = ?
		ORDER BY season, episode`, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []model.Episode
	for rows.Next() {
		e, err := scanEpisode(rows.Scan)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, *e)
	}
	return episodes, rows.Err()
}

// ListEpisodeIDsByShow returns just the ids, used when cascading a show
// deletion down to each episode's versions.
func ListEpisodeIDsByShow(database *sql.DB, showID string) ([]string, error) {
	rows, err := database.Query(`SELECT id FROM tv_episodes WHERE tv_show_id = ?`, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func UpdateEpisode(database *sql.DB, e *model.Episode) error {
	_, err := database.Exec(
		`UPDATE tv_episodes SET tv_show_id = ?, title = ?, imdb_id = ?, description = ?,
			season = ?, episode = ?, date_created = ?, created_by = ?, last_modified = ?, modified_by = ?
		WHERE id = ?`,
		e.TVShowID, e.Title, e.ImdbID, e.Description, e.Season, e.Episode,
		storeTime(e.Metadata.DateCreated), e.Metadata.CreatedBy,
		storeTime(e.Metadata.LastModified), e.Metadata.ModifiedBy,
		e.ID,
	)
	return err
}

func DeleteEpisode(database *sql.DB, id string) error {
	_, err := database.Exec(`DELETE FROM tv_episodes WHERE id = ?`, id)
	return err
}

func DeleteEpisodesByShow(database *sql.DB, showID string) error {
	_, err := database.Exec(`DELETE FROM tv_episodes WHERE tv_show_id = ?`, showID)
	return err
}
