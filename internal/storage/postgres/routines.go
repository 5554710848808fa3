package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/storage"
)

const routineColumns = `id, user_id, title, day_of_week, position, priority,
	duration_min, travel_mode, start_time, end_time, location, notes, created_at`

func (s *Store) AddRoutine(routine models.Routine) error {
	if err := routine.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO routines (`+routineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		routine.ID, routine.UserID, routine.Title, routine.DayOfWeek, routine.Position,
		string(routine.Priority), routine.DurationMin, string(routine.TravelMode),
		nullable(routine.StartTime), nullable(routine.EndTime),
		nullable(routine.Location), nullable(routine.Notes),
		routine.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert routine: %w", err)
	}
	return nil
}

func (s *Store) GetRoutine(id string) (models.Routine, error) {
	row := s.db.QueryRow(`SELECT `+routineColumns+` FROM routines WHERE id = $1`, id)
	routine, err := scanRoutine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Routine{}, fmt.Errorf("routine %s: %w", id, storage.ErrNotFound)
	}
	return routine, err
}

func (s *Store) GetAllRoutines(userID string) ([]models.Routine, error) {
	return s.queryRoutines(`
		SELECT `+routineColumns+` FROM routines
		WHERE user_id = $1
		ORDER BY day_of_week, position ASC
	`, userID)
}

func (s *Store) GetRoutinesForDay(userID, day string) ([]models.Routine, error) {
	return s.queryRoutines(`
		SELECT `+routineColumns+` FROM routines
		WHERE user_id = $1 AND day_of_week = $2
		ORDER BY position ASC
	`, userID, day)
}

func (s *Store) UpdateRoutine(routine models.Routine) error {
	if err := routine.Validate(); err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE routines
		SET title = $1, day_of_week = $2, position = $3, priority = $4, duration_min = $5,
		    travel_mode = $6, start_time = $7, end_time = $8, location = $9, notes = $10
		WHERE id = $11
	`,
		routine.Title, routine.DayOfWeek, routine.Position, string(routine.Priority),
		routine.DurationMin, string(routine.TravelMode),
		nullable(routine.StartTime), nullable(routine.EndTime),
		nullable(routine.Location), nullable(routine.Notes),
		routine.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update routine: %w", err)
	}
	return checkAffected(res, routine.ID)
}

func (s *Store) DeleteRoutine(id string) error {
	res, err := s.db.Exec(`DELETE FROM routines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	return checkAffected(res, id)
}

func (s *Store) ReorderRoutines(userID, day string, orderedIDs []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE routines SET position = $1
		WHERE id = $2 AND user_id = $3 AND day_of_week = $4
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for idx, id := range orderedIDs {
		if _, err := stmt.Exec(idx, id, userID, day); err != nil {
			return fmt.Errorf("failed to reposition routine %s: %w", id, err)
		}
	}

	return tx.Commit()
}

func (s *Store) queryRoutines(query string, args ...any) ([]models.Routine, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query routines: %w", err)
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		routine, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	return routines, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoutine(row rowScanner) (models.Routine, error) {
	var r models.Routine
	var priority, travelMode, createdAt string
	var startTime, endTime, location, notes sql.NullString

	err := row.Scan(
		&r.ID, &r.UserID, &r.Title, &r.DayOfWeek, &r.Position, &priority,
		&r.DurationMin, &travelMode, &startTime, &endTime, &location, &notes, &createdAt,
	)
	if err != nil {
		return models.Routine{}, err
	}

	r.Priority = models.Priority(priority)
	r.TravelMode = models.TravelMode(travelMode)
	r.StartTime = startTime.String
	r.EndTime = endTime.String
	r.Location = location.String
	r.Notes = notes.String

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		r.CreatedAt = t
	}

	return r, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func checkAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, storage.ErrNotFound)
	}
	return nil
}
