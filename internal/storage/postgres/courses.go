package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/storage"
)

func (s *Store) AddCourse(course models.Course) error {
	if err := course.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO courses (id, title, code, lecturer, description, course_unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		course.ID, course.Title, course.Code,
		nullable(course.Lecturer), nullable(course.Description),
		course.CourseUnit, course.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}
	return nil
}

func (s *Store) GetCourse(id string) (models.Course, error) {
	row := s.db.QueryRow(`
		SELECT id, title, code, lecturer, description, course_unit, created_at
		FROM courses WHERE id = $1
	`, id)

	course, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Course{}, fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}
	return course, err
}

func (s *Store) GetAllCourses() ([]models.Course, error) {
	rows, err := s.db.Query(`
		SELECT id, title, code, lecturer, description, course_unit, created_at
		FROM courses ORDER BY title ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (s *Store) DeleteCourse(id string) error {
	res, err := s.db.Exec(`DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return checkAffected(res, id)
}

func (s *Store) AddSchedule(schedule models.CourseSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO course_schedule (id, course_id, user_id, day, start_time, end_time, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		schedule.ID, schedule.CourseID, schedule.UserID, schedule.Day,
		schedule.StartTime, schedule.EndTime, nullable(schedule.Location),
		schedule.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

func (s *Store) GetSchedulesForDay(userID, day string) ([]models.CourseSchedule, error) {
	return s.querySchedules(`
		SELECT id, course_id, user_id, day, start_time, end_time, location, created_at
		FROM course_schedule
		WHERE user_id = $1 AND day = $2
		ORDER BY start_time ASC
	`, userID, day)
}

func (s *Store) GetAllSchedules(userID string) ([]models.CourseSchedule, error) {
	return s.querySchedules(`
		SELECT id, course_id, user_id, day, start_time, end_time, location, created_at
		FROM course_schedule
		WHERE user_id = $1
		ORDER BY day, start_time ASC
	`, userID)
}

func (s *Store) DeleteSchedule(id string) error {
	res, err := s.db.Exec(`DELETE FROM course_schedule WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return checkAffected(res, id)
}

// GetFirstClass returns the user's earliest class of the named weekday, with
// the course title joined in, or nil when the day has no classes.
func (s *Store) GetFirstClass(userID, day string) (*models.ClassInfo, error) {
	row := s.db.QueryRow(`
		SELECT cs.start_time, cs.location, c.title
		FROM course_schedule cs
		JOIN courses c ON c.id = cs.course_id
		WHERE cs.user_id = $1 AND cs.day = $2
		ORDER BY cs.start_time ASC
		LIMIT 1
	`, userID, day)

	var info models.ClassInfo
	var location sql.NullString
	err := row.Scan(&info.StartTime, &location, &info.CourseTitle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query first class: %w", err)
	}
	info.Location = location.String
	return &info, nil
}

func (s *Store) querySchedules(query string, args ...any) ([]models.CourseSchedule, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []models.CourseSchedule
	for rows.Next() {
		var cs models.CourseSchedule
		var location sql.NullString
		var createdAt string
		if err := rows.Scan(&cs.ID, &cs.CourseID, &cs.UserID, &cs.Day,
			&cs.StartTime, &cs.EndTime, &location, &createdAt); err != nil {
			return nil, err
		}
		cs.Location = location.String
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			cs.CreatedAt = t
		}
		schedules = append(schedules, cs)
	}
	return schedules, rows.Err()
}

func scanCourse(row rowScanner) (models.Course, error) {
	var c models.Course
	var lecturer, description sql.NullString
	var courseUnit sql.NullInt64
	var createdAt string

	err := row.Scan(&c.ID, &c.Title, &c.Code, &lecturer, &description, &courseUnit, &createdAt)
	if err != nil {
		return models.Course{}, err
	}

	c.Lecturer = lecturer.String
	c.Description = description.String
	c.CourseUnit = int(courseUnit.Int64)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}
