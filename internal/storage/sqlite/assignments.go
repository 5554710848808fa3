package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/wakelit/internal/models"
)

func (s *Store) AddAssignment(assignment models.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO assignments (id, course_id, user_id, title, description, due_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		assignment.ID, assignment.CourseID, assignment.UserID, assignment.Title,
		nullable(assignment.Description), assignment.DueDate.Format(time.RFC3339),
		string(assignment.Status), assignment.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

func (s *Store) GetAllAssignments(userID string) ([]models.Assignment, error) {
	rows, err := s.db.Query(`
		SELECT id, course_id, user_id, title, description, due_date, status, created_at
		FROM assignments
		WHERE user_id = ?
		ORDER BY due_date ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		var description sql.NullString
		var dueDate, status, createdAt string
		if err := rows.Scan(&a.ID, &a.CourseID, &a.UserID, &a.Title,
			&description, &dueDate, &status, &createdAt); err != nil {
			return nil, err
		}
		a.Description = description.String
		a.Status = models.AssignmentStatus(status)
		if t, err := time.Parse(time.RFC3339, dueDate); err == nil {
			a.DueDate = t
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			a.CreatedAt = t
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (s *Store) UpdateAssignmentStatus(id string, status models.AssignmentStatus) error {
	res, err := s.db.Exec(`UPDATE assignments SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	return checkAffected(res, id)
}

func (s *Store) DeleteAssignment(id string) error {
	res, err := s.db.Exec(`DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return checkAffected(res, id)
}
