package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/emilianohg/staffboard/internal/models"
)

type AssignmentRepo struct {
	db Querier
}

func NewAssignmentRepo(db Querier) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// AssignmentFilter narrows List. Zero values mean "any".
type AssignmentFilter struct {
	PersonID      *int64
	Activity      string
	ClientCountry string
	Status        string
	From          *time.Time // start_date >= From
	To            *time.Time // end_date <= To
}

const assignmentSelect = `
	SELECT p.id, p.project_name, p.resource_id, p.client_country, p.service_line,
	       p.resource_available_in_kenya, p.activity, p.partners_needed,
	       p.start_date, p.end_date, p.hours, p.priority, p.status, p.impact,
	       p.comments, p.created_at, tm.name
	FROM projects p
	LEFT JOIN team_members tm ON tm.id = p.resource_id
`

func (r *AssignmentRepo) Create(a *models.Assignment) (*models.Assignment, error) {
	result, err := r.db.Exec(`
		INSERT INTO projects (
			project_name, resource_id, client_country, service_line,
			resource_available_in_kenya, activity, partners_needed,
			start_date, end_date, hours, priority, status, impact, comments
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ProjectName, nullableID(a.PersonID), a.ClientCountry, a.ServiceLine,
		a.ResourceAvailableLocal, a.Activity, a.PartnersNeeded,
		a.StartDate, a.EndDate, a.Hours, a.Priority, a.Status, a.Impact, a.Comments,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *AssignmentRepo) GetByID(id int64) (*models.Assignment, error) {
	row := r.db.QueryRow(assignmentSelect+"WHERE p.id = ?", id)
	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AssignmentRepo) List(filter AssignmentFilter) ([]models.Assignment, error) {
	var where []string
	var args []any

	if filter.PersonID != nil {
		where = append(where, "p.resource_id = ?")
		args = append(args, *filter.PersonID)
	}
	if filter.Activity != "" {
		where = append(where, "p.activity = ?")
		args = append(args, filter.Activity)
	}
	if filter.ClientCountry != "" {
		where = append(where, "p.client_country = ?")
		args = append(args, filter.ClientCountry)
	}
	if filter.Status != "" {
		where = append(where, "p.status = ?")
		args = append(args, filter.Status)
	}
	if filter.From != nil {
		where = append(where, "p.start_date IS NOT NULL AND p.start_date >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where = append(where, "p.end_date IS NOT NULL AND p.end_date <= ?")
		args = append(args, *filter.To)
	}

	query := assignmentSelect
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	query += "ORDER BY p.project_name, p.id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

func (r *AssignmentRepo) Update(a *models.Assignment) error {
	_, err := r.db.Exec(`
		UPDATE projects SET
			project_name = ?, resource_id = ?, client_country = ?, service_line = ?,
			resource_available_in_kenya = ?, activity = ?, partners_needed = ?,
			start_date = ?, end_date = ?, hours = ?, priority = ?, status = ?,
			impact = ?, comments = ?
		WHERE id = ?
	`,
		a.ProjectName, nullableID(a.PersonID), a.ClientCountry, a.ServiceLine,
		a.ResourceAvailableLocal, a.Activity, a.PartnersNeeded,
		a.StartDate, a.EndDate, a.Hours, a.Priority, a.Status,
		a.Impact, a.Comments, a.ID,
	)
	return err
}

func (r *AssignmentRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM projects WHERE id = ?", id)
	return err
}

// Unassign clears the person reference on every assignment held by personID
// and returns how many rows changed.
func (r *AssignmentRepo) Unassign(personID int64) (int64, error) {
	result, err := r.db.Exec("UPDATE projects SET resource_id = NULL WHERE resource_id = ?", personID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *AssignmentRepo) CountByPerson(personID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM projects WHERE resource_id = ?", personID).Scan(&count)
	return count, err
}

// SumHours totals hours over the assignments referencing personID.
func (r *AssignmentRepo) SumHours(personID int64) (int, error) {
	var total int
	err := r.db.QueryRow(
		"SELECT COALESCE(SUM(hours), 0) FROM projects WHERE resource_id = ?",
		personID,
	).Scan(&total)
	return total, err
}

// SumHoursByPerson totals hours for every roster member, including those with
// no assignments.
func (r *AssignmentRepo) SumHoursByPerson() (map[int64]int, error) {
	rows, err := r.db.Query(`
		SELECT tm.id, COALESCE(SUM(p.hours), 0)
		FROM team_members tm
		LEFT JOIN projects p ON p.resource_id = tm.id
		GROUP BY tm.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]int)
	for rows.Next() {
		var id int64
		var hours int
		if err := rows.Scan(&id, &hours); err != nil {
			return nil, err
		}
		totals[id] = hours
	}
	return totals, rows.Err()
}

type AssignmentStats struct {
	TotalProjects      int
	TotalHours         int
	UniqueResources    int
	CompletedLast7Days int
}

// Stats summarizes the assignments matching filter. now anchors the
// seven-day completion window.
func (r *AssignmentRepo) Stats(filter AssignmentFilter, now time.Time) (*AssignmentStats, error) {
	assignments, err := r.List(filter)
	if err != nil {
		return nil, err
	}

	stats := &AssignmentStats{}
	resources := make(map[int64]struct{})
	since := now.AddDate(0, 0, -7)

	for _, a := range assignments {
		stats.TotalProjects++
		stats.TotalHours += a.Hours
		if a.PersonID != nil {
			resources[*a.PersonID] = struct{}{}
		}
		if a.Status == models.StatusCompleted && a.EndDate != nil && !a.EndDate.Before(since) {
			stats.CompletedLast7Days++
		}
	}
	stats.UniqueResources = len(resources)

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(s rowScanner) (*models.Assignment, error) {
	var a models.Assignment
	var personID sql.NullInt64
	var startDate, endDate sql.NullTime
	var personName sql.NullString

	if err := s.Scan(
		&a.ID, &a.ProjectName, &personID, &a.ClientCountry, &a.ServiceLine,
		&a.ResourceAvailableLocal, &a.Activity, &a.PartnersNeeded,
		&startDate, &endDate, &a.Hours, &a.Priority, &a.Status, &a.Impact,
		&a.Comments, &a.CreatedAt, &personName,
	); err != nil {
		return nil, err
	}

	if personID.Valid {
		a.PersonID = &personID.Int64
	}
	if startDate.Valid {
		a.StartDate = &startDate.Time
	}
	if endDate.Valid {
		a.EndDate = &endDate.Time
	}
	a.PersonName = personName.String

	return &a, nil
}
