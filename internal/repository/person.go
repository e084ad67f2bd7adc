package repository

import (
	"database/sql"

	"github.com/emilianohg/staffboard/internal/models"
)

type PersonRepo struct {
	db Querier
}

func NewPersonRepo(db Querier) *PersonRepo {
	return &PersonRepo{db: db}
}

const personColumns = "id, name, email, role, assigned_hours, created_at"

func (r *PersonRepo) Create(name, email, role string) (*models.Person, error) {
	result, err := r.db.Exec(
		"INSERT INTO team_members (name, email, role) VALUES (?, ?, ?)",
		name, email, role,
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

func (r *PersonRepo) GetByID(id int64) (*models.Person, error) {
	return r.getOne("SELECT "+personColumns+" FROM team_members WHERE id = ?", id)
}

func (r *PersonRepo) GetByEmail(email string) (*models.Person, error) {
	return r.getOne("SELECT "+personColumns+" FROM team_members WHERE email = ?", email)
}

func (r *PersonRepo) getOne(query string, arg any) (*models.Person, error) {
	var p models.Person
	err := r.db.QueryRow(query, arg).Scan(
		&p.ID, &p.Name, &p.Email, &p.Role, &p.AssignedHours, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PersonRepo) GetAll() ([]models.Person, error) {
	rows, err := r.db.Query("SELECT " + personColumns + " FROM team_members ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.AssignedHours, &p.CreatedAt); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// NameIndex maps each roster name to its id. With duplicate names the lowest id wins.
func (r *PersonRepo) NameIndex() (map[string]int64, error) {
	rows, err := r.db.Query("SELECT id, name FROM team_members ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		index[name] = id
	}
	return index, rows.Err()
}

func (r *PersonRepo) Update(id int64, name, email, role string) error {
	_, err := r.db.Exec(
		"UPDATE team_members SET name = ?, email = ?, role = ? WHERE id = ?",
		name, email, role, id,
	)
	return err
}

// SetAssignedHours overwrites the cached workload value for one person.
func (r *PersonRepo) SetAssignedHours(id int64, hours int) error {
	_, err := r.db.Exec("UPDATE team_members SET assigned_hours = ? WHERE id = ?", hours, id)
	return err
}

// CachedHours returns the stored assigned_hours for every person.
func (r *PersonRepo) CachedHours() (map[int64]int, error) {
	rows, err := r.db.Query("SELECT id, assigned_hours FROM team_members")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cached := make(map[int64]int)
	for rows.Next() {
		var id int64
		var hours int
		if err := rows.Scan(&id, &hours); err != nil {
			return nil, err
		}
		cached[id] = hours
	}
	return cached, rows.Err()
}

func (r *PersonRepo) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM team_members WHERE id = ?", id)
	return err
}

// Roles returns the distinct activity labels in use, which double as role suggestions.
func (r *PersonRepo) Roles() ([]string, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT activity FROM projects
		WHERE activity IS NOT NULL AND activity != ''
		ORDER BY activity
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
