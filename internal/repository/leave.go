package repository

import (
	"database/sql"

	"github.com/emilianohg/staffboard/internal/models"
)

type LeaveRepo struct {
	db Querier
}

func NewLeaveRepo(db Querier) *LeaveRepo {
	return &LeaveRepo{db: db}
}

// Upsert inserts or replaces the leave balance for lb.PersonID.
func (r *LeaveRepo) Upsert(lb models.LeaveBalance) error {
	_, err := r.db.Exec(`
		INSERT INTO leave_balances (team_member_id, previous_year_balance, current_year_allocated, current_year_taken)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(team_member_id) DO UPDATE SET
			previous_year_balance = excluded.previous_year_balance,
			current_year_allocated = excluded.current_year_allocated,
			current_year_taken = excluded.current_year_taken
	`, lb.PersonID, lb.PreviousYearBalance, lb.CurrentYearAllocated, lb.CurrentYearTaken)
	return err
}

func (r *LeaveRepo) GetByPersonID(personID int64) (*models.LeaveBalance, error) {
	lb := models.LeaveBalance{PersonID: personID}
	err := r.db.QueryRow(`
		SELECT previous_year_balance, current_year_allocated, current_year_taken
		FROM leave_balances WHERE team_member_id = ?
	`, personID).Scan(&lb.PreviousYearBalance, &lb.CurrentYearAllocated, &lb.CurrentYearTaken)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lb, nil
}

// PersonLeave pairs a roster member with their balance, which is nil when
// none has been recorded yet.
type PersonLeave struct {
	models.Person
	Balance *models.LeaveBalance
}

func (r *LeaveRepo) GetAllWithPeople() ([]PersonLeave, error) {
	rows, err := r.db.Query(`
		SELECT tm.id, tm.name, tm.email, tm.role, tm.assigned_hours, tm.created_at,
		       lb.team_member_id, lb.previous_year_balance, lb.current_year_allocated, lb.current_year_taken
		FROM team_members tm
		LEFT JOIN leave_balances lb ON lb.team_member_id = tm.id
		ORDER BY tm.name, tm.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PersonLeave
	for rows.Next() {
		var pl PersonLeave
		var balanceID sql.NullInt64
		var previous, allocated, taken sql.NullFloat64

		if err := rows.Scan(
			&pl.ID, &pl.Name, &pl.Email, &pl.Role, &pl.AssignedHours, &pl.CreatedAt,
			&balanceID, &previous, &allocated, &taken,
		); err != nil {
			return nil, err
		}

		if balanceID.Valid {
			pl.Balance = &models.LeaveBalance{
				PersonID:             balanceID.Int64,
				PreviousYearBalance:  previous.Float64,
				CurrentYearAllocated: allocated.Float64,
				CurrentYearTaken:     taken.Float64,
			}
		}
		out = append(out, pl)
	}
	return out, rows.Err()
}
