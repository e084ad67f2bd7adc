package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/emilianohg/staffboard/internal/calendar"
	apperrors "github.com/emilianohg/staffboard/internal/errors"
	"github.com/emilianohg/staffboard/internal/models"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/workload"
)

// AssignmentInput is the editable part of a project assignment. Empty enum
// fields take their defaults and a zero Hours is derived from the dates.
type AssignmentInput struct {
	ProjectName            string     `json:"project_name" validate:"required"`
	PersonID               *int64     `json:"resource_id"`
	ClientCountry          string     `json:"client_country"`
	ServiceLine            string     `json:"service_line"`
	ResourceAvailableLocal string     `json:"resource_available_in_kenya" validate:"omitempty,oneof=Yes No"`
	Activity               string     `json:"activity"`
	PartnersNeeded         string     `json:"partners_needed" validate:"omitempty,oneof=Yes No"`
	StartDate              *time.Time `json:"start_date" validate:"required"`
	EndDate                *time.Time `json:"end_date" validate:"required"`
	Hours                  int        `json:"hours" validate:"min=0"`
	Priority               string     `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	Status                 string     `json:"status" validate:"omitempty,oneof='Not Started' 'In Progress' Completed Blocked Deferred"`
	Impact                 string     `json:"impact" validate:"omitempty,oneof='On Track' Warning Problem"`
	Comments               string     `json:"comments"`
}

// NewAssignment validates in and builds the row to store. A resource is not
// required here; callers that need one check PersonID themselves.
func NewAssignment(v *validator.Validate, in AssignmentInput, hoursPerDay int) (*models.Assignment, error) {
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	if err := validate(v, in); err != nil {
		return nil, err
	}

	start := calendar.Date(*in.StartDate)
	end := calendar.Date(*in.EndDate)
	if end.Before(start) {
		return nil, &apperrors.ValidationError{Field: "end_date", Message: "must not be before start_date"}
	}

	hours := in.Hours
	if hours == 0 {
		hours = calendar.WorkingHours(&start, &end, hoursPerDay)
	}
	if hours < 1 {
		return nil, &apperrors.ValidationError{Field: "hours", Message: "must be at least 1 (range has no working days)"}
	}

	return &models.Assignment{
		ProjectName:            in.ProjectName,
		PersonID:               in.PersonID,
		ClientCountry:          strings.TrimSpace(in.ClientCountry),
		ServiceLine:            strings.TrimSpace(in.ServiceLine),
		ResourceAvailableLocal: orDefault(in.ResourceAvailableLocal, models.No),
		Activity:               strings.TrimSpace(in.Activity),
		PartnersNeeded:         orDefault(in.PartnersNeeded, models.No),
		StartDate:              &start,
		EndDate:                &end,
		Hours:                  hours,
		Priority:               orDefault(in.Priority, models.PriorityMedium),
		Status:                 orDefault(in.Status, models.StatusNotStarted),
		Impact:                 orDefault(in.Impact, models.ImpactOnTrack),
		Comments:               in.Comments,
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

type AssignmentService struct {
	db          *sql.DB
	validator   *validator.Validate
	log         logrus.FieldLogger
	hoursPerDay int
}

func NewAssignmentService(conn *sql.DB, v *validator.Validate, log logrus.FieldLogger, hoursPerDay int) *AssignmentService {
	if hoursPerDay <= 0 {
		hoursPerDay = calendar.DefaultHoursPerDay
	}
	return &AssignmentService{db: conn, validator: v, log: log, hoursPerDay: hoursPerDay}
}

// SuggestHours is the default effort for a date range.
func (s *AssignmentService) SuggestHours(start, end *time.Time) int {
	return calendar.WorkingHours(start, end, s.hoursPerDay)
}

func (s *AssignmentService) build(in AssignmentInput) (*models.Assignment, error) {
	if in.PersonID == nil {
		return nil, &apperrors.ValidationError{Field: "resource_id", Message: "is required"}
	}
	return NewAssignment(s.validator, in, s.hoursPerDay)
}

func requirePerson(q repository.Querier, id int64) error {
	p, err := repository.NewPersonRepo(q).GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load team member: %w", err)
	}
	if p == nil {
		return &apperrors.ValidationError{Field: "resource_id", Message: fmt.Sprintf("team member %d does not exist", id)}
	}
	return nil
}

// Create stores a new assignment and refreshes its person's hours.
func (s *AssignmentService) Create(in AssignmentInput) (*models.Assignment, error) {
	a, err := s.build(in)
	if err != nil {
		return nil, err
	}

	var created *models.Assignment
	err = withTx(s.db, func(tx *sql.Tx) error {
		if err := requirePerson(tx, *a.PersonID); err != nil {
			return err
		}
		created, err = repository.NewAssignmentRepo(tx).Create(a)
		if err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		return workload.New(tx, s.log).Sync(created.PersonID)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"assignment_id": created.ID, "hours": created.Hours}).Debug("assignment created")
	return created, nil
}

// Update replaces assignment id with in and refreshes both the previous and
// the new person.
func (s *AssignmentService) Update(id int64, in AssignmentInput) (*models.Assignment, error) {
	a, err := s.build(in)
	if err != nil {
		return nil, err
	}
	a.ID = id

	var updated *models.Assignment
	err = withTx(s.db, func(tx *sql.Tx) error {
		repo := repository.NewAssignmentRepo(tx)
		old, err := repo.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to load assignment: %w", err)
		}
		if old == nil {
			return &apperrors.NotFoundError{Entity: "assignment", ID: id}
		}
		if err := requirePerson(tx, *a.PersonID); err != nil {
			return err
		}

		if err := repo.Update(a); err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}
		if err := workload.New(tx, s.log).Sync(old.PersonID, a.PersonID); err != nil {
			return err
		}

		updated, err = repo.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("assignment_id", id).Debug("assignment updated")
	return updated, nil
}

// Delete removes assignment id and refreshes the person it pointed at.
func (s *AssignmentService) Delete(id int64) error {
	err := withTx(s.db, func(tx *sql.Tx) error {
		repo := repository.NewAssignmentRepo(tx)
		old, err := repo.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to load assignment: %w", err)
		}
		if old == nil {
			return &apperrors.NotFoundError{Entity: "assignment", ID: id}
		}

		if err := repo.Delete(id); err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}
		return workload.New(tx, s.log).Sync(old.PersonID)
	})
	if err != nil {
		return err
	}

	s.log.WithField("assignment_id", id).Debug("assignment deleted")
	return nil
}

func (s *AssignmentService) Get(id int64) (*models.Assignment, error) {
	a, err := repository.NewAssignmentRepo(s.db).GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &apperrors.NotFoundError{Entity: "assignment", ID: id}
	}
	return a, nil
}

func (s *AssignmentService) List(filter repository.AssignmentFilter) ([]models.Assignment, error) {
	return repository.NewAssignmentRepo(s.db).List(filter)
}

func (s *AssignmentService) Stats(filter repository.AssignmentFilter, now time.Time) (*repository.AssignmentStats, error) {
	return repository.NewAssignmentRepo(s.db).Stats(filter, now)
}

// InputFromAssignment copies the editable fields of a stored assignment, so
// callers can change a few of them and pass the result to Update.
func InputFromAssignment(a *models.Assignment) AssignmentInput {
	return AssignmentInput{
		ProjectName:            a.ProjectName,
		PersonID:               a.PersonID,
		ClientCountry:          a.ClientCountry,
		ServiceLine:            a.ServiceLine,
		ResourceAvailableLocal: a.ResourceAvailableLocal,
		Activity:               a.Activity,
		PartnersNeeded:         a.PartnersNeeded,
		StartDate:              a.StartDate,
		EndDate:                a.EndDate,
		Hours:                  a.Hours,
		Priority:               a.Priority,
		Status:                 a.Status,
		Impact:                 a.Impact,
		Comments:               a.Comments,
	}
}
