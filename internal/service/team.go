package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	apperrors "github.com/emilianohg/staffboard/internal/errors"
	"github.com/emilianohg/staffboard/internal/models"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/workload"
)

type PersonInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"`
}

func (in *PersonInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
}

// TeamService manages the roster.
type TeamService struct {
	db        *sql.DB
	validator *validator.Validate
	log       logrus.FieldLogger
}

func NewTeamService(conn *sql.DB, v *validator.Validate, log logrus.FieldLogger) *TeamService {
	return &TeamService{db: conn, validator: v, log: log}
}

func emailTaken(email string) error {
	return &apperrors.AlreadyExistsError{Entity: "team member", Context: "with email " + email}
}

func (s *TeamService) Create(in PersonInput) (*models.Person, error) {
	in.trim()
	if err := validate(s.validator, in); err != nil {
		return nil, err
	}

	var created *models.Person
	err := withTx(s.db, func(tx *sql.Tx) error {
		people := repository.NewPersonRepo(tx)
		existing, err := people.GetByEmail(in.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			return emailTaken(in.Email)
		}

		created, err = people.Create(in.Name, in.Email, in.Role)
		if err != nil {
			return fmt.Errorf("failed to create team member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("person_id", created.ID).Debug("team member created")
	return created, nil
}

func (s *TeamService) Update(id int64, in PersonInput) (*models.Person, error) {
	in.trim()
	if err := validate(s.validator, in); err != nil {
		return nil, err
	}

	var updated *models.Person
	err := withTx(s.db, func(tx *sql.Tx) error {
		people := repository.NewPersonRepo(tx)
		current, err := people.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to load team member: %w", err)
		}
		if current == nil {
			return &apperrors.NotFoundError{Entity: "team member", ID: id}
		}

		other, err := people.GetByEmail(in.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if other != nil && other.ID != id {
			return emailTaken(in.Email)
		}

		if err := people.Update(id, in.Name, in.Email, in.Role); err != nil {
			return fmt.Errorf("failed to update team member: %w", err)
		}
		updated, err = people.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a team member. With unassign set, their assignments are kept
// with no resource first; otherwise a referenced member is refused with a
// ReferentialIntegrityError. It returns how many assignments were released.
func (s *TeamService) Delete(id int64, unassign bool) (int64, error) {
	var released int64
	err := withTx(s.db, func(tx *sql.Tx) error {
		people := repository.NewPersonRepo(tx)
		assignments := repository.NewAssignmentRepo(tx)

		p, err := people.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to load team member: %w", err)
		}
		if p == nil {
			return &apperrors.NotFoundError{Entity: "team member", ID: id}
		}

		if unassign {
			released, err = assignments.Unassign(id)
			if err != nil {
				return fmt.Errorf("failed to release assignments: %w", err)
			}
		}

		refs, err := assignments.CountByPerson(id)
		if err != nil {
			return fmt.Errorf("failed to count assignments: %w", err)
		}
		if refs > 0 {
			return &apperrors.ReferentialIntegrityError{Entity: "team member", ID: id, References: refs}
		}

		if err := people.Delete(id); err != nil {
			return fmt.Errorf("failed to delete team member: %w", err)
		}
		return workload.New(tx, s.log).SyncAll()
	})
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{"person_id": id, "released": released}).Debug("team member deleted")
	return released, nil
}

func (s *TeamService) Get(id int64) (*models.Person, error) {
	p, err := repository.NewPersonRepo(s.db).GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &apperrors.NotFoundError{Entity: "team member", ID: id}
	}
	return p, nil
}

func (s *TeamService) List() ([]models.Person, error) {
	return repository.NewPersonRepo(s.db).GetAll()
}

// Roles lists the activity labels already in use, for role suggestions.
func (s *TeamService) Roles() ([]string, error) {
	return repository.NewPersonRepo(s.db).Roles()
}
