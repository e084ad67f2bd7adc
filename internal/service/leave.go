package service

import (
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	apperrors "github.com/emilianohg/staffboard/internal/errors"
	"github.com/emilianohg/staffboard/internal/models"
	"github.com/emilianohg/staffboard/internal/repository"
)

// LeaveInput holds day counts; fractional days are allowed.
type LeaveInput struct {
	PreviousYearBalance  float64 `json:"previous_year_balance" validate:"gte=0"`
	CurrentYearAllocated float64 `json:"current_year_allocated" validate:"gte=0"`
	CurrentYearTaken     float64 `json:"current_year_taken" validate:"gte=0"`
}

type LeaveService struct {
	db        *sql.DB
	validator *validator.Validate
	log       logrus.FieldLogger
}

func NewLeaveService(conn *sql.DB, v *validator.Validate, log logrus.FieldLogger) *LeaveService {
	return &LeaveService{db: conn, validator: v, log: log}
}

// Set records the balance for personID, replacing any previous one.
func (s *LeaveService) Set(personID int64, in LeaveInput) (*models.LeaveBalance, error) {
	if err := validate(s.validator, in); err != nil {
		return nil, err
	}

	lb := models.LeaveBalance{
		PersonID:             personID,
		PreviousYearBalance:  in.PreviousYearBalance,
		CurrentYearAllocated: in.CurrentYearAllocated,
		CurrentYearTaken:     in.CurrentYearTaken,
	}

	err := withTx(s.db, func(tx *sql.Tx) error {
		p, err := repository.NewPersonRepo(tx).GetByID(personID)
		if err != nil {
			return fmt.Errorf("failed to load team member: %w", err)
		}
		if p == nil {
			return &apperrors.NotFoundError{Entity: "team member", ID: personID}
		}
		if err := repository.NewLeaveRepo(tx).Upsert(lb); err != nil {
			return fmt.Errorf("failed to save leave balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("person_id", personID).Debug("leave balance saved")
	return &lb, nil
}

// Get returns the recorded balance, or nil when none exists yet.
func (s *LeaveService) Get(personID int64) (*models.LeaveBalance, error) {
	return repository.NewLeaveRepo(s.db).GetByPersonID(personID)
}

// Overview lists every team member with their balance, if any.
func (s *LeaveService) Overview() ([]repository.PersonLeave, error) {
	return repository.NewLeaveRepo(s.db).GetAllWithPeople()
}
