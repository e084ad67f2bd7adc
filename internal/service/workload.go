package service

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	apperrors "github.com/emilianohg/staffboard/internal/errors"
	"github.com/emilianohg/staffboard/internal/workload"
)

// WorkloadService exposes the workload view and consistency repair.
type WorkloadService struct {
	db  *sql.DB
	log logrus.FieldLogger
}

func NewWorkloadService(conn *sql.DB, log logrus.FieldLogger) *WorkloadService {
	return &WorkloadService{db: conn, log: log}
}

func (s *WorkloadService) Summary(threshold int) ([]workload.Row, error) {
	return workload.New(s.db, s.log).Summary(threshold)
}

func (s *WorkloadService) Check() ([]apperrors.Drift, error) {
	return workload.New(s.db, s.log).Check()
}

// Reconcile repairs any drift in one transaction.
func (s *WorkloadService) Reconcile() (*workload.ReconcileResult, error) {
	var result *workload.ReconcileResult
	err := withTx(s.db, func(tx *sql.Tx) error {
		var err error
		result, err = workload.New(tx, s.log).Reconcile()
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Services bundles every service over one connection.
type Services struct {
	Validator   *validator.Validate
	Assignments *AssignmentService
	Team        *TeamService
	Leave       *LeaveService
	Workload    *WorkloadService
}

func New(conn *sql.DB, log logrus.FieldLogger, hoursPerDay int) *Services {
	v := NewValidator()
	return &Services{
		Validator:   v,
		Assignments: NewAssignmentService(conn, v, log, hoursPerDay),
		Team:        NewTeamService(conn, v, log),
		Leave:       NewLeaveService(conn, v, log),
		Workload:    NewWorkloadService(conn, log),
	}
}
