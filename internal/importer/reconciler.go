package importer

import (
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emilianohg/staffboard/internal/calendar"
	apperrors "github.com/emilianohg/staffboard/internal/errors"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/service"
	"github.com/emilianohg/staffboard/internal/workload"
)

type RowError struct {
	Line    int
	Label   string
	Message string
}

type ImportResult struct {
	BatchID  string
	Inserted int
	Skipped  int
	Errors   []RowError
}

type Reconciler struct {
	db          *sql.DB
	validator   *validator.Validate
	log         logrus.FieldLogger
	hoursPerDay int
}

func NewReconciler(conn *sql.DB, v *validator.Validate, log logrus.FieldLogger, hoursPerDay int) *Reconciler {
	if hoursPerDay <= 0 {
		hoursPerDay = calendar.DefaultHoursPerDay
	}
	return &Reconciler{db: conn, validator: v, log: log, hoursPerDay: hoursPerDay}
}

// ImportRows inserts every row it can and records the rest. Row failures never
// abort the batch; an error is returned only when the batch itself cannot be
// stored, in which case nothing is kept. Cached workloads are rebuilt once
// after the last row.
func (r *Reconciler) ImportRows(rows []RawRow) (*ImportResult, error) {
	result := &ImportResult{BatchID: uuid.NewString()}
	log := r.log.WithField("batch_id", result.BatchID)

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	roster, err := repository.NewPersonRepo(tx).NameIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	assignments := repository.NewAssignmentRepo(tx)

	for _, row := range rows {
		if err := r.importRow(assignments, roster, row); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{
				Line:    err.Line,
				Label:   err.Label,
				Message: err.Err.Error(),
			})
			log.WithError(err).Warn("import row skipped")
			continue
		}
		result.Inserted++
	}

	if err := workload.New(tx, log).SyncAll(); err != nil {
		return nil, fmt.Errorf("failed to refresh workloads: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	log.WithFields(logrus.Fields{"inserted": result.Inserted, "skipped": result.Skipped}).Info("import finished")
	return result, nil
}

func (r *Reconciler) importRow(assignments *repository.AssignmentRepo, roster map[string]int64, row RawRow) *apperrors.RowProcessingError {
	label := row.Get(ColProjectName)
	if label == "" {
		label = fmt.Sprintf("row %d", row.Line)
	}
	fail := func(err error) *apperrors.RowProcessingError {
		return &apperrors.RowProcessingError{Line: row.Line, Label: label, Err: err}
	}

	for _, col := range RequiredColumns {
		if row.Get(col) == "" {
			return fail(&apperrors.ValidationError{Field: col, Message: "is required"})
		}
	}

	start, err := parseDate(row.Get(ColStartDate))
	if err != nil {
		return fail(&apperrors.ValidationError{Field: ColStartDate, Message: err.Error()})
	}
	end, err := parseDate(row.Get(ColEndDate))
	if err != nil {
		return fail(&apperrors.ValidationError{Field: ColEndDate, Message: err.Error()})
	}

	hours, err := parseHours(row.Get(ColHours))
	if err != nil {
		return fail(&apperrors.ValidationError{Field: ColHours, Message: err.Error()})
	}

	var personID *int64
	if id, ok := roster[row.Get(ColResource)]; ok {
		personID = &id
	}

	a, err := service.NewAssignment(r.validator, service.AssignmentInput{
		ProjectName:            row.Get(ColProjectName),
		PersonID:               personID,
		ClientCountry:          row.Get(ColClientCountry),
		ServiceLine:            row.Get(ColServiceLine),
		ResourceAvailableLocal: parseFlag(row.Get(ColAvailableLocal)),
		Activity:               row.Get(ColActivity),
		PartnersNeeded:         parseFlag(row.Get(ColPartnersNeeded)),
		StartDate:              &start,
		EndDate:                &end,
		Hours:                  hours,
		Priority:               row.Get(ColPriority),
		Status:                 row.Get(ColStatus),
		Impact:                 row.Get(ColImpact),
		Comments:               row.Get(ColComments),
	}, r.hoursPerDay)
	if err != nil {
		return fail(err)
	}

	if _, err := assignments.Create(a); err != nil {
		return fail(fmt.Errorf("insert failed: %w", err))
	}
	return nil
}
