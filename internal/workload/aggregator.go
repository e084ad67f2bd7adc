// Package workload keeps team_members.assigned_hours in step with the
// projects table.
//
// The cached value is always rebuilt by summing the source rows; it is never
// adjusted by deltas. Callers run the aggregator on the same Querier (usually
// a *sql.Tx) as the mutation that made a refresh necessary, so the
// assignment write and the cache refresh commit or roll back together.
package workload

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	apperrors "github.com/emilianohg/staffboard/internal/errors"
	"github.com/emilianohg/staffboard/internal/repository"
)

type Aggregator struct {
	assignments *repository.AssignmentRepo
	people      *repository.PersonRepo
	log         logrus.FieldLogger
}

func New(q repository.Querier, log logrus.FieldLogger) *Aggregator {
	return &Aggregator{
		assignments: repository.NewAssignmentRepo(q),
		people:      repository.NewPersonRepo(q),
		log:         log,
	}
}

// Recompute sums the hours of every assignment referencing personID.
func (a *Aggregator) Recompute(personID int64) (int, error) {
	return a.assignments.SumHours(personID)
}

// RecomputeAll sums hours for every roster member; people without
// assignments map to 0.
func (a *Aggregator) RecomputeAll() (map[int64]int, error) {
	return a.assignments.SumHoursByPerson()
}

// Sync rewrites the cached hours of the given people. Nil ids (unassigned
// rows) and duplicates are ignored.
func (a *Aggregator) Sync(personIDs ...*int64) error {
	seen := make(map[int64]bool)
	for _, id := range personIDs {
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true

		hours, err := a.Recompute(*id)
		if err != nil {
			return fmt.Errorf("recompute person %d: %w", *id, err)
		}
		if err := a.people.SetAssignedHours(*id, hours); err != nil {
			return fmt.Errorf("store hours for person %d: %w", *id, err)
		}
		a.log.WithFields(logrus.Fields{"person_id": *id, "hours": hours}).Debug("assigned hours refreshed")
	}
	return nil
}

// SyncAll rewrites the cached hours of the whole roster.
func (a *Aggregator) SyncAll() error {
	totals, err := a.RecomputeAll()
	if err != nil {
		return fmt.Errorf("recompute all: %w", err)
	}
	for id, hours := range totals {
		if err := a.people.SetAssignedHours(id, hours); err != nil {
			return fmt.Errorf("store hours for person %d: %w", id, err)
		}
	}
	a.log.WithField("people", len(totals)).Debug("assigned hours refreshed for roster")
	return nil
}

// Check compares cached hours with a fresh recompute and lists every
// disagreement, ordered by person id.
func (a *Aggregator) Check() ([]apperrors.Drift, error) {
	cached, err := a.people.CachedHours()
	if err != nil {
		return nil, err
	}
	actual, err := a.RecomputeAll()
	if err != nil {
		return nil, err
	}

	var drifts []apperrors.Drift
	for id, want := range actual {
		if got := cached[id]; got != want {
			drifts = append(drifts, apperrors.Drift{PersonID: id, Cached: got, Actual: want})
		}
	}
	sort.Slice(drifts, func(i, j int) bool { return drifts[i].PersonID < drifts[j].PersonID })
	return drifts, nil
}

type ReconcileResult struct {
	Drifts   []apperrors.Drift
	Repaired bool
}

// Reconcile runs Check and, when anything drifted, overwrites the whole
// roster from source rows. Drift is logged, not returned as an error.
func (a *Aggregator) Reconcile() (*ReconcileResult, error) {
	drifts, err := a.Check()
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{Drifts: drifts}
	if len(drifts) == 0 {
		return result, nil
	}

	a.log.WithError(&apperrors.ConsistencyError{Drifts: drifts}).Warn("assigned hours drifted, recomputing roster")
	if err := a.SyncAll(); err != nil {
		return nil, err
	}
	result.Repaired = true
	return result, nil
}

// Row is one line of the workload summary.
type Row struct {
	PersonID      int64
	Name          string
	Email         string
	Role          string
	AssignedHours int
	Underutilized bool
}

// Summary lists every person with freshly recomputed hours, flagging those
// below threshold. Ordered by name.
func (a *Aggregator) Summary(threshold int) ([]Row, error) {
	people, err := a.people.GetAll()
	if err != nil {
		return nil, err
	}
	totals, err := a.RecomputeAll()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(people))
	for _, p := range people {
		hours := totals[p.ID]
		rows = append(rows, Row{
			PersonID:      p.ID,
			Name:          p.Name,
			Email:         p.Email,
			Role:          p.Role,
			AssignedHours: hours,
			Underutilized: hours < threshold,
		})
	}
	return rows, nil
}

// TotalHours adds up the assigned hours of rows.
func TotalHours(rows []Row) int {
	total := 0
	for _, r := range rows {
		total += r.AssignedHours
	}
	return total
}
