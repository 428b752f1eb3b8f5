package service

import (
	"sort"
	"strconv"
	"strings"
)

// AssignmentPair is one worker's membership on a job.
type AssignmentPair struct {
	WorkerID int64
	FlatRate bool
}

// AssignmentPlan lists the row changes that turn a job's current
// assignments into the desired ones. Every list is sorted by worker id.
type AssignmentPlan struct {
	// ClearFlatRate and SetFlatRate toggle the flag on rows that stay.
	ClearFlatRate []int64
	SetFlatRate   []int64
	// Remove drops workers that are no longer assigned at all.
	Remove []int64
	// Add inserts newly assigned workers with their flag.
	Add []AssignmentPair
}

// Empty reports whether the plan changes nothing.
func (p AssignmentPlan) Empty() bool {
	return len(p.ClearFlatRate) == 0 && len(p.SetFlatRate) == 0 && len(p.Remove) == 0 && len(p.Add) == 0
}

// ParseIDList splits a client-submitted id list on '-' or ','. Tokens that
// are not integers are dropped and repeats are kept once, in first-seen order.
func ParseIDList(s string) []int64 {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == ',' })
	ids := make([]int64, 0, len(fields))
	seen := make(map[int64]struct{}, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// BuildDesiredAssignments pairs every assigned id with whether it also
// appears in the flat-rate list. Flat-rate ids that are not assigned are
// ignored.
func BuildDesiredAssignments(assigned, flatRate string) []AssignmentPair {
	flat := make(map[int64]bool)
	for _, id := range ParseIDList(flatRate) {
		flat[id] = true
	}
	ids := ParseIDList(assigned)
	pairs := make([]AssignmentPair, 0, len(ids))
	for _, id := range ids {
		pairs = append(pairs, AssignmentPair{WorkerID: id, FlatRate: flat[id]})
	}
	return pairs
}

// ReconcileAssignments diffs current against desired by worker id. A worker
// whose only change is the flat-rate flag keeps their row, so shift data
// already recorded on it survives.
func ReconcileAssignments(current, desired []AssignmentPair) AssignmentPlan {
	cur := indexPairs(current)
	want := indexPairs(desired)

	var plan AssignmentPlan
	for id, flat := range cur {
		wantFlat, keep := want[id]
		switch {
		case !keep:
			plan.Remove = append(plan.Remove, id)
		case flat && !wantFlat:
			plan.ClearFlatRate = append(plan.ClearFlatRate, id)
		case !flat && wantFlat:
			plan.SetFlatRate = append(plan.SetFlatRate, id)
		}
	}
	for id, flat := range want {
		if _, exists := cur[id]; !exists {
			plan.Add = append(plan.Add, AssignmentPair{WorkerID: id, FlatRate: flat})
		}
	}

	sortIDs(plan.ClearFlatRate)
	sortIDs(plan.SetFlatRate)
	sortIDs(plan.Remove)
	sort.Slice(plan.Add, func(i, j int) bool { return plan.Add[i].WorkerID < plan.Add[j].WorkerID })
	return plan
}

// indexPairs keys pairs by worker id. If an id repeats, a true flag wins.
func indexPairs(pairs []AssignmentPair) map[int64]bool {
	m := make(map[int64]bool, len(pairs))
	for _, p := range pairs {
		m[p.WorkerID] = m[p.WorkerID] || p.FlatRate
	}
	return m
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
