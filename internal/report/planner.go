// Package report plans and synthesizes a day's worth of compliance records
// and aggregates them into one daily report.
package report

import "math/rand"

// QuotaPlan is a day's violation budget: how many synthesized records are
// steered into critical/warning territory, and whether one cooling process
// should fail.
type QuotaPlan struct {
	Critical int
	Warning  int
	Cooling  int
}

// PlanQuota derives the budget from the 1-based report sequence number n,
// so violations recur on a fixed cadence instead of purely at random:
// critical-eligible days are n mod 6 in {0, 3}, warning-eligible days are
// n mod 4 in {0, 2}. An eligible tier gets a quota of 1 or 2 (uniform);
// a cooling violation is budgeted whenever either tier has one.
func PlanQuota(n int, rng *rand.Rand) QuotaPlan {
	var p QuotaPlan
	if n%6 == 0 || n%6 == 3 {
		p.Critical = 1 + rng.Intn(2)
	}
	if n%4 == 0 || n%4 == 2 {
		p.Warning = 1 + rng.Intn(2)
	}
	if p.Critical > 0 || p.Warning > 0 {
		p.Cooling = 1
	}
	return p
}
