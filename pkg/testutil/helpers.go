// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/canfin/pkg/aggregate"
	"github.com/iwvelando/canfin/pkg/loans"
)

// FindGroup finds a group by key in a breakdown.
// Returns a pointer to the group if found, nil otherwise.
func FindGroup(groups []aggregate.Group, key string) *aggregate.Group {
	for i := range groups {
		if groups[i].Key == key {
			return &groups[i]
		}
	}
	return nil
}

// FindSnapshot finds the snapshot for a given loan year, nil if the schedule
// is shorter.
func FindSnapshot(schedule []loans.Snapshot, year int) *loans.Snapshot {
	for i := range schedule {
		if schedule[i].Year == year {
			return &schedule[i]
		}
	}
	return nil
}
