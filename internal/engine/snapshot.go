package engine

import (
	"github.com/fatehq/fate-cli/internal/catalog"
	"github.com/fatehq/fate-cli/internal/model"
)

// BuildSnapshot captures the ranked catalog under one strategy as a
// snapshot, with each tool's rank and display score under the given weight
// table. ID and timestamp are assigned by the store on save.
func BuildSnapshot(cat *catalog.Catalog, strategy Strategy, weights WeightTable) model.Snapshot {
	sorted := SortCatalog(cat.Tools(), strategy)

	entries := make([]model.SnapshotEntry, 0, len(sorted))
	for i, t := range sorted {
		entries = append(entries, model.SnapshotEntry{
			ToolID: t.ID,
			Rank:   i + 1,
			Score:  DisplayScore(t, weights),
		})
	}

	return model.Snapshot{
		Strategy: string(strategy),
		Revision: cat.Revision(),
		Entries:  entries,
	}
}

// DiffSnapshots reports how each tool moved from an older snapshot to a
// newer one, in the newer snapshot's rank order. Tools present in only one
// snapshot are reported with a zero rank on the missing side.
func DiffSnapshots(older, newer model.Snapshot) []model.RankChange {
	oldRanks := make(map[string]int, len(older.Entries))
	for _, e := range older.Entries {
		oldRanks[e.ToolID] = e.Rank
	}

	var changes []model.RankChange
	seen := make(map[string]struct{}, len(newer.Entries))
	for _, e := range newer.Entries {
		seen[e.ToolID] = struct{}{}
		from := oldRanks[e.ToolID]
		delta := 0
		if from > 0 {
			delta = from - e.Rank
		}
		changes = append(changes, model.RankChange{
			ToolID:   e.ToolID,
			FromRank: from,
			ToRank:   e.Rank,
			Delta:    delta,
		})
	}
	for _, e := range older.Entries {
		if _, ok := seen[e.ToolID]; !ok {
			changes = append(changes, model.RankChange{
				ToolID:   e.ToolID,
				FromRank: e.Rank,
				ToRank:   0,
				Delta:    0,
			})
		}
	}
	return changes
}
