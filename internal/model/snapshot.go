package model

import "time"

// SnapshotEntry is one tool's position in a recorded ranking.
type SnapshotEntry struct {
	ToolID string `json:"tool_id"`
	Rank   int    `json:"rank"`
	Score  int    `json:"score"`
}

// Snapshot records the ranked catalog under one strategy at one dataset
// revision. Snapshots exist so maintainers can see how hand-edited score
// changes shift the published ordering; they never contain user answers.
type Snapshot struct {
	ID        string          `json:"id"`
	Strategy  string          `json:"strategy"`
	Revision  string          `json:"revision"`
	Entries   []SnapshotEntry `json:"entries"`
	CreatedAt time.Time       `json:"created_at"`
}

// RankChange describes how one tool moved between two snapshots.
type RankChange struct {
	ToolID   string `json:"tool_id"`
	FromRank int    `json:"from_rank"` // 0 = absent from the older snapshot
	ToRank   int    `json:"to_rank"`   // 0 = absent from the newer snapshot
	Delta    int    `json:"delta"`
}
