package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fatehq/fate-cli/internal/engine"
	"github.com/fatehq/fate-cli/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record and compare ranking snapshots",
	Long: `Snapshots record the ranked catalog at a dataset revision so score
edits can be reviewed for their effect on the published ordering. Snapshots
never contain quiz answers.`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current ranking as a snapshot",
	RunE:  runSnapshotSave,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	RunE:  runSnapshotList,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <snapshot-id>",
	Short: "Show one snapshot's ranking",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotShow,
}

var snapshotDiffCmd = &cobra.Command{
	Use:   "diff <older-id> <newer-id>",
	Short: "Show rank movement between two snapshots",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshotDiff,
}

func init() {
	sf := snapshotSaveCmd.Flags()
	sf.String("strategy", "balanced", "ranking strategy to snapshot")
	sf.String("weights", "card", "display score weight table: card or freedom")

	lf := snapshotListCmd.Flags()
	lf.String("strategy", "", "filter by strategy")
	lf.Int("limit", 20, "maximum snapshots to list")

	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotDiffCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// openStore opens the configured snapshot store with signal-aware context.
func openStore(cmd *cobra.Command) (store.Store, context.Context, context.CancelFunc, error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		stop()
		return nil, nil, nil, err
	}
	return st, ctx, stop, nil
}

func runSnapshotSave(cmd *cobra.Command, _ []string) error {
	strategyName, _ := cmd.Flags().GetString("strategy")
	strategy, err := engine.ParseStrategy(strategyName)
	if err != nil {
		return err
	}
	weightsName, _ := cmd.Flags().GetString("weights")
	weights, err := engine.TableByName(weightsName)
	if err != nil {
		return err
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	st, ctx, stop, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer st.Close() //nolint:errcheck

	saved, err := st.SaveSnapshot(ctx, engine.BuildSnapshot(cat, strategy, weights))
	if err != nil {
		return err
	}

	fmt.Printf("Saved snapshot %s (strategy %s, revision %s, %d tools)\n",
		saved.ID, saved.Strategy, saved.Revision, len(saved.Entries))
	return nil
}

func runSnapshotList(cmd *cobra.Command, _ []string) error {
	strategy, _ := cmd.Flags().GetString("strategy")
	limit, _ := cmd.Flags().GetInt("limit")

	st, ctx, stop, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer st.Close() //nolint:errcheck

	snaps, err := st.ListSnapshots(ctx, store.SnapshotFilter{Strategy: strategy, Limit: limit})
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots.")
		return nil
	}

	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			s.ID,
			s.Strategy,
			s.Revision,
			strconv.Itoa(len(s.Entries)),
			s.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return outputResults(outputData{
		Header: []string{"ID", "Strategy", "Revision", "Tools", "Created"},
		Rows:   rows,
		JSON:   snaps,
	}, "table", "")
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	st, ctx, stop, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer st.Close() //nolint:errcheck

	snap, err := st.GetSnapshot(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Snapshot %s\nStrategy: %s\nRevision: %s\nCreated:  %s\n\n",
		snap.ID, snap.Strategy, snap.Revision, snap.CreatedAt.Format("2006-01-02 15:04:05"))
	for _, e := range snap.Entries {
		fmt.Printf("  %2d. %-20s %3d\n", e.Rank, e.ToolID, e.Score)
	}
	return nil
}

func runSnapshotDiff(cmd *cobra.Command, args []string) error {
	st, ctx, stop, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer st.Close() //nolint:errcheck

	older, err := st.GetSnapshot(ctx, args[0])
	if err != nil {
		return eris.Wrapf(err, "snapshot: older %s", args[0])
	}
	newer, err := st.GetSnapshot(ctx, args[1])
	if err != nil {
		return eris.Wrapf(err, "snapshot: newer %s", args[1])
	}

	if older.Revision == newer.Revision {
		fmt.Printf("Both snapshots are at revision %s.\n", older.Revision)
	} else {
		fmt.Printf("Revision %s -> %s\n", older.Revision, newer.Revision)
	}
	fmt.Println()

	for _, c := range engine.DiffSnapshots(*older, *newer) {
		switch {
		case c.FromRank == 0:
			fmt.Printf("  %-20s new at rank %d\n", c.ToolID, c.ToRank)
		case c.ToRank == 0:
			fmt.Printf("  %-20s dropped (was rank %d)\n", c.ToolID, c.FromRank)
		case c.Delta == 0:
			fmt.Printf("  %-20s unchanged at rank %d\n", c.ToolID, c.ToRank)
		case c.Delta > 0:
			fmt.Printf("  %-20s up %d to rank %d\n", c.ToolID, c.Delta, c.ToRank)
		default:
			fmt.Printf("  %-20s down %d to rank %d\n", c.ToolID, -c.Delta, c.ToRank)
		}
	}
	return nil
}
