package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriterAt(t.TempDir(), "trial_budget")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	t.Run("agent configs", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Workers: 4, Trials: 3000}}))

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{{"id", "workers", "trials"}, {"1", "4", "3000"}}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		record := GameRecord{ID: 7, Computer: 1, Advisor: 2, GameMetric: GameMetric{
			StartingPlayer: "O",
			Winner:         "X",
			StartTime:      start,
			EndTime:        start.Add(time.Minute),
			Duration:       time.Minute,
			TotalMoves:     41,
		}}
		require.NoError(t, w.WriteGameRecords([]GameRecord{record}))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"7", "1", "2", "O", "X", "2024-01-02T03:04:05Z", "2024-01-02T03:05:05Z", "1m0s", "41"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		record := MoveRecord{Game: 7, MoveMetric: MoveMetric{
			Step:    2,
			Player:  "O",
			Cell:    60,
			Score:   0.51234,
			Swapped: true,
			SearchMetric: SearchMetric{
				Duration:    time.Second,
				Evaluations: 120,
				Playouts:    360000,
			},
		}}
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{record}))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"7", "2", "O", "60", "0.5123", "true", "1s", "120", "360000"}, rows[1])
	})

	t.Run("search metrics", func(t *testing.T) {
		metric := SearchMetric{Workers: 2, Trials: 1000, Duration: 2 * time.Second, Evaluations: 5, Playouts: 5000}
		require.NoError(t, w.WriteSearchMetrics([]SearchMetric{metric}))

		rows := readCSV(t, filepath.Join(w.Dir(), "search_metrics.csv"))
		require.Equal(t, []string{"2", "1000", "2s", "5", "5000", "2500"}, rows[1])
	})
}
