package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID       int
	Computer int // AgentConfig.ID playing O
	Advisor  int // AgentConfig.ID playing X
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter stores the results of experiment name under experiments/<name>/<timestamp>.
func NewWriter(name string) (*Writer, error) {
	return NewWriterAt("experiments", name)
}

func NewWriterAt(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Workers),
			strconv.Itoa(config.Trials),
		})
	}
	return w.write("agent_configs.csv", []string{"id", "workers", "trials"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Computer),
			strconv.Itoa(record.Advisor),
			record.StartingPlayer,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	header := []string{"id", "computer", "advisor", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			strconv.Itoa(record.Cell),
			strconv.FormatFloat(record.Score, 'f', 4, 64),
			strconv.FormatBool(record.Swapped),
			record.Duration.String(),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Playouts),
		})
	}
	header := []string{"game", "step", "player", "cell", "score", "swapped", "duration", "evaluations", "playouts"}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteSearchMetrics(records []SearchMetric) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Workers),
			strconv.Itoa(record.Trials),
			record.Duration.String(),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Playouts),
			strconv.FormatFloat(record.PlayoutsPerSecond(), 'f', 0, 64),
		})
	}
	header := []string{"workers", "trials", "duration", "evaluations", "playouts", "playouts_per_second"}
	return w.write("search_metrics.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}

	return nil
}
