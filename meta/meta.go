// meta/meta.go
package meta

// BOARD_SIZE is the default side length of the board.
const BOARD_SIZE = 11

// TRIALS is the default number of random playouts per assessed move, shared by all workers.
const TRIALS = 3000

// MIN_TRIALS is the smallest trial budget accepted from configuration.
const MIN_TRIALS = 100

// WORKERS defines the default number of goroutines (and board replicas) used for evaluation.
const WORKERS = 2

// Console palette (0..15) defaults for the display.
const (
	COLOR_PLAYER    = 15 // white
	COLOR_COMPUTER  = 12 // red
	COLOR_SELECTION = 8  // gray
)

// PIE_THRESHOLD is the highest score the opening move may have when the pie rule is on.
const PIE_THRESHOLD = 0.5
