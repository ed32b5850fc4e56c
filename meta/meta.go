// meta/meta.go
package meta

// Goroutines defines the default number of goroutines of a search.
const Goroutines = 8

// Episodes defines the default number of episodes for MCTS.
const Episodes = 150

// Cutoff defines the default rollout cutoff for MCTS.
const Cutoff = 100

// BoardSize is the side of the default (mini) board.
const BoardSize = 6

// MaxMoves caps the number of moves of one game, passes included.
const MaxMoves = 1000
