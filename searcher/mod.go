package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for loss outcome (negate from opponent perspective)

// MaxCutoff plays rollouts out to the end of the game.
const MaxCutoff = math.MaxInt

// computeReward converts a score earned by player into a reward from the
// perspective of mover.
func computeReward(player string, score float64, mover string) float64 {
	if player == mover {
		return score
	}
	return -score
}
