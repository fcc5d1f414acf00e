package robbery

import (
	"github.com/mcoot/kabak/internal/dependencies/random"
	"github.com/mcoot/kabak/internal/model"
)

const (
	// DieSides is the number of faces on the robbery die
	DieSides = 6
	// SuccessThreshold is the lowest roll that counts as a successful robbery
	SuccessThreshold = 5

	// SuccessTransfer moves from victim to thief on success
	SuccessTransfer = 10
	// FailureTransfer moves from thief to victim on failure
	FailureTransfer = 2

	// MinThiefScore is the score a thief needs before a robbery is offered
	MinThiefScore = FailureTransfer
	// MinVictimScore is the score a player needs to be worth robbing
	MinVictimScore = SuccessTransfer
)

// Outcome is the result of a single robbery attempt
type Outcome struct {
	Die         int  `json:"die"`
	Success     bool `json:"success"`
	ThiefDelta  int  `json:"thiefDelta"`
	VictimDelta int  `json:"victimDelta"`
}

// Resolver rolls the robbery die and transfers points
type Resolver struct {
	random random.Random
}

// New creates a new Resolver
func New(random random.Random) *Resolver {
	return &Resolver{random: random}
}

// Resolve rolls one die and applies the transfer to both players.
// Scores have no floor. ThiefDelta + VictimDelta is always zero.
func (r *Resolver) Resolve(thief, victim *model.Player) Outcome {
	die := r.random.Intn(DieSides) + 1

	out := Outcome{Die: die}
	if die >= SuccessThreshold {
		out.Success = true
		out.ThiefDelta = SuccessTransfer
		out.VictimDelta = -SuccessTransfer
	} else {
		out.ThiefDelta = -FailureTransfer
		out.VictimDelta = FailureTransfer
	}

	thief.Score += out.ThiefDelta
	victim.Score += out.VictimDelta
	return out
}
