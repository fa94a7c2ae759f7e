package willingbox

// ScorePair holds both partners' scores for one completed week.
type ScorePair struct {
	ScoreA int `json:"score_a"`
	ScoreB int `json:"score_b"`
}

// ComputeWeeklyScore scores both partners' guesses for one cycle. Each
// partner is scored against the counterpart's actual selection, never
// their own. The function is deterministic and total: missing guess
// sets and unknown wish IDs contribute zero, they are never errors.
func ComputeWeeklyScore(wishesA, wishesB []Wish, selA, selB []WillingEntry, guessesA, guessesB []Guess) ScorePair {
	return ScorePair{
		ScoreA: scoreGuesses(guessesA, selB, wishesA),
		ScoreB: scoreGuesses(guessesB, selA, wishesB),
	}
}

// scoreGuesses scores one partner's guess set against the counterpart's
// selection. The counterpart selects from the guesser's own wish list,
// so the most-wanted bonus is looked up there.
func scoreGuesses(guesses []Guess, counterpartSel []WillingEntry, originWishes []Wish) int {
	efforts := make(map[string]EffortLevel, len(counterpartSel))
	for _, e := range counterpartSel {
		efforts[e.WishID] = e.Effort
	}

	mostWanted := make(map[string]bool, 1)
	for _, w := range originWishes {
		if w.MostWanted {
			mostWanted[w.ID] = true
		}
	}

	total := 0
	for _, g := range guesses {
		actual, ok := efforts[g.WishID]
		if !ok || actual != g.Effort {
			// Not in the selection, or effort mismatch: no partial credit.
			continue
		}
		if mostWanted[g.WishID] {
			total += 2
		} else {
			total++
		}
	}
	return total
}
