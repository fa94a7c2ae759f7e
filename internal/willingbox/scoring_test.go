package willingbox

import "testing"

func TestScoreGuesses(t *testing.T) {
	wishes := []Wish{
		{ID: "w1", Description: "cook dinner", Category: CategoryHousehold, Position: 1},
		{ID: "w2", Description: "plan a date", Category: CategoryTimeTogether, Position: 2, MostWanted: true},
		{ID: "w3", Description: "morning text", Category: CategoryCommunication, Position: 3},
	}
	selection := []WillingEntry{
		{WishID: "w1", Priority: 1, Effort: EffortEasy},
		{WishID: "w2", Priority: 2, Effort: EffortChallenging},
		{WishID: "w3", Priority: 3, Effort: EffortModerate},
	}

	tests := []struct {
		name    string
		guesses []Guess
		want    int
	}{
		{
			name:    "no guesses",
			guesses: nil,
			want:    0,
		},
		{
			name:    "normal match scores one",
			guesses: []Guess{{WishID: "w1", Effort: EffortEasy}},
			want:    1,
		},
		{
			name:    "most-wanted match scores two",
			guesses: []Guess{{WishID: "w2", Effort: EffortChallenging}},
			want:    2,
		},
		{
			name:    "effort mismatch scores zero",
			guesses: []Guess{{WishID: "w1", Effort: EffortChallenging}},
			want:    0,
		},
		{
			name:    "most-wanted with wrong effort scores zero",
			guesses: []Guess{{WishID: "w2", Effort: EffortEasy}},
			want:    0,
		},
		{
			name:    "wish not in selection scores zero",
			guesses: []Guess{{WishID: "w9", Effort: EffortEasy}},
			want:    0,
		},
		{
			name: "perfect round",
			guesses: []Guess{
				{WishID: "w1", Effort: EffortEasy},
				{WishID: "w2", Effort: EffortChallenging},
				{WishID: "w3", Effort: EffortModerate},
			},
			want: 4,
		},
		{
			name: "mixed round",
			guesses: []Guess{
				{WishID: "w1", Effort: EffortEasy},
				{WishID: "w2", Effort: EffortModerate},
				{WishID: "w3", Effort: EffortModerate},
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreGuesses(tt.guesses, selection, wishes); got != tt.want {
				t.Errorf("scoreGuesses() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeWeeklyScore(t *testing.T) {
	wishesA := []Wish{
		{ID: "a1", Description: "walk together", Category: CategoryTimeTogether, Position: 1, MostWanted: true},
		{ID: "a2", Description: "do the dishes", Category: CategoryHousehold, Position: 2},
	}
	wishesB := []Wish{
		{ID: "b1", Description: "long hug", Category: CategoryAffection, Position: 1},
		{ID: "b2", Description: "check in at lunch", Category: CategoryCommunication, Position: 2, MostWanted: true},
	}

	// B selects from A's list, A selects from B's list.
	selA := []WillingEntry{{WishID: "b1", Priority: 1, Effort: EffortEasy}}
	selB := []WillingEntry{{WishID: "a1", Priority: 1, Effort: EffortModerate}}

	guessesA := []Guess{{WishID: "a1", Effort: EffortModerate}} // most-wanted hit
	guessesB := []Guess{{WishID: "b1", Effort: EffortEasy}}     // plain hit

	pair := ComputeWeeklyScore(wishesA, wishesB, selA, selB, guessesA, guessesB)
	if pair.ScoreA != 2 {
		t.Errorf("ScoreA = %d, want 2", pair.ScoreA)
	}
	if pair.ScoreB != 1 {
		t.Errorf("ScoreB = %d, want 1", pair.ScoreB)
	}

	// Swapping every A/B input must swap the scores.
	swapped := ComputeWeeklyScore(wishesB, wishesA, selB, selA, guessesB, guessesA)
	if swapped.ScoreA != pair.ScoreB || swapped.ScoreB != pair.ScoreA {
		t.Errorf("swapped scores = (%d, %d), want (%d, %d)",
			swapped.ScoreA, swapped.ScoreB, pair.ScoreB, pair.ScoreA)
	}
}

func TestComputeWeeklyScoreMissingGuessSets(t *testing.T) {
	wishesA := testWishes(SlotA, WishListSize)
	wishesB := testWishes(SlotB, WishListSize)
	selA := testSelection(wishesB)
	selB := testSelection(wishesA)

	pair := ComputeWeeklyScore(wishesA, wishesB, selA, selB, nil, nil)
	if pair.ScoreA != 0 || pair.ScoreB != 0 {
		t.Errorf("scores with no guesses = (%d, %d), want (0, 0)", pair.ScoreA, pair.ScoreB)
	}
}
