package willingbox

import "testing"

func TestValidateWishList(t *testing.T) {
	valid := testWishes(SlotA, WishListSize)

	mutate := func(fn func(w []Wish)) []Wish {
		clone := make([]Wish, len(valid))
		copy(clone, valid)
		fn(clone)
		return clone
	}

	tests := []struct {
		name    string
		wishes  []Wish
		wantErr bool
	}{
		{"valid list", valid, false},
		{"valid with one most-wanted", mutate(func(w []Wish) { w[3].MostWanted = true }), false},
		{"too few", valid[:WishListSize-1], true},
		{"too many", append(mutate(func([]Wish) {}), Wish{ID: "extra", Description: "x", Category: CategoryPersonal, Position: 1}), true},
		{"empty description", mutate(func(w []Wish) { w[0].Description = "" }), true},
		{"unknown category", mutate(func(w []Wish) { w[2].Category = "finances" }), true},
		{"position zero", mutate(func(w []Wish) { w[0].Position = 0 }), true},
		{"position past end", mutate(func(w []Wish) { w[0].Position = WishListSize + 1 }), true},
		{"duplicate position", mutate(func(w []Wish) { w[1].Position = w[0].Position }), true},
		{"two most-wanted", mutate(func(w []Wish) { w[0].MostWanted = true; w[5].MostWanted = true }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWishList(tt.wishes)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWishList() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("ValidateWishList() returned %T, want *ValidationError", err)
			}
		})
	}
}

func TestValidateSelection(t *testing.T) {
	counterpart := testWishes(SlotB, WishListSize)
	valid := testSelection(counterpart)

	mutate := func(fn func(e []WillingEntry)) []WillingEntry {
		clone := make([]WillingEntry, len(valid))
		copy(clone, valid)
		fn(clone)
		return clone
	}

	tests := []struct {
		name    string
		entries []WillingEntry
		wantErr bool
	}{
		{"valid selection", valid, false},
		{"too few", valid[:SelectionSize-1], true},
		{"unknown wish", mutate(func(e []WillingEntry) { e[0].WishID = "not-theirs" }), true},
		{"duplicate wish", mutate(func(e []WillingEntry) { e[1].WishID = e[0].WishID }), true},
		{"priority zero", mutate(func(e []WillingEntry) { e[0].Priority = 0 }), true},
		{"priority past end", mutate(func(e []WillingEntry) { e[0].Priority = SelectionSize + 1 }), true},
		{"duplicate priority", mutate(func(e []WillingEntry) { e[1].Priority = e[0].Priority }), true},
		{"unknown effort", mutate(func(e []WillingEntry) { e[2].Effort = "heroic" }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelection(tt.entries, counterpart)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSelection() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGuesses(t *testing.T) {
	tests := []struct {
		name    string
		guesses []Guess
		wantErr bool
	}{
		{"single guess", []Guess{{WishID: "w1", Effort: EffortEasy}}, false},
		{
			"full set",
			[]Guess{
				{WishID: "w1", Effort: EffortEasy},
				{WishID: "w2", Effort: EffortModerate},
				{WishID: "w3", Effort: EffortChallenging},
			},
			false,
		},
		// A guess for a wish outside the selection is legal, it just scores zero.
		{"unknown wish id allowed", []Guess{{WishID: "nope", Effort: EffortEasy}}, false},
		{"empty set", nil, true},
		{
			"too many",
			[]Guess{
				{WishID: "w1", Effort: EffortEasy},
				{WishID: "w2", Effort: EffortEasy},
				{WishID: "w3", Effort: EffortEasy},
				{WishID: "w4", Effort: EffortEasy},
			},
			true,
		},
		{"empty wish id", []Guess{{WishID: "", Effort: EffortEasy}}, true},
		{
			"duplicate wish id",
			[]Guess{
				{WishID: "w1", Effort: EffortEasy},
				{WishID: "w1", Effort: EffortModerate},
			},
			true,
		},
		{"unknown effort", []Guess{{WishID: "w1", Effort: "superhuman"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGuesses(tt.guesses)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGuesses() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
