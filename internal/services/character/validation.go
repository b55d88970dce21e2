package character

import (
	"sort"

	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	"github.com/sheetforge/sheetforge/internal/rulebook"
)

// standardArray is the fixed score spread, in descending order
var standardArray = []int{15, 14, 13, 12, 10, 8}

// pointBuyBudget is the total points available for point buy
const pointBuyBudget = 27

// pointBuyCost maps a score to its point cost. Scores outside 8..15 are not
// purchasable.
var pointBuyCost = map[int]int{
	8:  0,
	9:  1,
	10: 2,
	11: 3,
	12: 4,
	13: 5,
	14: 7,
	15: 9,
}

// validateScoreMap checks that every ability has a score and nothing else
// is present
func validateScoreMap(scores map[rulebook.Ability]int) error {
	if len(scores) != len(rulebook.Abilities) {
		return dnderr.Validationf("expected scores for all %d abilities, got %d",
			len(rulebook.Abilities), len(scores))
	}
	for _, a := range rulebook.Abilities {
		if _, ok := scores[a]; !ok {
			return dnderr.Validationf("missing score for %s", a)
		}
	}
	return nil
}

// validateStandardArray checks that the submitted scores are exactly the
// standard array, in any assignment
func validateStandardArray(scores map[rulebook.Ability]int) error {
	if err := validateScoreMap(scores); err != nil {
		return err
	}

	values := make([]int, 0, len(scores))
	for _, v := range scores {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	for i, want := range standardArray {
		if values[i] != want {
			return dnderr.Validation("scores must be an assignment of the standard array 15, 14, 13, 12, 10, 8")
		}
	}
	return nil
}

// validatePointBuy checks that every score is purchasable and the total
// cost spends at most the point budget
func validatePointBuy(scores map[rulebook.Ability]int) error {
	if err := validateScoreMap(scores); err != nil {
		return err
	}

	total := 0
	for a, v := range scores {
		cost, ok := pointBuyCost[v]
		if !ok {
			return dnderr.Validationf("%s score %d is outside the point buy range 8..15", a, v)
		}
		total += cost
	}
	if total > pointBuyBudget {
		return dnderr.Validationf("point buy total %d exceeds the %d point budget", total, pointBuyBudget)
	}
	return nil
}
