package quiz

import "math/rand/v2"

const (
	DefaultMockExamSize = 10
	MaxMockExamSize     = 50
)

// Sample draws count distinct questions from bank in random order, spread
// evenly across categories. Categories are taken in the given order, then
// any others in the order they first appear in bank. When a category runs
// out its share is filled from the rest. count is clamped to
// [1, MaxMockExamSize] and to the bank size.
func Sample(bank []Question, categories []string, count int, rng *rand.Rand) []Question {
	if count <= 0 {
		count = DefaultMockExamSize
	}
	if count > MaxMockExamSize {
		count = MaxMockExamSize
	}
	if count > len(bank) {
		count = len(bank)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	groups := groupByCategory(bank, categories)
	for _, g := range groups {
		rng.Shuffle(len(g), func(i, j int) { g[i], g[j] = g[j], g[i] })
	}

	out := make([]Question, 0, count)
	for len(out) < count {
		for i, g := range groups {
			if len(out) == count {
				break
			}
			if len(g) == 0 {
				continue
			}
			out = append(out, g[0])
			groups[i] = g[1:]
		}
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func groupByCategory(bank []Question, categories []string) [][]Question {
	order := make(map[string]int, len(categories))
	var groups [][]Question
	for _, c := range categories {
		if _, dup := order[c]; dup {
			continue
		}
		order[c] = len(groups)
		groups = append(groups, nil)
	}
	for _, q := range bank {
		i, ok := order[q.Category]
		if !ok {
			i = len(groups)
			order[q.Category] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], q)
	}
	return groups
}

// CountByCategory tallies questions per category.
func CountByCategory(questions []Question) map[string]int {
	out := make(map[string]int)
	for _, q := range questions {
		out[q.Category]++
	}
	return out
}

// Subset returns the questions of bank matching ids, in the order of ids.
// Ids no longer in bank are returned in missing.
func Subset(bank []Question, ids []QuestionID) (found []Question, missing []QuestionID) {
	byID := make(map[QuestionID]Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}
	found = make([]Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		found = append(found, q)
	}
	return found, missing
}
