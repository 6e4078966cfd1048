package quiz

type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var AllDifficulties = []Difficulty{
	DifficultyBasic,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

// IsValid accepts the empty value; difficulty is optional.
func (d Difficulty) IsValid() bool {
	if d == "" {
		return true
	}
	for _, v := range AllDifficulties {
		if d == v {
			return true
		}
	}
	return false
}
