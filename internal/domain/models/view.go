package models

// ChickenView decorates a chicken with display data.
type ChickenView struct {
	Chicken
	BreedName         string `json:"breedName"`
	LevelName         string `json:"levelName"`
	EstimatedEggValue int    `json:"estimatedEggValue"`
}

// StateView is the read surface served to presentation.
type StateView struct {
	GameState
	Chickens       []ChickenView `json:"chickens"`
	UnsoldEggValue int           `json:"unsoldEggValue"`
}

// NewStateView derives the presentation view of s.
func NewStateView(s GameState) StateView {
	chickens := make([]ChickenView, 0, len(s.Chickens))
	for _, c := range s.Chickens {
		info, _ := LookupBreed(c.Breed)
		chickens = append(chickens, ChickenView{
			Chicken:           c,
			BreedName:         info.DisplayName,
			LevelName:         LevelName(c.Level),
			EstimatedEggValue: EggPriceFor(c.EggQuality),
		})
	}

	return StateView{
		GameState:      s,
		Chickens:       chickens,
		UnsoldEggValue: s.UnsoldEggValue(),
	}
}
