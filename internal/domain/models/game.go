package models

// Chicken is one animal in the flock. A dead chicken is frozen.
type Chicken struct {
	ID                  string  `json:"id"`
	Breed               Breed   `json:"breed"`
	Level               int     `json:"level"`
	Hunger              float64 `json:"hunger"`
	EggQuality          float64 `json:"eggQuality"`
	HasEgg              bool    `json:"hasEgg"`
	GrowthProgress      float64 `json:"growthProgress"`
	EggProgress         float64 `json:"eggProgress"`
	IsDead              bool    `json:"isDead"`
	HungerSlowdownUntil int     `json:"hungerSlowdownUntil"`
}

// Egg is a collected egg waiting to be sold.
type Egg struct {
	ID        string  `json:"id"`
	Quality   float64 `json:"quality"`
	ChickenID string  `json:"chickenId"`
}

// Inventory maps a food id to the owned quantity.
type Inventory map[string]int

// GameState is the aggregate root of one play session.
type GameState struct {
	PlayerName          string    `json:"playerName"`
	Money               int       `json:"money"`
	Chickens            []Chicken `json:"chickens"`
	Inventory           Inventory `json:"inventory"`
	Eggs                []Egg     `json:"eggs"`
	TimeRemaining       int       `json:"timeRemaining"`
	GameStarted         bool      `json:"gameStarted"`
	GameEnded           bool      `json:"gameEnded"`
	GameOver            bool      `json:"gameOver"`
	TotalEggsSold       int       `json:"totalEggsSold"`
	TotalEggsSoldValue  int       `json:"totalEggsSoldValue"`
	TotalEggsProduced   int       `json:"totalEggsProduced"`
	TotalChickensBought int       `json:"totalChickensBought"`
	TotalFoodSpent      int       `json:"totalFoodSpent"`
	SoundEnabled        bool      `json:"soundEnabled"`
}

// NewGameState returns the state every session starts from.
func NewGameState() GameState {
	return GameState{
		Money:         StartingMoney,
		Chickens:      []Chicken{},
		Inventory:     Inventory{},
		Eggs:          []Egg{},
		TimeRemaining: GameDuration,
		SoundEnabled:  true,
	}
}

// Clone returns a deep copy that shares no slices or maps with s.
func (s GameState) Clone() GameState {
	out := s
	out.Chickens = make([]Chicken, len(s.Chickens))
	copy(out.Chickens, s.Chickens)
	out.Eggs = make([]Egg, len(s.Eggs))
	copy(out.Eggs, s.Eggs)
	out.Inventory = make(Inventory, len(s.Inventory))
	for k, v := range s.Inventory {
		out.Inventory[k] = v
	}
	return out
}

// Active reports whether ticks currently advance the game.
func (s GameState) Active() bool {
	return s.GameStarted && !s.GameEnded
}

// ChickenIndex returns the position of a chicken in the flock, or -1.
func (s GameState) ChickenIndex(id string) int {
	for i, c := range s.Chickens {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// AliveChickens counts chickens that are not dead.
func (s GameState) AliveChickens() int {
	n := 0
	for _, c := range s.Chickens {
		if !c.IsDead {
			n++
		}
	}
	return n
}

// UnsoldEggValue is what the current eggs would fetch if sold now.
func (s GameState) UnsoldEggValue() int {
	total := 0
	for _, e := range s.Eggs {
		total += EggPriceFor(e.Quality)
	}
	return total
}
