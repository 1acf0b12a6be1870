package models

// Effect is a discrete sound/visual cue emitted alongside a transition.
type Effect string

const (
	EffectClick   Effect = "click"
	EffectBuy     Effect = "buy"
	EffectEgg     Effect = "egg"
	EffectDeath   Effect = "death"
	EffectLevelUp Effect = "levelup"
)

// Update is what listeners receive after every applied transition.
type Update struct {
	Action  ActionType `json:"action"`
	State   GameState  `json:"state"`
	Effects []Effect   `json:"effects,omitempty"`
}
