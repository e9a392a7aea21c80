package models

// Achievement is derived, never persisted. Unlocked state is recomputed from
// the current snapshot on every read.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}
