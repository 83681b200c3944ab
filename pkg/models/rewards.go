package models

// Rewards is the xp/coin payout attached to a final event rank
type Rewards struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}
