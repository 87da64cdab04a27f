package core

// Request types

type CreateGameRequest struct {
	Layout string `json:"layout,omitempty" validate:"omitempty,max=80"`
	Turn   string `json:"turn,omitempty" validate:"omitempty,oneof=red black"`
}

type SelectRequest struct {
	Row *int `json:"row" validate:"required,min=0,max=7"`
	Col *int `json:"col" validate:"required,min=0,max=7"`
}

// Response types

type GameResponse struct {
	GameID     string   `json:"gameId"`
	Layout     string   `json:"layout"`
	Turn       string   `json:"turn"`
	State      string   `json:"state"`
	Winner     string   `json:"winner,omitempty"`
	Selected   *Square  `json:"selected,omitempty"`
	HasMoved   bool     `json:"hasMoved"`
	Captured   bool     `json:"lastMoveWasCapture"`
	RedCount   int      `json:"redCount"`
	BlackCount int      `json:"blackCount"`
	Moves      []string `json:"moves"`
	Version    int      `json:"version"`
	Token      string   `json:"token,omitempty"` // Only on creation
}

// ActionResponse wraps the game after a select/end-turn/reset call
type ActionResponse struct {
	Changed bool         `json:"changed"`
	Events  []EventInfo  `json:"events"`
	Game    GameResponse `json:"game"`
}

type EventInfo struct {
	Kind   string  `json:"kind"`             // "board_updated", "piece_selected", "turn_changed", "player_won"
	Player string  `json:"player,omitempty"` // turn_changed, player_won
	Square *Square `json:"square,omitempty"` // piece_selected
}

type Square struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Name string `json:"name"`
}

type BoardResponse struct {
	Layout string `json:"layout"`
	Board  string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
