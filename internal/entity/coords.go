package entity

// Coords addresses a board cell; X is the column and Y is the row.
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}
