package entity

import "fmt"

// Chip is the marker held by a single board cell.
type Chip uint8

const (
	Empty Chip = iota
	X
	O
)

// String returns the display form of the chip. Empty is rendered as a blank.
func (that Chip) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

func (that Chip) IsValid() bool {
	return that <= O
}

func (that Chip) MarshalText() ([]byte, error) {
	switch that {
	case Empty:
		return []byte(""), nil
	case X, O:
		return []byte(that.String()), nil
	default:
		return nil, fmt.Errorf("marshal chip %d: unknown value", that)
	}
}

func (that *Chip) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", " ":
		*that = Empty
	case "X":
		*that = X
	case "O":
		*that = O
	default:
		return fmt.Errorf("unmarshal chip %q: unknown value", text)
	}

	return nil
}
