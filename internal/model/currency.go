package model

// Currency is an ISO 4217 currency code.
type Currency string

// Supported currencies.
const (
	EUR Currency = "EUR"
	HUF Currency = "HUF"
)

// Direction selects which way an amount is converted.
type Direction int

// Conversion directions offered by the console.
const (
	EURToHUF Direction = 1
	HUFToEUR Direction = 2
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == EURToHUF || d == HUFToEUR
}

// From returns the source currency of the direction.
func (d Direction) From() Currency {
	if d == HUFToEUR {
		return HUF
	}
	return EUR
}

// To returns the target currency of the direction.
func (d Direction) To() Currency {
	if d == HUFToEUR {
		return EUR
	}
	return HUF
}

func (d Direction) String() string {
	switch d {
	case EURToHUF:
		return "EUR → HUF"
	case HUFToEUR:
		return "HUF → EUR"
	default:
		return "unknown"
	}
}
