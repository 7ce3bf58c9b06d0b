package domain

// AuState is an Australian state or territory for shipping addresses.
type AuState string

const (
	NSW AuState = "NSW"
	VIC AuState = "VIC"
	QLD AuState = "QLD"
	SA  AuState = "SA"
	WA  AuState = "WA"
	TAS AuState = "TAS"
	NT  AuState = "NT"
	ACT AuState = "ACT"
)

// Valid reports whether s is a known state.
func (s AuState) Valid() bool {
	switch s {
	case NSW, VIC, QLD, SA, WA, TAS, NT, ACT:
		return true
	}
	return false
}

// Address is a shipping address value object. It is stored alongside the
// order it belongs to and never referenced by ID.
type Address struct {
	StreetAddress string  `json:"street_address"`
	Suburb        string  `json:"suburb"`
	State         AuState `json:"state"`
	Postcode      int     `json:"postcode"`
	Country       string  `json:"country"`
}
