package transit

// TrackAttributes are the tags carried by a physical track polyline, as
// prepared offline from the raw rail dataset.
type TrackAttributes struct {
	Electrified bool   `json:"electrified"`
	Usage       string `json:"usage"`
	Service     string `json:"service"`
	Tunnel      bool   `json:"tunnel"`
	Bridge      bool   `json:"bridge"`
	GaugeMM     int    `json:"gauge"`
}

// TrackPolyline is a read-only piece of physical track geometry.
type TrackPolyline struct {
	PrimaryIdentifier string `groups:"basic"`
	Name              string `groups:"basic"`

	Coordinates []Location `groups:"basic"`

	Attributes TrackAttributes `groups:"detailed"`
}

// Reversed returns a copy of the polyline running in the opposite direction.
func (p *TrackPolyline) Reversed() TrackPolyline {
	reversed := *p
	reversed.Coordinates = make([]Location, len(p.Coordinates))
	for i, coordinate := range p.Coordinates {
		reversed.Coordinates[len(p.Coordinates)-1-i] = coordinate
	}
	return reversed
}
