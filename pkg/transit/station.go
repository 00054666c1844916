package transit

type Station struct {
	PrimaryIdentifier string `groups:"basic" yaml:"id"`
	Name              string `groups:"basic" yaml:"name"`

	Location *Location `groups:"basic"`

	// Cumulative distance along the line from its origin terminus
	DistanceFromOriginKM float64 `groups:"detailed"`
}
