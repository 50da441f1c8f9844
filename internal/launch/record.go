package launch

// Column names as they appear in the header row of the launch file.
const (
	ColFlightNumber           = "Flight Number"
	ColLaunchSite             = "Launch Site"
	ColClass                  = "class"
	ColPayloadMass            = "Payload Mass (kg)"
	ColBoosterVersion         = "Booster Version"
	ColBoosterVersionCategory = "Booster Version Category"
)

// RequiredColumns lists the columns every launch file must carry.
var RequiredColumns = []string{
	ColLaunchSite,
	ColClass,
	ColPayloadMass,
	ColBoosterVersionCategory,
}

// Outcome class values.
const (
	ClassFailure = 0
	ClassSuccess = 1
)

// Record is one row of the launch file.
//
// LaunchSite, Class, PayloadMassKg and BoosterVersionCategory are always
// populated. FlightNumber and BoosterVersion are zero when the file does
// not carry those columns.
type Record struct {
	FlightNumber           int     `json:"flight_number,omitempty" yaml:"flight_number,omitempty"`
	LaunchSite             string  `json:"launch_site" yaml:"launch_site"`
	Class                  int     `json:"class" yaml:"class"`
	PayloadMassKg          float64 `json:"payload_mass_kg" yaml:"payload_mass_kg"`
	BoosterVersion         string  `json:"booster_version,omitempty" yaml:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category" yaml:"booster_version_category"`
}

// Succeeded reports whether the launch outcome was a success.
func (r Record) Succeeded() bool {
	return r.Class == ClassSuccess
}
