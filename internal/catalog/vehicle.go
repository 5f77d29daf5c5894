package catalog

import "strings"

// vehicleRule is one (predicate, outcome) pair. Rules are evaluated in
// order and the first one that fires decides the outcome; an empty vehicle
// means the service is not a drivable-lesson chunk. The exclusion rules
// must stay ahead of the inclusion rules: risk-training and package names
// contain vehicle words.
type vehicleRule struct {
	markers []string // rule fires when any marker appears...
	with    string   // ...together with this marker, when set
	vehicle Vehicle
}

var vehicleRules = []vehicleRule{
	// risk and skid training, never a driving lesson
	{markers: []string{"risk 1", "risk 2", "riskettan", "risktvåan", "halkbana"}},
	// packages, intro/mentor courses, theory-only and other license classes
	{markers: []string{"paket", "introduktionskurs", "handledarkurs", "intensiv", "teori", "b96", "be "}},
	{markers: []string{" mc"}, with: "körlektion", vehicle: VehicleMC},
	{markers: []string{" bil"}, with: "körlektion", vehicle: VehicleBIL},
	{markers: []string{"am ", "moped"}, vehicle: VehicleAM},
}

// ClassifyVehicle maps a service name to the license class its price line
// belongs to, or "" when the service is not a per-vehicle lesson.
func ClassifyVehicle(serviceName string) Vehicle {
	name := strings.ToLower(serviceName)
	for _, rule := range vehicleRules {
		if rule.with != "" && !strings.Contains(name, rule.with) {
			continue
		}
		for _, marker := range rule.markers {
			if strings.Contains(name, marker) {
				return rule.vehicle
			}
		}
	}
	return ""
}
