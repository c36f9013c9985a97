// SPDX-License-Identifier: MIT

package od

// ID identifies an origin or a destination. Ordering between IDs is defined
// by Less, not by plain string comparison.
type ID string

// Record is one row of the long-form OD table.
type Record struct {
	Origin      ID      `json:"origin" yaml:"origin"`
	Destination ID      `json:"destination" yaml:"destination"`
	TravelCost  float64 `json:"travel_cost" yaml:"travel_cost"` // distance or time, >= 0
	Demand      float64 `json:"demand" yaml:"demand"`           // O_Demand of Origin
	Supply      float64 `json:"supply" yaml:"supply"`           // D_Supply of Destination
}

// Origin is a unique demand location.
type Origin struct {
	ID     ID      `json:"id" yaml:"id"`
	Demand float64 `json:"demand" yaml:"demand"`
}

// Destination is a unique supply location.
type Destination struct {
	ID     ID      `json:"id" yaml:"id"`
	Supply float64 `json:"supply" yaml:"supply"`
}

// Summary is the normalized view of an OD table.
//
// Origins and Destinations are sorted by Less. AverageAccessibility is
// TotalSupply / TotalDemand.
type Summary struct {
	Origins              []Origin      `json:"origins" yaml:"origins"`
	Destinations         []Destination `json:"destinations" yaml:"destinations"`
	TotalDemand          float64       `json:"total_demand" yaml:"total_demand"`
	TotalSupply          float64       `json:"total_supply" yaml:"total_supply"`
	AverageAccessibility float64       `json:"average_accessibility" yaml:"average_accessibility"`
}

// OriginCount returns the number of unique demand locations.
func (s *Summary) OriginCount() int { return len(s.Origins) }

// DestinationCount returns the number of unique supply locations.
func (s *Summary) DestinationCount() int { return len(s.Destinations) }

// SupplyVector returns destination supplies in destination sort order.
func (s *Summary) SupplyVector() []float64 {
	out := make([]float64, len(s.Destinations))
	for j := range s.Destinations {
		out[j] = s.Destinations[j].Supply
	}

	return out
}

// DemandVector returns origin demands in origin sort order.
func (s *Summary) DemandVector() []float64 {
	out := make([]float64, len(s.Origins))
	for i := range s.Origins {
		out[i] = s.Origins[i].Demand
	}

	return out
}
