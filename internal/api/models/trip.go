package models

// Trip is the API representation of a planned trip.
type Trip struct {
	ID                    string    `json:"id"`
	CurrentLocation       string    `json:"current_location"`
	PickupLocation        string    `json:"pickup_location"`
	DropoffLocation       string    `json:"dropoff_location"`
	CurrentCycleUsedHours float64   `json:"current_cycle_used_hours"`
	Cycle                 string    `json:"cycle"`
	PlanStatus            string    `json:"plan_status"`
	RouteDistanceMiles    *float64  `json:"route_distance_miles,omitempty"`
	RouteDurationSeconds  *float64  `json:"route_duration_seconds,omitempty"`
	AvgSpeedMph           *float64  `json:"avg_speed_mph,omitempty"`
	CreatedAt             Timestamp `json:"created_at"`
	UpdatedAt             Timestamp `json:"updated_at"`
}

// TripCreateRequest is the request body for creating a trip.
type TripCreateRequest struct {
	CurrentLocation       string  `json:"current_location"`
	PickupLocation        string  `json:"pickup_location"`
	DropoffLocation       string  `json:"dropoff_location"`
	CurrentCycleUsedHours float64 `json:"current_cycle_used_hours"`
	Cycle                 string  `json:"cycle"`
}

// TripUpdateRequest is the request body for updating a trip.
// Nil fields are left unchanged.
type TripUpdateRequest struct {
	CurrentLocation       *string  `json:"current_location,omitempty"`
	PickupLocation        *string  `json:"pickup_location,omitempty"`
	DropoffLocation       *string  `json:"dropoff_location,omitempty"`
	CurrentCycleUsedHours *float64 `json:"current_cycle_used_hours,omitempty"`
	Cycle                 *string  `json:"cycle,omitempty"`
}

// TripList is the response body for listing trips.
type TripList struct {
	Items []Trip `json:"items"`
}
