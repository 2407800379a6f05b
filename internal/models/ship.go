package models

// Ship is reference data backing the fleet viewer.
type Ship struct {
	ID           string `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Manufacturer string `bson:"manufacturer" json:"manufacturer"`
	Role         string `bson:"role" json:"role"`
	Active       bool   `bson:"active" json:"-"`
	SortOrder    int    `bson:"sort_order" json:"-"`
}

// ShipAPIResponse is the wire shape for GET /v1/fleet.
type ShipAPIResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Role         string `json:"role"`
}
