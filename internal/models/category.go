package models

// Category is read-mostly reference data for listing classification.
// Created/deactivated by an administrative process; this service only reads it.
type Category struct {
	ID        string `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Slug      string `bson:"slug" json:"slug"`
	Active    bool   `bson:"active" json:"-"`
	SortOrder int    `bson:"sort_order" json:"-"`
}

// CategoryAPIResponse is the wire shape for GET /v1/categories.
type CategoryAPIResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
