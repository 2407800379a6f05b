package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status describes the lifecycle stage of a listing.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusSold    Status = "sold"
	StatusRemoved Status = "removed"
)

// Visibility controls who may see a listing.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
)

// Condition describes the physical/quality state of the item offered.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionUsed    Condition = "used"
	ConditionWorn    Condition = "worn"
	ConditionSalvage Condition = "salvage"
)

// Currency is a member of the supported currency set (see rules.Rules.Currencies).
type Currency string

// Listing represents a marketplace listing.
type Listing struct {
	ID          string               `bson:"_id" json:"id"`
	OwnerID     string               `bson:"owner_id" json:"owner_id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Price       primitive.Decimal128 `bson:"price" json:"price"`
	Currency    Currency             `bson:"currency" json:"currency"`
	Condition   Condition            `bson:"condition" json:"condition"`
	Status      Status               `bson:"status" json:"status"`
	Visibility  Visibility           `bson:"visibility" json:"visibility"`
	CategoryID  string               `bson:"category_id" json:"category_id"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}
