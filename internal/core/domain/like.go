package domain

import "time"

// PropertyLike records that a user marked a property as a favourite.
// At most one like exists per (UserID, PropertyID).
type PropertyLike struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PropertyID string    `json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
}
