package model

import "time"

// Collection is a catalog entry shown on the storefront. Image holds the
// asset reference returned by the asset store.
type Collection struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}
