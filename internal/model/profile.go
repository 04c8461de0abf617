package model

import "time"

// Profile mirrors a row of `user_profiles`. Nil fields are stored as NULL.
type Profile struct {
	UserID   uint64
	Picture  *string
	Bio      *string
	Location *string
	Website  *string
}

// ProfileUpdate carries the fields a caller wants to change. A nil field
// leaves the stored value untouched; a pointer to "" clears it.
type ProfileUpdate struct {
	Picture  *string
	Bio      *string
	Location *string
	Website  *string
}

// Empty reports whether the update would change nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Picture == nil && u.Bio == nil && u.Location == nil && u.Website == nil
}

// Merge applies u on top of p and returns the resulting record.
func (p Profile) Merge(u ProfileUpdate) Profile {
	p.Picture = mergeField(p.Picture, u.Picture)
	p.Bio = mergeField(p.Bio, u.Bio)
	p.Location = mergeField(p.Location, u.Location)
	p.Website = mergeField(p.Website, u.Website)
	return p
}

func mergeField(cur, next *string) *string {
	if next == nil {
		return cur
	}
	if *next == "" {
		return nil
	}
	v := *next
	return &v
}

// ProfileView is the public shape of an account joined with its profile.
// It never includes credential material.
type ProfileView struct {
	ID             uint64    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	ProfilePicture *string   `json:"profile_picture"`
	Bio            *string   `json:"bio"`
	Location       *string   `json:"location"`
	Website        *string   `json:"website"`
}
