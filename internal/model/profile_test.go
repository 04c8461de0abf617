package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestProfileMerge_KeepsUntouchedFields(t *testing.T) {
	stored := Profile{
		UserID:   7,
		Picture:  ptr("/uploads/a.png"),
		Bio:      ptr("old bio"),
		Location: ptr("London"),
		Website:  ptr("https://example.com"),
	}

	got := stored.Merge(ProfileUpdate{Bio: ptr("new bio")})

	assert.Equal(t, "new bio", *got.Bio)
	assert.Equal(t, "/uploads/a.png", *got.Picture)
	assert.Equal(t, "London", *got.Location)
	assert.Equal(t, "https://example.com", *got.Website)
	assert.Equal(t, "old bio", *stored.Bio, "merge must not mutate the receiver's pointees")
}

func TestProfileMerge_EmptyStringClears(t *testing.T) {
	stored := Profile{Location: ptr("Paris")}

	got := stored.Merge(ProfileUpdate{Location: ptr("")})

	assert.Nil(t, got.Location)
}

func TestProfileMerge_OntoEmptyRow(t *testing.T) {
	got := Profile{UserID: 1}.Merge(ProfileUpdate{Website: ptr("https://ada.dev")})

	assert.Nil(t, got.Bio)
	assert.Nil(t, got.Picture)
	assert.Equal(t, "https://ada.dev", *got.Website)
}

func TestProfileUpdate_Empty(t *testing.T) {
	assert.True(t, ProfileUpdate{}.Empty())
	assert.False(t, ProfileUpdate{Bio: ptr("")}.Empty())
}
