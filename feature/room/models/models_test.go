package models_test

import (
	"testing"

	catalog "bunker/feature/catalog/models"
	"bunker/feature/room/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPlayer_Claimed(t *testing.T) {
	assert.False(t, models.Player{}.Claimed())
	assert.False(t, models.Player{DeviceID: strPtr("")}.Claimed())
	assert.True(t, models.Player{DeviceID: strPtr("device-1")}.Claimed())
}

func TestPlayer_BoundTo(t *testing.T) {
	p := models.Player{DeviceID: strPtr("device-1")}
	assert.True(t, p.BoundTo("device-1"))
	assert.False(t, p.BoundTo("device-2"))
	assert.False(t, p.BoundTo(""))
	assert.False(t, models.Player{}.BoundTo("device-1"))
}

func TestAssignedTrait_AfterFind(t *testing.T) {
	tr := &models.AssignedTrait{Category: catalog.CategoryProfession}
	assert.NoError(t, tr.AfterFind(nil))
	assert.Equal(t, "Profession", tr.Label)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "rooms", models.Room{}.TableName())
	assert.Equal(t, "players", models.Player{}.TableName())
	assert.Equal(t, "assigned_traits", models.AssignedTrait{}.TableName())
	assert.Equal(t, "room_catastrophes", models.RoomCatastrophe{}.TableName())
	assert.Len(t, models.All(), 7)
}
