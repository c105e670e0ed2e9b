package models

import (
	"time"

	catalog "bunker/feature/catalog/models"

	"gorm.io/gorm"
)

// Room is a game lobby identified by a short shareable code.
type Room struct {
	ID           uint       `gorm:"column:id;primaryKey" json:"-"`
	Code         string     `gorm:"column:code;type:varchar(6);not null;uniqueIndex" json:"code"`
	PlayersCount int        `gorm:"column:players_count;not null" json:"players_count"`
	Difficulty   int        `gorm:"column:difficulty;not null" json:"difficulty"`
	Balance      int        `gorm:"column:balance;not null" json:"balance"`
	Severity     int        `gorm:"column:severity;not null" json:"severity"`
	IsPlaying    bool       `gorm:"column:is_playing;not null;default:false" json:"is_playing"`
	StartedAt    *time.Time `gorm:"column:started_at" json:"-"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"-"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;index" json:"-"`

	Players     []Player         `gorm:"foreignKey:RoomID" json:"players"`
	Shelter     *Shelter         `gorm:"foreignKey:RoomID" json:"shelter"`
	Catastrophe *RoomCatastrophe `gorm:"foreignKey:RoomID" json:"room_catastrophe"`
}

// TableName overrides the table name for rooms.
func (Room) TableName() string {
	return "rooms"
}

// Player is a seat in a room. A nil DeviceID is an unclaimed seat.
type Player struct {
	ID     uint `gorm:"column:id;primaryKey" json:"id"`
	RoomID uint `gorm:"column:room_id;not null;uniqueIndex:idx_players_room_seat" json:"-"`
	Seat   int  `gorm:"column:seat;not null;uniqueIndex:idx_players_room_seat" json:"seat"`
	// DeviceID is unique across all claimed seats; NULLs do not collide.
	DeviceID  *string   `gorm:"column:device_id;type:varchar(64);uniqueIndex" json:"device_id"`
	Nickname  *string   `gorm:"column:nickname;type:varchar(20)" json:"nickname"`
	IsHost    bool      `gorm:"column:is_host;not null;default:false" json:"is_host"`
	IsAlive   bool      `gorm:"column:is_alive;not null;default:true" json:"is_alive"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`

	Room         *Room                 `gorm:"foreignKey:RoomID" json:"-"`
	Traits       []AssignedTrait       `gorm:"foreignKey:PlayerID" json:"player_traits"`
	ActionCard   *AssignedActionCard   `gorm:"foreignKey:PlayerID" json:"action_card"`
	ReactionCard *AssignedReactionCard `gorm:"foreignKey:PlayerID" json:"reaction_card"`
}

// TableName overrides the table name for players.
func (Player) TableName() string {
	return "players"
}

// Claimed reports whether a device is bound to the seat.
func (p Player) Claimed() bool {
	return p.DeviceID != nil && *p.DeviceID != ""
}

// BoundTo reports whether deviceID holds this seat.
func (p Player) BoundTo(deviceID string) bool {
	return deviceID != "" && p.DeviceID != nil && *p.DeviceID == deviceID
}

// AssignedTrait is a trait card dealt to a player. The description is a
// copy so catalog edits never rewrite dealt cards.
type AssignedTrait struct {
	ID          uint             `gorm:"column:id;primaryKey" json:"pk"`
	PlayerID    uint             `gorm:"column:player_id;not null;index" json:"-"`
	Category    catalog.Category `gorm:"column:trait_type;type:varchar(16);not null" json:"trait_type"`
	Label       string           `gorm:"-" json:"trait_type_display"`
	Description string           `gorm:"column:description;type:text;not null" json:"description"`
	IsRevealed  bool             `gorm:"column:is_revealed;not null;default:false" json:"is_revealed"`
}

// TableName overrides the table name for assigned traits.
func (AssignedTrait) TableName() string {
	return "assigned_traits"
}

// AfterFind fills the display label.
func (t *AssignedTrait) AfterFind(_ *gorm.DB) error {
	t.Label = t.Category.Label()
	return nil
}

// AssignedActionCard is a player's single-use action card.
type AssignedActionCard struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"pk"`
	PlayerID    uint   `gorm:"column:player_id;not null;uniqueIndex" json:"-"`
	CardID      uint   `gorm:"column:card_id;not null" json:"-"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
	IsUsed      bool   `gorm:"column:is_used;not null;default:false" json:"is_used"`
}

// TableName overrides the table name for assigned action cards.
func (AssignedActionCard) TableName() string {
	return "assigned_action_cards"
}

// AssignedReactionCard is a player's single-use reaction card.
type AssignedReactionCard struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"pk"`
	PlayerID    uint   `gorm:"column:player_id;not null;uniqueIndex" json:"-"`
	CardID      uint   `gorm:"column:card_id;not null" json:"-"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
	IsUsed      bool   `gorm:"column:is_used;not null;default:false" json:"is_used"`
}

// TableName overrides the table name for assigned reaction cards.
func (AssignedReactionCard) TableName() string {
	return "assigned_reaction_cards"
}

// Shelter is the room's shelter with its computed capacity.
type Shelter struct {
	ID            uint                        `gorm:"column:id;primaryKey" json:"pk"`
	RoomID        uint                        `gorm:"column:room_id;not null;uniqueIndex" json:"-"`
	Capacity      int                         `gorm:"column:capacity;not null" json:"capacity"`
	DescriptionID uint                        `gorm:"column:description_id;not null" json:"-"`
	Description   *catalog.ShelterDescription `gorm:"foreignKey:DescriptionID" json:"description"`
}

// TableName overrides the table name for shelters.
func (Shelter) TableName() string {
	return "shelters"
}

// RoomCatastrophe links a room to its drawn catastrophe.
type RoomCatastrophe struct {
	ID            uint                 `gorm:"column:id;primaryKey" json:"pk"`
	RoomID        uint                 `gorm:"column:room_id;not null;uniqueIndex" json:"-"`
	CatastropheID uint                 `gorm:"column:catastrophe_id;not null" json:"-"`
	Catastrophe   *catalog.Catastrophe `gorm:"foreignKey:CatastropheID" json:"catastrophe"`
}

// TableName overrides the table name for room catastrophes.
func (RoomCatastrophe) TableName() string {
	return "room_catastrophes"
}

// All returns every room model for migration and schema checks.
func All() []any {
	return []any{
		&Room{}, &Player{}, &AssignedTrait{},
		&AssignedActionCard{}, &AssignedReactionCard{},
		&Shelter{}, &RoomCatastrophe{},
	}
}
