package draw

import (
	"context"
	"fmt"
	"time"

	"bunker/core/errs"
	"bunker/feature/catalog"
	catalogmodels "bunker/feature/catalog/models"
	"bunker/feature/room/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine draws game content from a random source.
type Engine struct {
	src Source
	now func() time.Time
}

// NewEngine creates a draw engine.
func NewEngine(src Source) *Engine {
	return &Engine{src: src, now: func() time.Time { return time.Now().UTC() }}
}

// DrawRoom deals a complete game for a persisted room that has no players,
// shelter or catastrophe: seats, cards and traits for every player, then
// the shelter, the catastrophe and the start stamp. It writes only through
// tx and leaves rollback of partial work to the caller's transaction.
func (e *Engine) DrawRoom(ctx context.Context, tx *gorm.DB, room *models.Room, snap *catalog.Snapshot) error {
	target, ok := Target(room.Difficulty)
	if !ok {
		return errs.Validation("difficulty %d outside [1, 5]", room.Difficulty)
	}
	tolerance, ok := Tolerance(room.Balance)
	if !ok {
		return errs.Validation("balance %d outside [1, 5]", room.Balance)
	}

	tx = tx.WithContext(ctx)

	players := make([]models.Player, room.PlayersCount)
	for i := range players {
		players[i] = models.Player{
			RoomID:  room.ID,
			Seat:    i + 1,
			IsHost:  i == 0,
			IsAlive: true,
		}
	}
	if err := tx.Omit(clause.Associations).Create(&players).Error; err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}

	for i := range players {
		if err := e.dealCards(tx, &players[i], snap); err != nil {
			return err
		}
	}

	for i := range players {
		if err := e.dealTraits(tx, &players[i], snap, target, tolerance); err != nil {
			return err
		}
	}

	shelter, err := e.SelectShelter(snap, room.PlayersCount, room.Difficulty)
	if err != nil {
		return err
	}
	room.Shelter = &models.Shelter{
		RoomID:        room.ID,
		Capacity:      shelter.Capacity,
		DescriptionID: shelter.Description.ID,
	}
	if err := tx.Omit(clause.Associations).Create(room.Shelter).Error; err != nil {
		return fmt.Errorf("failed to create shelter: %w", err)
	}
	room.Shelter.Description = &shelter.Description

	catastrophe, err := e.SelectCatastrophe(snap, room.Severity)
	if err != nil {
		return err
	}
	room.Catastrophe = &models.RoomCatastrophe{RoomID: room.ID, CatastropheID: catastrophe.ID}
	if err := tx.Omit(clause.Associations).Create(room.Catastrophe).Error; err != nil {
		return fmt.Errorf("failed to create room catastrophe: %w", err)
	}
	room.Catastrophe.Catastrophe = &catastrophe

	startedAt := e.now()
	if err := tx.Model(room).Update("started_at", startedAt).Error; err != nil {
		return fmt.Errorf("failed to stamp room start: %w", err)
	}
	room.StartedAt = &startedAt
	room.Players = players

	return nil
}

// dealCards issues one action and one reaction card, independently per
// player and with replacement. Empty card catalogs issue nothing.
func (e *Engine) dealCards(tx *gorm.DB, player *models.Player, snap *catalog.Snapshot) error {
	if card, ok := Pick(e.src, snap.ActionCards); ok {
		player.ActionCard = &models.AssignedActionCard{PlayerID: player.ID, CardID: card.ID, Description: card.Description}
		if err := tx.Create(player.ActionCard).Error; err != nil {
			return fmt.Errorf("failed to deal action card to seat %d: %w", player.Seat, err)
		}
	}
	if card, ok := Pick(e.src, snap.ReactionCards); ok {
		player.ReactionCard = &models.AssignedReactionCard{PlayerID: player.ID, CardID: card.ID, Description: card.Description}
		if err := tx.Create(player.ReactionCard).Error; err != nil {
			return fmt.Errorf("failed to deal reaction card to seat %d: %w", player.Seat, err)
		}
	}
	return nil
}

// dealTraits persists the biography and the allocated traits, all hidden.
func (e *Engine) dealTraits(tx *gorm.DB, player *models.Player, snap *catalog.Snapshot, target, tolerance int) error {
	alloc := e.AllocateTraits(snap, target, tolerance)

	rows := make([]models.AssignedTrait, 0, len(alloc.Traits)+1)
	rows = append(rows, models.AssignedTrait{
		PlayerID:    player.ID,
		Category:    catalogmodels.CategoryBio,
		Description: alloc.Bio.String(),
	})
	for _, t := range alloc.Traits {
		rows = append(rows, models.AssignedTrait{
			PlayerID:    player.ID,
			Category:    t.Category,
			Description: t.Description,
		})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to deal traits to seat %d: %w", player.Seat, err)
	}
	for i := range rows {
		rows[i].Label = rows[i].Category.Label()
	}
	player.Traits = rows
	return nil
}
