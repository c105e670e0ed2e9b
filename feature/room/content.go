package room

import (
	"fmt"

	"bunker/feature/room/models"

	"gorm.io/gorm"
)

// deleteRoomContent removes every player of the given rooms together with
// the traits and cards they own, and the rooms' shelters and catastrophes.
// Room rows are kept.
func deleteRoomContent(tx *gorm.DB, roomIDs ...uint) error {
	if len(roomIDs) == 0 {
		return nil
	}

	var playerIDs []uint
	if err := tx.Model(&models.Player{}).Where("room_id IN ?", roomIDs).Pluck("id", &playerIDs).Error; err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	if len(playerIDs) > 0 {
		owned := []any{&models.AssignedTrait{}, &models.AssignedActionCard{}, &models.AssignedReactionCard{}}
		for _, m := range owned {
			if err := tx.Where("player_id IN ?", playerIDs).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete player content: %w", err)
			}
		}
		if err := tx.Where("id IN ?", playerIDs).Delete(&models.Player{}).Error; err != nil {
			return fmt.Errorf("failed to delete players: %w", err)
		}
	}

	if err := tx.Where("room_id IN ?", roomIDs).Delete(&models.Shelter{}).Error; err != nil {
		return fmt.Errorf("failed to delete shelters: %w", err)
	}
	if err := tx.Where("room_id IN ?", roomIDs).Delete(&models.RoomCatastrophe{}).Error; err != nil {
		return fmt.Errorf("failed to delete catastrophes: %w", err)
	}
	return nil
}

// deleteRooms removes rooms and everything they own.
func deleteRooms(tx *gorm.DB, roomIDs ...uint) error {
	if len(roomIDs) == 0 {
		return nil
	}
	if err := deleteRoomContent(tx, roomIDs...); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", roomIDs).Delete(&models.Room{}).Error; err != nil {
		return fmt.Errorf("failed to delete rooms: %w", err)
	}
	return nil
}
