package draw

import (
	"bunker/core/errs"
	"bunker/feature/catalog"
	"bunker/feature/catalog/models"
)

// ShelterSize maps a player count to a shelter size class 1-3.
func ShelterSize(playersCount int) int {
	half := playersCount / 2
	switch {
	case half <= 3:
		return 1
	case half <= 6:
		return 2
	default:
		return 3
	}
}

// ShelterCapacity is the number of players the shelter admits.
func ShelterCapacity(playersCount int) int {
	half := playersCount / 2
	if half == 1 {
		return 2
	}
	return half
}

// ShelterChoice is the drawn shelter for a room.
type ShelterChoice struct {
	Description models.ShelterDescription
	Size        int
	Capacity    int
}

// SelectShelter picks a description of the room's size class available at
// or below its difficulty.
func (e *Engine) SelectShelter(snap *catalog.Snapshot, playersCount, difficulty int) (ShelterChoice, error) {
	size := ShelterSize(playersCount)

	var candidates []models.ShelterDescription
	for _, d := range snap.Shelters {
		if d.Size == size && d.Difficulty <= difficulty {
			candidates = append(candidates, d)
		}
	}

	desc, ok := Pick(e.src, candidates)
	if !ok {
		return ShelterChoice{}, errs.ContentUnavailable("no shelter descriptions for size=%d, difficulty<=%d", size, difficulty)
	}

	return ShelterChoice{Description: desc, Size: size, Capacity: ShelterCapacity(playersCount)}, nil
}
