package room

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bunker/core/database"
	"bunker/core/errs"
	"bunker/feature/catalog"
	"bunker/feature/draw"
	"bunker/feature/room/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Catalog supplies the content snapshot a draw reads from.
type Catalog interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// Service manages room sessions. Every mutation runs in one transaction
// holding the room row lock, so per-room operations are serialized.
type Service struct {
	db       *gorm.DB
	engine   *draw.Engine
	catalogs Catalog
	cfg      Config
	logger   *zap.Logger

	codes func() string
	now   func() time.Time
}

// NewService creates a room session service.
func NewService(db *gorm.DB, engine *draw.Engine, catalogs Catalog, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		engine:   engine,
		catalogs: catalogs,
		cfg:      cfg.withDefaults(),
		logger:   logger,
		codes:    GenerateCode,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest holds the parameters of a new room.
type CreateRequest struct {
	PlayersCount int `json:"players_count"`
	Difficulty   int `json:"difficulty"`
	Balance      int `json:"balance"`
	Severity     int `json:"severity"`
}

// Validate checks the room parameters.
func (r CreateRequest) Validate() error {
	if r.PlayersCount < 4 || r.PlayersCount > 30 {
		return errs.Validation("players_count must be between 4 and 30")
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"difficulty", r.Difficulty},
		{"balance", r.Balance},
		{"severity", r.Severity},
	} {
		if f.value < 1 || f.value > 5 {
			return errs.Validation("%s must be between 1 and 5", f.name)
		}
	}
	return nil
}

// LeaveResult reports the outcome of a leave.
type LeaveResult struct {
	RoomDeleted bool   `json:"room_deleted"`
	Detail      string `json:"detail"`
}

// RevealResult reports the state of a revealed trait.
type RevealResult struct {
	TraitID         uint `json:"trait_id"`
	IsRevealed      bool `json:"is_revealed"`
	AlreadyRevealed bool `json:"already_revealed,omitempty"`
}

func requireDevice(deviceID string) (string, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return "", errs.Validation("device_id required")
	}
	if len(deviceID) > 64 {
		return "", errs.Validation("device_id longer than 64 characters")
	}
	return deviceID, nil
}

// Create validates the parameters, stores the room under a fresh code and
// draws its content. Nothing is stored when any step fails.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}

	room := &models.Room{
		PlayersCount: req.PlayersCount,
		Difficulty:   req.Difficulty,
		Balance:      req.Balance,
		Severity:     req.Severity,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.insertWithCode(tx, room); err != nil {
			return err
		}
		return s.engine.DrawRoom(ctx, tx, room, snap)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Room created",
		zap.String("code", room.Code),
		zap.Int("players_count", room.PlayersCount),
		zap.Int("difficulty", room.Difficulty),
		zap.Int("balance", room.Balance),
		zap.Int("severity", room.Severity),
	)
	return s.Get(ctx, room.Code)
}

// insertWithCode stores room under a generated code, retrying when the
// unique index rejects a collision. Each attempt runs in a savepoint so a
// rejected insert does not abort the enclosing transaction.
func (s *Service) insertWithCode(tx *gorm.DB, room *models.Room) error {
	for attempt := 1; attempt <= s.cfg.CodeAttempts; attempt++ {
		room.Code = s.codes()
		err := tx.Transaction(func(sp *gorm.DB) error {
			return sp.Omit(clause.Associations).Create(room).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create room: %w", err)
		}
		room.ID = 0
		s.logger.Debug("Room code collision", zap.String("code", room.Code), zap.Int("attempt", attempt))
	}
	return fmt.Errorf("failed to generate a unique room code after %d attempts", s.cfg.CodeAttempts)
}

// Get returns a room with its players, their traits and cards, the shelter
// and the catastrophe.
func (s *Service) Get(ctx context.Context, code string) (*models.Room, error) {
	code = NormalizeCode(code)

	var room models.Room
	err := s.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("seat") }).
		Preload("Players.Traits", func(db *gorm.DB) *gorm.DB { return db.Order("trait_type").Order("id") }).
		Preload("Players.ActionCard").
		Preload("Players.ReactionCard").
		Preload("Shelter.Description").
		Preload("Catastrophe.Catastrophe").
		Where("code = ?", code).
		First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("room %s not found", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room %s: %w", code, err)
	}
	return &room, nil
}

// Exists reports whether a room with code is live.
func (s *Service) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Room{}).Where("code = ?", NormalizeCode(code)).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up room: %w", err)
	}
	return count > 0, nil
}

// lockRoom loads a room and locks its row for the rest of tx.
func lockRoom(tx *gorm.DB, code string) (*models.Room, error) {
	var room models.Room
	err := database.ForUpdate(tx).Where("code = ?", code).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("room %s not found", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock room %s: %w", code, err)
	}
	return &room, nil
}

// boundPlayer finds the seat deviceID holds in the room.
func boundPlayer(tx *gorm.DB, roomID uint, deviceID string) (*models.Player, error) {
	var player models.Player
	err := tx.Where("room_id = ? AND device_id = ?", roomID, deviceID).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("player not found in this room")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}
	return &player, nil
}

// Join binds deviceID to the lowest unclaimed seat. A device already seated
// in the room gets its seat back; a device seated elsewhere is rejected with
// the other room's code.
func (s *Service) Join(ctx context.Context, code, deviceID string) (*models.Player, error) {
	code = NormalizeCode(code)
	deviceID, err := requireDevice(deviceID)
	if err != nil {
		return nil, err
	}

	var playerID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, code)
		if err != nil {
			return err
		}

		if p, err := boundPlayer(tx, room.ID, deviceID); err == nil {
			playerID = p.ID
			return nil
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}

		var other models.Player
		err = tx.Preload("Room").Where("device_id = ? AND room_id <> ?", deviceID, room.ID).First(&other).Error
		if err == nil {
			otherCode := ""
			if other.Room != nil {
				otherCode = other.Room.Code
			}
			return &errs.Error{Kind: errs.KindConflict, Detail: "device already joined another room", RoomCode: otherCode}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up device binding: %w", err)
		}

		// The room lock serializes joins; the guarded update still refuses
		// to overwrite a claimed seat.
		for range room.PlayersCount {
			var seat models.Player
			err := tx.Where("room_id = ? AND device_id IS NULL", room.ID).Order("seat").First(&seat).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Conflict("room is full")
			}
			if err != nil {
				return fmt.Errorf("failed to find a free seat: %w", err)
			}

			res := tx.Model(&models.Player{}).
				Where("id = ? AND device_id IS NULL", seat.ID).
				Update("device_id", deviceID)
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return errs.Conflict("device already joined another room")
			}
			if res.Error != nil {
				return fmt.Errorf("failed to claim seat %d: %w", seat.Seat, res.Error)
			}
			if res.RowsAffected == 1 {
				playerID = seat.ID
				s.logger.Info("Seat claimed", zap.String("code", code), zap.Int("seat", seat.Seat))
				return s.touch(tx, room)
			}
		}
		return errs.Conflict("room is full")
	})
	if err != nil {
		return nil, err
	}

	return s.GetPlayer(ctx, playerID)
}

// touch marks the room as active so it is not evicted as stale.
func (s *Service) touch(tx *gorm.DB, room *models.Room) error {
	if err := tx.Model(room).Update("updated_at", s.now()).Error; err != nil {
		return fmt.Errorf("failed to touch room %s: %w", room.Code, err)
	}
	return nil
}

// Start moves a forming room to playing. Only the host may start.
func (s *Service) Start(ctx context.Context, code, deviceID string) error {
	code = NormalizeCode(code)
	deviceID, err := requireDevice(deviceID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, code)
		if err != nil {
			return err
		}
		player, err := boundPlayer(tx, room.ID, deviceID)
		if err != nil {
			return err
		}
		if !player.IsHost {
			return errs.Forbidden("only the host can start the game")
		}

		if err := tx.Model(room).Update("is_playing", true).Error; err != nil {
			return fmt.Errorf("failed to start room %s: %w", code, err)
		}
		s.logger.Info("Room started", zap.String("code", code))
		return nil
	})
}

type seatBinding struct {
	deviceID string
	nickname *string
	isHost   bool
}

// Restart redraws a room's content while keeping every bound device in
// its seat, and returns the room to forming.
func (s *Service) Restart(ctx context.Context, code string) (*models.Room, error) {
	code = NormalizeCode(code)

	snap, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, code)
		if err != nil {
			return err
		}

		var bound []models.Player
		if err := tx.Where("room_id = ? AND device_id IS NOT NULL", room.ID).Find(&bound).Error; err != nil {
			return fmt.Errorf("failed to read seat bindings: %w", err)
		}
		bindings := make(map[int]seatBinding, len(bound))
		for _, p := range bound {
			if !p.Claimed() {
				continue
			}
			bindings[p.Seat] = seatBinding{deviceID: *p.DeviceID, nickname: p.Nickname, isHost: p.IsHost}
		}

		if err := deleteRoomContent(tx, room.ID); err != nil {
			return err
		}
		if err := s.engine.DrawRoom(ctx, tx, room, snap); err != nil {
			return err
		}

		for seat, b := range bindings {
			err := tx.Model(&models.Player{}).
				Where("room_id = ? AND seat = ?", room.ID, seat).
				Updates(map[string]any{
					"device_id": b.deviceID,
					"nickname":  b.nickname,
					"is_host":   b.isHost,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to restore seat %d: %w", seat, err)
			}
		}

		if err := tx.Model(room).Update("is_playing", false).Error; err != nil {
			return fmt.Errorf("failed to reset room %s: %w", code, err)
		}

		s.logger.Info("Room restarted", zap.String("code", code), zap.Int("bound_seats", len(bindings)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, code)
}

// Leave frees the device's seat after evicting stale rooms. The room is
// deleted when the host leaves or when no bound seat remains.
func (s *Service) Leave(ctx context.Context, code, deviceID string) (*LeaveResult, error) {
	code = NormalizeCode(code)
	deviceID, err := requireDevice(deviceID)
	if err != nil {
		return nil, err
	}

	if _, err := s.SweepStale(ctx); err != nil {
		return nil, err
	}

	result := &LeaveResult{Detail: "Left the room."}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, code)
		if err != nil {
			return err
		}
		player, err := boundPlayer(tx, room.ID, deviceID)
		if err != nil {
			return err
		}

		if err := tx.Model(player).Update("device_id", nil).Error; err != nil {
			return fmt.Errorf("failed to free seat %d: %w", player.Seat, err)
		}

		if player.IsHost {
			result.RoomDeleted = true
			result.Detail = "Host left the room. Room was deleted."
		} else {
			var remaining int64
			if err := tx.Model(&models.Player{}).Where("room_id = ? AND device_id IS NOT NULL", room.ID).Count(&remaining).Error; err != nil {
				return fmt.Errorf("failed to count bound seats: %w", err)
			}
			if remaining == 0 {
				result.RoomDeleted = true
				result.Detail = "Left the room. Room was empty and deleted."
			}
		}

		if !result.RoomDeleted {
			return nil
		}
		if err := deleteRooms(tx, room.ID); err != nil {
			return err
		}
		s.logger.Info("Room deleted", zap.String("code", code), zap.Bool("host_left", player.IsHost))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SweepStale deletes every room not updated within the stale window.
func (s *Service) SweepStale(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.cfg.StaleAfter)

	var ids []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Room{}).Where("updated_at < ?", cutoff).Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("failed to find stale rooms: %w", err)
		}
		return deleteRooms(tx, ids...)
	})
	if err != nil {
		return 0, err
	}

	if len(ids) > 0 {
		s.logger.Info("Stale rooms evicted", zap.Int("count", len(ids)), zap.Time("cutoff", cutoff))
	}
	return len(ids), nil
}

// RevealTrait flips one of the device's own traits to revealed. Revealing
// an already revealed trait succeeds with AlreadyRevealed set.
func (s *Service) RevealTrait(ctx context.Context, playerID, traitID uint, deviceID string) (*RevealResult, error) {
	deviceID, err := requireDevice(deviceID)
	if err != nil {
		return nil, err
	}

	result := &RevealResult{TraitID: traitID, IsRevealed: true}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player models.Player
		err := tx.First(&player, playerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("player not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load player %d: %w", playerID, err)
		}
		if !player.BoundTo(deviceID) {
			return errs.Forbidden("you can only reveal your own traits")
		}

		var trait models.AssignedTrait
		err = tx.Where("id = ? AND player_id = ?", traitID, player.ID).First(&trait).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("trait not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load trait %d: %w", traitID, err)
		}
		if trait.IsRevealed {
			result.AlreadyRevealed = true
			return nil
		}

		return tx.Model(&trait).Update("is_revealed", true).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UseActionCard consumes an action card. Using a spent card is rejected.
func (s *Service) UseActionCard(ctx context.Context, id uint) error {
	return s.useCard(ctx, &models.AssignedActionCard{}, id, "action card")
}

// UseReactionCard consumes a reaction card. Using a spent card is rejected.
func (s *Service) UseReactionCard(ctx context.Context, id uint) error {
	return s.useCard(ctx, &models.AssignedReactionCard{}, id, "reaction card")
}

func (s *Service) useCard(ctx context.Context, model any, id uint, name string) error {
	db := s.db.WithContext(ctx)

	res := db.Model(model).Where("id = ? AND is_used = ?", id, false).Update("is_used", true)
	if res.Error != nil {
		return fmt.Errorf("failed to use %s %d: %w", name, id, res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up %s %d: %w", name, id, err)
	}
	if count == 0 {
		return errs.NotFound("%s not found", name)
	}
	return errs.AlreadyInEffect("%s already used", name)
}

// GetPlayer returns a player with traits and cards.
func (s *Service) GetPlayer(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).
		Preload("Traits", func(db *gorm.DB) *gorm.DB { return db.Order("trait_type").Order("id") }).
		Preload("ActionCard").
		Preload("ReactionCard").
		First(&player, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("player not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player %d: %w", id, err)
	}
	return &player, nil
}

// UpdateNickname sets the nickname of the device's seat in the room.
// An empty nickname clears it.
func (s *Service) UpdateNickname(ctx context.Context, code, deviceID, nickname string) (*models.Player, error) {
	code = NormalizeCode(code)
	deviceID, err := requireDevice(deviceID)
	if err != nil {
		return nil, err
	}
	nickname = strings.TrimSpace(nickname)
	if utf8.RuneCountInString(nickname) > MaxNicknameLength {
		return nil, errs.Validation("nickname longer than %d characters", MaxNicknameLength)
	}

	var value *string
	if nickname != "" {
		value = &nickname
	}

	var playerID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, code)
		if err != nil {
			return err
		}
		player, err := boundPlayer(tx, room.ID, deviceID)
		if err != nil {
			return err
		}
		playerID = player.ID
		return tx.Model(player).Update("nickname", value).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetPlayer(ctx, playerID)
}

// FindRoomByDevice returns the code of the playing room the device is
// seated in, or nil.
func (s *Service) FindRoomByDevice(ctx context.Context, deviceID string) (*string, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, nil
	}

	var room models.Room
	err := s.db.WithContext(ctx).
		Joins("JOIN players ON players.room_id = rooms.id").
		Where("players.device_id = ? AND rooms.is_playing = ?", deviceID, true).
		First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up device room: %w", err)
	}
	return &room.Code, nil
}
