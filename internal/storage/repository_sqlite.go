package storage

import (
	"strings"
	"time"

	"github.com/zbonzo/warlock/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps a gorm DB as the Repository implementation.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateGame(g *game.Game) error {
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetGameByID(id uint) (*game.Game, error) {
	var g game.Game
	err := r.db.Preload("Participants").Preload("Monster").First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) FindGameByJoinCode(code string) (*game.Game, error) {
	var g game.Game
	err := r.db.Preload("Participants").Preload("Monster").
		Where("join_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) UpdateGame(g *game.Game) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(g).Error
}

func (r *sqliteRepository) GetPublicGames() ([]game.Game, error) {
	var games []game.Game
	err := r.db.Preload("Participants").
		Where("private = ? AND status = ?", false, game.StatusWaitingForPlayers).
		Order("created_at desc").
		Find(&games).Error
	return games, err
}

func (r *sqliteRepository) RemoveParticipantByUUID(gameID uint, playerUUID string) error {
	return r.db.Where("game_id = ? AND player_uuid = ?", gameID, playerUUID).
		Delete(&game.Participant{}).Error
}

func (r *sqliteRepository) SaveRoundSummary(s *game.RoundSummary) error {
	return r.db.Create(s).Error
}

func (r *sqliteRepository) GetRoundSummaries(gameID uint) ([]game.RoundSummary, error) {
	var out []game.RoundSummary
	err := r.db.Where("game_id = ?", gameID).Order("round asc").Find(&out).Error
	return out, err
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	if email == "" {
		return nil
	}
	var u game.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		u = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
		return r.db.Create(&u).Error
	}
	if err != nil {
		return err
	}
	if name != "" {
		u.PlayerName = name
	}
	if uuid != "" {
		u.PlayerUUID = uuid
	}
	return r.db.Save(&u).Error
}

// UpdateStatsOnGameEnd bumps cumulative per-player counters once per
// finished game: games played for everyone, wins for the winning side,
// deaths for eliminated participants.
func (r *sqliteRepository) UpdateStatsOnGameEnd(g *game.Game) error {
	for i := range g.Participants {
		p := &g.Participants[i]
		if p.PlayerEmail == "" {
			continue
		}
		var u game.User
		if err := r.db.Where("email = ?", p.PlayerEmail).First(&u).Error; err != nil {
			continue
		}
		u.GamesPlayed++
		if !p.IsAlive {
			u.TimesKilled++
		}
		switch g.Winner {
		case game.WinnerHeroes:
			if !p.IsCorrupted {
				u.Wins++
			}
		case game.WinnerCorrupted:
			if p.IsCorrupted {
				u.Wins++
			}
		}
		if err := r.db.Save(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	err := r.db.Order("wins desc, games_played asc").Limit(limit).Find(&users).Error
	return users, err
}

// ClaimTimedOutGameIDs marks expired action-phase games as claimed by
// this worker and returns their ids. Claims older than claimTTL are
// considered stale and may be stolen.
func (r *sqliteRepository) ClaimTimedOutGameIDs(now time.Time, limit int, claimTTL time.Duration, workerID string) ([]uint, error) {
	if limit <= 0 {
		limit = 20
	}
	staleBefore := now.Add(-claimTTL)

	var ids []uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var games []game.Game
		if err := tx.Model(&game.Game{}).
			Select("id").
			Where("status = ? AND phase = ?", game.StatusInProgress, game.PhaseAction).
			Where("action_deadline != ? AND action_deadline <= ?", time.Time{}, now).
			Where("claimed_by = ? OR claimed_at <= ?", "", staleBefore).
			Limit(limit).
			Find(&games).Error; err != nil {
			return err
		}
		for _, g := range games {
			res := tx.Model(&game.Game{}).
				Where("id = ? AND (claimed_by = ? OR claimed_at <= ?)", g.ID, "", staleBefore).
				Updates(map[string]interface{}{"claimed_by": workerID, "claimed_at": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				ids = append(ids, g.ID)
			}
		}
		return nil
	})
	return ids, err
}
