package player

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrFinalized is returned when a transition would flip a player between the
// two terminal states. Re-applying the status a player already has is not an
// error; it's a no-op.
var ErrFinalized = errors.New("player status has already been finalized")

// MissingPlayersError reports batch ids that do not exist.
type MissingPlayersError struct {
	IDs []uint
}

func (e *MissingPlayersError) Error() string {
	return fmt.Sprintf("players not found: %v", e.IDs)
}

// FinalizedPlayersError reports batch ids whose status can no longer change.
type FinalizedPlayersError struct {
	IDs []uint
}

func (e *FinalizedPlayersError) Error() string {
	return fmt.Sprintf("players already finalized: %v", e.IDs)
}

type PlayerRepository interface {
	Create(p *Player) error
	GetByID(id uint) (*Player, error)
	ListByStatus(status string) ([]Player, error)
	ListAll() ([]Player, error)
	UpdateStatus(id uint, status string) (*Player, error)
	BulkUpdateStatus(ids []uint, status string) (int, error)
}

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Create(p *Player) error {
	return r.db.Create(p).Error
}

func (r *playerRepository) GetByID(id uint) (*Player, error) {
	var p Player
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) ListByStatus(status string) ([]Player, error) {
	var players []Player
	if err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) ListAll() ([]Player, error) {
	var players []Player
	if err := r.db.Order("created_at DESC").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// UpdateStatus moves a single player to a terminal status. Only PENDING
// players can transition; re-applying the current status succeeds without
// touching the row.
func (r *playerRepository) UpdateStatus(id uint, status string) (*Player, error) {
	var p Player
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}

	if p.Status == status {
		return &p, nil
	}
	if p.Status != StatusPending {
		return nil, ErrFinalized
	}

	if err := r.db.Model(&p).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// BulkUpdateStatus applies one decision to a set of players in a single
// transaction. All-or-nothing: an unknown or already-finalized id rolls the
// whole batch back.
func (r *playerRepository) BulkUpdateStatus(ids []uint, status string) (int, error) {
	updated := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var players []Player
		if err := tx.Where("id IN ?", ids).Find(&players).Error; err != nil {
			return err
		}

		found := make(map[uint]string, len(players))
		for _, p := range players {
			found[p.ID] = p.Status
		}

		var missing []uint
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return &MissingPlayersError{IDs: missing}
		}

		var finalized, pending []uint
		for _, p := range players {
			switch {
			case p.Status == status:
				// already there, nothing to do
			case p.Status == StatusPending:
				pending = append(pending, p.ID)
			default:
				finalized = append(finalized, p.ID)
			}
		}
		if len(finalized) > 0 {
			return &FinalizedPlayersError{IDs: finalized}
		}

		if len(pending) > 0 {
			res := tx.Model(&Player{}).Where("id IN ?", pending).Update("status", status)
			if res.Error != nil {
				return res.Error
			}
			updated = int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
