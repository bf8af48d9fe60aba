package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
)

// Compile-time check to ensure levelService implements LevelService
var _ LevelService = (*levelService)(nil)

// defaultLevels seeds the ladder on first read
var defaultLevels = []models.LevelThreshold{
	{Level: 1, XP: 0, Name: "Iniciante", RewardType: models.LevelRewardNone, UnlocksFeature: "none"},
	{Level: 2, XP: 500, Name: "Amador", RewardType: models.LevelRewardMoney, RewardAmount: 100, UnlocksFeature: "bolao"},
	{Level: 3, XP: 1500, Name: "Regular", RewardType: models.LevelRewardMoney, RewardAmount: 250, UnlocksFeature: "mvp"},
	{Level: 4, XP: 3000, Name: "Experiente", RewardType: models.LevelRewardMoney, RewardAmount: 500, UnlocksFeature: "none"},
	{Level: 5, XP: 5000, Name: "Veterano", RewardType: models.LevelRewardRole, UnlocksFeature: "none"},
	{Level: 6, XP: 10000, Name: "Mestre", RewardType: models.LevelRewardMoney, RewardAmount: 1000, UnlocksFeature: "none"},
	{Level: 7, XP: 20000, Name: "Grão-Mestre", RewardType: models.LevelRewardMoney, RewardAmount: 2000, UnlocksFeature: "none"},
	{Level: 8, XP: 40000, Name: "Lendário", RewardType: models.LevelRewardMoney, RewardAmount: 4000, UnlocksFeature: "none"},
	{Level: 9, XP: 75000, Name: "Mítico", RewardType: models.LevelRewardMoney, RewardAmount: 7500, UnlocksFeature: "none"},
	{Level: 10, XP: 150000, Name: "Divino", RewardType: models.LevelRewardRole, UnlocksFeature: "none"},
}

// levelService computes user levels from the configured XP ladder
type levelService struct {
	levelRepo repositories.LevelConfigRepository
	userRepo  repositories.UserRepository
}

// NewLevelService creates a new LevelService
func NewLevelService(levelRepo repositories.LevelConfigRepository, userRepo repositories.UserRepository) LevelService {
	return &levelService{
		levelRepo: levelRepo,
		userRepo:  userRepo,
	}
}

// GetLevelConfig retrieves the ladder, seeding the defaults on first use
func (s *levelService) GetLevelConfig(ctx context.Context) ([]models.LevelThreshold, error) {
	levels, err := s.levelRepo.Get(ctx)
	if err == nil {
		return levels, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if err := s.levelRepo.Update(ctx, defaultLevels); err != nil {
		return nil, err
	}
	return defaultLevels, nil
}

// UpdateLevelConfig validates and replaces the ladder
func (s *levelService) UpdateLevelConfig(ctx context.Context, levels []models.LevelThreshold) error {
	if len(levels) == 0 {
		return &OperationError{Code: "INVALID_LEVELS", Message: "A configuração de níveis não pode ser vazia."}
	}
	if levels[0].Level != 1 || levels[0].XP != 0 {
		return &OperationError{Code: "INVALID_LEVELS", Message: "O primeiro nível deve ser o nível 1 com 0 de XP."}
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].XP <= levels[i-1].XP {
			return &OperationError{
				Code:    "INVALID_LEVELS",
				Message: fmt.Sprintf("O XP para o nível %d deve ser maior que o do nível anterior.", levels[i].Level),
			}
		}
		if levels[i].Level != levels[i-1].Level+1 {
			return &OperationError{Code: "INVALID_LEVELS", Message: "Os níveis devem ser sequenciais."}
		}
	}
	for _, level := range levels {
		if level.RewardType == models.LevelRewardMoney && level.RewardAmount <= 0 {
			return &OperationError{
				Code:    "INVALID_LEVELS",
				Message: fmt.Sprintf("O Nível %d com recompensa em dinheiro deve ter um valor maior que zero.", level.Level),
			}
		}
		if level.RewardType == models.LevelRewardRole && level.RewardRoleID == "" {
			return &OperationError{
				Code:    "INVALID_LEVELS",
				Message: fmt.Sprintf("O Nível %d com recompensa de cargo deve ter um ID de Cargo.", level.Level),
			}
		}
	}
	return s.levelRepo.Update(ctx, levels)
}

// GetUserLevel computes the level view for a user from XP. The stored level
// field is corrected when it drifts from the computed one.
func (s *levelService) GetUserLevel(ctx context.Context, userID string) (*models.UserLevel, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.FindByDiscordID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	levels, err := s.GetLevelConfig(ctx)
	if err != nil {
		return nil, err
	}

	xp := user.XP
	current := levels[0]
	next := current
	for i := len(levels) - 1; i >= 0; i-- {
		if xp >= levels[i].XP {
			current = levels[i]
			if i+1 < len(levels) {
				next = levels[i+1]
			} else {
				next = levels[i]
			}
			break
		}
	}

	// Self-correcting: drifted stored levels are fixed on read, best-effort.
	if user.Level != current.Level {
		if err := s.userRepo.SetLevel(ctx, userID, current.Level); err != nil {
			log.Printf("[WARN] GetUserLevel: level correction for %s failed: %v", userID, err)
		}
	}

	progress := 100
	if next.XP > current.XP {
		progress = (xp - current.XP) * 100 / (next.XP - current.XP)
		if progress > 100 {
			progress = 100
		}
	}

	return &models.UserLevel{
		Level:          current.Level,
		LevelName:      current.Name,
		XP:             xp,
		XPForNextLevel: next.XP,
		Progress:       progress,
	}, nil
}
