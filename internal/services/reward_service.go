package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure rewardService implements RewardService
var _ RewardService = (*rewardService)(nil)

// statusHeal is a deferred status correction detected during validation.
// The correction must survive even though the redemption itself fails, so it
// is written after the failing transaction aborts, never inside it.
type statusHeal struct {
	id     primitive.ObjectID
	status string
}

// rewardService orchestrates the ledger transactions that move currency, XP
// and role grants from a reward source into a user's state
type rewardService struct {
	tx          repositories.TxRunner
	promoRepo   repositories.PromoCodeRepository
	walletRepo  repositories.WalletRepository
	userRepo    repositories.UserRepository
	pendingRepo repositories.PendingRewardRepository
	notifRepo   repositories.NotificationRepository
	dailyAmount float64
	now         func() time.Time
}

// NewRewardService creates a new RewardService
func NewRewardService(
	tx repositories.TxRunner,
	promoRepo repositories.PromoCodeRepository,
	walletRepo repositories.WalletRepository,
	userRepo repositories.UserRepository,
	pendingRepo repositories.PendingRewardRepository,
	notifRepo repositories.NotificationRepository,
	dailyAmount float64,
) RewardService {
	return &rewardService{
		tx:          tx,
		promoRepo:   promoRepo,
		walletRepo:  walletRepo,
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		notifRepo:   notifRepo,
		dailyAmount: dailyAmount,
		now:         time.Now,
	}
}

// RedeemCode validates and redeems a promo code for the user. Validation,
// usage mutation, reward effect and notification all run in one transaction;
// concurrent redemptions of the same code are isolated by the storage layer,
// so a code with N remaining uses yields at most N successes.
func (s *rewardService) RedeemCode(ctx context.Context, userID, code string) (string, error) {
	if userID == "" {
		return "", ErrUnauthorized
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrEmptyCode
	}

	var message string
	var heal *statusHeal

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		heal = nil // fn may be retried after a write conflict

		promo, err := s.promoRepo.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCodeNotFound
			}
			return err
		}

		if promo.Status != models.PromoCodeStatusActive {
			return ErrInactiveCode(promo.Status)
		}
		for _, redeemed := range promo.RedeemedBy {
			if redeemed == userID {
				return ErrAlreadyRedeemed
			}
		}
		if promo.MaxUses != nil && len(promo.RedeemedBy) >= *promo.MaxUses {
			heal = &statusHeal{id: promo.ID, status: models.PromoCodeStatusRedeemed}
			return ErrLimitReached
		}
		if promo.ExpiresAt != nil && promo.ExpiresAt.Before(s.now()) {
			heal = &statusHeal{id: promo.ID, status: models.PromoCodeStatusExpired}
			return ErrCodeExpired
		}

		depleted := promo.MaxUses != nil && len(promo.RedeemedBy)+1 >= *promo.MaxUses
		if err := s.promoRepo.AppendRedemption(ctx, promo.ID, userID, depleted); err != nil {
			return err
		}

		outcome, err := s.applyReward(ctx, userID, promo)
		if err != nil {
			return err
		}

		notification := &models.Notification{
			UserID:      userID,
			Title:       "🎁 Recompensa Resgatada!",
			Description: fmt.Sprintf("Você resgatou o código %q. %s", promo.Code, outcome),
			Date:        s.now(),
			Read:        false,
			Link:        "/wallet",
			IsPriority:  true,
		}
		if err := s.notifRepo.Create(ctx, notification); err != nil {
			return err
		}

		message = "Recompensa resgatada com sucesso! " + outcome
		return nil
	})
	if err != nil {
		// The redemption failed, but a detected terminal state still has to
		// reach storage. The aborted transaction rolled everything back, so
		// the correction gets its own short write.
		if heal != nil {
			if healErr := s.promoRepo.UpdateStatus(ctx, heal.id, heal.status); healErr != nil && !errors.Is(healErr, repositories.ErrNotFound) {
				log.Printf("[WARN] RedeemCode: status self-heal for code %s failed: %v", code, healErr)
			}
		}
		return "", err
	}
	return message, nil
}

// applyReward applies the code's effect inside the redemption transaction
// and returns the outcome sentence for the notification and result message.
func (s *rewardService) applyReward(ctx context.Context, userID string, promo *models.PromoCode) (string, error) {
	switch promo.Type {
	case models.PromoCodeTypeMoney, models.PromoCodeTypeDaily:
		amount, err := strconv.ParseFloat(promo.Value, 64)
		if err != nil || amount <= 0 {
			return "", fmt.Errorf("promo code %s has invalid money value %q", promo.Code, promo.Value)
		}
		tx := models.Transaction{
			ID:          primitive.NewObjectID().Hex(),
			Type:        models.TransactionTypeBonus,
			Description: promo.Description,
			Amount:      amount,
			Date:        s.now(),
			Status:      models.TransactionStatusCompleted,
		}
		if err := s.walletRepo.Credit(ctx, userID, tx); err != nil {
			return "", err
		}
		return fmt.Sprintf("Você ganhou R$ %.2f!", amount), nil

	case models.PromoCodeTypeXP:
		amount, err := strconv.Atoi(promo.Value)
		if err != nil || amount <= 0 {
			return "", fmt.Errorf("promo code %s has invalid xp value %q", promo.Code, promo.Value)
		}
		if err := s.userRepo.IncrementXP(ctx, userID, amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("Você ganhou %d de XP!", amount), nil

	case models.PromoCodeTypeRole:
		reward := &models.PendingReward{
			UserID:    userID,
			Type:      models.PendingRewardTypeRole,
			RoleID:    promo.Value,
			Reason:    "Resgate do código: " + promo.Description,
			CreatedAt: s.now(),
		}
		if err := s.pendingRepo.Create(ctx, reward); err != nil {
			return "", err
		}
		return "Você ganhou um novo cargo! Verifique o Discord.", nil
	}

	return "", fmt.Errorf("promo code %s has unknown type %q", promo.Code, promo.Type)
}

// ClaimDaily credits the fixed daily reward once per UTC day. The last-claim
// timestamp is re-read from storage inside the transaction; the caller's
// session copy may be stale relative to a concurrent claim.
func (s *rewardService) ClaimDaily(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrUnauthorized
	}

	var message string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByDiscordID(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		now := s.now().UTC()
		startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if user.DailyRewardLastClaimed != nil && !user.DailyRewardLastClaimed.Before(startOfToday) {
			return ErrAlreadyClaimedToday
		}

		tx := models.Transaction{
			ID:          primitive.NewObjectID().Hex(),
			Type:        models.TransactionTypeBonus,
			Description: "Recompensa Diária",
			Amount:      s.dailyAmount,
			Date:        now,
			Status:      models.TransactionStatusCompleted,
		}
		if err := s.walletRepo.Credit(ctx, userID, tx); err != nil {
			return err
		}
		if err := s.userRepo.SetDailyRewardClaimed(ctx, userID, now); err != nil {
			return err
		}

		notification := &models.Notification{
			UserID:      userID,
			Title:       "🎁 Recompensa Diária!",
			Description: fmt.Sprintf("Você recebeu R$ %.2f de recompensa diária. Volte amanhã!", s.dailyAmount),
			Date:        now,
			Read:        false,
			Link:        "/wallet",
		}
		if err := s.notifRepo.Create(ctx, notification); err != nil {
			return err
		}

		message = fmt.Sprintf("Você ganhou R$ %.2f!", s.dailyAmount)
		return nil
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

// PendingRewards lists queued role grants awaiting the Discord bot
func (s *rewardService) PendingRewards(ctx context.Context) ([]*models.PendingReward, error) {
	return s.pendingRepo.FindUnprocessed(ctx)
}

// MarkRewardProcessed records the bot's delivery acknowledgement
func (s *rewardService) MarkRewardProcessed(ctx context.Context, id primitive.ObjectID) error {
	err := s.pendingRepo.MarkProcessed(ctx, id, s.now())
	if errors.Is(err, repositories.ErrNotFound) {
		return &OperationError{Code: CodeNotFound, Message: "Recompensa pendente não encontrada ou já processada."}
	}
	return err
}

// CreateCode creates a promo code. The code string is stored uppercase and
// must be unique.
func (s *rewardService) CreateCode(ctx context.Context, req *models.CreatePromoCodeRequest, createdBy string) (*models.PromoCode, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, ErrEmptyCode
	}

	switch req.Type {
	case models.PromoCodeTypeMoney, models.PromoCodeTypeDaily:
		if v, err := strconv.ParseFloat(req.Value, 64); err != nil || v <= 0 {
			return nil, &OperationError{Code: "INVALID_VALUE", Message: "O valor do código deve ser um número maior que zero."}
		}
	case models.PromoCodeTypeXP:
		if v, err := strconv.Atoi(req.Value); err != nil || v <= 0 {
			return nil, &OperationError{Code: "INVALID_VALUE", Message: "O valor de XP deve ser um número inteiro maior que zero."}
		}
	case models.PromoCodeTypeRole:
		if strings.TrimSpace(req.Value) == "" {
			return nil, &OperationError{Code: "INVALID_VALUE", Message: "Códigos de cargo precisam de um ID de cargo."}
		}
	default:
		return nil, &OperationError{Code: "INVALID_TYPE", Message: "Tipo de código inválido."}
	}

	if req.MaxUses != nil && *req.MaxUses <= 0 {
		return nil, &OperationError{Code: "INVALID_MAX_USES", Message: "O limite de usos deve ser maior que zero."}
	}

	promo := &models.PromoCode{
		Code:        code,
		Type:        req.Type,
		Description: req.Description,
		Value:       req.Value,
		Status:      models.PromoCodeStatusActive,
		MaxUses:     req.MaxUses,
		RedeemedBy:  []string{},
		ExpiresAt:   req.ExpiresAt,
		CreatedBy:   createdBy,
	}
	if err := s.promoRepo.Create(ctx, promo); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, &OperationError{Code: "DUPLICATE_CODE", Message: "Já existe um código com esse nome."}
		}
		return nil, err
	}
	return promo, nil
}

// ListCodes lists promo codes newest-first, capped for the admin screen
func (s *rewardService) ListCodes(ctx context.Context) ([]*models.PromoCode, error) {
	return s.promoRepo.FindAll(ctx, 200)
}

// RevokeCode moves an ACTIVE code to REVOKED. Terminal states never reverse,
// so revoking an already terminal code fails.
func (s *rewardService) RevokeCode(ctx context.Context, id primitive.ObjectID) error {
	err := s.promoRepo.UpdateStatus(ctx, id, models.PromoCodeStatusRevoked)
	if errors.Is(err, repositories.ErrNotFound) {
		return &OperationError{Code: CodeNotFound, Message: "Código não encontrado ou já não estava ativo."}
	}
	return err
}
