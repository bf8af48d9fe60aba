package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure storeService implements StoreService
var _ StoreService = (*storeService)(nil)

// storeService handles the community store. Purchases debit the wallet and
// apply the item effect in one atomic unit.
type storeService struct {
	tx          repositories.TxRunner
	storeRepo   repositories.StoreRepository
	walletRepo  repositories.WalletRepository
	userRepo    repositories.UserRepository
	vipDiscount float64
	now         func() time.Time
}

// NewStoreService creates a new StoreService
func NewStoreService(
	tx repositories.TxRunner,
	storeRepo repositories.StoreRepository,
	walletRepo repositories.WalletRepository,
	userRepo repositories.UserRepository,
	vipDiscount float64,
) StoreService {
	return &storeService{
		tx:          tx,
		storeRepo:   storeRepo,
		walletRepo:  walletRepo,
		userRepo:    userRepo,
		vipDiscount: vipDiscount,
		now:         time.Now,
	}
}

// ListItems returns the purchasable catalogue
func (s *storeService) ListItems(ctx context.Context) ([]*models.StoreItem, error) {
	return s.storeRepo.FindActiveItems(ctx)
}

// GetInventory returns a user's purchases, newest first
func (s *storeService) GetInventory(ctx context.Context, userID string) ([]*models.UserInventoryItem, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.storeRepo.FindInventoryByUserID(ctx, userID)
}

// Purchase debits the item price and applies its effect. The item, the VIP
// flag and the balance are all re-read from storage inside the transaction
// rather than trusted from the caller's session.
func (s *storeService) Purchase(ctx context.Context, userID string, itemID primitive.ObjectID) (*models.PurchaseResult, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	var result *models.PurchaseResult
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// The item is read inside the transaction too, so a price change or
		// deactivation can't slip in between the check and the debit.
		item, err := s.storeRepo.FindItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		if !item.IsActive {
			return ErrItemNotFound
		}

		user, err := s.userRepo.FindByDiscordID(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := s.checkOwnership(ctx, user, item); err != nil {
			return err
		}

		finalPrice := item.Price
		if user.IsVip && item.Type != models.StoreItemTypeRole {
			finalPrice = item.Price * s.vipDiscount
		}

		wallet, err := s.walletRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrInsufficientFunds
			}
			return err
		}
		if wallet.Balance < finalPrice {
			return ErrInsufficientFunds
		}

		tx := models.Transaction{
			ID:          primitive.NewObjectID().Hex(),
			Type:        models.TransactionTypeStore,
			Description: "Compra: " + item.Name,
			Amount:      -finalPrice,
			Date:        s.now(),
			Status:      models.TransactionStatusCompleted,
		}
		if err := s.walletRepo.Debit(ctx, userID, tx); err != nil {
			return err
		}

		result, err = s.applyItem(ctx, user, item, finalPrice)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkOwnership rejects purchases of items the user already holds active
func (s *storeService) checkOwnership(ctx context.Context, user *models.User, item *models.StoreItem) error {
	if item.Type == models.StoreItemTypeRole {
		owned, err := s.storeRepo.FindInventoryByUserAndItem(ctx, user.DiscordID, item.ID)
		if err != nil {
			return err
		}
		for _, entry := range owned {
			if entry.ItemDuration == models.StoreItemDurationPermanent {
				return &OperationError{Code: CodeAlreadyOwned, Message: "Você já possui este item permanentemente."}
			}
			if entry.ItemDuration == models.StoreItemDurationMonthly && entry.ExpiresAt != nil && entry.ExpiresAt.After(s.now()) {
				return &OperationError{
					Code:    CodeAlreadyOwned,
					Message: fmt.Sprintf("Você já possui uma assinatura ativa para este item, que expira em %s.", entry.ExpiresAt.Format("02/01/2006")),
				}
			}
		}
	}
	if item.Type == models.StoreItemTypeAdRemoval {
		if user.AdRemovalExpiresAt != nil && user.AdRemovalExpiresAt.After(s.now()) {
			return &OperationError{Code: CodeAlreadyOwned, Message: "Você já possui um período de remoção de anúncios ativo."}
		}
	}
	return nil
}

// applyItem applies the purchased effect and records the inventory entry
func (s *storeService) applyItem(ctx context.Context, user *models.User, item *models.StoreItem, pricePaid float64) (*models.PurchaseResult, error) {
	switch item.Type {
	case models.StoreItemTypeXPBoost:
		if item.XPAmount <= 0 {
			return nil, fmt.Errorf("store item %s has no xp amount", item.ID.Hex())
		}
		if err := s.userRepo.IncrementXP(ctx, user.DiscordID, item.XPAmount); err != nil {
			return nil, err
		}
		return &models.PurchaseResult{
			Success: true,
			Message: fmt.Sprintf("Bônus de %d XP aplicado com sucesso!", item.XPAmount),
		}, nil

	case models.StoreItemTypeAdRemoval:
		if item.DurationInDays <= 0 {
			return nil, fmt.Errorf("store item %s has no duration", item.ID.Hex())
		}
		expiresAt := s.now().AddDate(0, 0, item.DurationInDays)
		user.AdRemovalExpiresAt = &expiresAt
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		redeemedAt := s.now()
		entry := &models.UserInventoryItem{
			UserID:         user.DiscordID,
			ItemID:         item.ID,
			ItemName:       item.Name,
			ItemType:       item.Type,
			PricePaid:      pricePaid,
			RedemptionCode: "APLICADO_DIRETAMENTE",
			IsRedeemed:     true,
			RedeemedAt:     &redeemedAt,
			ExpiresAt:      &expiresAt,
			PurchasedAt:    s.now(),
		}
		if err := s.storeRepo.InsertInventory(ctx, entry); err != nil {
			return nil, err
		}
		return &models.PurchaseResult{
			Success: true,
			Message: fmt.Sprintf("Anúncios removidos por %d dia(s)!", item.DurationInDays),
		}, nil

	default:
		// Role items are delivered by the Discord bot; the user hands it the
		// generated redemption code. Regenerate on the unlikely collision.
		var code string
		for {
			code = strings.ToUpper(uuid.NewString()[:8])
			_, err := s.storeRepo.FindInventoryByCode(ctx, code)
			if errors.Is(err, repositories.ErrNotFound) {
				break
			}
			if err != nil {
				return nil, err
			}
		}
		entry := &models.UserInventoryItem{
			UserID:         user.DiscordID,
			ItemID:         item.ID,
			ItemName:       item.Name,
			ItemType:       item.Type,
			ItemDuration:   item.Duration,
			PricePaid:      pricePaid,
			RedemptionCode: code,
			IsRedeemed:     false,
			PurchasedAt:    s.now(),
		}
		if item.Duration == models.StoreItemDurationMonthly {
			expiresAt := s.now().AddDate(0, 1, 0)
			entry.ExpiresAt = &expiresAt
		}
		if err := s.storeRepo.InsertInventory(ctx, entry); err != nil {
			return nil, err
		}
		return &models.PurchaseResult{
			Success:        true,
			Message:        "Compra realizada! Use o código no Discord para receber seu cargo.",
			RedemptionCode: code,
		}, nil
	}
}
