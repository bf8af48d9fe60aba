package services

import (
	"context"
	"errors"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
)

// Compile-time check to ensure walletService implements WalletService
var _ WalletService = (*walletService)(nil)

// walletService handles wallet read paths. All mutations happen through the
// reward, bet and store services inside their transactions.
type walletService struct {
	walletRepo  repositories.WalletRepository
	rankingSize int
}

// NewWalletService creates a new WalletService
func NewWalletService(walletRepo repositories.WalletRepository, rankingSize int) WalletService {
	return &walletService{
		walletRepo:  walletRepo,
		rankingSize: rankingSize,
	}
}

// GetBalanceAndHistory returns the wallet with its ledger newest-first.
// Users who were never credited get an empty wallet rather than an error.
func (s *walletService) GetBalanceAndHistory(ctx context.Context, userID string) (*models.Wallet, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	wallet, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.Wallet{UserID: userID, Balance: 0, Transactions: []models.Transaction{}}, nil
		}
		return nil, err
	}
	if wallet.Transactions == nil {
		wallet.Transactions = []models.Transaction{}
	}
	return wallet, nil
}

// TopBalances returns the balance ranking. Wallets whose user document is
// gone are dropped, matching what the ranking page shows.
func (s *walletService) TopBalances(ctx context.Context) ([]*models.RichestEntry, error) {
	entries, err := s.walletRepo.TopBalances(ctx, s.rankingSize)
	if err != nil {
		return nil, err
	}

	ranked := make([]*models.RichestEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		entry.Rank = len(ranked) + 1
		ranked = append(ranked, entry)
	}
	return ranked, nil
}
