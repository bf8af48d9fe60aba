package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"github.com/timaocord/wallet-backend/pkg/discord"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure betService implements BetService
var _ BetService = (*betService)(nil)

// betService handles bet placement and settlement. Both paths move money and
// therefore run inside a single storage transaction together with the bet
// and stats writes.
type betService struct {
	tx         repositories.TxRunner
	betRepo    repositories.BetRepository
	walletRepo repositories.WalletRepository
	statsRepo  repositories.UserStatsRepository
	matchRepo  repositories.MatchRepository
	notifRepo  repositories.NotificationRepository
	announcer  discord.Announcer
	now        func() time.Time
}

// NewBetService creates a new BetService
func NewBetService(
	tx repositories.TxRunner,
	betRepo repositories.BetRepository,
	walletRepo repositories.WalletRepository,
	statsRepo repositories.UserStatsRepository,
	matchRepo repositories.MatchRepository,
	notifRepo repositories.NotificationRepository,
	announcer discord.Announcer,
) BetService {
	return &betService{
		tx:         tx,
		betRepo:    betRepo,
		walletRepo: walletRepo,
		statsRepo:  statsRepo,
		matchRepo:  matchRepo,
		notifRepo:  notifRepo,
		announcer:  announcer,
		now:        time.Now,
	}
}

// PlaceBet validates the slip against the stored fixtures, checks the
// balance and debits the stake, all in one atomic unit.
func (s *betService) PlaceBet(ctx context.Context, userID string, selections []models.BetSelection, stake float64) (*models.PlaceBetResult, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if len(selections) == 0 || stake <= 0 {
		return nil, ErrInvalidBet
	}

	var result *models.PlaceBetResult
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// Fixtures are re-read here so a kicked-off match can't be bet on
		// with a stale slip. A slip may carry several selections on the
		// same match, so the lookup counts distinct IDs.
		matchIDs := make([]int, 0, len(selections))
		seen := make(map[int]bool, len(selections))
		for _, sel := range selections {
			if seen[sel.MatchID] {
				continue
			}
			seen[sel.MatchID] = true
			matchIDs = append(matchIDs, sel.MatchID)
		}
		matches, err := s.matchRepo.FindByIDs(ctx, matchIDs)
		if err != nil {
			return err
		}
		if len(matches) != len(matchIDs) {
			return &OperationError{Code: CodeInvalidBet, Message: "Uma ou mais partidas na sua aposta não foram encontradas ou não estão mais disponíveis."}
		}
		nowUnix := s.now().Unix()
		for _, match := range matches {
			if match.Status != models.MatchStatusNotStarted || match.Timestamp < nowUnix {
				return &OperationError{
					Code:    CodeInvalidBet,
					Message: fmt.Sprintf("Apostas para a partida %s vs %s já foram encerradas.", match.HomeTeam, match.AwayTeam),
				}
			}
		}

		wallet, err := s.walletRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrInsufficientFunds
			}
			return err
		}
		if wallet.Balance < stake {
			return ErrInsufficientFunds
		}

		totalOdds := 1.0
		for _, sel := range selections {
			odd, err := strconv.ParseFloat(sel.OddValue, 64)
			if err != nil || odd <= 1.0 {
				return &OperationError{Code: CodeInvalidBet, Message: "Aposta inválida."}
			}
			totalOdds *= odd
		}

		description := fmt.Sprintf("%s vs %s", selections[0].TeamA, selections[0].TeamB)
		if len(selections) > 1 {
			description = fmt.Sprintf("Múltipla (%d seleções)", len(selections))
		}

		bet := &models.PlacedBet{
			UserID:            userID,
			Selections:        selections,
			Stake:             stake,
			TotalOdds:         totalOdds,
			PotentialWinnings: stake * totalOdds,
			Status:            models.BetStatusOpen,
			CreatedAt:         s.now(),
		}
		if err := s.betRepo.Create(ctx, bet); err != nil {
			return err
		}

		if err := s.statsRepo.IncrementPlaced(ctx, userID, stake); err != nil {
			return err
		}

		tx := models.Transaction{
			ID:          primitive.NewObjectID().Hex(),
			Type:        models.TransactionTypeBet,
			Description: description,
			Amount:      -stake,
			Date:        s.now(),
			Status:      models.TransactionStatusCompleted,
		}
		if err := s.walletRepo.Debit(ctx, userID, tx); err != nil {
			return err
		}

		result = &models.PlaceBetResult{
			Success:    true,
			Message:    "Aposta realizada com sucesso!",
			NewBalance: wallet.Balance - stake,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetUserBets returns a user's bets, newest first
func (s *betService) GetUserBets(ctx context.Context, userID string) ([]*models.PlacedBet, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.betRepo.FindByUserID(ctx, userID)
}

// SettleBet resolves an open bet. A win credits the potential winnings as a
// Prize transaction and updates the aggregates in the same atomic unit; a
// loss only updates the aggregates. Settling twice is rejected.
func (s *betService) SettleBet(ctx context.Context, betID primitive.ObjectID, won bool) error {
	var settled *models.PlacedBet
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		settled = nil
		bet, err := s.betRepo.FindByID(ctx, betID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrBetNotFound
			}
			return err
		}
		if bet.Status != models.BetStatusOpen {
			return ErrBetAlreadySettled
		}

		status := models.BetStatusLost
		if won {
			status = models.BetStatusWon
		}
		if err := s.betRepo.Settle(ctx, betID, status, s.now()); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrBetAlreadySettled
			}
			return err
		}

		notification := &models.Notification{
			UserID: bet.UserID,
			Date:   s.now(),
			Link:   "/my-bets",
		}

		if won {
			tx := models.Transaction{
				ID:          primitive.NewObjectID().Hex(),
				Type:        models.TransactionTypePrize,
				Description: fmt.Sprintf("Prêmio da aposta (odds %.2f)", bet.TotalOdds),
				Amount:      bet.PotentialWinnings,
				Date:        s.now(),
				Status:      models.TransactionStatusCompleted,
			}
			if err := s.walletRepo.Credit(ctx, bet.UserID, tx); err != nil {
				return err
			}
			if err := s.statsRepo.IncrementWon(ctx, bet.UserID, bet.PotentialWinnings); err != nil {
				return err
			}
			notification.Title = "🏆 Aposta Ganha!"
			notification.Description = fmt.Sprintf("Você ganhou R$ %.2f!", bet.PotentialWinnings)
			notification.IsPriority = true
			settled = bet
		} else {
			if err := s.statsRepo.IncrementLost(ctx, bet.UserID, bet.Stake); err != nil {
				return err
			}
			notification.Title = "Aposta Liquidada"
			notification.Description = "Sua aposta foi liquidada como perdida."
		}

		return s.notifRepo.Create(ctx, notification)
	})
	if err != nil {
		return err
	}

	// Public win announcement happens after the commit so an aborted
	// settlement is never announced. Delivery failures only get logged.
	if settled != nil && s.announcer != nil {
		content := fmt.Sprintf("🏆 <@%s> ganhou R$ %.2f em uma aposta com odds %.2f!", settled.UserID, settled.PotentialWinnings, settled.TotalOdds)
		if annErr := s.announcer.Announce(ctx, content); annErr != nil {
			log.Printf("[WARN] SettleBet: win announcement failed: %v", annErr)
		}
	}
	return nil
}
