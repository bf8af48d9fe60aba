package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The fakes below back the service tests with in-memory state. The fake
// transaction runner serializes transactions with a mutex, which models the
// isolation the storage layer provides: a transaction always observes the
// state left by the previous one, never an interleaving.

type fakeTxRunner struct {
	mu sync.Mutex
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.DiscordID]; ok {
		return repositories.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	f.users[user.DiscordID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByDiscordID(_ context.Context, discordID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[discordID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.DiscordID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	f.users[user.DiscordID] = &cp
	return nil
}

func (f *fakeUserRepo) IncrementXP(_ context.Context, discordID string, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[discordID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.XP += amount
	return nil
}

func (f *fakeUserRepo) SetLevel(_ context.Context, discordID string, level int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[discordID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Level = level
	return nil
}

func (f *fakeUserRepo) SetDailyRewardClaimed(_ context.Context, discordID string, claimedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[discordID]
	if !ok {
		return repositories.ErrNotFound
	}
	t := claimedAt
	user.DailyRewardLastClaimed = &t
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeWalletRepo struct {
	mu      sync.Mutex
	wallets map[string]*models.Wallet
	// names feeds the ranking join the mongo implementation does via $lookup
	names map[string]string
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets: make(map[string]*models.Wallet),
		names:   make(map[string]string),
	}
}

func (f *fakeWalletRepo) FindByUserID(_ context.Context, userID string) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wallet, ok := f.wallets[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *wallet
	cp.Transactions = append([]models.Transaction(nil), wallet.Transactions...)
	return &cp, nil
}

func (f *fakeWalletRepo) Credit(_ context.Context, userID string, tx models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	wallet, ok := f.wallets[userID]
	if !ok {
		wallet = &models.Wallet{ID: primitive.NewObjectID(), UserID: userID}
		f.wallets[userID] = wallet
	}
	wallet.Balance += tx.Amount
	wallet.Transactions = append([]models.Transaction{tx}, wallet.Transactions...)
	return nil
}

func (f *fakeWalletRepo) Debit(_ context.Context, userID string, tx models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	wallet, ok := f.wallets[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	wallet.Balance += tx.Amount
	wallet.Transactions = append([]models.Transaction{tx}, wallet.Transactions...)
	return nil
}

func (f *fakeWalletRepo) TopBalances(_ context.Context, limit int) ([]*models.RichestEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := make([]*models.RichestEntry, 0, len(f.wallets))
	for userID, wallet := range f.wallets {
		entries = append(entries, &models.RichestEntry{
			DiscordID: userID,
			Name:      f.names[userID],
			Balance:   wallet.Balance,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Balance > entries[j].Balance })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type fakePromoRepo struct {
	mu    sync.Mutex
	codes map[primitive.ObjectID]*models.PromoCode
}

func newFakePromoRepo() *fakePromoRepo {
	return &fakePromoRepo{codes: make(map[primitive.ObjectID]*models.PromoCode)}
}

func (f *fakePromoRepo) add(code *models.PromoCode) *models.PromoCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code.ID.IsZero() {
		code.ID = primitive.NewObjectID()
	}
	if code.RedeemedBy == nil {
		code.RedeemedBy = []string{}
	}
	f.codes[code.ID] = code
	return code
}

func (f *fakePromoRepo) get(id primitive.ObjectID) *models.PromoCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[id]
}

func (f *fakePromoRepo) Create(_ context.Context, code *models.PromoCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.codes {
		if existing.Code == code.Code {
			return repositories.ErrDuplicate
		}
	}
	if code.ID.IsZero() {
		code.ID = primitive.NewObjectID()
	}
	code.CreatedAt = time.Now()
	cp := *code
	f.codes[code.ID] = &cp
	return nil
}

func (f *fakePromoRepo) FindByCode(_ context.Context, code string) (*models.PromoCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.codes {
		if existing.Code == code {
			cp := *existing
			cp.RedeemedBy = append([]string(nil), existing.RedeemedBy...)
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePromoRepo) FindAll(_ context.Context, limit int) ([]*models.PromoCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*models.PromoCode, 0, len(f.codes))
	for _, code := range f.codes {
		cp := *code
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakePromoRepo) AppendRedemption(_ context.Context, id primitive.ObjectID, userID string, depleted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	code, ok := f.codes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	code.RedeemedBy = append(code.RedeemedBy, userID)
	if depleted {
		code.Status = models.PromoCodeStatusRedeemed
	}
	return nil
}

func (f *fakePromoRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	code, ok := f.codes[id]
	if !ok || code.Status != models.PromoCodeStatusActive {
		return repositories.ErrNotFound
	}
	code.Status = status
	return nil
}

type fakeNotifRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotifRepo() *fakeNotifRepo {
	return &fakeNotifRepo{}
}

func (f *fakeNotifRepo) Create(_ context.Context, notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	cp := *notification
	f.notifications = append(f.notifications, &cp)
	return nil
}

func (f *fakeNotifRepo) FindByUserID(_ context.Context, userID string, limit int) ([]*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Notification
	for i := len(f.notifications) - 1; i >= 0 && len(result) < limit; i-- {
		if f.notifications[i].UserID == userID {
			cp := *f.notifications[i]
			result = append(result, &cp)
		}
	}
	if result == nil {
		result = []*models.Notification{}
	}
	return result, nil
}

func (f *fakeNotifRepo) MarkAllRead(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, notification := range f.notifications {
		if notification.UserID == userID {
			notification.Read = true
		}
	}
	return nil
}

func (f *fakeNotifRepo) forUser(userID string) []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Notification
	for _, notification := range f.notifications {
		if notification.UserID == userID {
			result = append(result, notification)
		}
	}
	return result
}

type fakePendingRepo struct {
	mu      sync.Mutex
	rewards []*models.PendingReward
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{}
}

func (f *fakePendingRepo) Create(_ context.Context, reward *models.PendingReward) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reward.ID.IsZero() {
		reward.ID = primitive.NewObjectID()
	}
	cp := *reward
	f.rewards = append(f.rewards, &cp)
	return nil
}

func (f *fakePendingRepo) FindUnprocessed(_ context.Context) ([]*models.PendingReward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.PendingReward{}
	for _, reward := range f.rewards {
		if reward.ProcessedAt == nil {
			cp := *reward
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakePendingRepo) MarkProcessed(_ context.Context, id primitive.ObjectID, processedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reward := range f.rewards {
		if reward.ID == id && reward.ProcessedAt == nil {
			t := processedAt
			reward.ProcessedAt = &t
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeBetRepo struct {
	mu   sync.Mutex
	bets map[primitive.ObjectID]*models.PlacedBet
}

func newFakeBetRepo() *fakeBetRepo {
	return &fakeBetRepo{bets: make(map[primitive.ObjectID]*models.PlacedBet)}
}

func (f *fakeBetRepo) Create(_ context.Context, bet *models.PlacedBet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if bet.ID.IsZero() {
		bet.ID = primitive.NewObjectID()
	}
	cp := *bet
	f.bets[bet.ID] = &cp
	return nil
}

func (f *fakeBetRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.PlacedBet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bet, ok := f.bets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *bet
	return &cp, nil
}

func (f *fakeBetRepo) FindByUserID(_ context.Context, userID string) ([]*models.PlacedBet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.PlacedBet{}
	for _, bet := range f.bets {
		if bet.UserID == userID {
			cp := *bet
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeBetRepo) Settle(_ context.Context, id primitive.ObjectID, status string, settledAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	bet, ok := f.bets[id]
	if !ok || bet.Status != models.BetStatusOpen {
		return repositories.ErrNotFound
	}
	bet.Status = status
	t := settledAt
	bet.SettledAt = &t
	return nil
}

type fakeStatsRepo struct {
	mu    sync.Mutex
	stats map[string]*models.UserStats
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: make(map[string]*models.UserStats)}
}

func (f *fakeStatsRepo) entry(userID string) *models.UserStats {
	stats, ok := f.stats[userID]
	if !ok {
		stats = &models.UserStats{ID: primitive.NewObjectID(), UserID: userID}
		f.stats[userID] = stats
	}
	return stats
}

func (f *fakeStatsRepo) FindByUserID(_ context.Context, userID string) (*models.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats, ok := f.stats[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *stats
	return &cp, nil
}

func (f *fakeStatsRepo) IncrementPlaced(_ context.Context, userID string, stake float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := f.entry(userID)
	stats.TotalBets++
	stats.TotalWagered += stake
	return nil
}

func (f *fakeStatsRepo) IncrementWon(_ context.Context, userID string, winnings float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := f.entry(userID)
	stats.BetsWon++
	stats.TotalWinnings += winnings
	return nil
}

func (f *fakeStatsRepo) IncrementLost(_ context.Context, userID string, stake float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := f.entry(userID)
	stats.BetsLost++
	stats.TotalLosses += stake
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[int]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match)}
}

func (f *fakeMatchRepo) FindByIDs(_ context.Context, ids []int) ([]*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// One document per distinct ID, like a Mongo $in query
	result := []*models.Match{}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if match, ok := f.matches[id]; ok {
			cp := *match
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeMatchRepo) Upsert(_ context.Context, matches []*models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, match := range matches {
		cp := *match
		f.matches[match.ID] = &cp
	}
	return nil
}

type fakeStoreRepo struct {
	mu        sync.Mutex
	items     map[primitive.ObjectID]*models.StoreItem
	inventory []*models.UserInventoryItem
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{items: make(map[primitive.ObjectID]*models.StoreItem)}
}

func (f *fakeStoreRepo) addItem(item *models.StoreItem) *models.StoreItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	f.items[item.ID] = item
	return item
}

func (f *fakeStoreRepo) FindActiveItems(_ context.Context) ([]*models.StoreItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.StoreItem{}
	for _, item := range f.items {
		if item.IsActive {
			cp := *item
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeStoreRepo) FindItemByID(_ context.Context, id primitive.ObjectID) (*models.StoreItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeStoreRepo) InsertInventory(_ context.Context, item *models.UserInventoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	cp := *item
	f.inventory = append(f.inventory, &cp)
	return nil
}

func (f *fakeStoreRepo) FindInventoryByUserAndItem(_ context.Context, userID string, itemID primitive.ObjectID) ([]*models.UserInventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.UserInventoryItem{}
	for _, entry := range f.inventory {
		if entry.UserID == userID && entry.ItemID == itemID {
			cp := *entry
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeStoreRepo) FindInventoryByCode(_ context.Context, redemptionCode string) (*models.UserInventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entry := range f.inventory {
		if entry.RedemptionCode == redemptionCode {
			cp := *entry
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeStoreRepo) FindInventoryByUserID(_ context.Context, userID string) ([]*models.UserInventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.UserInventoryItem{}
	for _, entry := range f.inventory {
		if entry.UserID == userID {
			cp := *entry
			result = append(result, &cp)
		}
	}
	return result, nil
}

type fakeLevelRepo struct {
	mu     sync.Mutex
	levels []models.LevelThreshold
	set    bool
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{}
}

func (f *fakeLevelRepo) Get(_ context.Context) ([]models.LevelThreshold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.set {
		return nil, repositories.ErrNotFound
	}
	return append([]models.LevelThreshold(nil), f.levels...), nil
}

func (f *fakeLevelRepo) Update(_ context.Context, levels []models.LevelThreshold) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels = append([]models.LevelThreshold(nil), levels...)
	f.set = true
	return nil
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*models.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*models.AdminUser)}
}

func (f *fakeAdminRepo) Create(_ context.Context, user *models.AdminUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[user.Email]; ok {
		return repositories.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	cp := *user
	f.admins[user.Email] = &cp
	return nil
}

func (f *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	admin, ok := f.admins[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *admin
	return &cp, nil
}

type fakeAnnouncer struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeAnnouncer) Announce(_ context.Context, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, content)
	return nil
}
