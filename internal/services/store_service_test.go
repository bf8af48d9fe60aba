package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timaocord/wallet-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type storeFixture struct {
	svc    *storeService
	store  *fakeStoreRepo
	wallet *fakeWalletRepo
	user   *fakeUserRepo
}

func newStoreFixture() *storeFixture {
	f := &storeFixture{
		store:  newFakeStoreRepo(),
		wallet: newFakeWalletRepo(),
		user:   newFakeUserRepo(),
	}
	f.svc = NewStoreService(&fakeTxRunner{}, f.store, f.wallet, f.user, 0.9).(*storeService)
	return f
}

// hookedTxRunner runs a hook before each transaction starts, modelling a
// concurrent write that lands just before the transaction's snapshot
type hookedTxRunner struct {
	inner  fakeTxRunner
	before func()
}

func (h *hookedTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	h.before()
	return h.inner.WithTransaction(ctx, fn)
}

func (f *storeFixture) fund(t *testing.T, userID string, amount float64) {
	t.Helper()
	require.NoError(t, f.wallet.Credit(context.Background(), userID, models.Transaction{
		ID:     primitive.NewObjectID().Hex(),
		Type:   models.TransactionTypeDeposit,
		Amount: amount,
		Date:   time.Now(),
		Status: models.TransactionStatusCompleted,
	}))
}

func TestPurchase_RoleItem(t *testing.T) {
	f := newStoreFixture()
	ctx := context.Background()
	require.NoError(t, f.user.Create(ctx, &models.User{DiscordID: "user-1"}))
	f.fund(t, "user-1", 500)
	item := f.store.addItem(&models.StoreItem{
		Name:     "Cargo Torcedor",
		Price:    300,
		Type:     models.StoreItemTypeRole,
		Duration: models.StoreItemDurationPermanent,
		RoleID:   "role-1",
		IsActive: true,
	})

	result, err := f.svc.Purchase(ctx, "user-1", item.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.RedemptionCode, 8)

	wallet, err := f.wallet.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 200.0, wallet.Balance)
	assert.Equal(t, models.TransactionTypeStore, wallet.Transactions[0].Type)
	assert.Equal(t, "Compra: Cargo Torcedor", wallet.Transactions[0].Description)

	inventory, err := f.svc.GetInventory(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	assert.Equal(t, result.RedemptionCode, inventory[0].RedemptionCode)
	assert.False(t, inventory[0].IsRedeemed)

	// Permanent role can't be bought twice
	f.fund(t, "user-1", 500)
	_, err = f.svc.Purchase(ctx, "user-1", item.ID)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, CodeAlreadyOwned, opErr.Code)
}

func TestPurchase_MonthlyRoleExpiry(t *testing.T) {
	f := newStoreFixture()
	ctx := context.Background()
	require.NoError(t, f.user.Create(ctx, &models.User{DiscordID: "user-1"}))
	f.fund(t, "user-1", 1000)
	item := f.store.addItem(&models.StoreItem{
		Name:     "VIP Mensal",
		Price:    200,
		Type:     models.StoreItemTypeRole,
		Duration: models.StoreItemDurationMonthly,
		RoleID:   "role-vip",
		IsActive: true,
	})

	_, err := f.svc.Purchase(ctx, "user-1", item.ID)
	require.NoError(t, err)

	inventory, err := f.svc.GetInventory(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	require.NotNil(t, inventory[0].ExpiresAt)
	assert.True(t, inventory[0].ExpiresAt.After(time.Now()))

	// Active subscription blocks a second purchase and names the expiry date
	_, err = f.svc.Purchase(ctx, "user-1", item.ID)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, CodeAlreadyOwned, opErr.Code)
	assert.Contains(t, opErr.Message, "expira em")
}

func TestPurchase_XPBoostWithVipDiscount(t *testing.T) {
	f := newStoreFixture()
	ctx := context.Background()
	require.NoError(t, f.user.Create(ctx, &models.User{DiscordID: "user-1", IsVip: true, XP: 10}))
	f.fund(t, "user-1", 100)
	item := f.store.addItem(&models.StoreItem{
		Name:     "Bônus de XP",
		Price:    100,
		Type:     models.StoreItemTypeXPBoost,
		XPAmount: 250,
		IsActive: true,
	})

	result, err := f.svc.Purchase(ctx, "user-1", item.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Message, "250 XP")

	// VIPs pay 90% on non-role items
	wallet, err := f.wallet.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, wallet.Balance)

	user, err := f.user.FindByDiscordID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 260, user.XP)
}

func TestPurchase_VipDiscountSkippedForRoles(t *testing.T) {
	f := newStoreFixture()
	ctx := context.Background()
	require.NoError(t, f.user.Create(ctx, &models.User{DiscordID: "user-1", IsVip: true}))
	f.fund(t, "user-1", 95)
	item := f.store.addItem(&models.StoreItem{
		Name:     "Cargo",
		Price:    100,
		Type:     models.StoreItemTypeRole,
		Duration: models.StoreItemDurationPermanent,
		IsActive: true,
	})

	// 95 would cover the discounted price but roles charge full price
	_, err := f.svc.Purchase(ctx, "user-1", item.ID)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestPurchase_AdRemoval(t *testing.T) {
	f := newStoreFixture()
	ctx := context.Background()
	require.NoError(t, f.user.Create(ctx, &models.User{DiscordID: "user-1"}))
	f.fund(t, "user-1", 50)
	item := f.store.addItem(&models.StoreItem{
		Name:           "Sem Anúncios",
		Price:          30,
		Type:           models.StoreItemTypeAdRemoval,
		DurationInDays: 7,
		IsActive:       true,
	})

	result, err := f.svc.Purchase(ctx, "user-1", item.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Message, "7 dia(s)")
	assert.Empty(t, result.RedemptionCode)

	user, err := f.user.FindByDiscordID(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, user.AdRemovalExpiresAt)
	assert.True(t, user.AdRemovalExpiresAt.After(time.Now().AddDate(0, 0, 6)))

	inventory, err := f.svc.GetInventory(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	assert.True(t, inventory[0].IsRedeemed)
	assert.Equal(t, "APLICADO_DIRETAMENTE", inventory[0].RedemptionCode)

	// Active period blocks buying again
	_, err = f.svc.Purchase(ctx, "user-1", item.ID)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, CodeAlreadyOwned, opErr.Code)
}

func TestPurchase_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown item", func(t *testing.T) {
		f := newStoreFixture()
		_, err := f.svc.Purchase(ctx, "user-1", primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("inactive item", func(t *testing.T) {
		f := newStoreFixture()
		item := f.store.addItem(&models.StoreItem{Name: "Antigo", Price: 10, Type: models.StoreItemTypeRole, IsActive: false})
		_, err := f.svc.Purchase(ctx, "user-1", item.ID)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		f := newStoreFixture()
		require.NoError(t, f.user.Create(ctx, &models.User{DiscordID: "user-1"}))
		f.fund(t, "user-1", 5)
		item := f.store.addItem(&models.StoreItem{Name: "Caro", Price: 100, Type: models.StoreItemTypeRole, Duration: models.StoreItemDurationPermanent, IsActive: true})
		_, err := f.svc.Purchase(ctx, "user-1", item.ID)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newStoreFixture()
		item := f.store.addItem(&models.StoreItem{Name: "Item", Price: 10, Type: models.StoreItemTypeRole, IsActive: true})
		_, err := f.svc.Purchase(ctx, "ghost", item.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestPurchase_ItemDeactivatedBeforeTransaction(t *testing.T) {
	f := newStoreFixture()
	ctx := context.Background()
	require.NoError(t, f.user.Create(ctx, &models.User{DiscordID: "user-1"}))
	f.fund(t, "user-1", 100)
	item := f.store.addItem(&models.StoreItem{Name: "Cargo", Price: 50, Type: models.StoreItemTypeRole, Duration: models.StoreItemDurationPermanent, IsActive: true})

	// An admin deactivates the item right before the purchase transaction
	// takes its snapshot. The transactional re-read must see that.
	f.svc.tx = &hookedTxRunner{before: func() { item.IsActive = false }}

	_, err := f.svc.Purchase(ctx, "user-1", item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	wallet, err := f.wallet.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, wallet.Balance)

	inventory, err := f.svc.GetInventory(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, inventory)
}

func TestListItems_OnlyActive(t *testing.T) {
	f := newStoreFixture()
	f.store.addItem(&models.StoreItem{Name: "Ativo", Price: 10, Type: models.StoreItemTypeRole, IsActive: true})
	f.store.addItem(&models.StoreItem{Name: "Inativo", Price: 10, Type: models.StoreItemTypeRole, IsActive: false})

	items, err := f.svc.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ativo", items[0].Name)
}
