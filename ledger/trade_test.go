package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTradeInput(accountID int64) TradeInput {
	return TradeInput{
		TradeDate:  time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		AccountID:  accountID,
		Symbol:     "AAPL",
		Side:       Long,
		Quantity:   10,
		EntryPrice: 100,
		ExitPrice:  110,
		Fees:       2,
	}
}

func TestSaveTradeDerivesPnL(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	in := testTradeInput(accountID)
	in.Symbol = "  aapl "
	in.Tags = " breakout "
	tradeID, err := st.SaveTrade(userID, in)
	require.NoError(t, err)

	got, found, err := st.GetTrade(userID, tradeID)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, "breakout", got.Tags)
	assert.Equal(t, "Main", got.AccountName)
	assert.InDelta(t, 100, got.GrossPnL, 1e-9)
	assert.InDelta(t, 98, got.NetPnL, 1e-9)
}

func TestSaveTradeManualMode(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	manual := 45.5
	in := testTradeInput(accountID)
	in.EntryPrice = 123 // ignored in manual mode
	in.ExitPrice = 456
	in.Fees = 1.25
	in.ManualNetPnL = &manual

	tradeID, err := st.SaveTrade(userID, in)
	require.NoError(t, err)

	got, found, err := st.GetTrade(userID, tradeID)
	require.NoError(t, err)
	require.True(t, found)

	// Entry/exit are zero sentinels; gross is back-derived.
	assert.Zero(t, got.EntryPrice)
	assert.Zero(t, got.ExitPrice)
	assert.InDelta(t, 45.5, got.NetPnL, 1e-9)
	assert.InDelta(t, 46.75, got.GrossPnL, 1e-9)
}

func TestSaveTradeValidation(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	in := testTradeInput(accountID)
	in.Quantity = 0
	_, err := st.SaveTrade(userID, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = testTradeInput(accountID)
	in.Fees = -1
	_, err = st.SaveTrade(userID, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = testTradeInput(accountID)
	in.Side = "Sideways"
	_, err = st.SaveTrade(userID, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveTradeRejectsForeignAccount(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	alice, _ := newTestUser(t, st, "alice")
	_, bobAccount := newTestUser(t, st, "bob")

	// Alice cannot write into Bob's account even with a valid account id.
	_, err := st.SaveTrade(alice, testTradeInput(bobAccount))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTradeIDReusesSmallestGap(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := st.SaveTrade(userID, testTradeInput(accountID))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)

	// Free id 3: the next insert must reuse it.
	found, err := st.DeleteTrade(userID, 3)
	require.NoError(t, err)
	require.True(t, found)

	id, err := st.SaveTrade(userID, testTradeInput(accountID))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	// No gap left: back to max+1.
	id, err = st.SaveTrade(userID, testTradeInput(accountID))
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
}

func TestTradeIDStartsAtOne(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	id, err := st.SaveTrade(userID, testTradeInput(accountID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestUpdateTradeRoundTrip(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	tradeID, err := st.SaveTrade(userID, testTradeInput(accountID))
	require.NoError(t, err)

	in := testTradeInput(accountID)
	in.Symbol = "msft"
	in.Side = Short
	in.Quantity = 5
	in.EntryPrice = 300
	in.ExitPrice = 290
	in.Fees = 1.5
	in.Notes = "updated"

	found, err := st.UpdateTrade(userID, tradeID, in, "", false)
	require.NoError(t, err)
	require.True(t, found)

	got, ok, err := st.GetTrade(userID, tradeID)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "MSFT", got.Symbol)
	assert.Equal(t, Short, got.Side)
	assert.Equal(t, "updated", got.Notes)
	// Short 5 @ 300 -> 290: gross (300-290)*5 = 50, net 48.5.
	assert.InDelta(t, 50, got.GrossPnL, 1e-9)
	assert.InDelta(t, 48.5, got.NetPnL, 1e-9)
}

func TestUpdateTradeNotFound(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	alice, aliceAccount := newTestUser(t, st, "alice")
	bob, bobAccount := newTestUser(t, st, "bob")

	tradeID, err := st.SaveTrade(alice, testTradeInput(aliceAccount))
	require.NoError(t, err)

	// Missing id and someone else's trade look the same: false, no error.
	found, err := st.UpdateTrade(alice, 999, testTradeInput(aliceAccount), "", false)
	assert.NoError(t, err)
	assert.False(t, found)

	found, err = st.UpdateTrade(bob, tradeID, testTradeInput(bobAccount), "", false)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteTradeRemovesImage(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	img := filepath.Join(t.TempDir(), "fill.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))

	in := testTradeInput(accountID)
	in.ImagePath = img
	tradeID, err := st.SaveTrade(userID, in)
	require.NoError(t, err)

	found, err := st.DeleteTrade(userID, tradeID)
	require.NoError(t, err)
	assert.True(t, found)

	_, statErr := os.Stat(img)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteTradeToleratesMissingImage(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	in := testTradeInput(accountID)
	in.ImagePath = filepath.Join(t.TempDir(), "already-gone.png")
	tradeID, err := st.SaveTrade(userID, in)
	require.NoError(t, err)

	// The artifact file does not exist; the row delete must still succeed.
	found, err := st.DeleteTrade(userID, tradeID)
	assert.NoError(t, err)
	assert.True(t, found)

	_, ok, err := st.GetTrade(userID, tradeID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteTradeScopedToUser(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	alice, aliceAccount := newTestUser(t, st, "alice")
	bob, _ := newTestUser(t, st, "bob")

	tradeID, err := st.SaveTrade(alice, testTradeInput(aliceAccount))
	require.NoError(t, err)

	found, err := st.DeleteTrade(bob, tradeID)
	assert.NoError(t, err)
	assert.False(t, found)

	_, ok, err := st.GetTrade(alice, tradeID)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateTradeReplacesImage(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	dir := t.TempDir()
	oldImg := filepath.Join(dir, "old.png")
	newImg := filepath.Join(dir, "new.png")
	require.NoError(t, os.WriteFile(oldImg, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(newImg, []byte("new"), 0o644))

	in := testTradeInput(accountID)
	in.ImagePath = oldImg
	tradeID, err := st.SaveTrade(userID, in)
	require.NoError(t, err)

	found, err := st.UpdateTrade(userID, tradeID, testTradeInput(accountID), newImg, false)
	require.NoError(t, err)
	require.True(t, found)

	got, ok, err := st.GetTrade(userID, tradeID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, newImg, got.ImagePath)

	_, statErr := os.Stat(oldImg)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUpdateTradeClearsImage(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	img := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))

	in := testTradeInput(accountID)
	in.ImagePath = img
	tradeID, err := st.SaveTrade(userID, in)
	require.NoError(t, err)

	found, err := st.UpdateTrade(userID, tradeID, testTradeInput(accountID), "", true)
	require.NoError(t, err)
	require.True(t, found)

	got, ok, err := st.GetTrade(userID, tradeID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got.ImagePath)

	_, statErr := os.Stat(img)
	assert.True(t, os.IsNotExist(statErr))
}

func TestListTradesNewestFirst(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	early := testTradeInput(accountID)
	early.TradeDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	late := testTradeInput(accountID)
	late.TradeDate = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	_, err := st.SaveTrade(userID, early)
	require.NoError(t, err)
	lateID, err := st.SaveTrade(userID, late)
	require.NoError(t, err)

	trades, err := st.ListTrades(userID)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, lateID, trades[0].ID)
}
