package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAccountDuplicateNameWithinUser(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, _ := newTestUser(t, st, "alice")

	_, err := st.AddAccount(userID, "Swing", "IBKR", "Margin", "")
	require.NoError(t, err)

	// Same name, same user: integrity failure, without engine error text.
	_, err = st.AddAccount(userID, "Swing", "Other", "Cash", "")
	assert.ErrorIs(t, err, ErrIntegrity)
	assert.NotContains(t, err.Error(), "UNIQUE constraint")
}

func TestAddAccountSameNameAcrossUsers(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	alice, _ := newTestUser(t, st, "alice")
	bob, _ := newTestUser(t, st, "bob")

	// Uniqueness is per user, not global; both users already own "Main"
	// and can both add "Swing".
	_, err := st.AddAccount(alice, "Swing", "", "", "")
	assert.NoError(t, err)
	_, err = st.AddAccount(bob, "Swing", "", "", "")
	assert.NoError(t, err)
}

func TestAddAccountRequiresName(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, _ := newTestUser(t, st, "alice")

	_, err := st.AddAccount(userID, "   ", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteAccountCascades(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, accountID := newTestUser(t, st, "alice")

	_, err := st.SaveTrade(userID, testTradeInput(accountID))
	require.NoError(t, err)
	_, err = st.AddCashflow(userID, accountID, time.Now(), Deposit, 100, "")
	require.NoError(t, err)

	found, err := st.DeleteAccount(userID, accountID)
	require.NoError(t, err)
	assert.True(t, found)

	trades, err := st.ListTrades(userID)
	require.NoError(t, err)
	assert.Empty(t, trades)

	flows, err := st.ListCashflows(userID)
	require.NoError(t, err)
	assert.Empty(t, flows)

	// The store allows a user with zero accounts; keeping one around is
	// the caller's policy.
	accounts, err := st.ListAccounts(userID)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestDeleteAccountScopedToUser(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	alice, aliceAccount := newTestUser(t, st, "alice")
	bob, _ := newTestUser(t, st, "bob")

	found, err := st.DeleteAccount(bob, aliceAccount)
	assert.NoError(t, err)
	assert.False(t, found)

	accounts, err := st.ListAccounts(alice)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestListAccountsOrderedByName(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	userID, _ := newTestUser(t, st, "alice")

	_, err := st.AddAccount(userID, "Zebra", "", "", "")
	require.NoError(t, err)
	_, err = st.AddAccount(userID, "Alpha", "", "", "")
	require.NoError(t, err)

	accounts, err := st.ListAccounts(userID)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "Alpha", accounts[0].Name)
	assert.Equal(t, "Main", accounts[1].Name)
	assert.Equal(t, "Zebra", accounts[2].Name)
}
