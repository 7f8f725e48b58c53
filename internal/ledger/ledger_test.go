package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestDepositWithdraw(t *testing.T) {
	l := New()
	pid := common.HexToHash("0x01")

	require.NoError(t, l.InitPlayer(pid))
	require.NoError(t, l.Deposit(pid, 1000))

	bal, err := l.Balance(pid)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), bal)

	require.NoError(t, l.Withdraw(pid, 400))
	bal, err = l.Balance(pid)
	require.NoError(t, err)
	require.Equal(t, uint64(600), bal)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	l := New()
	pid := common.HexToHash("0x02")
	require.NoError(t, l.Deposit(pid, 10))
	err := l.Withdraw(pid, 11)
	require.Error(t, err)
}

func TestDebitCreditAliasDepositWithdraw(t *testing.T) {
	l := New()
	pid := common.HexToHash("0x03")
	require.NoError(t, l.CreditPlayerBalance(pid, 500))
	require.NoError(t, l.DebitPlayerBalance(pid, 200))
	bal, _ := l.Balance(pid)
	require.Equal(t, uint64(300), bal)
}
