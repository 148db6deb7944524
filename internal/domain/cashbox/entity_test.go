//go:build unit

package cashbox_test

import (
	"testing"
	"time"

	"courtgrid/internal/domain/cashbox"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("open and close", func(t *testing.T) {
		s, err := cashbox.OpenSession(uuid.New(), uuid.New(), 50000, now)
		require.NoError(t, err)
		assert.True(t, s.IsOpen())

		later := now.Add(10 * time.Hour)
		require.NoError(t, s.Close(175000, later))

		assert.False(t, s.IsOpen())
		require.NotNil(t, s.ClosingCents())
		assert.Equal(t, int64(175000), *s.ClosingCents())
	})

	t.Run("negative opening float rejected", func(t *testing.T) {
		_, err := cashbox.OpenSession(uuid.New(), uuid.New(), -1, now)
		require.ErrorIs(t, err, cashbox.ErrNonPositiveCents)
	})

	t.Run("closing twice rejected", func(t *testing.T) {
		s, err := cashbox.OpenSession(uuid.New(), uuid.New(), 0, now)
		require.NoError(t, err)
		require.NoError(t, s.Close(100, now))

		err = s.Close(200, now)
		require.ErrorIs(t, err, cashbox.ErrRegisterClosed)
	})
}

func TestMovement(t *testing.T) {
	sessionID := uuid.New()

	t.Run("income counts positive, expense negative", func(t *testing.T) {
		in, err := cashbox.NewMovement(sessionID, cashbox.MovementIncome, "court rental", 120000, cashbox.MethodCash, nil)
		require.NoError(t, err)
		out, err := cashbox.NewMovement(sessionID, cashbox.MovementExpense, "net repair", 30000, cashbox.MethodTransfer, nil)
		require.NoError(t, err)

		assert.Equal(t, int64(120000), in.Signed())
		assert.Equal(t, int64(-30000), out.Signed())
	})

	t.Run("validation", func(t *testing.T) {
		_, err := cashbox.NewMovement(sessionID, cashbox.MovementIncome, "  ", 100, cashbox.MethodCash, nil)
		require.ErrorIs(t, err, cashbox.ErrEmptyConcept)

		_, err = cashbox.NewMovement(sessionID, cashbox.MovementIncome, "x", 0, cashbox.MethodCash, nil)
		require.ErrorIs(t, err, cashbox.ErrNonPositiveCents)
	})

	t.Run("type parsing", func(t *testing.T) {
		_, err := cashbox.NewMovementType("refund")
		require.ErrorIs(t, err, cashbox.ErrInvalidMovementType)

		_, err = cashbox.NewPaymentMethod("crypto")
		require.ErrorIs(t, err, cashbox.ErrInvalidMethod)
	})
}

func TestAccountBalance(t *testing.T) {
	acc, err := cashbox.NewAccount(uuid.New(), "Club Norte SRL", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), acc.BalanceCents())

	require.NoError(t, acc.ApplyCharge(100000))
	require.NoError(t, acc.ApplyCharge(50000))
	assert.Equal(t, int64(150000), acc.BalanceCents())

	require.NoError(t, acc.ApplyPayment(120000))
	assert.Equal(t, int64(30000), acc.BalanceCents())

	t.Run("payment above balance rejected", func(t *testing.T) {
		err := acc.ApplyPayment(60000)
		require.ErrorIs(t, err, cashbox.ErrInsufficientFunds)
		assert.Equal(t, int64(30000), acc.BalanceCents())
	})

	t.Run("non-positive amounts rejected", func(t *testing.T) {
		require.ErrorIs(t, acc.ApplyCharge(0), cashbox.ErrNonPositiveCents)
		require.ErrorIs(t, acc.ApplyPayment(-5), cashbox.ErrNonPositiveCents)
	})
}
