//go:build unit

package establishment_test

import (
	"testing"

	"courtgrid/internal/domain/establishment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	t.Run("accepted windows", func(t *testing.T) {
		cases := []struct {
			name      string
			openHour  int
			closeHour int
		}{
			{name: "daytime", openHour: 8, closeHour: 22},
			{name: "closes at midnight", openHour: 8, closeHour: 24},
			{name: "closes past midnight", openHour: 8, closeHour: 26},
			{name: "evening club", openHour: 20, closeHour: 25},
			{name: "full day", openHour: 8, closeHour: 32},
			{name: "late open wrapping", openHour: 23, closeHour: 47},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				w, err := establishment.NewWindow(tc.openHour, tc.closeHour)
				require.NoError(t, err)
				assert.Equal(t, tc.openHour, w.OpenHour)
				assert.Equal(t, tc.closeHour, w.CloseHour)
			})
		}
	})

	t.Run("rejected windows", func(t *testing.T) {
		cases := []struct {
			name      string
			openHour  int
			closeHour int
		}{
			{name: "negative open", openHour: -1, closeHour: 10},
			{name: "open past 23", openHour: 24, closeHour: 30},
			{name: "close before open", openHour: 10, closeHour: 8},
			{name: "zero-length window", openHour: 10, closeHour: 10},
			// A span over 24 hours would repeat slot labels and make
			// post-midnight date attribution ambiguous.
			{name: "span over a full day", openHour: 8, closeHour: 33},
			{name: "double day", openHour: 0, closeHour: 48},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := establishment.NewWindow(tc.openHour, tc.closeHour)
				assert.ErrorIs(t, err, establishment.ErrInvalidWindow)
			})
		}
	})

	t.Run("midnight crossing", func(t *testing.T) {
		day, err := establishment.NewWindow(8, 22)
		require.NoError(t, err)
		assert.False(t, day.CrossesMidnight())
		assert.Equal(t, 28, day.SlotCount())

		late, err := establishment.NewWindow(20, 26)
		require.NoError(t, err)
		assert.True(t, late.CrossesMidnight())
		assert.Equal(t, 12, late.SlotCount())
	})
}

func TestNewEstablishment(t *testing.T) {
	window, err := establishment.NewWindow(8, 26)
	require.NoError(t, err)

	t.Run("basic success case", func(t *testing.T) {
		est, err := establishment.NewEstablishment("  Club Norte  ", " Av. Libertador 1000 ", window)
		require.NoError(t, err)

		assert.Equal(t, "Club Norte", est.Name())
		assert.Equal(t, "Av. Libertador 1000", est.Address())
		assert.Equal(t, window, est.Window())
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := establishment.NewEstablishment("   ", "", window)
		assert.ErrorIs(t, err, establishment.ErrEmptyName)
	})

	t.Run("rename keeps validation", func(t *testing.T) {
		est, err := establishment.NewEstablishment("Club Norte", "", window)
		require.NoError(t, err)

		assert.ErrorIs(t, est.Rename(" "), establishment.ErrEmptyName)
		require.NoError(t, est.Rename("Club Sur"))
		assert.Equal(t, "Club Sur", est.Name())
	})
}
