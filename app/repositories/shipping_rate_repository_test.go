package repositories

import (
	"context"
	"testing"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRate(t *testing.T, db *gorm.DB, city, price string, active bool) *models.ShippingRate {
	t.Helper()
	rate := &models.ShippingRate{
		City:   city,
		Price:  decimal.RequireFromString(price),
		Active: active,
	}
	require.NoError(t, db.Create(rate).Error)
	return rate
}

func TestFindActiveByCity(t *testing.T) {
	db := newTestDB(t)
	repo := NewShippingRateRepository(db)
	ctx := context.Background()

	seedRate(t, db, "Casablanca", "20.00", true)
	seedRate(t, db, "Fès", "30.00", false)

	tests := []struct {
		name string
		city string
		want string
	}{
		{"exact", "Casablanca", "20.00"},
		{"lowercase", "casablanca", "20.00"},
		{"mixed case with spaces", "  cAsAbLaNcA ", "20.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := repo.FindActiveByCity(ctx, tt.city)
			require.NoError(t, err)
			require.NotNil(t, rate)
			assert.Equal(t, tt.want, rate.Price.StringFixed(2))
		})
	}

	t.Run("unknown city", func(t *testing.T) {
		rate, err := repo.FindActiveByCity(ctx, "Essaouira")
		require.NoError(t, err)
		assert.Nil(t, rate)
	})

	t.Run("inactive rate invisible", func(t *testing.T) {
		rate, err := repo.FindActiveByCity(ctx, "Fès")
		require.NoError(t, err)
		assert.Nil(t, rate)
	})
}

func TestShippingRateLists(t *testing.T) {
	db := newTestDB(t)
	repo := NewShippingRateRepository(db)
	ctx := context.Background()

	seedRate(t, db, "Casablanca", "20.00", true)
	seedRate(t, db, "Rabat", "25.00", true)
	seedRate(t, db, "Marrakech", "30.00", false)

	active, err := repo.GetActive(ctx, "")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := repo.GetAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := repo.GetAll(ctx, "rab")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Rabat", filtered[0].City)
}
