package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SunilThagyal/fbase-api/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New("sqlite", ":memory:")
	require.NoError(t, err)
	return s
}

func TestUpsertCreatesWithDefaults(t *testing.T) {
	s := newTestStore(t)

	record, err := s.Upsert("uid-1", "a@x.com")
	require.NoError(t, err)

	assert.Equal(t, "uid-1", record.UserID)
	assert.Equal(t, "a@x.com", record.Email)
	assert.Equal(t, models.SubscriptionFree, record.SubscriptionStatus)
	assert.Nil(t, record.StripeCustomerID)
	assert.Nil(t, record.SubscriptionEndDate)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestUpsertMergePreservesExistingFields(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Upsert("uid-1", "a@x.com")
	require.NoError(t, err)

	// Simulate a billing update outside this core
	stripeID := "cus_123"
	endDate := time.Now().Add(30 * 24 * time.Hour).UTC()
	require.NoError(t, s.db.Model(&models.UserRecord{UserID: "uid-1"}).Updates(map[string]any{
		"subscription_status":   "premium",
		"stripe_customer_id":    stripeID,
		"subscription_end_date": endDate,
	}).Error)

	// Re-running the upsert with a new email must merge, not reset
	second, err := s.Upsert("uid-1", "b@x.com")
	require.NoError(t, err)

	assert.Equal(t, "b@x.com", second.Email)
	assert.Equal(t, "premium", second.SubscriptionStatus)
	require.NotNil(t, second.StripeCustomerID)
	assert.Equal(t, stripeID, *second.StripeCustomerID)
	assert.NotNil(t, second.SubscriptionEndDate)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
}

func TestUpsertIdempotentCreatedAt(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Upsert("uid-1", "a@x.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := s.Upsert("uid-1", "c@x.com")
	require.NoError(t, err)

	assert.Equal(t, "c@x.com", second.Email)
	assert.Equal(t, first.CreatedAt.UnixNano(), second.CreatedAt.UnixNano())
}

func TestGetByID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetByID("missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.Upsert("uid-1", "a@x.com")
	require.NoError(t, err)

	record, err := s.GetByID("uid-1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", record.UserID)
	assert.Equal(t, "a@x.com", record.Email)
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := New("mysql", "dsn")
	assert.Error(t, err)
}
