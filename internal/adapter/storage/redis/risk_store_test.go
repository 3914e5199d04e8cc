package redis

import (
	"context"
	"testing"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskSignalStore_Observe(t *testing.T) {
	_, client := newTestClient(t)
	store := NewRiskSignalStore(client, 24*time.Hour, 10*time.Minute)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	subject := uuid.New()

	first, err := store.Observe(ctx, domain.RiskObservation{SubjectID: subject, IP: "10.0.0.1", DeviceID: "dev-a", Country: "NG"})
	require.NoError(t, err)
	assert.False(t, first.IPChanged)
	assert.False(t, first.DeviceChanged)
	assert.False(t, first.MultipleIPs)
	assert.Equal(t, domain.RiskLow, first.RiskLevel)

	now = now.Add(time.Minute)
	same, err := store.Observe(ctx, domain.RiskObservation{SubjectID: subject, IP: "10.0.0.1", DeviceID: "dev-a", Country: "NG"})
	require.NoError(t, err)
	assert.Equal(t, domain.RiskLow, same.RiskLevel)

	now = now.Add(time.Minute)
	moved, err := store.Observe(ctx, domain.RiskObservation{SubjectID: subject, IP: "172.16.0.9", DeviceID: "dev-b", Country: "GB"})
	require.NoError(t, err)
	assert.True(t, moved.IPChanged)
	assert.True(t, moved.DeviceChanged)
	assert.True(t, moved.MultipleIPs)
	assert.True(t, moved.GeoMismatch)
	assert.Equal(t, domain.RiskCritical, moved.RiskLevel)
	assert.Equal(t, subject, moved.SubjectID)
}

func TestRiskSignalStore_OldIPsAgeOut(t *testing.T) {
	_, client := newTestClient(t)
	store := NewRiskSignalStore(client, 24*time.Hour, 10*time.Minute)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	subject := uuid.New()

	_, err := store.Observe(ctx, domain.RiskObservation{SubjectID: subject, IP: "10.0.0.1"})
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	sig, err := store.Observe(ctx, domain.RiskObservation{SubjectID: subject, IP: "10.0.0.2"})
	require.NoError(t, err)
	assert.True(t, sig.IPChanged)
	assert.False(t, sig.MultipleIPs)
	assert.Equal(t, domain.RiskMedium, sig.RiskLevel)
}

func TestRiskSignalStore_MissingFieldsAreNotChanges(t *testing.T) {
	_, client := newTestClient(t)
	store := NewRiskSignalStore(client, time.Hour, 10*time.Minute)
	ctx := context.Background()
	subject := uuid.New()

	_, err := store.Observe(ctx, domain.RiskObservation{SubjectID: subject, IP: "10.0.0.1", DeviceID: "dev-a"})
	require.NoError(t, err)

	sig, err := store.Observe(ctx, domain.RiskObservation{SubjectID: subject, IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.False(t, sig.DeviceChanged)
	assert.Equal(t, domain.RiskLow, sig.RiskLevel)
}
