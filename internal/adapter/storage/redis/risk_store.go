package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"marketplace-wallet/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// RiskSignalStore implements ports.RiskSignalStore. Per subject it keeps the
// last seen ip/device/country in a hash and recent IPs in a sorted set
// scored by time.
type RiskSignalStore struct {
	client           *goredis.Client
	prefix           string
	ttl              time.Duration
	concurrentWindow time.Duration
	now              func() time.Time
}

// NewRiskSignalStore creates a new Redis-backed risk signal store.
func NewRiskSignalStore(client *goredis.Client, ttl, concurrentWindow time.Duration) *RiskSignalStore {
	return &RiskSignalStore{
		client:           client,
		prefix:           "risk:",
		ttl:              ttl,
		concurrentWindow: concurrentWindow,
		now:              time.Now,
	}
}

// Observe compares obs with what was last seen for the subject, records it,
// and returns the derived signal. A first sighting produces no change flags.
func (s *RiskSignalStore) Observe(ctx context.Context, obs domain.RiskObservation) (*domain.SecurityRiskSignal, error) {
	subject := obs.SubjectID.String()
	lastKey := s.prefix + "last:" + subject
	ipsKey := s.prefix + "ips:" + subject
	now := s.now()

	prev, err := s.client.HGetAll(ctx, lastKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis risk last seen: %w", err)
	}

	signal := &domain.SecurityRiskSignal{
		SubjectID:     obs.SubjectID,
		IPChanged:     changed(prev["ip"], obs.IP),
		DeviceChanged: changed(prev["device"], obs.DeviceID),
		GeoMismatch:   changed(prev["country"], obs.Country),
	}

	fields := map[string]any{}
	if obs.IP != "" {
		fields["ip"] = obs.IP
	}
	if obs.DeviceID != "" {
		fields["device"] = obs.DeviceID
	}
	if obs.Country != "" {
		fields["country"] = obs.Country
	}

	var distinct *goredis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		if obs.IP != "" {
			pipe.ZAdd(ctx, ipsKey, goredis.Z{Score: float64(now.UnixMilli()), Member: obs.IP})
		}
		cutoff := now.Add(-s.concurrentWindow).UnixMilli()
		pipe.ZRemRangeByScore(ctx, ipsKey, "-inf", "("+strconv.FormatInt(cutoff, 10))
		distinct = pipe.ZCard(ctx, ipsKey)
		pipe.Expire(ctx, ipsKey, s.concurrentWindow+time.Minute)
		if len(fields) > 0 {
			pipe.HSet(ctx, lastKey, fields)
			pipe.Expire(ctx, lastKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis risk observe: %w", err)
	}

	signal.MultipleIPs = distinct.Val() > 1
	signal.RiskLevel = signal.Score()
	return signal, nil
}

func changed(previous, current string) bool {
	return previous != "" && current != "" && previous != current
}
