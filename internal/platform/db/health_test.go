package db

import "testing"

func TestPoolStats_HealthyFlag(t *testing.T) {
	healthy := &PoolStats{TotalConns: 5, MaxConns: 20, Healthy: true}
	if !healthy.Healthy {
		t.Error("expected Healthy to be true with open connections")
	}

	drained := &PoolStats{TotalConns: 0, MaxConns: 20, Healthy: false}
	if drained.Healthy {
		t.Error("expected Healthy to be false with no connections")
	}
}
