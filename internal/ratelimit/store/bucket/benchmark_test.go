package bucket

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// BenchmarkAllow measures single-threaded throughput.
func BenchmarkAllow(b *testing.B) {
	store := New()
	ctx := context.Background()

	for b.Loop() {
		_, _ = store.Allow(ctx, "rl:ip:lookup:bench", 1000, time.Minute)
	}
}

// BenchmarkAllow_Parallel measures contended throughput on a single key.
func BenchmarkAllow_Parallel(b *testing.B) {
	store := New()
	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = store.Allow(ctx, "rl:ip:lookup:bench", 1000, time.Minute)
		}
	})
}

// BenchmarkAllow_HighCardinality_Parallel spreads load over many client IPs.
func BenchmarkAllow_HighCardinality_Parallel(b *testing.B) {
	store := New()
	ctx := context.Background()
	var counter atomic.Int64

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			i := counter.Add(1)
			key := fmt.Sprintf("rl:ip:lookup:10.0.%d.%d", (i/256)%256, i%256)
			_, _ = store.Allow(ctx, key, 100, time.Minute)
		}
	})
}
