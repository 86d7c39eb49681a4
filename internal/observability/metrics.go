package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// PostsCreated counts created posts by visibility.
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_posts_created_total",
		Help: "Total number of posts created by visibility",
	}, []string{"visibility"})

	// MessagesSent counts direct messages sent.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_messages_sent_total",
		Help: "Total number of direct messages sent",
	})

	// StoriesPosted counts stories posted.
	StoriesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_stories_posted_total",
		Help: "Total number of stories posted",
	})

	// FriendRequestOutcomes counts friend request transitions by outcome.
	FriendRequestOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_friend_request_outcomes_total",
		Help: "Total number of friend request transitions by outcome",
	}, []string{"outcome"})

	// CacheHits counts cache lookups by key class and result.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_cache_lookups_total",
		Help: "Total number of cache lookups by key class and result",
	}, []string{"class", "result"})
)

// ObserveQueryLatency records query latency labeled by the leading SQL
// verb (select, insert, update, delete).
func ObserveQueryLatency(sql string, elapsed time.Duration) {
	operation := "other"
	if i := strings.IndexByte(sql, ' '); i > 0 {
		operation = strings.ToLower(sql[:i])
	}
	DatabaseQueryLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}
