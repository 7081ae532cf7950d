package notifications

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	presenceOnlineSetKey = "presence:online_users"
	presenceLastSeenNS   = "presence:last_seen:"
	presenceLastSeenTTL  = 90 * time.Second
	presenceReapInterval = 60 * time.Second
)

// Presence tracks which users currently hold websocket connections. Local
// connection counts are authoritative for this process; Redis mirrors them
// with a TTL so other instances see the same view. Without Redis it
// degrades to local-only tracking.
type Presence struct {
	rdb *redis.Client

	mu         sync.RWMutex
	connCounts map[uint]int

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewPresence creates a presence tracker and starts the Redis reaper when
// Redis is available.
func NewPresence(rdb *redis.Client) *Presence {
	p := &Presence{
		rdb:        rdb,
		connCounts: make(map[uint]int),
		stopCh:     make(chan struct{}),
	}
	if p.rdb != nil {
		go p.reaperLoop()
	}
	return p
}

// Register notes a new connection for the user.
func (p *Presence) Register(ctx context.Context, userID uint) {
	p.mu.Lock()
	p.connCounts[userID]++
	p.mu.Unlock()

	p.Touch(ctx, userID)
}

// Unregister notes a dropped connection. The Redis entry is left to expire
// via TTL so brief reconnects do not flap.
func (p *Presence) Unregister(userID uint) {
	p.mu.Lock()
	if n := p.connCounts[userID]; n > 1 {
		p.connCounts[userID] = n - 1
	} else {
		delete(p.connCounts, userID)
	}
	p.mu.Unlock()
}

// Touch refreshes the user's presence in Redis.
func (p *Presence) Touch(ctx context.Context, userID uint) {
	if p.rdb == nil {
		return
	}
	uid := strconv.FormatUint(uint64(userID), 10)
	if err := p.rdb.SAdd(ctx, presenceOnlineSetKey, uid).Err(); err != nil {
		log.Printf("presence SADD failed for user %d: %v", userID, err)
	}
	if err := p.rdb.SetEx(ctx, p.lastSeenKey(userID), strconv.FormatInt(time.Now().Unix(), 10), presenceLastSeenTTL).Err(); err != nil {
		log.Printf("presence SETEX failed for user %d: %v", userID, err)
	}
}

// IsOnline reports whether the user is connected locally or, per Redis, on
// any instance.
func (p *Presence) IsOnline(ctx context.Context, userID uint) bool {
	p.mu.RLock()
	local := p.connCounts[userID] > 0
	p.mu.RUnlock()
	if local {
		return true
	}

	if p.rdb == nil {
		return false
	}
	exists, err := p.rdb.Exists(ctx, p.lastSeenKey(userID)).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// OnlineUserIDs returns the union of locally connected users and the Redis
// online set, filtering entries whose last-seen key has expired.
func (p *Presence) OnlineUserIDs(ctx context.Context) []uint {
	local := p.localUserIDs()
	if p.rdb == nil {
		return local
	}

	members, err := p.rdb.SMembers(ctx, presenceOnlineSetKey).Result()
	if err != nil {
		return local
	}

	seen := make(map[uint]struct{}, len(members)+len(local))
	result := make([]uint, 0, len(members)+len(local))
	for _, raw := range members {
		id64, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			continue
		}
		userID := uint(id64)
		exists, existsErr := p.rdb.Exists(ctx, p.lastSeenKey(userID)).Result()
		if existsErr != nil {
			continue
		}
		if exists == 0 {
			_ = p.rdb.SRem(ctx, presenceOnlineSetKey, raw).Err()
			continue
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		result = append(result, userID)
	}

	for _, userID := range local {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		result = append(result, userID)
	}

	return result
}

// Stop halts the reaper.
func (p *Presence) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
}

// reapOnce removes online-set members whose last-seen key has expired.
func (p *Presence) reapOnce(ctx context.Context) {
	if p.rdb == nil {
		return
	}

	members, err := p.rdb.SMembers(ctx, presenceOnlineSetKey).Result()
	if err != nil {
		return
	}
	for _, raw := range members {
		id64, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			continue
		}
		exists, existsErr := p.rdb.Exists(ctx, p.lastSeenKey(uint(id64))).Result()
		if existsErr != nil || exists > 0 {
			continue
		}
		_ = p.rdb.SRem(ctx, presenceOnlineSetKey, raw).Err()
	}
}

func (p *Presence) reaperLoop() {
	ticker := time.NewTicker(presenceReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.reapOnce(context.Background())
		}
	}
}

func (p *Presence) localUserIDs() []uint {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]uint, 0, len(p.connCounts))
	for userID, count := range p.connCounts {
		if count > 0 {
			ids = append(ids, userID)
		}
	}
	return ids
}

func (p *Presence) lastSeenKey(userID uint) string {
	return presenceLastSeenNS + strconv.FormatUint(uint64(userID), 10)
}
