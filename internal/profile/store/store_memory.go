package store

import (
	"context"
	"hash/fnv"
	"sync"

	"benefitscout/internal/profile/models"
	id "benefitscout/pkg/domain"
	"benefitscout/pkg/platform/sentinel"
)

// numUserShards spreads Execute calls for different users across locks so a
// slow mutate for one user does not block the rest.
const numUserShards = 64

// InMemory stores profiles in a map. Records are copied on the way in and
// out so callers cannot mutate stored state.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[id.UserID]models.Profile
	shards   [numUserShards]sync.Mutex
}

func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[id.UserID]models.Profile)}
}

func (s *InMemory) FindByUserID(_ context.Context, userID id.UserID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

// Execute runs mutate against a copy of the stored profile (nil when none
// exists) and saves the result. Calls for the same user are serialised.
func (s *InMemory) Execute(ctx context.Context, userID id.UserID, mutate func(current *models.Profile) (*models.Profile, error)) (*models.Profile, error) {
	shard := &s.shards[shardFor(userID)]
	shard.Lock()
	defer shard.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, err := s.FindByUserID(ctx, userID)
	if err != nil {
		current = nil
	}
	next, err := mutate(current)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *InMemory) Save(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.CreatedAt = existing.CreatedAt
	}
	s.profiles[profile.UserID] = *profile
	return nil
}

func (s *InMemory) Delete(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[userID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.profiles, userID)
	return nil
}

func shardFor(userID id.UserID) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID.String()))
	return h.Sum32() % numUserShards
}
