package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Step names of the onboarding wizard, in order.
const (
	StepEmail    = "email"
	StepBasic    = "basic"
	StepContact  = "contact"
	StepContract = "contract"
	StepBenefits = "benefits"
	StepPayment  = "payment"
)

// Steps lists every wizard step in completion order.
var Steps = []string{StepEmail, StepBasic, StepContact, StepContract, StepBenefits, StepPayment}

// WizardStore holds per-wizard step payloads in a server-side key-value
// store. State lives under one key per wizard id and expires after the
// configured TTL.
type WizardStore interface {
	Put(ctx context.Context, id, step string, payload any) error
	// Get returns all stored steps for the wizard. A missing wizard yields an
	// empty map, not an error.
	Get(ctx context.Context, id string) (map[string]json.RawMessage, error)
	Delete(ctx context.Context, id string) error
}

type redisWizardStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisWizardStore(rdb *redis.Client, ttl time.Duration) WizardStore {
	return &redisWizardStore{rdb: rdb, ttl: ttl}
}

func wizardKey(id string) string {
	return fmt.Sprintf("onboarding:wizard:%s", id)
}

func (s *redisWizardStore) Put(ctx context.Context, id, step string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard step: %w", err)
	}

	key := wizardKey(id)
	if err := s.rdb.HSet(ctx, key, step, data).Err(); err != nil {
		return fmt.Errorf("failed to store wizard step in redis: %w", err)
	}

	return s.rdb.Expire(ctx, key, s.ttl).Err()
}

func (s *redisWizardStore) Get(ctx context.Context, id string) (map[string]json.RawMessage, error) {
	values, err := s.rdb.HGetAll(ctx, wizardKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read wizard state from redis: %w", err)
	}

	state := make(map[string]json.RawMessage, len(values))
	for step, raw := range values {
		state[step] = json.RawMessage(raw)
	}

	return state, nil
}

func (s *redisWizardStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, wizardKey(id)).Err()
}

// MemoryWizardStore is an in-process WizardStore used in tests.
type MemoryWizardStore struct {
	data map[string]map[string]json.RawMessage
}

func NewMemoryWizardStore() *MemoryWizardStore {
	return &MemoryWizardStore{data: make(map[string]map[string]json.RawMessage)}
}

func (s *MemoryWizardStore) Put(ctx context.Context, id, step string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if s.data[id] == nil {
		s.data[id] = make(map[string]json.RawMessage)
	}
	s.data[id][step] = data
	return nil
}

func (s *MemoryWizardStore) Get(ctx context.Context, id string) (map[string]json.RawMessage, error) {
	state := make(map[string]json.RawMessage, len(s.data[id]))
	for step, raw := range s.data[id] {
		state[step] = raw
	}
	return state, nil
}

func (s *MemoryWizardStore) Delete(ctx context.Context, id string) error {
	delete(s.data, id)
	return nil
}
