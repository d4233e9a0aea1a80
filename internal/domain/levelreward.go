package domain

import (
	"context"
	"errors"
)

// RewardDomain selects which activity track a level reward belongs to.
type RewardDomain string

const (
	RewardDomainChat  RewardDomain = "chat"
	RewardDomainVoice RewardDomain = "voice"
)

// LevelReward maps an activity-level threshold to the role granted when a
// member reaches it. Within one guild and one domain each level maps to
// exactly one role.
type LevelReward struct {
	GuildID string
	Domain  RewardDomain
	Level   int64
	RoleID  string
}

// NewLevelReward creates a LevelReward with validated required fields.
func NewLevelReward(guildID string, rd RewardDomain, level int64, roleID string) (*LevelReward, error) {
	if guildID == "" {
		return nil, errors.New("levelreward: guild ID is required")
	}
	if rd != RewardDomainChat && rd != RewardDomainVoice {
		return nil, errors.New("levelreward: unknown domain " + string(rd))
	}
	if level < 1 {
		return nil, errors.New("levelreward: level must be positive")
	}
	if roleID == "" {
		return nil, errors.New("levelreward: role ID is required")
	}
	return &LevelReward{GuildID: guildID, Domain: rd, Level: level, RoleID: roleID}, nil
}

type LevelRewardRepository interface {
	List(ctx context.Context, guildID string, rd RewardDomain) ([]*LevelReward, error)
	// Upsert replaces any existing mapping for the same (guild, domain, level).
	Upsert(ctx context.Context, r *LevelReward) error
	// Delete removes the mapping for the given level; a missing entry is a no-op.
	Delete(ctx context.Context, guildID string, rd RewardDomain, level int64) error
}
