package redis

import (
	"context"

	"github.com/skipool/skipool/internal/db"
)

// ZAdd inserts member or updates its score.
func (s *Store) ZAdd(ctx context.Context, key string, score float64, member string) error {
	cmd := s.b().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRangeByScore returns members with scores in [minScore, maxScore], lowest
// first. Bounds use Redis syntax ("-inf", "+inf", "(10").
func (s *Store) ZRangeByScore(ctx context.Context, key, minScore, maxScore string) ([]string, error) {
	members, err := s.do(ctx, s.b().Zrangebyscore().Key(key).Min(minScore).Max(maxScore).Build()).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	return members, nil
}
