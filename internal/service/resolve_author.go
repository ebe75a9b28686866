package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

// ResolveAuthor returns "first_name last_name" for users and UnknownAuthor
// for communities. A failed lookup is returned as an error, no name is made up.
func (s *Service) ResolveAuthor(ctx context.Context, msg *vk.Message) (string, error) {
	if !msg.FromUser() {
		return UnknownAuthor, nil
	}

	fromID := msg.FromID

	key := authorCacheKey(fromID)
	if s.cacheEnabled() {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			if name, ok := cached.(string); ok {
				return name, nil
			}
		}
	}

	resp, err := s.client.GetUsers(ctx, &vk.GetUsersRequest{UserIDs: []int64{fromID}})
	if err != nil {
		return "", fmt.Errorf("failed to resolve author %d: %w", fromID, err)
	}
	if len(resp.Users) == 0 {
		return "", fmt.Errorf("failed to resolve author %d: %w", fromID, ErrAuthorNotFound)
	}

	name := resp.Users[0].FullName()
	if s.cacheEnabled() {
		if err = s.cache.Set(ctx, key, name, s.cfg.AuthorCacheTTL); err != nil {
			s.logger.WarnContext(ctx, "failed to cache author", slog.Int64("from_id", fromID), slog.Any("error", err))
		}
	}

	return name, nil
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cfg.AuthorCacheTTL > 0
}

func authorCacheKey(fromID int64) string {
	return fmt.Sprintf("vk_author_%d", fromID)
}
