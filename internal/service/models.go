package service

import (
	"errors"
	"time"
)

// UnknownAuthor is used for messages sent by communities and by the system.
const UnknownAuthor = "Unknown"

var ErrAuthorNotFound = errors.New("author not found")

type Config struct {
	// PeerID is the conversation every relay response is delivered to.
	PeerID         int64
	AuthorCacheTTL time.Duration
}
