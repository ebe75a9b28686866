package vk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type (
	GetLongPollServerRequest struct {
		GroupID int64
	}

	GetLongPollServerResponse struct {
		Key    string    `json:"key"`
		Server string    `json:"server"`
		TS     Timestamp `json:"ts"`
	}
)

type (
	SendMessageRequest struct {
		PeerID   int64
		RandomID int64
		Message  string
	}

	SendMessageResponse struct {
		MessageID int64
	}
)

type (
	GetUsersRequest struct {
		UserIDs []int64
	}

	GetUsersResponse struct {
		Users []User
	}

	User struct {
		ID              int64  `json:"id"`
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		CanAccessClosed *bool  `json:"can_access_closed,omitempty"`
		IsClosed        *bool  `json:"is_closed,omitempty"`
		Deactivated     string `json:"deactivated,omitempty"`
	}
)

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Timestamp is a long-poll cursor value. The API sends it either as a
// JSON number or as a decimal string.
type Timestamp int64

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ts %q: %w", data, err)
	}
	*t = Timestamp(v)
	return nil
}

func (t Timestamp) String() string {
	return strconv.FormatInt(int64(t), 10)
}

func (r *GetLongPollServerRequest) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, r,
		validation.Field(&r.GroupID, validation.Required),
	)
}

func (r *SendMessageRequest) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, r,
		validation.Field(&r.PeerID, validation.Required),
		validation.Field(&r.Message, validation.Required),
	)
}

func (r *GetUsersRequest) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, r,
		validation.Field(&r.UserIDs, validation.Required),
	)
}
