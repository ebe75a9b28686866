package vk

import (
	"encoding/json"
	"fmt"
)

// Long-poll schema. It is closed: unknown update types, attachment types,
// size types and unknown fields all fail decoding of the whole batch.

const (
	UpdateTypeMessageNew = "message_new"

	AttachmentTypePhoto = "photo"
)

type LongPollResponse struct {
	TS      Timestamp `json:"ts"`
	Updates []Update  `json:"updates"`
	Failed  int       `json:"failed,omitempty"`
}

// DecodeLongPollResponse strictly decodes a long-poll check response.
func DecodeLongPollResponse(body []byte) (*LongPollResponse, error) {
	var resp LongPollResponse
	if err := DecodeStrict(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type Update struct {
	Type    string
	GroupID int64
	EventID string
	V       json.Number

	// Set when Type is UpdateTypeMessageNew.
	MessageNew *MessageNew
}

type MessageNew struct {
	Message    Message    `json:"message"`
	ClientInfo ClientInfo `json:"client_info"`
}

type ClientInfo struct {
	ButtonActions  []string `json:"button_actions"`
	Keyboard       bool     `json:"keyboard"`
	InlineKeyboard bool     `json:"inline_keyboard"`
	Carousel       bool     `json:"carousel"`
	LangID         int      `json:"lang_id"`
}

func (u *Update) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Type {
	case UpdateTypeMessageNew:
		var raw struct {
			Type    string      `json:"type"`
			GroupID int64       `json:"group_id"`
			EventID string      `json:"event_id"`
			V       json.Number `json:"v"`
			Object  MessageNew  `json:"object"`
		}
		if err := DecodeStrict(data, &raw); err != nil {
			return fmt.Errorf("update %s: %w", head.Type, err)
		}
		*u = Update{
			Type:       raw.Type,
			GroupID:    raw.GroupID,
			EventID:    raw.EventID,
			V:          raw.V,
			MessageNew: &raw.Object,
		}
		return nil
	default:
		return fmt.Errorf("unknown update type %q", head.Type)
	}
}

// Message is an incoming message. Replies and forwarded messages use the
// same shape; fields absent there decode to zero values.
type Message struct {
	ID                    int64        `json:"id"`
	PeerID                int64        `json:"peer_id"`
	FromID                int64        `json:"from_id"`
	Date                  int64        `json:"date"`
	Text                  string       `json:"text"`
	Out                   int          `json:"out,omitempty"`
	Version               int64        `json:"version,omitempty"`
	ConversationMessageID int64        `json:"conversation_message_id"`
	Important             bool         `json:"important,omitempty"`
	IsHidden              bool         `json:"is_hidden,omitempty"`
	RandomID              int64        `json:"random_id,omitempty"`
	IsUnavailable         bool         `json:"is_unavailable,omitempty"`
	Reply                 *Message     `json:"reply_message,omitempty"`
	Attachments           []Attachment `json:"attachments"`
	FwdMessages           []Message    `json:"fwd_messages"`
}

// FromUser reports whether the message was sent by a user rather than a community.
func (m *Message) FromUser() bool {
	return m.FromID > 0
}

type Attachment struct {
	Type string

	// Set when Type is AttachmentTypePhoto.
	Photo *Photo
}

func (a *Attachment) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Type {
	case AttachmentTypePhoto:
		var raw struct {
			Type  string `json:"type"`
			Photo Photo  `json:"photo"`
		}
		if err := DecodeStrict(data, &raw); err != nil {
			return fmt.Errorf("attachment %s: %w", head.Type, err)
		}
		*a = Attachment{Type: raw.Type, Photo: &raw.Photo}
		return nil
	default:
		return fmt.Errorf("unknown attachment type %q", head.Type)
	}
}

type Photo struct {
	AlbumID      int64  `json:"album_id"`
	Date         int64  `json:"date"`
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"owner_id"`
	UserID       int64  `json:"user_id,omitempty"`
	AccessKey    string `json:"access_key"`
	Sizes        []Size `json:"sizes"`
	Text         string `json:"text"`
	WebViewToken string `json:"web_view_token"`
	HasTags      bool   `json:"has_tags"`
}

// Largest returns the size with the biggest area.
func (p *Photo) Largest() (Size, bool) {
	if len(p.Sizes) == 0 {
		return Size{}, false
	}
	best := p.Sizes[0]
	for _, s := range p.Sizes[1:] {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best, true
}

type Size struct {
	Height int      `json:"height"`
	Width  int      `json:"width"`
	Type   SizeType `json:"type"`
	URL    string   `json:"url"`
}

type SizeType string

const (
	SizeSmall  SizeType = "s"
	SizeMedium SizeType = "m"
	SizeX      SizeType = "x"
	SizeY      SizeType = "y"
	SizeZ      SizeType = "z"
	SizeW      SizeType = "w"
	SizeO      SizeType = "o"
	SizeP      SizeType = "p"
	SizeQ      SizeType = "q"
	SizeR      SizeType = "r"
)

func (t *SizeType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch st := SizeType(s); st {
	case SizeSmall, SizeMedium, SizeX, SizeY, SizeZ, SizeW, SizeO, SizeP, SizeQ, SizeR:
		*t = st
		return nil
	default:
		return fmt.Errorf("unknown photo size type %q", s)
	}
}
