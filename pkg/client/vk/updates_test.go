package vk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messageNewBatch = `{
	"ts": "42",
	"updates": [{
		"group_id": 224192083,
		"type": "message_new",
		"event_id": "b1f3",
		"v": "5.199",
		"object": {
			"message": {
				"date": 1700000000,
				"from_id": 123,
				"id": 77,
				"out": 0,
				"version": 10001,
				"attachments": [{
					"type": "photo",
					"photo": {
						"album_id": -3,
						"date": 1700000000,
						"id": 457239017,
						"owner_id": 123,
						"access_key": "k",
						"sizes": [
							{"height": 75, "width": 56, "type": "s", "url": "https://sun.userapi.com/s.jpg"},
							{"height": 1280, "width": 960, "type": "z", "url": "https://sun.userapi.com/z.jpg"}
						],
						"text": "",
						"web_view_token": "w",
						"has_tags": false
					}
				}],
				"conversation_message_id": 5,
				"fwd_messages": [],
				"important": false,
				"is_hidden": false,
				"peer_id": 2000000001,
				"random_id": 0,
				"text": "hi",
				"is_unavailable": true,
				"reply_message": {
					"attachments": [],
					"conversation_message_id": 4,
					"date": 1699999990,
					"from_id": -224192083,
					"id": 76,
					"peer_id": 2000000001,
					"text": "earlier"
				}
			},
			"client_info": {
				"button_actions": ["text"],
				"keyboard": true,
				"inline_keyboard": true,
				"carousel": true,
				"lang_id": 0
			}
		}
	}]
}`

func TestDecodeLongPollResponse_MessageNew(t *testing.T) {
	resp, err := DecodeLongPollResponse([]byte(messageNewBatch))
	require.NoError(t, err)

	assert.Equal(t, Timestamp(42), resp.TS)
	require.Len(t, resp.Updates, 1)

	upd := resp.Updates[0]
	assert.Equal(t, UpdateTypeMessageNew, upd.Type)
	assert.Equal(t, json.Number("5.199"), upd.V)
	require.NotNil(t, upd.MessageNew)

	msg := upd.MessageNew.Message
	assert.Equal(t, int64(77), msg.ID)
	assert.Equal(t, int64(123), msg.FromID)
	assert.True(t, msg.FromUser())
	assert.Equal(t, "hi", msg.Text)
	require.NotNil(t, msg.Reply)
	assert.Equal(t, int64(76), msg.Reply.ID)
	assert.False(t, msg.Reply.FromUser())

	require.Len(t, msg.Attachments, 1)
	require.NotNil(t, msg.Attachments[0].Photo)
	largest, ok := msg.Attachments[0].Photo.Largest()
	require.True(t, ok)
	assert.Equal(t, SizeZ, largest.Type)
	assert.Equal(t, "https://sun.userapi.com/z.jpg", largest.URL)
}

func TestDecodeLongPollResponse_ClosedSchema(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedErr string
	}{
		{
			name:        "unknown_update_type",
			body:        `{"ts":"43","updates":[{"type":"message_reply","object":{}}]}`,
			expectedErr: `unknown update type "message_reply"`,
		},
		{
			name:        "unknown_attachment_type",
			body:        `{"ts":"43","updates":[{"type":"message_new","group_id":1,"event_id":"e","v":"5.199","object":{"message":{"id":1,"peer_id":1,"from_id":1,"date":1,"text":"","conversation_message_id":1,"attachments":[{"type":"sticker","sticker":{}}],"fwd_messages":[]},"client_info":{"button_actions":[],"keyboard":false,"inline_keyboard":false,"carousel":false,"lang_id":0}}}]}`,
			expectedErr: `unknown attachment type "sticker"`,
		},
		{
			name:        "unknown_message_field",
			body:        `{"ts":"43","updates":[{"type":"message_new","group_id":1,"event_id":"e","v":"5.199","object":{"message":{"id":1,"peer_id":1,"from_id":1,"date":1,"text":"","conversation_message_id":1,"attachments":[],"fwd_messages":[],"admin_author_id":5},"client_info":{"button_actions":[],"keyboard":false,"inline_keyboard":false,"carousel":false,"lang_id":0}}}]}`,
			expectedErr: `unknown field "admin_author_id"`,
		},
		{
			name:        "unknown_size_type",
			body:        `{"ts":"43","updates":[{"type":"message_new","group_id":1,"event_id":"e","v":"5.199","object":{"message":{"id":1,"peer_id":1,"from_id":1,"date":1,"text":"","conversation_message_id":1,"attachments":[{"type":"photo","photo":{"album_id":1,"date":1,"id":1,"owner_id":1,"access_key":"","sizes":[{"height":1,"width":1,"type":"base","url":"u"}],"text":"","web_view_token":"","has_tags":false}}],"fwd_messages":[]},"client_info":{"button_actions":[],"keyboard":false,"inline_keyboard":false,"carousel":false,"lang_id":0}}}]}`,
			expectedErr: `unknown photo size type "base"`,
		},
		{
			name:        "unknown_top_level_field",
			body:        `{"ts":"43","updates":[],"pts":1}`,
			expectedErr: `unknown field "pts"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLongPollResponse([]byte(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestDecodeLongPollResponse_FailedHistory(t *testing.T) {
	resp, err := DecodeLongPollResponse([]byte(`{"failed":1,"ts":"30"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, Timestamp(30), resp.TS)
	assert.Empty(t, resp.Updates)
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var ts Timestamp

	require.NoError(t, json.Unmarshal([]byte(`"123"`), &ts))
	assert.Equal(t, Timestamp(123), ts)

	require.NoError(t, json.Unmarshal([]byte(`124`), &ts))
	assert.Equal(t, Timestamp(124), ts)
	assert.Equal(t, "124", ts.String())

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`true`), &ts))
}
