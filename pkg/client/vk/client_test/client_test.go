package client_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *vk.BasicClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &vk.Config{
		Token:   "test-token",
		GroupID: 224192083,
		BaseURL: server.URL + "/method",
		Version: "5.199",
	}
	return vk.NewBasicClient(server.Client(), cfg, slog.Default())
}

func TestBasicClient_GetLongPollServer(t *testing.T) {
	tests := []struct {
		name             string
		mockStatusCode   int
		mockResponseBody string
		expectedErr      string
		expectedResp     *vk.GetLongPollServerResponse
	}{
		{
			name:             "ts_as_string",
			mockStatusCode:   http.StatusOK,
			mockResponseBody: `{"response":{"key":"abc","server":"https://lp.vk.com/wh224192083","ts":"15"}}`,
			expectedResp: &vk.GetLongPollServerResponse{
				Key:    "abc",
				Server: "https://lp.vk.com/wh224192083",
				TS:     15,
			},
		},
		{
			name:             "ts_as_number",
			mockStatusCode:   http.StatusOK,
			mockResponseBody: `{"response":{"key":"abc","server":"https://lp.vk.com/wh1","ts":16}}`,
			expectedResp: &vk.GetLongPollServerResponse{
				Key:    "abc",
				Server: "https://lp.vk.com/wh1",
				TS:     16,
			},
		},
		{
			name:             "unknown_field_in_response",
			mockStatusCode:   http.StatusOK,
			mockResponseBody: `{"response":{"key":"abc","server":"https://lp.vk.com/wh1","ts":"1","extra":true}}`,
			expectedErr:      "error unmarshalling response body for groups.getLongPollServer",
		},
		{
			name:             "unknown_envelope_key",
			mockStatusCode:   http.StatusOK,
			mockResponseBody: `{"response":{"key":"abc","server":"https://lp.vk.com/wh1","ts":"1"},"execute_errors":[]}`,
			expectedErr:      "execute_errors",
		},
		{
			name:             "empty_envelope",
			mockStatusCode:   http.StatusOK,
			mockResponseBody: `{}`,
			expectedErr:      "neither response nor error",
		},
		{
			name:             "not_json",
			mockStatusCode:   http.StatusOK,
			mockResponseBody: `<html>`,
			expectedErr:      "error unmarshalling response body for groups.getLongPollServer",
		},
		{
			name:             "bad_status",
			mockStatusCode:   http.StatusBadGateway,
			mockResponseBody: `upstream down`,
			expectedErr:      "unexpected status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/method/groups.getLongPollServer", r.URL.Path)
				gotQuery = r.URL.RawQuery
				w.WriteHeader(tt.mockStatusCode)
				_, _ = w.Write([]byte(tt.mockResponseBody))
			})

			resp, err := client.GetLongPollServer(context.Background(), &vk.GetLongPollServerRequest{GroupID: 224192083})
			assert.Equal(t, "group_id=224192083&access_token=test-token&v=5.199", gotQuery)

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)

				var decodeErr *vk.DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, tt.mockResponseBody, decodeErr.Body)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedResp, resp)
		})
	}
}

func TestBasicClient_DomainError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"error_code":914,"error_msg":"Message is too long","request_params":[{"key":"method","value":"messages.send"},{"key":"v","value":"5.199"}]}}`))
	})

	_, err := client.SendMessage(context.Background(), &vk.SendMessageRequest{PeerID: 2000000001, Message: "x"})
	require.Error(t, err)

	var apiErr *vk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, vk.ErrorCodeMessageTooLong, apiErr.Code)
	assert.True(t, vk.IsErrorCode(err, vk.ErrorCodeMessageTooLong))
	assert.False(t, vk.IsErrorCode(err, vk.ErrorCodeChatDisabled))
	assert.Equal(t, "Message is too long (MessageTooLong#914): method: messages.send, v: 5.199", apiErr.Error())

	var decodeErr *vk.DecodeError
	assert.False(t, errors.As(err, &decodeErr))
}

func TestBasicClient_UnknownErrorCodeStillDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"error_code":7777,"error_msg":"Brand new failure","request_params":[]}}`))
	})

	_, err := client.GetUsers(context.Background(), &vk.GetUsersRequest{UserIDs: []int64{1}})

	var apiErr *vk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, vk.ErrorCode(7777), apiErr.Code)
	assert.False(t, apiErr.Code.Known())
	assert.Equal(t, "ErrorCode(7777)", apiErr.Code.String())
}

func TestBasicClient_SendMessage(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/method/messages.send", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"response":481}`))
	})

	resp, err := client.SendMessage(context.Background(), &vk.SendMessageRequest{
		PeerID:  2000000001,
		Message: "hello world",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(481), resp.MessageID)
	assert.Equal(t,
		"peer_id=2000000001&random_id=0&message=hello+world&group_id=224192083&access_token=test-token&v=5.199",
		gotQuery,
	)
}

func TestBasicClient_SendMessageRejectsEmptyText(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
	})

	_, err := client.SendMessage(context.Background(), &vk.SendMessageRequest{PeerID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request for messages.send")
	assert.Zero(t, calls)
}

func TestBasicClient_GetUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/method/users.get", r.URL.Path)
		assert.Equal(t, "123,456", r.URL.Query().Get("user_ids"))
		_, _ = w.Write([]byte(`{"response":[
			{"id":123,"first_name":"Ann","last_name":"Lee","can_access_closed":true,"is_closed":false},
			{"id":456,"first_name":"Bob","last_name":"Ray","deactivated":"deleted"}
		]}`))
	})

	resp, err := client.GetUsers(context.Background(), &vk.GetUsersRequest{UserIDs: []int64{123, 456}})
	require.NoError(t, err)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "Ann Lee", resp.Users[0].FullName())
	assert.Equal(t, "deleted", resp.Users[1].Deactivated)
}

func TestBasicClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := vk.NewBasicClient(http.DefaultClient, &vk.Config{
		Token:   "t",
		GroupID: 1,
		BaseURL: url,
		Version: "5.199",
	}, slog.Default())

	_, err := client.GetUsers(context.Background(), &vk.GetUsersRequest{UserIDs: []int64{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error doing request for users.get")

	var apiErr *vk.APIError
	var decodeErr *vk.DecodeError
	assert.False(t, errors.As(err, &apiErr))
	assert.False(t, errors.As(err, &decodeErr))
}
