package vk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is the numeric code of an API error. Codes the client does not
// know about still decode; they just have no name.
type ErrorCode int

const (
	ErrorCodeNotFound                       ErrorCode = 104
	ErrorCodeBlacklisted                    ErrorCode = 900
	ErrorCodeNoPermission                   ErrorCode = 901
	ErrorCodePrivacySettings                ErrorCode = 902
	ErrorCodeKeyboardFormatInvalid          ErrorCode = 911
	ErrorCodeChatBotFeature                 ErrorCode = 912
	ErrorCodeTooManyForwarded               ErrorCode = 913
	ErrorCodeMessageTooLong                 ErrorCode = 914
	ErrorCodeNoAccessToChat                 ErrorCode = 917
	ErrorCodeCannotForwardMessages          ErrorCode = 921
	ErrorCodeLeftChat                       ErrorCode = 922
	ErrorCodeNotChatAdmin                   ErrorCode = 925
	ErrorCodeContactNotFound                ErrorCode = 936
	ErrorCodeTooManyPosts                   ErrorCode = 940
	ErrorCodeCannotUseIntent                ErrorCode = 943
	ErrorCodeIntentLimitsOverflow           ErrorCode = 944
	ErrorCodeChatDisabled                   ErrorCode = 945
	ErrorCodeChatNotSupported               ErrorCode = 946
	ErrorCodeReplyTimedOut                  ErrorCode = 950
	ErrorCodeDonutSubscriptionRequired      ErrorCode = 962
	ErrorCodeMessageCannotBeForwarded       ErrorCode = 969
	ErrorCodeAppActionRestrictedCommunities ErrorCode = 979
	ErrorCodeChatWriteRestricted            ErrorCode = 983
	ErrorCodeSpamRestriction                ErrorCode = 984
	ErrorCodeWritingDisabled                ErrorCode = 1012
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCodeNotFound:                       "NotFound",
	ErrorCodeBlacklisted:                    "Blacklisted",
	ErrorCodeNoPermission:                   "NoPermission",
	ErrorCodePrivacySettings:                "PrivacySettings",
	ErrorCodeKeyboardFormatInvalid:          "KeyboardFormatInvalid",
	ErrorCodeChatBotFeature:                 "ChatBotFeature",
	ErrorCodeTooManyForwarded:               "TooManyForwarded",
	ErrorCodeMessageTooLong:                 "MessageTooLong",
	ErrorCodeNoAccessToChat:                 "NoAccessToChat",
	ErrorCodeCannotForwardMessages:          "CannotForwardMessages",
	ErrorCodeLeftChat:                       "LeftChat",
	ErrorCodeNotChatAdmin:                   "NotChatAdmin",
	ErrorCodeContactNotFound:                "ContactNotFound",
	ErrorCodeTooManyPosts:                   "TooManyPosts",
	ErrorCodeCannotUseIntent:                "CannotUseIntent",
	ErrorCodeIntentLimitsOverflow:           "IntentLimitsOverflow",
	ErrorCodeChatDisabled:                   "ChatDisabled",
	ErrorCodeChatNotSupported:               "ChatNotSupported",
	ErrorCodeReplyTimedOut:                  "ReplyTimedOut",
	ErrorCodeDonutSubscriptionRequired:      "DonutSubscriptionRequired",
	ErrorCodeMessageCannotBeForwarded:       "MessageCannotBeForwarded",
	ErrorCodeAppActionRestrictedCommunities: "AppActionRestrictedCommunities",
	ErrorCodeChatWriteRestricted:            "ChatWriteRestricted",
	ErrorCodeSpamRestriction:                "SpamRestriction",
	ErrorCodeWritingDisabled:                "WritingDisabled",
}

func (c ErrorCode) Known() bool {
	_, ok := errorCodeNames[c]
	return ok
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

type RequestParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// APIError is a domain error returned by the API inside the "error" envelope.
type APIError struct {
	Code          ErrorCode      `json:"error_code"`
	Message       string         `json:"error_msg"`
	RequestParams []RequestParam `json:"request_params"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s#%d)", e.Message, e.Code, int(e.Code))
	for i, param := range e.RequestParams {
		if i == 0 {
			b.WriteString(":")
		} else {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, " %s: %s", param.Key, param.Value)
	}
	return b.String()
}

// IsErrorCode reports whether err is an APIError with the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// DecodeError means the response body had an unexpected shape. Body holds the raw payload.
type DecodeError struct {
	Method string
	Body   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error unmarshalling response body for %s: %v: %s", e.Method, e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
