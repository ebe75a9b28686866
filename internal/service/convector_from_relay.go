package service

import (
	"fmt"
	"strings"

	"github.com/vladislavprovich/vk-relay/pkg/client/relay"
)

type ConvectorFromRelay struct{}

func NewConvectorFromRelay() *ConvectorFromRelay {
	return &ConvectorFromRelay{}
}

// ConvertToOutboundMessage renders a relay response as chat text:
//
//	reply to: 42
//	[Bob from web]: yo
func (c *ConvectorFromRelay) ConvertToOutboundMessage(resp *relay.Response) string {
	var b strings.Builder

	if resp.ReplyMsgID != nil {
		fmt.Fprintf(&b, "reply to: %s\n", *resp.ReplyMsgID)
	}

	author := UnknownAuthor
	if resp.Author != nil && *resp.Author != "" {
		author = *resp.Author
	}

	text := resp.Body.TextValue()
	if resp.Client != nil && *resp.Client != "" {
		fmt.Fprintf(&b, "[%s from %s]: %s", author, *resp.Client, text)
	} else {
		fmt.Fprintf(&b, "[%s]: %s", author, text)
	}

	return b.String()
}
