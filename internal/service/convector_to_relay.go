package service

import (
	"strconv"

	"github.com/vladislavprovich/vk-relay/pkg/client/relay"
	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

const photoMimeType = "image/jpeg"

type ConvectorToRelay struct{}

func NewConvectorToRelay() *ConvectorToRelay {
	return &ConvectorToRelay{}
}

func (c *ConvectorToRelay) ConvertToRelayRequest(msg *vk.Message, author string) *relay.Request {
	req := &relay.Request{
		CreatedAt: msg.Date,
		Author:    &author,
		IsSilent:  false,
		Body:      toRelayBody(msg),
	}
	if msg.Reply != nil {
		replyID := strconv.FormatInt(msg.Reply.ID, 10)
		req.ReplyMsgID = &replyID
	}
	return req
}

// toRelayBody prefers the text. A message with only a photo is sent as media.
func toRelayBody(msg *vk.Message) relay.Body {
	if msg.Text == "" {
		for _, att := range msg.Attachments {
			if att.Photo == nil {
				continue
			}
			if size, ok := att.Photo.Largest(); ok {
				return relay.Body{Media: &relay.Media{
					URL:      size.URL,
					MimeType: photoMimeType,
					Caption:  att.Photo.Text,
				}}
			}
		}
	}
	return relay.Body{Text: &relay.Text{
		Format: relay.TextFormatPlain,
		Value:  msg.Text,
	}}
}
