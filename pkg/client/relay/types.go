package relay

type TextFormat string

const TextFormatPlain TextFormat = "plain"

type Text struct {
	Format TextFormat `json:"format"`
	Value  string     `json:"value"`
}

type Media struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// Body is a tagged union: exactly one of Text and Media is set.
type Body struct {
	Text  *Text  `json:"text,omitempty"`
	Media *Media `json:"media,omitempty"`
}

// TextValue returns the text payload, or "" for media bodies.
func (b Body) TextValue() string {
	if b.Text == nil {
		return ""
	}
	return b.Text.Value
}

type Request struct {
	ReplyMsgID *string `json:"reply_msg_id,omitempty"`
	CreatedAt  int64   `json:"created_at"`
	Author     *string `json:"author,omitempty"`
	IsSilent   bool    `json:"is_silent"`
	Body       Body    `json:"body"`
}

type Response struct {
	ReplyMsgID *string `json:"reply_msg_id,omitempty"`
	CreatedAt  int64   `json:"created_at"`
	Author     *string `json:"author,omitempty"`
	Client     *string `json:"client,omitempty"`
	IsSilent   bool    `json:"is_silent"`
	Body       Body    `json:"body"`
}
