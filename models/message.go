package models

// SystemMessage is non-user content such as a join or leave notice.
type SystemMessage struct {
	Type string `json:"type"`
	By   UserID `json:"by,omitempty"`
	ID   UserID `json:"id,omitempty"`
}

type Message struct {
	ID          MessageID      `json:"_id"`
	Nonce       string         `json:"nonce,omitempty"`
	Channel     ChannelID      `json:"channel"`
	Author      UserID         `json:"author"`
	Content     string         `json:"content,omitempty"`
	System      *SystemMessage `json:"system,omitempty"`
	Attachments []Attachment   `json:"attachments,omitempty"`
	Edited      string         `json:"edited,omitempty"`
	Mentions    []UserID       `json:"mentions,omitempty"`
	Replies     []MessageID    `json:"replies,omitempty"`
}

// IsText reports whether the message carries user text content.
func (m *Message) IsText() bool {
	return m.System == nil && m.Content != ""
}

type PartialMessage struct {
	Content *string `json:"content,omitempty"`
	Edited  *string `json:"edited,omitempty"`
}

func (m *Message) Apply(p PartialMessage, clear []ClearField) {
	_ = clear // message updates carry no clearable fields

	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.Edited != nil {
		m.Edited = *p.Edited
	}
}
