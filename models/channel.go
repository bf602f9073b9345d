package models

const (
	ChannelTypeSavedMessages = "SavedMessages"
	ChannelTypeDirectMessage = "DirectMessage"
	ChannelTypeGroup         = "Group"
	ChannelTypeText          = "TextChannel"
	ChannelTypeVoice         = "VoiceChannel"
)

// Channel is the single canonical channel schema; ChannelType discriminates
// the wire variants, unused fields stay at their zero value.
type Channel struct {
	ID            ChannelID   `json:"_id"`
	ChannelType   string      `json:"channel_type"`
	Server        ServerID    `json:"server,omitempty"`
	Name          string      `json:"name,omitempty"`
	Description   string      `json:"description,omitempty"`
	Recipients    []UserID    `json:"recipients,omitempty"`
	Icon          *Attachment `json:"icon,omitempty"`
	LastMessageID MessageID   `json:"last_message_id,omitempty"`
}

// InServer reports whether the channel belongs to a server.
func (c *Channel) InServer() bool {
	return c.Server != ""
}

type PartialChannel struct {
	Name          *string     `json:"name,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Recipients    []UserID    `json:"recipients,omitempty"`
	Icon          *Attachment `json:"icon,omitempty"`
	LastMessageID *MessageID  `json:"last_message_id,omitempty"`
}

func (c *Channel) Apply(p PartialChannel, clear []ClearField) {
	for _, cf := range clear {
		switch cf {
		case ClearIcon:
			c.Icon = nil
		case ClearDescription:
			c.Description = ""
		}
	}

	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Recipients != nil {
		c.Recipients = p.Recipients
	}
	if p.Icon != nil {
		c.Icon = p.Icon
	}
	if p.LastMessageID != nil {
		c.LastMessageID = *p.LastMessageID
	}
}
