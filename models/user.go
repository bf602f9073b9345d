package models

// Attachment is an uploaded file reference. Only the fields the client
// reads are modeled.
type Attachment struct {
	ID          string `json:"_id"`
	Tag         string `json:"tag,omitempty"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int    `json:"size,omitempty"`
}

type UserStatus struct {
	Text     string `json:"text,omitempty"`
	Presence string `json:"presence,omitempty"`
}

type User struct {
	ID           UserID      `json:"_id"`
	Username     string      `json:"username"`
	Avatar       *Attachment `json:"avatar,omitempty"`
	Status       *UserStatus `json:"status,omitempty"`
	Relationship string      `json:"relationship,omitempty"`
	Online       bool        `json:"online,omitempty"`
}

// PartialUser carries only changed fields of a User.
type PartialUser struct {
	Username     *string     `json:"username,omitempty"`
	Avatar       *Attachment `json:"avatar,omitempty"`
	Status       *UserStatus `json:"status,omitempty"`
	Relationship *string     `json:"relationship,omitempty"`
	Online       *bool       `json:"online,omitempty"`
}

// Apply overwrites fields present in the patch and resets fields named in
// clear. Applying the same patch twice yields the same result as once.
func (u *User) Apply(p PartialUser, clear []ClearField) {
	for _, c := range clear {
		switch c {
		case ClearAvatar:
			u.Avatar = nil
		case ClearStatusText:
			if u.Status != nil {
				u.Status.Text = ""
			}
		}
	}

	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Avatar != nil {
		u.Avatar = p.Avatar
	}
	if p.Status != nil {
		u.Status = p.Status
	}
	if p.Relationship != nil {
		u.Relationship = *p.Relationship
	}
	if p.Online != nil {
		u.Online = *p.Online
	}
}
