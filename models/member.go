package models

type Member struct {
	ID       MemberCompositeID `json:"_id"`
	Nickname string            `json:"nickname,omitempty"`
	Avatar   *Attachment       `json:"avatar,omitempty"`
	Roles    []RoleID          `json:"roles,omitempty"`
}

type PartialMember struct {
	Nickname *string     `json:"nickname,omitempty"`
	Avatar   *Attachment `json:"avatar,omitempty"`
	Roles    []RoleID    `json:"roles,omitempty"`
}

func (m *Member) Apply(p PartialMember, clear []ClearField) {
	for _, c := range clear {
		switch c {
		case ClearNickname:
			m.Nickname = ""
		case ClearAvatar:
			m.Avatar = nil
		}
	}

	if p.Nickname != nil {
		m.Nickname = *p.Nickname
	}
	if p.Avatar != nil {
		m.Avatar = p.Avatar
	}
	if p.Roles != nil {
		m.Roles = p.Roles
	}
}
