package models

// ClearField names an entity field an update event resets to empty.
type ClearField string

const (
	ClearAvatar      ClearField = "Avatar"
	ClearStatusText  ClearField = "StatusText"
	ClearIcon        ClearField = "Icon"
	ClearBanner      ClearField = "Banner"
	ClearDescription ClearField = "Description"
	ClearNickname    ClearField = "Nickname"
	ClearColour      ClearField = "Colour"
)

type Role struct {
	Name   string `json:"name"`
	Colour string `json:"colour,omitempty"`
	Hoist  bool   `json:"hoist,omitempty"`
	Rank   int    `json:"rank,omitempty"`
}

type PartialRole struct {
	Name   *string `json:"name,omitempty"`
	Colour *string `json:"colour,omitempty"`
	Hoist  *bool   `json:"hoist,omitempty"`
	Rank   *int    `json:"rank,omitempty"`
}

func (r *Role) Apply(p PartialRole, clear []ClearField) {
	for _, c := range clear {
		if c == ClearColour {
			r.Colour = ""
		}
	}

	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Colour != nil {
		r.Colour = *p.Colour
	}
	if p.Hoist != nil {
		r.Hoist = *p.Hoist
	}
	if p.Rank != nil {
		r.Rank = *p.Rank
	}
}

type Server struct {
	ID          ServerID        `json:"_id"`
	Owner       UserID          `json:"owner"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Channels    []ChannelID     `json:"channels,omitempty"`
	Roles       map[RoleID]Role `json:"roles,omitempty"`
	Icon        *Attachment     `json:"icon,omitempty"`
	Banner      *Attachment     `json:"banner,omitempty"`
}

type PartialServer struct {
	Owner       *UserID         `json:"owner,omitempty"`
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Channels    []ChannelID     `json:"channels,omitempty"`
	Roles       map[RoleID]Role `json:"roles,omitempty"`
	Icon        *Attachment     `json:"icon,omitempty"`
	Banner      *Attachment     `json:"banner,omitempty"`
}

func (s *Server) Apply(p PartialServer, clear []ClearField) {
	for _, c := range clear {
		switch c {
		case ClearIcon:
			s.Icon = nil
		case ClearBanner:
			s.Banner = nil
		case ClearDescription:
			s.Description = ""
		}
	}

	if p.Owner != nil {
		s.Owner = *p.Owner
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Channels != nil {
		s.Channels = p.Channels
	}
	if p.Roles != nil {
		s.Roles = p.Roles
	}
	if p.Icon != nil {
		s.Icon = p.Icon
	}
	if p.Banner != nil {
		s.Banner = p.Banner
	}
}
