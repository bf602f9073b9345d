package models

import (
	"errors"
	"fmt"
)

// Entity ids are 26 character ULIDs in Crockford base32.
const idLength = 26

var ErrInvalidID = errors.New("invalid id")

type UserID string

type ServerID string

type ChannelID string

type RoleID string

type MessageID string

// MemberCompositeID identifies a member as a (server, user) pair.
type MemberCompositeID struct {
	Server ServerID `json:"server"`
	User   UserID   `json:"user"`
}

// CheckID validates length and charset of a raw id string.
func CheckID(s string) error {
	if len(s) != idLength {
		return fmt.Errorf("%w: want %d characters, got %d", ErrInvalidID, idLength, len(s))
	}

	for i := 0; i < len(s); i++ {
		if !isIDChar(s[i]) {
			return fmt.Errorf("%w: bad character %q at index %d", ErrInvalidID, s[i], i)
		}
	}

	return nil
}

func isIDChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'A' && c <= 'Z':
		return c != 'I' && c != 'L' && c != 'O' && c != 'U'
	default:
		return false
	}
}
