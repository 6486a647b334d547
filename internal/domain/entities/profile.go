package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ProfileEntry is the last-accepted token reference for an account.
// One row per account, overwrite-only; rows are never deleted and only the
// owning account's authenticated writes can change them.
type ProfileEntry struct {
	Account      string        `json:"account"`
	TokenAddress string        `json:"tokenAddress"`
	TokenID      string        `json:"tokenId"`
	Standard     TokenStandard `json:"standard"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Reference returns the entry's token reference
func (e *ProfileEntry) Reference() TokenReference {
	return TokenReference{TokenAddress: e.TokenAddress, TokenID: e.TokenID}
}

// ProfilePictureInfo is the read-path result: the stored reference plus the
// freshness flag re-derived at query time. Accounts with no entry get the
// unset sentinel with CurrentlyOwned=true.
type ProfilePictureInfo struct {
	Account        string         `json:"account"`
	Reference      TokenReference `json:"reference"`
	Standard       TokenStandard  `json:"standard,omitempty"`
	CurrentlyOwned bool           `json:"currentlyOwned"`
}

// ProfileEventType classifies profile change-log entries
type ProfileEventType string

const (
	// ProfileEventPictureSet is emitted on every accepted setProfilePicture
	ProfileEventPictureSet ProfileEventType = "PROFILE_PICTURE_SET"
	// ProfileEventOwnershipLapsed is recorded by the sweep when a stored
	// reference no longer verifies; the reference itself is left intact
	ProfileEventOwnershipLapsed ProfileEventType = "OWNERSHIP_LAPSED"
)

// ProfileEvent is one append-only change-log row. Previous* fields are null
// on an account's first write.
type ProfileEvent struct {
	ID                   uuid.UUID        `json:"id"`
	Account              string           `json:"account"`
	EventType            ProfileEventType `json:"eventType"`
	TokenAddress         string           `json:"tokenAddress"`
	TokenID              string           `json:"tokenId"`
	Standard             TokenStandard    `json:"standard"`
	PreviousTokenAddress null.String      `json:"previousTokenAddress,omitempty"`
	PreviousTokenID      null.String      `json:"previousTokenId,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
}

// SetProfilePictureInput is the write request body. Standard is optional;
// when empty the verifier probes ERC-721 then ERC-1155 in that order.
type SetProfilePictureInput struct {
	TokenAddress string `json:"tokenAddress" binding:"required"`
	TokenID      string `json:"tokenId" binding:"required"`
	Standard     string `json:"standard"`
}

// ChallengeInput requests a login nonce for a wallet address
type ChallengeInput struct {
	Address string `json:"address" binding:"required"`
}

// LoginInput carries the personal_sign signature over the challenge message
type LoginInput struct {
	Address   string `json:"address" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// RefreshInput exchanges a refresh token for a new token pair
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
