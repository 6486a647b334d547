package entities

import "strings"

// ZeroAddress is the unset sentinel for a token contract address
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// TokenStandard identifies which ownership semantics a token reference uses.
// The standard is chosen by the caller (or resolved once at write time by the
// fixed-order probe), never discovered dynamically on reads.
type TokenStandard string

const (
	// TokenStandardERC721 is the single-owner standard: ownerOf(id) == account
	TokenStandardERC721 TokenStandard = "ERC721"
	// TokenStandardERC1155 is the balance-based standard: balanceOf(account, id) > 0
	TokenStandardERC1155 TokenStandard = "ERC1155"
	// TokenStandardUnknown means the write path should probe ERC-721 then ERC-1155
	TokenStandardUnknown TokenStandard = ""
)

// ParseTokenStandard normalizes a client-supplied standard tag
func ParseTokenStandard(s string) (TokenStandard, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERC721", "ERC-721":
		return TokenStandardERC721, true
	case "ERC1155", "ERC-1155":
		return TokenStandardERC1155, true
	case "":
		return TokenStandardUnknown, true
	}
	return TokenStandardUnknown, false
}

// TokenReference is the (contract address, token id) pair an account
// designates as its profile picture. TokenID is a decimal string so the full
// uint256 range survives storage and JSON.
type TokenReference struct {
	TokenAddress string `json:"tokenAddress"`
	TokenID      string `json:"tokenId"`
}

// UnsetTokenReference is the sentinel returned for accounts that never set a picture
func UnsetTokenReference() TokenReference {
	return TokenReference{TokenAddress: ZeroAddress, TokenID: "0"}
}

// IsUnset reports whether the reference is the unset sentinel
func (r TokenReference) IsUnset() bool {
	return r.TokenAddress == "" || strings.EqualFold(r.TokenAddress, ZeroAddress)
}
