package usecases

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"pfp-registry.backend/internal/domain/entities"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/internal/infrastructure/blockchain"
	"pfp-registry.backend/internal/metrics"
)

var (
	// Minimal view ABIs for the two supported ownership standards. Only the
	// single query each standard needs; transfer/mint surfaces are out of scope.
	erc721OwnerOfABI = mustParseABI(`[
		{"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}
	]`)
	erc1155BalanceOfABI = mustParseABI(`[
		{"inputs":[{"internalType":"address","name":"account","type":"address"},{"internalType":"uint256","name":"id","type":"uint256"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
	]`)
)

// OwnershipVerifier answers "does account A currently own token (addr, id)?"
// for the two supported standards. It is a pure read against the token
// contracts: no state, no side effects, no contract-existence validation.
// Which standard to query is decided by the caller; when the caller does not
// know, Verify probes ERC-721 then ERC-1155 in that fixed order.
type OwnershipVerifier struct {
	clientFactory *blockchain.ClientFactory
	rpcURL        string
}

// NewOwnershipVerifier creates a verifier bound to one RPC endpoint
func NewOwnershipVerifier(clientFactory *blockchain.ClientFactory, rpcURL string) *OwnershipVerifier {
	return &OwnershipVerifier{
		clientFactory: clientFactory,
		rpcURL:        rpcURL,
	}
}

// VerifyERC721 reports whether ownerOf(tokenID) equals account. An unissued
// id reverts on-chain and surfaces here as an error, which write-path callers
// must treat as "not owned".
func (v *OwnershipVerifier) VerifyERC721(ctx context.Context, tokenAddress, tokenID, account string) (bool, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return false, err
	}

	client, err := v.clientFactory.GetEVMClient(v.rpcURL)
	if err != nil {
		return false, err
	}

	owner, err := callTypedView[common.Address](ctx, client, tokenAddress, erc721OwnerOfABI, "ownerOf", id)
	if err != nil {
		return false, err
	}

	return owner == common.HexToAddress(account), nil
}

// VerifyERC1155 reports whether balanceOf(account, tokenID) is strictly
// positive. Multiple accounts may own the same id simultaneously.
func (v *OwnershipVerifier) VerifyERC1155(ctx context.Context, tokenAddress, tokenID, account string) (bool, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return false, err
	}

	client, err := v.clientFactory.GetEVMClient(v.rpcURL)
	if err != nil {
		return false, err
	}

	balance, err := callTypedView[*big.Int](ctx, client, tokenAddress, erc1155BalanceOfABI, "balanceOf", common.HexToAddress(account), id)
	if err != nil {
		return false, err
	}

	return balance.Sign() > 0, nil
}

// Verify dispatches on the tagged standard and returns the standard that
// confirmed ownership. With TokenStandardUnknown it tries ERC-721 first and
// falls through to ERC-1155, so a contract implementing both resolves as
// ERC-721; callers persist the resolved standard so reads never re-probe.
func (v *OwnershipVerifier) Verify(ctx context.Context, standard entities.TokenStandard, tokenAddress, tokenID, account string) (bool, entities.TokenStandard, error) {
	switch standard {
	case entities.TokenStandardERC721:
		owned, err := v.VerifyERC721(ctx, tokenAddress, tokenID, account)
		recordOwnershipCheck(entities.TokenStandardERC721, owned, err)
		return owned, entities.TokenStandardERC721, err

	case entities.TokenStandardERC1155:
		owned, err := v.VerifyERC1155(ctx, tokenAddress, tokenID, account)
		recordOwnershipCheck(entities.TokenStandardERC1155, owned, err)
		return owned, entities.TokenStandardERC1155, err

	case entities.TokenStandardUnknown:
		if owned, err := v.VerifyERC721(ctx, tokenAddress, tokenID, account); err == nil && owned {
			recordOwnershipCheck(entities.TokenStandardERC721, true, nil)
			return true, entities.TokenStandardERC721, nil
		}
		owned, err := v.VerifyERC1155(ctx, tokenAddress, tokenID, account)
		recordOwnershipCheck(entities.TokenStandardERC1155, owned, err)
		if err != nil {
			return false, entities.TokenStandardUnknown, err
		}
		if !owned {
			return false, entities.TokenStandardUnknown, nil
		}
		return true, entities.TokenStandardERC1155, nil

	default:
		return false, entities.TokenStandardUnknown, domainerrors.ErrUnsupportedStandard
	}
}

func recordOwnershipCheck(standard entities.TokenStandard, owned bool, err error) {
	outcome := "owned"
	if err != nil {
		outcome = "error"
	} else if !owned {
		outcome = "not_owned"
	}
	metrics.OwnershipChecksTotal.WithLabelValues(string(standard), outcome).Inc()
}

func parseTokenID(tokenID string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(strings.TrimSpace(tokenID), 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid token id %q", tokenID)
	}
	return id, nil
}

func callTypedView[T any](
	ctx context.Context,
	client *blockchain.EVMClient,
	contractAddress string,
	parsedABI abi.ABI,
	method string,
	args ...interface{},
) (T, error) {
	var zero T

	data, err := parsedABI.Pack(method, args...)
	if err != nil {
		return zero, err
	}
	out, err := client.CallView(ctx, contractAddress, data)
	if err != nil {
		return zero, err
	}
	vals, err := parsedABI.Unpack(method, out)
	if err != nil || len(vals) == 0 {
		return zero, fmt.Errorf("failed to decode %s", method)
	}
	value, ok := vals[0].(T)
	if !ok {
		return zero, fmt.Errorf("invalid %s return type", method)
	}
	return value, nil
}

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
