package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
	"pfp-registry.backend/internal/domain/entities"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/pkg/crypto"
	"pfp-registry.backend/pkg/jwt"
	"pfp-registry.backend/pkg/logger"
	"pfp-registry.backend/pkg/redis"
)

// AuthUsecase implements wallet sign-in: a one-shot nonce challenge, a
// personal_sign proof of address control, and JWT session issuance. The
// authenticated wallet address is the caller identity every profile write
// is gated on.
type AuthUsecase struct {
	nonceStore *redis.NonceStore
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(nonceStore *redis.NonceStore, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		nonceStore: nonceStore,
		jwtService: jwtService,
	}
}

// Challenge issues a fresh sign-in challenge for the address, replacing any
// outstanding one
func (u *AuthUsecase) Challenge(ctx context.Context, input *entities.ChallengeInput) (*entities.AuthChallenge, error) {
	if !common.IsHexAddress(input.Address) {
		return nil, domainerrors.BadRequest("invalid wallet address")
	}
	address := normalizeAccount(input.Address)

	nonce, err := crypto.GenerateNonce()
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	if err := u.nonceStore.Save(ctx, address, nonce); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthChallenge{
		Address: address,
		Nonce:   nonce,
		Message: buildChallengeMessage(address, nonce),
	}, nil
}

// Login verifies a personal_sign signature over the outstanding challenge
// and issues a token pair. The nonce is consumed on success so a captured
// signature cannot be replayed.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*jwt.TokenPair, error) {
	if !common.IsHexAddress(input.Address) {
		return nil, domainerrors.BadRequest("invalid wallet address")
	}
	address := normalizeAccount(input.Address)

	nonce, err := u.nonceStore.Get(ctx, address)
	if err != nil {
		return nil, domainerrors.Unauthorized(domainerrors.ErrChallengeExpired.Error())
	}

	recovered, err := recoverSigner(buildChallengeMessage(address, nonce), input.Signature)
	if err != nil || !strings.EqualFold(recovered, address) {
		logger.Warn(ctx, "Login signature rejected",
			zap.String("address", address),
			zap.Error(err))
		return nil, domainerrors.Unauthorized(domainerrors.ErrInvalidSignature.Error())
	}

	if err := u.nonceStore.Consume(ctx, address); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	pair, err := u.jwtService.GenerateTokenPair(address)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "Wallet signed in", zap.String("address", address))
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (u *AuthUsecase) Refresh(_ context.Context, input *entities.RefreshInput) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}
	if claims.TokenType != "refresh" {
		return nil, domainerrors.Unauthorized("token is not a refresh token")
	}

	pair, err := u.jwtService.GenerateTokenPair(claims.WalletAddress)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return pair, nil
}

// buildChallengeMessage renders the text the wallet signs. Login rebuilds it
// from the stored nonce, so the format must stay stable between the two calls.
func buildChallengeMessage(address, nonce string) string {
	return fmt.Sprintf(
		"pfp-registry wants you to sign in with your Ethereum account:\n%s\n\nNonce: %s",
		address, nonce,
	)
}

// recoverSigner returns the address that produced a personal_sign signature
// over message
func recoverSigner(message, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", domainerrors.ErrInvalidSignature
	}
	if len(sig) != 65 {
		return "", domainerrors.ErrInvalidSignature
	}

	// personal_sign emits v as 27/28; go-ethereum expects 0/1
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pubKey, err := ethcrypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", domainerrors.ErrInvalidSignature
	}

	return ethcrypto.PubkeyToAddress(*pubKey).Hex(), nil
}
