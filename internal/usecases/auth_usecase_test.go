package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pfp-registry.backend/internal/domain/entities"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/pkg/jwt"
	"pfp-registry.backend/pkg/redis"
)

func newTestAuthUsecase(t *testing.T) *AuthUsecase {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	nonceStore := redis.NewNonceStore(5 * time.Minute)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthUsecase(nonceStore, jwtService)
}

// signChallenge produces a personal_sign signature the way a wallet would,
// returning the signer address and the 0x-prefixed signature.
func signChallenge(t *testing.T, message string) (string, string) {
	t.Helper()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	sig, err := ethcrypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[64] += 27

	return ethcrypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(sig)
}

func TestAuthFlow_ChallengeAndLogin(t *testing.T) {
	uc := newTestAuthUsecase(t)
	ctx := context.Background()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	challenge, err := uc.Challenge(ctx, &entities.ChallengeInput{Address: address})
	require.NoError(t, err)
	assert.Len(t, challenge.Nonce, 32)
	assert.Contains(t, challenge.Message, challenge.Nonce)
	assert.Contains(t, challenge.Message, challenge.Address)

	sig, err := ethcrypto.Sign(accounts.TextHash([]byte(challenge.Message)), key)
	require.NoError(t, err)
	sig[64] += 27

	pair, err := uc.Login(ctx, &entities.LoginInput{
		Address:   address,
		Signature: hexutil.Encode(sig),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// nonce is consumed: the same signature cannot log in twice
	_, err = uc.Login(ctx, &entities.LoginInput{
		Address:   address,
		Signature: hexutil.Encode(sig),
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ERR_UNAUTHORIZED", appErr.Code)
}

func TestChallenge_InvalidAddress(t *testing.T) {
	uc := newTestAuthUsecase(t)

	_, err := uc.Challenge(context.Background(), &entities.ChallengeInput{Address: "not-an-address"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ERR_BAD_REQUEST", appErr.Code)
}

func TestLogin_NoOutstandingChallenge(t *testing.T) {
	uc := newTestAuthUsecase(t)

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	_, err = uc.Login(context.Background(), &entities.LoginInput{
		Address:   address,
		Signature: "0x" + "00",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ERR_UNAUTHORIZED", appErr.Code)
	assert.Equal(t, domainerrors.ErrChallengeExpired.Error(), appErr.Message)
}

func TestLogin_WrongSigner(t *testing.T) {
	uc := newTestAuthUsecase(t)
	ctx := context.Background()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	challenge, err := uc.Challenge(ctx, &entities.ChallengeInput{Address: address})
	require.NoError(t, err)

	// signed by a different key over the right message
	_, foreignSig := signChallenge(t, challenge.Message)

	_, err = uc.Login(ctx, &entities.LoginInput{Address: address, Signature: foreignSig})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidSignature.Error(), appErr.Message)
}

func TestLogin_MalformedSignature(t *testing.T) {
	uc := newTestAuthUsecase(t)
	ctx := context.Background()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	_, err = uc.Challenge(ctx, &entities.ChallengeInput{Address: address})
	require.NoError(t, err)

	for _, sig := range []string{"not-hex", "0x1234", "0x"} {
		_, err = uc.Login(ctx, &entities.LoginInput{Address: address, Signature: sig})
		var appErr *domainerrors.AppError
		require.ErrorAs(t, err, &appErr, sig)
		assert.Equal(t, "ERR_UNAUTHORIZED", appErr.Code, sig)
	}
}

func TestRefresh(t *testing.T) {
	uc := newTestAuthUsecase(t)
	ctx := context.Background()

	pair, err := uc.jwtService.GenerateTokenPair("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	require.NoError(t, err)

	refreshed, err := uc.Refresh(ctx, &entities.RefreshInput{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := uc.jwtService.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", claims.WalletAddress)

	// an access token is not accepted in the refresh slot
	_, err = uc.Refresh(ctx, &entities.RefreshInput{RefreshToken: pair.AccessToken})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ERR_UNAUTHORIZED", appErr.Code)

	_, err = uc.Refresh(ctx, &entities.RefreshInput{RefreshToken: "garbage"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ERR_UNAUTHORIZED", appErr.Code)
}
