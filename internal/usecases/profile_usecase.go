package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"pfp-registry.backend/internal/domain/entities"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/internal/domain/repositories"
	"pfp-registry.backend/internal/metrics"
	"pfp-registry.backend/pkg/logger"
	"pfp-registry.backend/pkg/redis"
	"pfp-registry.backend/pkg/utils"
)

// ProfilePictureSetChannel is the pub/sub channel notified after every
// accepted profile picture write.
const ProfilePictureSetChannel = "profile.picture.set"

var publishProfileEvent = redis.Publish

// ownershipChecker is the slice of OwnershipVerifier the profile flows need
type ownershipChecker interface {
	Verify(ctx context.Context, standard entities.TokenStandard, tokenAddress, tokenID, account string) (bool, entities.TokenStandard, error)
}

// ProfileUsecase implements the profile picture registry flows
type ProfileUsecase struct {
	profileRepo repositories.ProfileRepository
	eventRepo   repositories.ProfileEventRepository
	uow         repositories.UnitOfWork
	verifier    ownershipChecker
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(
	profileRepo repositories.ProfileRepository,
	eventRepo repositories.ProfileEventRepository,
	uow repositories.UnitOfWork,
	verifier ownershipChecker,
) *ProfileUsecase {
	return &ProfileUsecase{
		profileRepo: profileRepo,
		eventRepo:   eventRepo,
		uow:         uow,
		verifier:    verifier,
	}
}

// SetProfilePicture records a token reference as account's profile picture.
// The write is gated on a live ownership check against the token contract;
// every rejection, whatever its cause, surfaces as the same verification
// failure so callers cannot probe which step tripped. The entry and its
// change-log event commit atomically.
func (u *ProfileUsecase) SetProfilePicture(ctx context.Context, account string, input *entities.SetProfilePictureInput) (*entities.ProfileEntry, error) {
	if !common.IsHexAddress(account) {
		return nil, domainerrors.BadRequest("invalid account address")
	}
	if !common.IsHexAddress(input.TokenAddress) {
		return nil, domainerrors.BadRequest("invalid token address")
	}

	standard, ok := entities.ParseTokenStandard(input.Standard)
	if !ok {
		return nil, domainerrors.BadRequest("unsupported token standard")
	}

	tokenID, err := parseTokenID(input.TokenID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid token id")
	}

	account = normalizeAccount(account)

	owned, resolved, err := u.verifier.Verify(ctx, standard, input.TokenAddress, tokenID.String(), account)
	if err != nil || !owned {
		if err != nil {
			logger.Warn(ctx, "Ownership verification errored",
				zap.String("account", account),
				zap.String("token_address", input.TokenAddress),
				zap.Error(err))
		}
		return nil, domainerrors.VerificationFailed()
	}

	var previous *entities.ProfileEntry
	if prev, err := u.profileRepo.GetByAccount(ctx, account); err == nil {
		previous = prev
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	entry := &entities.ProfileEntry{
		Account:      account,
		TokenAddress: input.TokenAddress,
		TokenID:      tokenID.String(),
		Standard:     resolved,
	}

	event := &entities.ProfileEvent{
		Account:      account,
		EventType:    entities.ProfileEventPictureSet,
		TokenAddress: entry.TokenAddress,
		TokenID:      entry.TokenID,
		Standard:     resolved,
	}
	if previous != nil {
		event.PreviousTokenAddress = null.StringFrom(previous.TokenAddress)
		event.PreviousTokenID = null.StringFrom(previous.TokenID)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.profileRepo.Upsert(txCtx, entry); err != nil {
			return err
		}
		return u.eventRepo.Create(txCtx, event)
	})
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	u.notifyPictureSet(ctx, event)

	logger.Info(ctx, "Profile picture set",
		zap.String("account", account),
		zap.String("token_address", entry.TokenAddress),
		zap.String("token_id", entry.TokenID),
		zap.String("standard", string(resolved)))

	return entry, nil
}

// GetProfilePictureInfo returns the stored reference together with a live
// freshness re-check. Accounts that never wrote get the unset sentinel and
// count as currently owned. A stored reference that no longer verifies is
// surfaced as stale, never cleared; verification faults also read as stale
// rather than failing the query.
func (u *ProfileUsecase) GetProfilePictureInfo(ctx context.Context, account string) (*entities.ProfilePictureInfo, error) {
	if !common.IsHexAddress(account) {
		return nil, domainerrors.BadRequest("invalid account address")
	}
	account = normalizeAccount(account)

	entry, err := u.profileRepo.GetByAccount(ctx, account)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.ProfilePictureInfo{
				Account:        account,
				Reference:      entities.UnsetTokenReference(),
				CurrentlyOwned: true,
			}, nil
		}
		return nil, domainerrors.InternalError(err)
	}

	owned, _, err := u.verifier.Verify(ctx, entry.Standard, entry.TokenAddress, entry.TokenID, account)
	if err != nil {
		logger.Warn(ctx, "Freshness re-check errored",
			zap.String("account", account),
			zap.Error(err))
		owned = false
	}

	return &entities.ProfilePictureInfo{
		Account:        account,
		Reference:      entry.Reference(),
		Standard:       entry.Standard,
		CurrentlyOwned: owned,
	}, nil
}

// ListProfileEvents returns an account's change log, newest first
func (u *ProfileUsecase) ListProfileEvents(ctx context.Context, account string, pagination utils.PaginationParams) ([]*entities.ProfileEvent, *utils.PaginationMeta, error) {
	if !common.IsHexAddress(account) {
		return nil, nil, domainerrors.BadRequest("invalid account address")
	}

	events, total, err := u.eventRepo.GetByAccount(ctx, normalizeAccount(account), pagination)
	if err != nil {
		return nil, nil, domainerrors.InternalError(err)
	}

	meta := utils.NewPaginationMeta(total, pagination)
	return events, &meta, nil
}

// SweepResult summarizes one ownership sweep pass
type SweepResult struct {
	Checked int `json:"checked"`
	Stale   int `json:"stale"`
	Lapsed  int `json:"lapsed"`
}

// SweepOwnership re-verifies every stored reference in batches. Entries that
// no longer verify are counted and, unless the change log already ends with
// a lapse for the same token, get an OWNERSHIP_LAPSED event appended. Stored
// references are never modified or removed.
func (u *ProfileUsecase) SweepOwnership(ctx context.Context, batchSize int) (*SweepResult, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	result := &SweepResult{}
	for offset := 0; ; offset += batchSize {
		entries, err := u.profileRepo.List(ctx, offset, batchSize)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			break
		}

		for _, entry := range entries {
			result.Checked++

			owned, _, err := u.verifier.Verify(ctx, entry.Standard, entry.TokenAddress, entry.TokenID, entry.Account)
			if err != nil {
				logger.Warn(ctx, "Sweep verification errored",
					zap.String("account", entry.Account),
					zap.Error(err))
				owned = false
			}
			if owned {
				continue
			}

			result.Stale++
			if err := u.recordLapse(ctx, entry); err != nil {
				logger.Error(ctx, "Failed to record ownership lapse",
					zap.String("account", entry.Account),
					zap.Error(err))
				continue
			}
			result.Lapsed++
		}

		if len(entries) < batchSize {
			break
		}
	}

	metrics.StaleProfiles.Set(float64(result.Stale))
	logger.Info(ctx, "Ownership sweep completed",
		zap.Int("checked", result.Checked),
		zap.Int("stale", result.Stale),
		zap.Int("lapsed", result.Lapsed))

	return result, nil
}

// recordLapse appends an OWNERSHIP_LAPSED event unless the account's log
// already ends with one for the same token, keeping repeated sweeps from
// piling up duplicates.
func (u *ProfileUsecase) recordLapse(ctx context.Context, entry *entities.ProfileEntry) error {
	latest, err := u.eventRepo.GetLatestByAccount(ctx, entry.Account)
	if err == nil &&
		latest.EventType == entities.ProfileEventOwnershipLapsed &&
		latest.TokenAddress == entry.TokenAddress &&
		latest.TokenID == entry.TokenID {
		return nil
	}
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	return u.eventRepo.Create(ctx, &entities.ProfileEvent{
		Account:      entry.Account,
		EventType:    entities.ProfileEventOwnershipLapsed,
		TokenAddress: entry.TokenAddress,
		TokenID:      entry.TokenID,
		Standard:     entry.Standard,
	})
}

// notifyPictureSet publishes the accepted write on the pub/sub channel.
// Publishing is best effort: a broker outage must not fail a committed write.
func (u *ProfileUsecase) notifyPictureSet(ctx context.Context, event *entities.ProfileEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := publishProfileEvent(ctx, ProfilePictureSetChannel, payload); err != nil {
		logger.Warn(ctx, "Failed to publish profile event",
			zap.String("account", event.Account),
			zap.Error(err))
	}
}

func normalizeAccount(account string) string {
	return strings.ToLower(strings.TrimSpace(account))
}
