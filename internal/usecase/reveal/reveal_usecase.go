package reveal

import (
	"context"
	"fmt"
	"time"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/redis/go-redis/v9"
)

// Channel is the redis pub/sub channel carrying reveal flag changes.
const Channel = "cupido:reveal"

// UseCase owns the global reveal flag. The flag is read at serve time by
// every chat surface; nothing is stored per message, so toggling it
// retroactively changes how all history is displayed.
type UseCase struct {
	settingsRepo repository.SettingsRepository
	threadRepo   repository.ThreadRepository
	bus          *redis.Client
	log          *logger.Logger
}

func NewUseCase(
	settingsRepo repository.SettingsRepository,
	threadRepo repository.ThreadRepository,
	bus *redis.Client,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		settingsRepo: settingsRepo,
		threadRepo:   threadRepo,
		bus:          bus,
		log:          log.With("usecase", "reveal"),
	}
}

// Enabled is the read-time predicate applied at every serve boundary.
// A settings read failure degrades to "not revealed" rather than failing
// the surrounding request.
func (uc *UseCase) Enabled(ctx context.Context) bool {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.log.Error("failed to read reveal state, defaulting to hidden", "error", err)
		return false
	}
	return settings.RevealEnabled
}

func (uc *UseCase) State(ctx context.Context) (*domain.AppSettings, error) {
	return uc.settingsRepo.Get(ctx)
}

// SetEnabled flips the global flag, stamps revealed_at on threads the first
// time reveal turns on, and broadcasts the new value to subscribers.
func (uc *UseCase) SetEnabled(ctx context.Context, enabled bool) (*domain.AppSettings, error) {
	settings, err := uc.settingsRepo.SetRevealEnabled(ctx, enabled)
	if err != nil {
		return nil, fmt.Errorf("failed to update reveal flag: %w", err)
	}

	if enabled {
		at := time.Now().UTC()
		if settings.RevealToggledAt != nil {
			at = *settings.RevealToggledAt
		}
		if err := uc.threadRepo.MarkRevealed(ctx, at); err != nil {
			uc.log.Error("failed to stamp revealed_at on threads", "error", err)
		}
	}

	uc.publish(ctx, enabled)
	return settings, nil
}

func (uc *UseCase) publish(ctx context.Context, enabled bool) {
	if uc.bus == nil {
		return
	}
	payload := "0"
	if enabled {
		payload = "1"
	}
	if err := uc.bus.Publish(ctx, Channel, payload).Err(); err != nil {
		uc.log.Error("failed to publish reveal change", "error", err)
	}
}

// Subscribe streams reveal flag changes until ctx is cancelled. Returns a nil
// channel when no bus is configured; callers fall back to polling State.
func (uc *UseCase) Subscribe(ctx context.Context) (<-chan bool, error) {
	if uc.bus == nil {
		return nil, nil
	}

	sub := uc.bus.Subscribe(ctx, Channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to reveal channel: %w", err)
	}

	out := make(chan bool, 1)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- m.Payload == "1":
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
