package jobs

import (
	"context"
	"notestash/internal/domain/entity"
	"notestash/internal/service"
	"notestash/internal/utils"
	"time"

	"github.com/labstack/gommon/log"
)

type ExpiredTrashRepository interface {
	FindExpired(cutoff int64) ([]*entity.TrashedNote, error)
}

// TrashSweeper permanently deletes trash entries older than the retention
// window, reusing the lifecycle service so attachment blobs go with them.
type TrashSweeper struct {
	notes     *service.DefaultNoteService
	trashRepo ExpiredTrashRepository
	retention time.Duration
}

func NewTrashSweeper(notes *service.DefaultNoteService, trashRepo ExpiredTrashRepository, retention time.Duration) *TrashSweeper {
	return &TrashSweeper{
		notes:     notes,
		trashRepo: trashRepo,
		retention: retention,
	}
}

func (t *TrashSweeper) Start(ctx context.Context) {
	// Poll every hour
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	log.Infof("Trash sweeper cron started, retention: %s", t.retention)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping trash sweeper...")
			return
		case <-ticker.C:
			t.sweep()
		}
	}
}

func (t *TrashSweeper) sweep() {
	cutoff := utils.NowUTC() - t.retention.Milliseconds()
	expired, err := t.trashRepo.FindExpired(cutoff)
	if err != nil {
		log.Errorf("Sweeper: failed to fetch expired trash entries: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	log.Infof("Sweeper: found %d expired trash entries. Purging...", len(expired))

	for _, entry := range expired {
		if apierr := t.notes.PermanentDeleteNote(entry.OwnerID, entry.ID); apierr != nil {
			// Leave it for the next pass
			log.Errorf("Sweeper: failed to purge trash entry %d: %v", entry.ID, apierr)
		}
	}
}
