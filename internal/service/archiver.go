package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Ak1Gupta/Socket-Backend/internal/metrics"
)

// Archiver compacts a group's oldest live messages into an immutable batch
// once the live count reaches the batch size. Compaction for one group is
// serialized through a per-group mutex so near-simultaneous inserts cannot
// archive overlapping message sets; different groups compact in parallel.
type Archiver struct {
	store     MessageStore
	batchSize int
	log       zerolog.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewArchiver(store MessageStore, batchSize int, log zerolog.Logger) *Archiver {
	if batchSize < 2 {
		batchSize = 10
	}
	return &Archiver{
		store:     store,
		batchSize: batchSize,
		log:       log.With().Str("component", "archiver").Logger(),
		locks:     make(map[int64]*sync.Mutex),
	}
}

func (a *Archiver) BatchSize() int {
	return a.batchSize
}

func (a *Archiver) groupLock(groupID int64) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[groupID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[groupID] = l
	}
	return l
}

// Compact archives one batch of the group's oldest live messages if the
// live count has reached the threshold. A failure leaves the live table
// untouched; the next insert into the group triggers another attempt.
func (a *Archiver) Compact(ctx context.Context, groupID int64) error {
	lock := a.groupLock(groupID)
	lock.Lock()
	defer lock.Unlock()

	count, err := a.store.CountLive(ctx, groupID)
	if err != nil {
		return storeErr("count live messages", err)
	}
	if count < int64(a.batchSize) {
		return nil
	}

	oldest, err := a.store.Oldest(ctx, groupID, a.batchSize)
	if err != nil {
		return storeErr("fetch oldest messages", err)
	}
	if len(oldest) < a.batchSize {
		// Another writer drained the group between count and fetch.
		return nil
	}

	maxNumber, err := a.store.MaxBatchNumber(ctx, groupID)
	if err != nil {
		return storeErr("resolve batch number", err)
	}
	number := maxNumber + 1

	if err := a.store.ArchiveBatch(ctx, groupID, number, oldest); err != nil {
		return storeErr("archive batch", err)
	}

	metrics.BatchesCreated.Inc()
	a.log.Info().
		Int64("group_id", groupID).
		Int("batch_number", number).
		Int("messages", len(oldest)).
		Msg("archived message batch")
	return nil
}
