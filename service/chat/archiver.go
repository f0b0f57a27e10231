package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/akhi1986akhi/webChat/logger"
	"github.com/akhi1986akhi/webChat/service/kafka"
)

const storeTimeout = 5 * time.Second

// Archiver drains message records onto the store and the kafka mirror off the
// routing path. Submit never blocks; when the queue is full the record is
// dropped with a log line, delivery to the recipient already happened.
type Archiver struct {
	jobs  chan MessageRecord
	gw    Gateway
	topic string
	wg    sync.WaitGroup
	once  sync.Once
}

func NewArchiver(gw Gateway, workers, queue int, topic string) *Archiver {
	if workers <= 0 {
		workers = 2
	}
	if queue <= 0 {
		queue = 256
	}
	a := &Archiver{
		jobs:  make(chan MessageRecord, queue),
		gw:    gw,
		topic: topic,
	}
	for i := 0; i < workers; i++ {
		a.wg.Add(1)
		go a.run()
	}
	return a
}

func (a *Archiver) Submit(rec MessageRecord) {
	select {
	case a.jobs <- rec:
	default:
		logger.Warnf("[archiver] queue full, dropping record from=%s to=%s", rec.FromID, rec.ToID)
	}
}

// Stop drains the queue and waits for the workers.
func (a *Archiver) Stop() {
	a.once.Do(func() { close(a.jobs) })
	a.wg.Wait()
}

func (a *Archiver) run() {
	defer a.wg.Done()
	for rec := range a.jobs {
		a.persist(rec)
		a.mirror(rec)
	}
}

func (a *Archiver) persist(rec MessageRecord) {
	if a.gw == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := a.gw.AppendMessageRecord(ctx, rec); err != nil {
		logger.Errorf("[archiver] append record from=%s to=%s: %v", rec.FromID, rec.ToID, err)
	}
}

func (a *Archiver) mirror(rec MessageRecord) {
	if a.topic == "" {
		return
	}
	b, err := json.Marshal(rec)
	if err != nil {
		logger.Errorf("[archiver] marshal record: %v", err)
		return
	}
	key := rec.FromID
	if rec.FromID > rec.ToID {
		key = rec.ToID
	}
	kafka.SendAsync(a.topic, key, b)
}
