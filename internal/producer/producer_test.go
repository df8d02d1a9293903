package producer

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
	"github.com/aevon-lab/hybrid-events/internal/bus"
	"github.com/aevon-lab/hybrid-events/internal/core/storage"
	"github.com/aevon-lab/hybrid-events/internal/core/storage/sqlite"
	"github.com/aevon-lab/hybrid-events/internal/migrations"
	busmocks "github.com/aevon-lab/hybrid-events/internal/mocks/bus"
	storagemocks "github.com/aevon-lab/hybrid-events/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC)

func newTestProducer(t *testing.T, seq storage.Sequencer, events EventInserter, opts Options) *Producer {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	if opts.Intn == nil {
		opts.Intn = func(int) int { return 42 }
	}
	p, err := New(seq, events, opts)
	require.NoError(t, err)
	return p
}

// storedCopy mimics a store assigning an id on insert.
func storedCopy(storeID string) func(context.Context, *v1.Event) (*v1.Event, error) {
	return func(_ context.Context, evt *v1.Event) (*v1.Event, error) {
		out := *evt
		out.StoreID = storeID
		return &out, nil
	}
}

func TestNew_Defaults(t *testing.T) {
	p, err := New(storagemocks.NewSequencer(t), storagemocks.NewEventRepository(t), Options{})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(p.ID(), "prd-"))
	require.Len(t, p.ID(), len("prd-")+8)
	require.Equal(t, DefaultSource, p.source)
	require.Equal(t, bus.DefaultSubject, p.subject)
	require.IsType(t, &bus.NoopPublisher{}, p.publisher)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(nil, storagemocks.NewEventRepository(t), Options{})
	require.Error(t, err)

	_, err = New(storagemocks.NewSequencer(t), nil, Options{})
	require.Error(t, err)
}

func TestProducer_BuildEvent(t *testing.T) {
	p := newTestProducer(t, storagemocks.NewSequencer(t), storagemocks.NewEventRepository(t), Options{Source: "lab"})

	tests := []struct {
		seq    int64
		status string
	}{
		{seq: 1, status: "WARN"},
		{seq: 2, status: "OK"},
		{seq: 17, status: "WARN"},
		{seq: 1000, status: "OK"},
	}

	for _, tc := range tests {
		evt := p.BuildEvent(tc.seq)
		require.Empty(t, evt.StoreID)
		require.Equal(t, BusinessID(tc.seq), evt.BusinessID)
		require.Equal(t, fixedNow, evt.EventTimestamp)
		require.Equal(t, 42, evt.Payload["temperature"])
		require.Equal(t, tc.status, evt.Payload["status"])
		require.Equal(t, map[string]any{"sequence": tc.seq, "source": "lab"}, evt.Payload["meta"])
	}
}

func TestProducer_InsertNext(t *testing.T) {
	seq := storagemocks.NewSequencer(t)
	repo := storagemocks.NewEventRepository(t)
	pub := busmocks.NewPublisher(t)

	seq.EXPECT().NextSequence(mock.Anything).Return(int64(7), nil).Once()
	repo.EXPECT().
		InsertOne(mock.Anything, mock.MatchedBy(func(evt *v1.Event) bool {
			return evt.BusinessID == "id_7" && evt.Payload["status"] == StatusOdd
		})).
		RunAndReturn(storedCopy("0194fdc2-0000-7000-8000-000000000007")).
		Once()

	p := newTestProducer(t, seq, repo, Options{Publisher: pub, Subject: "test.subject"})
	pub.EXPECT().
		Publish(mock.Anything, "test.subject", bus.EventInserted{
			StoreID:        "0194fdc2-0000-7000-8000-000000000007",
			BusinessID:     "id_7",
			EventTimestamp: fixedNow,
			Origin:         p.ID(),
		}).
		Return(nil).
		Once()

	evt, err := p.InsertNext(context.Background())
	require.NoError(t, err)
	require.Equal(t, "id_7", evt.BusinessID)
	require.Equal(t, "0194fdc2-0000-7000-8000-000000000007", evt.StoreID)
}

func TestProducer_InsertNext_SequenceErrorSkipsInsert(t *testing.T) {
	seq := storagemocks.NewSequencer(t)
	repo := storagemocks.NewEventRepository(t)

	seq.EXPECT().NextSequence(mock.Anything).Return(int64(0), storage.ErrCounterCorrupt).Once()

	p := newTestProducer(t, seq, repo, Options{})
	_, err := p.InsertNext(context.Background())
	require.ErrorIs(t, err, storage.ErrCounterCorrupt)
}

func TestProducer_InsertNext_PublishFailureIsNotFatal(t *testing.T) {
	seq := storagemocks.NewSequencer(t)
	repo := storagemocks.NewEventRepository(t)
	pub := busmocks.NewPublisher(t)

	seq.EXPECT().NextSequence(mock.Anything).Return(int64(2), nil).Once()
	repo.EXPECT().InsertOne(mock.Anything, mock.Anything).RunAndReturn(storedCopy("s-2")).Once()
	pub.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("nats down")).Once()

	p := newTestProducer(t, seq, repo, Options{Publisher: pub})
	evt, err := p.InsertNext(context.Background())
	require.NoError(t, err)
	require.Equal(t, "s-2", evt.StoreID)
}

func TestProducer_Run_BoundedDoesNotSleepAfterLastIteration(t *testing.T) {
	seq := storagemocks.NewSequencer(t)
	repo := storagemocks.NewEventRepository(t)

	seq.EXPECT().NextSequence(mock.Anything).Return(int64(1), nil).Once()
	repo.EXPECT().InsertOne(mock.Anything, mock.Anything).RunAndReturn(storedCopy("s-1")).Once()

	p := newTestProducer(t, seq, repo, Options{})

	start := time.Now()
	n, err := p.Run(context.Background(), 1, time.Hour)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Less(t, time.Since(start), time.Minute)
}

func TestProducer_Run_ZeroIterations(t *testing.T) {
	p := newTestProducer(t, storagemocks.NewSequencer(t), storagemocks.NewEventRepository(t), Options{})

	n, err := p.Run(context.Background(), 0, time.Second)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestProducer_Run_StopsOnInsertError(t *testing.T) {
	seq := storagemocks.NewSequencer(t)
	repo := storagemocks.NewEventRepository(t)

	seq.EXPECT().NextSequence(mock.Anything).Return(int64(1), nil).Once()
	seq.EXPECT().NextSequence(mock.Anything).Return(int64(2), nil).Once()
	repo.EXPECT().InsertOne(mock.Anything, mock.Anything).RunAndReturn(storedCopy("s-1")).Once()
	repo.EXPECT().InsertOne(mock.Anything, mock.Anything).Return(nil, errors.New("disk full")).Once()

	p := newTestProducer(t, seq, repo, Options{})
	n, err := p.Run(context.Background(), 5, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
	require.Equal(t, 1, n)
}

func TestProducer_Run_CancelledBeforeFirstIteration(t *testing.T) {
	p := newTestProducer(t, storagemocks.NewSequencer(t), storagemocks.NewEventRepository(t), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := p.Run(ctx, -1, time.Second)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, n)
}

func TestProducer_Run_CancelDuringThrottleStopsLoop(t *testing.T) {
	seq := storagemocks.NewSequencer(t)
	repo := storagemocks.NewEventRepository(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seq.EXPECT().NextSequence(mock.Anything).Return(int64(1), nil).Once()
	repo.EXPECT().
		InsertOne(mock.Anything, mock.Anything).
		RunAndReturn(func(c context.Context, evt *v1.Event) (*v1.Event, error) {
			// Cancel once the first insert lands; the producer is about to sleep.
			cancel()
			return storedCopy("s-1")(c, evt)
		}).
		Once()

	p := newTestProducer(t, seq, repo, Options{})

	done := make(chan struct{})
	var (
		n   int
		err error
	)
	go func() {
		defer close(done)
		n, err = p.Run(ctx, -1, time.Hour)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer did not stop after cancellation")
	}
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, n)
}

func TestSleep(t *testing.T) {
	require.NoError(t, sleep(context.Background(), 0))
	require.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, sleep(ctx, time.Hour), context.DeadlineExceeded)
}

func TestProducer_BoundedRunAgainstSQLite(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "producer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.RunMigrations(db, migrations.DialectSQLite, true))

	store, err := sqlite.NewStore(ctx, db)
	require.NoError(t, err)

	p, err := New(sqlite.NewCounter(db, ""), store, Options{})
	require.NoError(t, err)

	n, err := p.Run(ctx, 3, 0)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	var prev int64
	for _, evt := range all {
		require.NotEmpty(t, evt.StoreID)

		meta, ok := evt.Payload["meta"].(map[string]any)
		require.True(t, ok, "meta should be a nested mapping")
		require.Equal(t, DefaultSource, meta["source"])

		seqNum, ok := meta["sequence"].(json.Number)
		require.True(t, ok, "sequence should decode as a JSON number")
		seq, err := seqNum.Int64()
		require.NoError(t, err)
		require.Greater(t, seq, prev)
		prev = seq

		require.Equal(t, BusinessID(seq), evt.BusinessID)
		want := StatusOdd
		if seq%2 == 0 {
			want = StatusEven
		}
		require.Equal(t, want, evt.Payload["status"])
	}
	require.Equal(t, int64(3), prev)
}
