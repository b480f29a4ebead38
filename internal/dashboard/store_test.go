package dashboard

import (
	"sync"
	"testing"

	"github.com/BerylCAtieno/client-dashboard/internal/worksheet"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	p, err := DefaultProfile()
	require.NoError(t, err)
	return NewStore(p, zaptest.NewLogger(t))
}

func TestStore_CreateGetDelete(t *testing.T) {
	store := newTestStore(t)

	id, state := store.Create()
	assert.Equal(t, 0, state.Version)

	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, state.Subscription, got.Subscription)

	require.NoError(t, store.Delete(id))
	_, err = store.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(id), ErrSessionNotFound)
}

func TestStore_DispatchKeepsStateOnError(t *testing.T) {
	store := newTestStore(t)
	id, _ := store.Create()

	s, err := store.Dispatch(id, AddFeature{Feature: "Fiyat"})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Version)

	s, err = store.Dispatch(id, AddFeature{Feature: "Fiyat"})
	assert.ErrorIs(t, err, worksheet.ErrDuplicate)
	assert.Equal(t, 1, s.Version)

	_, err = store.Dispatch(uuid.New(), AddService{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	store := newTestStore(t)
	a, _ := store.Create()
	b, _ := store.Create()

	_, err := store.Dispatch(a, AddService{})
	require.NoError(t, err)

	sa, _ := store.Get(a)
	sb, _ := store.Get(b)
	assert.Len(t, sa.Analysis.Audience, 2)
	assert.Len(t, sb.Analysis.Audience, 1)

	infos := store.List()
	require.Len(t, infos, 2)
	assert.Equal(t, "İntime Mimarlık", infos[0].Customer)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	store := newTestStore(t)
	id, _ := store.Create()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Dispatch(id, AddService{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, workers, s.Version)
	require.Len(t, s.Analysis.Audience, workers+1)
	for i, svc := range s.Analysis.Audience {
		assert.Equal(t, i+1, svc.ID)
	}
}

func TestStore_Attachment(t *testing.T) {
	store := newTestStore(t)
	id, _ := store.Create()

	s, err := store.Dispatch(id, AddAttachment{SectionID: "website", FileName: "audit.pdf", ContentType: "application/pdf", Data: []byte("%PDF")})
	require.NoError(t, err)
	sec, _ := s.Section("website")
	attID := sec.Attachments[0].ID

	att, err := store.Attachment(id, "website", attID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), att.Data)

	_, err = store.Attachment(id, "social", attID)
	assert.ErrorIs(t, err, worksheet.ErrNotFound)
	_, err = store.Attachment(id, "nope", attID)
	assert.ErrorIs(t, err, worksheet.ErrNotFound)
}
