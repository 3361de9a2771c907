package process_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/app/logic/v1/process"
	"github.com/neodocs/neodocs/app/store"
	"github.com/neodocs/neodocs/pkg/types"
)

// fakeStore 只实现维护任务用到的仓储，其余方法保持未实现
type fakeStore struct {
	store.Store
	qrShares *fakeQRShareStore
	sessions *fakeShareSessionStore
	notices  *fakeNotificationStore
}

func (s *fakeStore) QRShareStore() store.QRShareStore           { return s.qrShares }
func (s *fakeStore) ShareSessionStore() store.ShareSessionStore { return s.sessions }
func (s *fakeStore) NotificationStore() store.NotificationStore { return s.notices }

type fakeQRShareStore struct {
	store.QRShareStore
	shares map[string]*types.QRShare
}

func (m *fakeQRShareStore) ListExpiredActive(ctx context.Context, now int64, limit uint64) ([]types.QRShare, error) {
	var out []types.QRShare
	for _, sh := range m.shares {
		if sh.Status == types.QR_SHARE_STATUS_ACTIVE && now > sh.ExpiresAt {
			out = append(out, *sh)
		}
		if uint64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (m *fakeQRShareStore) UpdateStatus(ctx context.Context, id, status string) error {
	m.shares[id].Status = status
	return nil
}

type fakeShareSessionStore struct {
	store.ShareSessionStore
	sessions map[string]*types.ShareSession
}

func (m *fakeShareSessionStore) DeleteExpired(ctx context.Context, before int64) (int64, error) {
	var n int64
	for id, sess := range m.sessions {
		if sess.ExpiresAt < before {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

type fakeNotificationStore struct {
	store.NotificationStore
	created []types.Notification
}

func (m *fakeNotificationStore) Create(ctx context.Context, data types.Notification) error {
	m.created = append(m.created, data)
	return nil
}

func newFakeProcess() (*process.Process, *fakeStore) {
	s := &fakeStore{
		qrShares: &fakeQRShareStore{shares: make(map[string]*types.QRShare)},
		sessions: &fakeShareSessionStore{sessions: make(map[string]*types.ShareSession)},
		notices:  &fakeNotificationStore{},
	}
	appCore := core.MustSetupCoreWithStore(core.CoreConfig{}, s)
	return process.NewProcess(appCore), s
}

func TestRefreshShareStatus(t *testing.T) {
	p, s := newFakeProcess()

	s.qrShares.shares["live"] = &types.QRShare{
		ID:        "live",
		Status:    types.QR_SHARE_STATUS_ACTIVE,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	s.qrShares.shares["stale"] = &types.QRShare{
		ID:        "stale",
		Appid:     "neodocs",
		CreatedBy: "owner-1",
		Title:     "old share",
		Status:    types.QR_SHARE_STATUS_ACTIVE,
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}
	s.qrShares.shares["revoked"] = &types.QRShare{
		ID:        "revoked",
		Status:    types.QR_SHARE_STATUS_REVOKED,
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}

	process.RefreshShareStatus(p)

	assert.Equal(t, types.QR_SHARE_STATUS_ACTIVE, s.qrShares.shares["live"].Status)
	assert.Equal(t, types.QR_SHARE_STATUS_EXPIRED, s.qrShares.shares["stale"].Status)
	// revoked 终态不被回填覆盖
	assert.Equal(t, types.QR_SHARE_STATUS_REVOKED, s.qrShares.shares["revoked"].Status)

	assert.Len(t, s.notices.created, 1)
	assert.Equal(t, types.NOTIFICATION_TYPE_SHARE_EXPIRED, s.notices.created[0].Type)
	assert.Equal(t, "owner-1", s.notices.created[0].UserID)

	// 已回填过的分享不会重复处理
	process.RefreshShareStatus(p)
	assert.Len(t, s.notices.created, 1)
}

func TestPruneExpiredSessions(t *testing.T) {
	p, s := newFakeProcess()

	s.sessions.sessions["fresh"] = &types.ShareSession{
		ID:        "fresh",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	s.sessions.sessions["gone"] = &types.ShareSession{
		ID:        "gone",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}

	process.PruneExpiredSessions(p)

	assert.Contains(t, s.sessions.sessions, "fresh")
	assert.NotContains(t, s.sessions.sessions, "gone")
}
