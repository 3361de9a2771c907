package v1_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
)

const (
	testAppid = "neodocs"
	testOwner = "owner-1"
)

func seedDocument(s *memStore, id string) {
	s.documents[testAppid+"/"+id] = types.Document{
		ID:       id,
		Appid:    testAppid,
		OwnerID:  testOwner,
		Title:    "passport scan",
		FilePath: "/document/neodocs/owner-1/" + id + ".pdf",
		Status:   types.DOCUMENT_STATUS_ACTIVE,
	}
	s.users[testAppid+"/"+testOwner] = types.User{
		ID:    testOwner,
		Appid: testAppid,
		Name:  "Alice",
		Email: "alice@example.com",
	}
}

func seedQRShare(s *memStore, id, documentID string, maxViews int64, expiresAt int64) {
	s.qrShares[id] = types.QRShare{
		ID:         id,
		Appid:      testAppid,
		DocumentID: documentID,
		CreatedBy:  testOwner,
		Permission: types.QR_SHARE_PERMISSION_VIEW,
		ExpiresAt:  expiresAt,
		MaxViews:   maxViews,
		Status:     types.QR_SHARE_STATUS_ACTIVE,
		CreatedAt:  time.Now().Unix(),
	}
}

func assertCode(t *testing.T, err error, code int, key string) {
	t.Helper()
	ce, ok := err.(*errors.CustomizedError)
	if !ok {
		t.Fatalf("expected customized error, got %v", err)
	}
	assert.Equal(t, code, ce.GetCode())
	assert.Equal(t, key, ce.Message())
}

func TestShareAccessGrant(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())

	logic := v1.NewShareAccessLogic(context.Background(), appCore)
	descriptor, err := logic.Access("share-1", "", "203.0.113.7", "neodocs-app/1.0")
	assert.NoError(t, err)
	assert.Equal(t, "passport scan", descriptor.DocumentTitle)
	assert.Equal(t, types.QR_SHARE_PERMISSION_VIEW, descriptor.Permission)
	assert.Equal(t, "Alice", descriptor.CreatedByName)
	assert.NotEmpty(t, descriptor.SessionToken)
	assert.Contains(t, descriptor.AccessURL, "share-1")
	assert.Contains(t, descriptor.AccessURL, descriptor.SessionToken)

	assert.Equal(t, int64(1), s.qrShare("share-1").CurrentViews)
	assert.Equal(t, 1, s.countActivities(types.ACTIVITY_QR_ACCESSED))

	session := s.session(descriptor.SessionToken)
	assert.Equal(t, "share-1", session.QRShareID)
	assert.Equal(t, types.SHARE_SESSION_STATUS_ACTIVE, session.Status)
	assert.Equal(t, "203.0.113.7", session.IPAddress)

	notices, _ := s.NotificationStore().List(context.Background(), types.GetNotificationOptions{
		Appid:  testAppid,
		UserID: testOwner,
		Type:   types.NOTIFICATION_TYPE_QR_ACCESSED,
	}, 1, 10)
	assert.Len(t, notices, 1)
}

func TestShareAccessUnknownShare(t *testing.T) {
	appCore, s := newTestCore()

	logic := v1.NewShareAccessLogic(context.Background(), appCore)
	_, err := logic.Access("no-such-share", "", "", "")
	assertCode(t, err, http.StatusNotFound, i18n.ERROR_SHARE_INVALID)
	assert.Equal(t, 0, s.countActivities(types.ACTIVITY_QR_ACCESSED))
}

func TestShareAccessViewCeiling(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 2, time.Now().Add(time.Hour).Unix())

	logic := v1.NewShareAccessLogic(context.Background(), appCore)

	first, err := logic.Access("share-1", "", "", "")
	assert.NoError(t, err)

	// 第二次带会话凭证访问，复用而不是重新颁发
	second, err := logic.Access("share-1", first.SessionToken, "", "")
	assert.NoError(t, err)
	assert.Equal(t, first.SessionToken, second.SessionToken)

	_, err = logic.Access("share-1", first.SessionToken, "", "")
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_SHARE_INACTIVE)

	assert.Equal(t, int64(2), s.qrShare("share-1").CurrentViews)
	assert.Equal(t, 2, s.countActivities(types.ACTIVITY_QR_ACCESSED))
}

func TestShareAccessConcurrentCeiling(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 1, time.Now().Add(time.Hour).Unix())

	logic := v1.NewShareAccessLogic(context.Background(), appCore)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := logic.Access("share-1", "", "", "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var granted int
	for err := range results {
		if err == nil {
			granted++
		}
	}

	assert.Equal(t, 1, granted)
	assert.Equal(t, int64(1), s.qrShare("share-1").CurrentViews)
	assert.Equal(t, 1, s.countActivities(types.ACTIVITY_QR_ACCESSED))
}

func TestShareAccessExpiredShare(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	// 状态列仍是 active，但截止时间已过
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(-time.Minute).Unix())

	logic := v1.NewShareAccessLogic(context.Background(), appCore)
	_, err := logic.Access("share-1", "", "", "")
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_SHARE_INACTIVE)

	stored := s.qrShare("share-1")
	assert.Equal(t, int64(0), stored.CurrentViews)
	// 访问路径只读状态列，过期落盘由后台任务负责
	assert.Equal(t, types.QR_SHARE_STATUS_ACTIVE, stored.Status)
	assert.Equal(t, 0, s.countActivities(types.ACTIVITY_QR_ACCESSED))
	assert.Empty(t, s.sessions)
}

func TestShareAccessRevokedShare(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())
	sh := s.qrShares["share-1"]
	sh.Status = types.QR_SHARE_STATUS_REVOKED
	s.qrShares["share-1"] = sh

	logic := v1.NewShareAccessLogic(context.Background(), appCore)
	_, err := logic.Access("share-1", "", "", "")
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_SHARE_INACTIVE)
	assert.Equal(t, 0, s.countActivities(types.ACTIVITY_QR_ACCESSED))
}

func TestShareAccessCrossShareToken(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedDocument(s, "doc-2")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())
	seedQRShare(s, "share-2", "doc-2", 5, time.Now().Add(time.Hour).Unix())

	logic := v1.NewShareAccessLogic(context.Background(), appCore)
	descriptor, err := logic.Access("share-1", "", "", "")
	assert.NoError(t, err)

	// 会话凭证绑定分享，跨分享使用与不存在等同
	_, err = logic.Access("share-2", descriptor.SessionToken, "", "")
	assertCode(t, err, http.StatusNotFound, i18n.ERROR_NOT_FOUND)
	assert.Equal(t, int64(0), s.qrShare("share-2").CurrentViews)
}

func TestShareAccessExpiredSession(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())

	logic := v1.NewShareAccessLogic(context.Background(), appCore)
	descriptor, err := logic.Access("share-1", "", "", "")
	assert.NoError(t, err)

	sess := s.sessions[descriptor.SessionToken]
	sess.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	s.sessions[descriptor.SessionToken] = sess

	_, err = logic.Access("share-1", descriptor.SessionToken, "", "")
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_SHARE_SESSION_EXPIRED)

	// 过期会话落盘，不再可用
	assert.Equal(t, types.SHARE_SESSION_STATUS_EXPIRED, s.session(descriptor.SessionToken).Status)
	assert.Equal(t, int64(1), s.qrShare("share-1").CurrentViews)
}

func TestShareAccessAuditFailure(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())
	s.activityErr = fmt.Errorf("disk full")

	logic := v1.NewShareAccessLogic(context.Background(), appCore)
	_, err := logic.Access("share-1", "", "", "")
	assert.Error(t, err)
	assert.Equal(t, 0, s.countActivities(types.ACTIVITY_QR_ACCESSED))
	// 审计写入和计数自增同一事务，失败不消耗浏览次数
	assert.Equal(t, int64(0), s.qrShare("share-1").CurrentViews)
}
