package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
)

func TestCreateQRShare(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")

	logic := v1.NewQRShareLogic(userContext(testAppid, testOwner), appCore)
	share, err := logic.CreateQRShare(v1.CreateQRShareArgs{
		DocumentID: "doc-1",
		Title:      "passport for hotel check-in",
		Permission: types.QR_SHARE_PERMISSION_VIEW,
		ExpiresAt:  time.Now().Add(24 * time.Hour).Unix(),
		MaxViews:   3,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, share.ID)
	assert.Equal(t, types.QR_SHARE_STATUS_ACTIVE, share.Status)
	assert.Equal(t, int64(0), share.CurrentViews)

	assert.Equal(t, 1, s.countActivities(types.ACTIVITY_QR_CREATED))
	assert.Contains(t, logic.AccessURL(share.ID), "/s/"+share.ID)
}

func TestCreateQRShareValidation(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")

	logic := v1.NewQRShareLogic(userContext(testAppid, testOwner), appCore)

	_, err := logic.CreateQRShare(v1.CreateQRShareArgs{
		DocumentID: "doc-1",
		Permission: "edit", // qr 分享只允许 view/download
		ExpiresAt:  time.Now().Add(24 * time.Hour).Unix(),
		MaxViews:   3,
	})
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_INVALIDARGUMENT)

	_, err = logic.CreateQRShare(v1.CreateQRShareArgs{
		DocumentID: "doc-1",
		Permission: types.QR_SHARE_PERMISSION_VIEW,
		ExpiresAt:  time.Now().Add(-time.Hour).Unix(),
		MaxViews:   3,
	})
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_SHARE_EXPIRY_RANGE)

	// 超出配置允许的最长有效期（默认7天）
	_, err = logic.CreateQRShare(v1.CreateQRShareArgs{
		DocumentID: "doc-1",
		Permission: types.QR_SHARE_PERMISSION_VIEW,
		ExpiresAt:  time.Now().Add(30 * 24 * time.Hour).Unix(),
		MaxViews:   3,
	})
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_SHARE_EXPIRY_RANGE)

	_, err = logic.CreateQRShare(v1.CreateQRShareArgs{
		DocumentID: "doc-1",
		Permission: types.QR_SHARE_PERMISSION_VIEW,
		ExpiresAt:  time.Now().Add(24 * time.Hour).Unix(),
		MaxViews:   0,
	})
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_SHARE_VIEWS_RANGE)

	_, err = logic.CreateQRShare(v1.CreateQRShareArgs{
		DocumentID: "doc-404",
		Permission: types.QR_SHARE_PERMISSION_VIEW,
		ExpiresAt:  time.Now().Add(24 * time.Hour).Unix(),
		MaxViews:   3,
	})
	assertCode(t, err, http.StatusNotFound, i18n.ERROR_DOCUMENT_NOT_FOUND)

	stranger := v1.NewQRShareLogic(userContext(testAppid, "user-2"), appCore)
	_, err = stranger.CreateQRShare(v1.CreateQRShareArgs{
		DocumentID: "doc-1",
		Permission: types.QR_SHARE_PERMISSION_VIEW,
		ExpiresAt:  time.Now().Add(24 * time.Hour).Unix(),
		MaxViews:   3,
	})
	assertCode(t, err, http.StatusForbidden, i18n.ERROR_PERMISSION_DENIED)

	assert.Equal(t, 0, s.countActivities(types.ACTIVITY_QR_CREATED))
}

func TestRevokeQRShare(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())

	logic := v1.NewQRShareLogic(userContext(testAppid, testOwner), appCore)

	assert.NoError(t, logic.RevokeQRShare("share-1"))
	assert.Equal(t, types.QR_SHARE_STATUS_REVOKED, s.qrShare("share-1").Status)
	assert.Equal(t, 1, s.countActivities(types.ACTIVITY_QR_REVOKED))

	// 幂等：重复撤销成功且不再产生审计事件
	assert.NoError(t, logic.RevokeQRShare("share-1"))
	assert.Equal(t, 1, s.countActivities(types.ACTIVITY_QR_REVOKED))
}

func TestRevokeQRShareExpiredIsTerminal(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(-time.Minute).Unix())

	logic := v1.NewQRShareLogic(userContext(testAppid, testOwner), appCore)

	// 过期为终态，撤销视为成功但不覆盖状态
	assert.NoError(t, logic.RevokeQRShare("share-1"))
	assert.Equal(t, types.QR_SHARE_STATUS_ACTIVE, s.qrShare("share-1").Status)
	assert.Equal(t, 0, s.countActivities(types.ACTIVITY_QR_REVOKED))
}

func TestRevokeQRShareAuthorization(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())

	stranger := v1.NewQRShareLogic(userContext(testAppid, "user-2"), appCore)
	assertCode(t, stranger.RevokeQRShare("share-1"), http.StatusForbidden, i18n.ERROR_PERMISSION_DENIED)

	// 其他租户看不到这个分享的存在
	otherTenant := v1.NewQRShareLogic(userContext("acme", testOwner), appCore)
	assertCode(t, otherTenant.RevokeQRShare("share-1"), http.StatusNotFound, i18n.ERROR_SHARE_INVALID)

	assertCode(t, stranger.RevokeQRShare("no-such"), http.StatusNotFound, i18n.ERROR_SHARE_INVALID)
}

func TestGetQRShareScope(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())

	owner := v1.NewQRShareLogic(userContext(testAppid, testOwner), appCore)
	share, err := owner.GetQRShare("share-1")
	assert.NoError(t, err)
	assert.Equal(t, "share-1", share.ID)

	stranger := v1.NewQRShareLogic(userContext(testAppid, "user-2"), appCore)
	_, err = stranger.GetQRShare("share-1")
	assertCode(t, err, http.StatusNotFound, i18n.ERROR_SHARE_INVALID)
}

func TestListShareSessions(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())
	seedQRShare(s, "share-2", "doc-1", 5, time.Now().Add(time.Hour).Unix())
	s.sessions["token-1"] = types.ShareSession{
		ID:           "sess-1",
		QRShareID:    "share-1",
		SessionToken: "token-1",
		IPAddress:    "203.0.113.7",
		Status:       types.SHARE_SESSION_STATUS_ACTIVE,
	}
	s.sessions["token-2"] = types.ShareSession{
		ID:           "sess-2",
		QRShareID:    "share-2",
		SessionToken: "token-2",
		Status:       types.SHARE_SESSION_STATUS_ACTIVE,
	}

	owner := v1.NewQRShareLogic(userContext(testAppid, testOwner), appCore)
	list, err := owner.ListShareSessions("share-1")
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "sess-1", list[0].ID)
	assert.Equal(t, "203.0.113.7", list[0].IPAddress)

	// 非创建者与不存在的分享表现一致
	stranger := v1.NewQRShareLogic(userContext(testAppid, "user-2"), appCore)
	_, err = stranger.ListShareSessions("share-1")
	assertCode(t, err, http.StatusNotFound, i18n.ERROR_SHARE_INVALID)

	_, err = owner.ListShareSessions("no-such")
	assertCode(t, err, http.StatusNotFound, i18n.ERROR_SHARE_INVALID)
}

func TestListQRShares(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedQRShare(s, "share-1", "doc-1", 5, time.Now().Add(time.Hour).Unix())
	seedQRShare(s, "share-2", "doc-1", 5, time.Now().Add(time.Hour).Unix())

	logic := v1.NewQRShareLogic(userContext(testAppid, testOwner), appCore)
	list, total, err := logic.ListQRShares("doc-1", "", 1, 20)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), total)

	list, total, err = logic.ListQRShares("", types.QR_SHARE_STATUS_REVOKED, 1, 20)
	assert.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(0), total)
}
