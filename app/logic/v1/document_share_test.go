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

func seedUser(s *memStore, id, name string) {
	s.users[testAppid+"/"+id] = types.User{
		ID:    id,
		Appid: testAppid,
		Name:  name,
		Email: name + "@example.com",
	}
}

func TestShareDocument(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedUser(s, "bob", "Bob")

	logic := v1.NewDocumentShareLogic(userContext(testAppid, testOwner), appCore)
	share, err := logic.ShareDocument("doc-1", "bob", types.PERMISSION_VIEW, "for your records", 0)
	assert.NoError(t, err)
	assert.Equal(t, types.DOCUMENT_SHARE_STATUS_PENDING, share.Status)
	assert.NotZero(t, share.ID)

	assert.Equal(t, 1, s.countActivities(types.ACTIVITY_DOCUMENT_SHARED))

	// 相同接收人存在待处理分享时重复分享被拒绝
	_, err = logic.ShareDocument("doc-1", "bob", types.PERMISSION_VIEW, "", 0)
	assertCode(t, err, http.StatusForbidden, i18n.ERROR_ALREADY_SHARED)
}

func TestShareDocumentValidation(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")

	logic := v1.NewDocumentShareLogic(userContext(testAppid, testOwner), appCore)

	_, err := logic.ShareDocument("doc-1", testOwner, types.PERMISSION_VIEW, "", 0)
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_INVALIDARGUMENT)

	_, err = logic.ShareDocument("doc-1", "bob", "admin", "", 0)
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_INVALIDARGUMENT)

	_, err = logic.ShareDocument("doc-404", "bob", types.PERMISSION_VIEW, "", 0)
	assertCode(t, err, http.StatusNotFound, i18n.ERROR_DOCUMENT_NOT_FOUND)

	stranger := v1.NewDocumentShareLogic(userContext(testAppid, "mallory"), appCore)
	_, err = stranger.ShareDocument("doc-1", "bob", types.PERMISSION_VIEW, "", 0)
	assertCode(t, err, http.StatusForbidden, i18n.ERROR_PERMISSION_DENIED)
}

func TestRespondShare(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedUser(s, "bob", "Bob")

	owner := v1.NewDocumentShareLogic(userContext(testAppid, testOwner), appCore)
	share, err := owner.ShareDocument("doc-1", "bob", types.PERMISSION_DOWNLOAD, "", time.Now().Add(72*time.Hour).Unix())
	assert.NoError(t, err)

	// 只有接收人能回应
	assertCode(t, owner.RespondShare(share.ID, true), http.StatusForbidden, i18n.ERROR_PERMISSION_DENIED)

	recipient := v1.NewDocumentShareLogic(userContext(testAppid, "bob"), appCore)
	assert.NoError(t, recipient.RespondShare(share.ID, true))
	assert.Equal(t, types.DOCUMENT_SHARE_STATUS_ACCEPTED, s.shares[share.ID].Status)

	// 接受后写入授权行
	access, err := s.DocumentAccessStore().GetAccess(userContext(testAppid, "bob"), "doc-1", "bob")
	assert.NoError(t, err)
	assert.NotNil(t, access)
	assert.Equal(t, types.PERMISSION_DOWNLOAD, access.Permission)

	// 已回应的分享不能再次回应
	assertCode(t, recipient.RespondShare(share.ID, false), http.StatusForbidden, i18n.ERROR_REQUEST_ALREADY_RESPONDED)

	assertCode(t, recipient.RespondShare(9999, true), http.StatusNotFound, i18n.ERROR_NOT_FOUND)
}

func TestRespondShareDecline(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedUser(s, "bob", "Bob")

	owner := v1.NewDocumentShareLogic(userContext(testAppid, testOwner), appCore)
	share, err := owner.ShareDocument("doc-1", "bob", types.PERMISSION_VIEW, "", 0)
	assert.NoError(t, err)

	recipient := v1.NewDocumentShareLogic(userContext(testAppid, "bob"), appCore)
	assert.NoError(t, recipient.RespondShare(share.ID, false))
	assert.Equal(t, types.DOCUMENT_SHARE_STATUS_DECLINED, s.shares[share.ID].Status)

	// 拒绝不产生授权
	access, _ := s.DocumentAccessStore().GetAccess(userContext(testAppid, "bob"), "doc-1", "bob")
	assert.Nil(t, access)

	// 拒绝后可以重新发起分享
	_, err = owner.ShareDocument("doc-1", "bob", types.PERMISSION_VIEW, "", 0)
	assert.NoError(t, err)
}

func TestListShares(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedUser(s, "bob", "Bob")

	owner := v1.NewDocumentShareLogic(userContext(testAppid, testOwner), appCore)
	_, err := owner.ShareDocument("doc-1", "bob", types.PERMISSION_VIEW, "", 0)
	assert.NoError(t, err)

	sent, err := owner.ListSharedByMe(1, 20)
	assert.NoError(t, err)
	assert.Len(t, sent, 1)

	recipient := v1.NewDocumentShareLogic(userContext(testAppid, "bob"), appCore)
	received, err := recipient.ListSharedWithMe(1, 20)
	assert.NoError(t, err)
	assert.Len(t, received, 1)

	none, err := recipient.ListSharedByMe(1, 20)
	assert.NoError(t, err)
	assert.Empty(t, none)
}
