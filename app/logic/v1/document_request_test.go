package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
)

func TestCreateRequest(t *testing.T) {
	appCore, s := newTestCore()
	seedUser(s, "bob", "Bob")
	seedUser(s, "carol", "Carol")

	logic := v1.NewDocumentRequestLogic(userContext(testAppid, "carol"), appCore)
	request, err := logic.CreateRequest("bob", "insurance certificate", "need it for the rental")
	assert.NoError(t, err)
	assert.Equal(t, types.DOCUMENT_REQUEST_STATUS_PENDING, request.Status)
	assert.Equal(t, "carol", request.RequesterID)
	assert.Equal(t, "bob", request.RequesteeID)

	assert.Equal(t, 1, s.countActivities(types.ACTIVITY_DOCUMENT_REQUESTED))

	// 接收人收到站内通知
	notices, _ := s.NotificationStore().List(userContext(testAppid, "bob"), types.GetNotificationOptions{
		Appid:  testAppid,
		UserID: "bob",
		Type:   types.NOTIFICATION_TYPE_REQUEST_RECEIVED,
	}, 1, 10)
	assert.Len(t, notices, 1)
	assert.Equal(t, request.ID, notices[0].RequestID)
}

func TestCreateRequestValidation(t *testing.T) {
	appCore, s := newTestCore()
	seedUser(s, "carol", "Carol")

	logic := v1.NewDocumentRequestLogic(userContext(testAppid, "carol"), appCore)

	_, err := logic.CreateRequest("bob", "", "")
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_INVALIDARGUMENT)

	_, err = logic.CreateRequest("carol", "my own doc", "")
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_INVALIDARGUMENT)

	// 接收人必须存在
	_, err = logic.CreateRequest("ghost", "anything", "")
	assertCode(t, err, http.StatusNotFound, i18n.ERROR_NOT_FOUND)

	assert.Equal(t, 0, s.countActivities(types.ACTIVITY_DOCUMENT_REQUESTED))
}

func TestRespondRequestApproveWithDocument(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedUser(s, "carol", "Carol")

	requester := v1.NewDocumentRequestLogic(userContext(testAppid, "carol"), appCore)
	request, err := requester.CreateRequest(testOwner, "passport scan", "")
	assert.NoError(t, err)

	requestee := v1.NewDocumentRequestLogic(userContext(testAppid, testOwner), appCore)
	assert.NoError(t, requestee.RespondRequest(request.ID, types.REQUEST_RESPONSE_APPROVE, "here you go", "doc-1"))

	stored, _ := s.DocumentRequestStore().GetRequest(userContext(testAppid, testOwner), testAppid, request.ID)
	assert.Equal(t, types.DOCUMENT_REQUEST_STATUS_APPROVED, stored.Status)
	assert.Equal(t, "here you go", stored.ResponseMessage)
	assert.NotZero(t, stored.RespondedAt)

	// 批准并携带文档时产生一条待接受的点对点分享
	shares, _ := s.DocumentShareStore().List(userContext(testAppid, testOwner), types.GetDocumentShareOptions{
		DocumentID: "doc-1",
		SharedWith: "carol",
	}, 1, 10)
	assert.Len(t, shares, 1)
	assert.Equal(t, types.DOCUMENT_SHARE_STATUS_PENDING, shares[0].Status)

	assert.Equal(t, 1, s.countActivities(types.ACTIVITY_REQUEST_RESPONDED))

	// 请求人收到的通知带着请求的引用
	notices, _ := s.NotificationStore().List(userContext(testAppid, "carol"), types.GetNotificationOptions{
		Appid:  testAppid,
		UserID: "carol",
		Type:   types.NOTIFICATION_TYPE_REQUEST_RESPONDED,
	}, 1, 10)
	assert.Len(t, notices, 1)
	assert.Equal(t, request.ID, notices[0].RequestID)

	// 不能重复回应
	err = requestee.RespondRequest(request.ID, types.REQUEST_RESPONSE_DECLINE, "", "")
	assertCode(t, err, http.StatusForbidden, i18n.ERROR_REQUEST_ALREADY_RESPONDED)
}

func TestRespondRequestDecline(t *testing.T) {
	appCore, s := newTestCore()
	seedDocument(s, "doc-1")
	seedUser(s, "carol", "Carol")

	requester := v1.NewDocumentRequestLogic(userContext(testAppid, "carol"), appCore)
	request, err := requester.CreateRequest(testOwner, "passport scan", "")
	assert.NoError(t, err)

	// 只有接收人能回应
	err = requester.RespondRequest(request.ID, types.REQUEST_RESPONSE_DECLINE, "", "")
	assertCode(t, err, http.StatusForbidden, i18n.ERROR_PERMISSION_DENIED)

	requestee := v1.NewDocumentRequestLogic(userContext(testAppid, testOwner), appCore)
	err = requestee.RespondRequest(request.ID, "maybe", "", "")
	assertCode(t, err, http.StatusBadRequest, i18n.ERROR_INVALIDARGUMENT)

	assert.NoError(t, requestee.RespondRequest(request.ID, types.REQUEST_RESPONSE_DECLINE, "no longer have it", ""))

	stored, _ := s.DocumentRequestStore().GetRequest(userContext(testAppid, testOwner), testAppid, request.ID)
	assert.Equal(t, types.DOCUMENT_REQUEST_STATUS_DECLINED, stored.Status)

	// 拒绝不产生分享
	shares, _ := s.DocumentShareStore().List(userContext(testAppid, testOwner), types.GetDocumentShareOptions{SharedWith: "carol"}, 1, 10)
	assert.Empty(t, shares)
}

func TestListRequests(t *testing.T) {
	appCore, s := newTestCore()
	seedUser(s, "bob", "Bob")
	seedUser(s, "carol", "Carol")

	carol := v1.NewDocumentRequestLogic(userContext(testAppid, "carol"), appCore)
	_, err := carol.CreateRequest("bob", "tax report", "")
	assert.NoError(t, err)

	sent, err := carol.ListSent(1, 20)
	assert.NoError(t, err)
	assert.Len(t, sent, 1)

	bob := v1.NewDocumentRequestLogic(userContext(testAppid, "bob"), appCore)
	received, err := bob.ListReceived(1, 20)
	assert.NoError(t, err)
	assert.Len(t, received, 1)

	none, err := bob.ListSent(1, 20)
	assert.NoError(t, err)
	assert.Empty(t, none)
}
