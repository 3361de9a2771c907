package v1

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
)

// ShareAccessLogic 是扫码访问的唯一公开入口。
// 访问成功时副作用（计数、审计、通知）恰好发生一次，失败路径不产生副作用。
type ShareAccessLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewShareAccessLogic(ctx context.Context, core *core.Core) *ShareAccessLogic {
	l := &ShareAccessLogic{
		ctx:  ctx,
		core: core,
	}

	return l
}

// AccessDescriptor 授权访问的结果描述
type AccessDescriptor struct {
	DocumentTitle       string `json:"document_title"`
	DocumentDescription string `json:"document_description"`
	Permission          string `json:"permission"`
	ExpiresAt           int64  `json:"expires_at"`
	CreatedByName       string `json:"created_by_name"`
	AccessURL           string `json:"access_url"`
	DownloadURL         string `json:"download_url,omitempty"`
	SessionToken        string `json:"session_token"`
}

// Access 处理一次扫码访问：
//  1. 解析分享，不存在则 not found
//  2. 按原始字段重新计算活跃性，不活跃直接拒绝，无副作用
//  3. 带 token 则校验会话（失败原样向上传递），否则颁发新会话
//  4. 同一事务内条件自增访问计数并记录一条 qr_accessed 审计事件，
//     竞争失败视同不活跃，不产生事件也不消耗计数
//  5. 通知创建者，返回访问描述
func (l *ShareAccessLogic) Access(shareID, sessionToken, ip, userAgent string) (*AccessDescriptor, error) {
	now := time.Now()

	share, err := l.core.Store().QRShareStore().GetQRShare(l.ctx, shareID)
	if err != nil && err != sql.ErrNoRows {
		l.core.Metrics().ShareAccessInc("error")
		return nil, errors.New("ShareAccessLogic.Access.QRShareStore.GetQRShare", i18n.ERROR_INTERNAL, err)
	}

	if share == nil {
		l.core.Metrics().ShareAccessInc("denied")
		return nil, errors.New("ShareAccessLogic.Access.QRShareStore.GetQRShare.nil", i18n.ERROR_SHARE_INVALID, nil).Code(http.StatusNotFound)
	}

	if !share.IsActive(now) {
		l.core.Metrics().ShareAccessInc("denied")
		return nil, errors.New("ShareAccessLogic.Access.inactive", i18n.ERROR_SHARE_INACTIVE, nil).Code(http.StatusBadRequest)
	}

	doc, err := l.core.Store().DocumentStore().GetDocument(l.ctx, share.Appid, share.DocumentID)
	if err != nil && err != sql.ErrNoRows {
		l.core.Metrics().ShareAccessInc("error")
		return nil, errors.New("ShareAccessLogic.Access.DocumentStore.GetDocument", i18n.ERROR_INTERNAL, err)
	}

	if doc == nil {
		l.core.Metrics().ShareAccessInc("error")
		return nil, errors.New("ShareAccessLogic.Access.DocumentStore.GetDocument.nil", i18n.ERROR_INTERNAL, nil)
	}

	creator, err := l.core.Store().UserStore().GetUser(l.ctx, share.Appid, share.CreatedBy)
	if err != nil && err != sql.ErrNoRows {
		l.core.Metrics().ShareAccessInc("error")
		return nil, errors.New("ShareAccessLogic.Access.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}

	creatorName := share.CreatedBy
	if creator != nil {
		creatorName = creator.Name
	}

	sessionLogic := NewShareSessionLogic(l.ctx, l.core)

	var session *types.ShareSession
	if sessionToken != "" {
		if session, err = sessionLogic.Validate(sessionToken, share); err != nil {
			l.core.Metrics().ShareAccessInc("denied")
			return nil, err
		}
		l.core.Metrics().SessionIssueInc("reused")
	} else {
		if session, err = sessionLogic.Issue(share, ip, userAgent); err != nil {
			l.core.Metrics().ShareAccessInc("denied")
			return nil, err
		}
		l.core.Metrics().SessionIssueInc("issued")
	}

	// 计数自增与活跃性终检在同一条条件 UPDATE 内完成，
	// 并发访问不会把计数推过上限。自增与审计落盘同处一个事务，
	// 审计写入失败时计数一并回滚，失败路径不消耗浏览次数
	var granted bool
	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		ok, err := l.core.Store().QRShareStore().IncrementViews(ctx, share.ID, now.Unix())
		if err != nil {
			return errors.New("ShareAccessLogic.Access.QRShareStore.IncrementViews", i18n.ERROR_INTERNAL, err)
		}

		granted = ok
		if !granted {
			return nil
		}

		err = l.core.Store().ActivityStore().Create(ctx, types.Activity{
			Appid:        share.Appid,
			UserID:       share.CreatedBy,
			ActivityType: types.ACTIVITY_QR_ACCESSED,
			DocumentID:   share.DocumentID,
			QRShareID:    share.ID,
			SessionID:    session.ID,
			Description:  fmt.Sprintf("qr share accessed, document %q", doc.Title),
			Metadata:     types.Metadata{"permission": share.Permission},
			IPAddress:    ip,
			UserAgent:    userAgent,
			CreatedAt:    now.Unix(),
		})
		if err != nil {
			return errors.New("ShareAccessLogic.Access.ActivityStore.Create", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		l.core.Metrics().ShareAccessInc("error")
		return nil, err
	}

	if !granted {
		l.core.Metrics().ShareAccessInc("denied")
		return nil, errors.New("ShareAccessLogic.Access.IncrementViews.exhausted", i18n.ERROR_SHARE_INACTIVE, nil).Code(http.StatusBadRequest)
	}

	// 通知创建者，失败只记日志
	err = l.core.Store().NotificationStore().Create(l.ctx, types.Notification{
		Appid:      share.Appid,
		UserID:     share.CreatedBy,
		Type:       types.NOTIFICATION_TYPE_QR_ACCESSED,
		Title:      "Your shared document was accessed",
		Body:       fmt.Sprintf("Document %q was accessed via qr share", doc.Title),
		DocumentID: share.DocumentID,
		QRShareID:  share.ID,
		CreatedAt:  now.Unix(),
	})
	if err != nil {
		slog.Error("Failed to create access notification", slog.String("error", err.Error()), slog.String("share_id", share.ID))
	}

	l.core.Metrics().ShareAccessInc("allowed")

	descriptor := &AccessDescriptor{
		DocumentTitle:       doc.Title,
		DocumentDescription: doc.Description,
		Permission:          share.Permission,
		ExpiresAt:           share.ExpiresAt,
		CreatedByName:       creatorName,
		AccessURL:           fmt.Sprintf("%s/s/%s?session=%s", l.core.Cfg().Site.Domain, share.ID, session.SessionToken),
		SessionToken:        session.SessionToken,
	}

	if share.Permission == types.QR_SHARE_PERMISSION_DOWNLOAD {
		url, err := l.core.FileStorage().GenGetObjectPreSignURL(doc.FilePath)
		if err != nil {
			slog.Error("Failed to presign download url", slog.String("error", err.Error()), slog.String("share_id", share.ID))
		} else {
			descriptor.DownloadURL = url
		}
	}

	return descriptor, nil
}
