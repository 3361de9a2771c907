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
	"github.com/neodocs/neodocs/pkg/utils"
)

type QRShareLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewQRShareLogic(ctx context.Context, core *core.Core) *QRShareLogic {
	l := &QRShareLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}

	return l
}

type CreateQRShareArgs struct {
	DocumentID  string `json:"document_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Permission  string `json:"permission"`
	ExpiresAt   int64  `json:"expires_at"`
	MaxViews    int64  `json:"max_views"`
}

// AccessURL 二维码载荷，即访问端扫码后打开的地址
func (l *QRShareLogic) AccessURL(shareID string) string {
	return fmt.Sprintf("%s/s/%s", l.core.Cfg().Site.Domain, shareID)
}

func (l *QRShareLogic) CreateQRShare(args CreateQRShareArgs) (*types.QRShare, error) {
	user := l.GetUserInfo()
	now := time.Now()
	shareCfg := l.core.Cfg().Share

	if args.Permission != types.QR_SHARE_PERMISSION_VIEW && args.Permission != types.QR_SHARE_PERMISSION_DOWNLOAD {
		return nil, errors.New("QRShareLogic.CreateQRShare.permission", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	if args.ExpiresAt <= now.Unix() {
		return nil, errors.New("QRShareLogic.CreateQRShare.expires", i18n.ERROR_SHARE_EXPIRY_RANGE, nil).Code(http.StatusBadRequest)
	}

	minExpiry := now.Add(time.Duration(shareCfg.MinExpiryHours) * time.Hour)
	maxExpiry := now.Add(time.Duration(shareCfg.MaxExpiryHours) * time.Hour)
	if args.ExpiresAt < minExpiry.Unix() || args.ExpiresAt > maxExpiry.Unix() {
		return nil, errors.New("QRShareLogic.CreateQRShare.expires.range", i18n.ERROR_SHARE_EXPIRY_RANGE, nil).Code(http.StatusBadRequest)
	}

	if args.MaxViews < 1 || args.MaxViews > int64(shareCfg.MaxViewsCeiling) {
		return nil, errors.New("QRShareLogic.CreateQRShare.maxViews", i18n.ERROR_SHARE_VIEWS_RANGE, nil).Code(http.StatusBadRequest)
	}

	doc, err := l.core.Store().DocumentStore().GetDocument(l.ctx, user.Appid, args.DocumentID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("QRShareLogic.CreateQRShare.DocumentStore.GetDocument", i18n.ERROR_INTERNAL, err)
	}

	if doc == nil {
		return nil, errors.New("QRShareLogic.CreateQRShare.DocumentStore.GetDocument.nil", i18n.ERROR_DOCUMENT_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if doc.OwnerID != user.User {
		return nil, errors.New("QRShareLogic.CreateQRShare.owner", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	share := types.QRShare{
		ID:           utils.GenRandomID(),
		Appid:        user.Appid,
		DocumentID:   args.DocumentID,
		CreatedBy:    user.User,
		Title:        args.Title,
		Description:  args.Description,
		Permission:   args.Permission,
		ExpiresAt:    args.ExpiresAt,
		MaxViews:     args.MaxViews,
		CurrentViews: 0,
		Status:       types.QR_SHARE_STATUS_ACTIVE,
		UpdatedAt:    now.Unix(),
		CreatedAt:    now.Unix(),
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().QRShareStore().Create(ctx, share); err != nil {
			return errors.New("QRShareLogic.CreateQRShare.QRShareStore.Create", i18n.ERROR_INTERNAL, err)
		}

		err := l.core.Store().ActivityStore().Create(ctx, types.Activity{
			Appid:        user.Appid,
			UserID:       user.User,
			ActivityType: types.ACTIVITY_QR_CREATED,
			DocumentID:   args.DocumentID,
			QRShareID:    share.ID,
			Description:  fmt.Sprintf("created qr share for document %q", doc.Title),
			Metadata:     types.Metadata{"permission": args.Permission, "max_views": args.MaxViews, "expires_at": args.ExpiresAt},
			CreatedAt:    now.Unix(),
		})
		if err != nil {
			return errors.New("QRShareLogic.CreateQRShare.ActivityStore.Create", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 二维码图片生成是尽力而为，失败不影响分享本身
	if url, err := l.generateQRCode(share.ID); err != nil {
		slog.Error("Failed to generate qr code image", slog.String("error", err.Error()), slog.String("share_id", share.ID))
	} else if url != "" {
		share.QRCodeURL = url
	}

	return &share, nil
}

func (l *QRShareLogic) generateQRCode(shareID string) (string, error) {
	timer := l.core.Metrics().QREncodeTimer()
	defer timer.ObserveDuration()

	png, err := l.core.QREncoder().EncodePNG(l.AccessURL(shareID))
	if err != nil {
		return "", err
	}

	filePath := fmt.Sprintf("/qrcode/%s.png", shareID)
	if err = l.core.FileStorage().SaveFile(filePath, png); err != nil {
		return "", err
	}

	url := l.core.FileStorage().GetStaticDomain() + filePath
	if err = l.core.Store().QRShareStore().UpdateQRCodeURL(l.ctx, shareID, url); err != nil {
		return "", err
	}
	return url, nil
}

// RevokeQRShare 撤销分享。重复撤销视为成功，已过期的分享不再发生状态迁移。
func (l *QRShareLogic) RevokeQRShare(id string) error {
	user := l.GetUserInfo()

	share, err := l.core.Store().QRShareStore().GetQRShare(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("QRShareLogic.RevokeQRShare.QRShareStore.GetQRShare", i18n.ERROR_INTERNAL, err)
	}

	if share == nil || share.Appid != user.Appid {
		return errors.New("QRShareLogic.RevokeQRShare.QRShareStore.GetQRShare.nil", i18n.ERROR_SHARE_INVALID, nil).Code(http.StatusNotFound)
	}

	if share.CreatedBy != user.User {
		return errors.New("QRShareLogic.RevokeQRShare.creator", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}

	if share.Status == types.QR_SHARE_STATUS_REVOKED {
		// 幂等，重复撤销直接成功
		return nil
	}

	if share.Status == types.QR_SHARE_STATUS_EXPIRED || share.IsExpired(time.Now()) {
		// expired 为终态，撤销不再覆盖
		return nil
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().QRShareStore().UpdateStatus(ctx, id, types.QR_SHARE_STATUS_REVOKED); err != nil {
			return errors.New("QRShareLogic.RevokeQRShare.QRShareStore.UpdateStatus", i18n.ERROR_INTERNAL, err)
		}

		err := l.core.Store().ActivityStore().Create(ctx, types.Activity{
			Appid:        user.Appid,
			UserID:       user.User,
			ActivityType: types.ACTIVITY_QR_REVOKED,
			DocumentID:   share.DocumentID,
			QRShareID:    id,
			Description:  "revoked qr share",
			CreatedAt:    time.Now().Unix(),
		})
		if err != nil {
			return errors.New("QRShareLogic.RevokeQRShare.ActivityStore.Create", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
}

func (l *QRShareLogic) GetQRShare(id string) (*types.QRShare, error) {
	user := l.GetUserInfo()

	share, err := l.core.Store().QRShareStore().GetQRShare(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("QRShareLogic.GetQRShare.QRShareStore.GetQRShare", i18n.ERROR_INTERNAL, err)
	}

	if share == nil || share.Appid != user.Appid || share.CreatedBy != user.User {
		return nil, errors.New("QRShareLogic.GetQRShare.QRShareStore.GetQRShare.nil", i18n.ERROR_SHARE_INVALID, nil).Code(http.StatusNotFound)
	}

	return share, nil
}

// ListShareSessions 列出某个分享名下已颁发的访问会话，仅创建者可见
func (l *QRShareLogic) ListShareSessions(id string) ([]types.ShareSession, error) {
	user := l.GetUserInfo()

	share, err := l.core.Store().QRShareStore().GetQRShare(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("QRShareLogic.ListShareSessions.QRShareStore.GetQRShare", i18n.ERROR_INTERNAL, err)
	}

	if share == nil || share.Appid != user.Appid || share.CreatedBy != user.User {
		return nil, errors.New("QRShareLogic.ListShareSessions.QRShareStore.GetQRShare.nil", i18n.ERROR_SHARE_INVALID, nil).Code(http.StatusNotFound)
	}

	list, err := l.core.Store().ShareSessionStore().ListByQRShare(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("QRShareLogic.ListShareSessions.ShareSessionStore.ListByQRShare", i18n.ERROR_INTERNAL, err)
	}

	return list, nil
}

func (l *QRShareLogic) ListQRShares(documentID, status string, page, pageSize uint64) ([]types.QRShare, int64, error) {
	user := l.GetUserInfo()
	opts := types.GetQRShareOptions{
		Appid:      user.Appid,
		CreatedBy:  user.User,
		DocumentID: documentID,
		Status:     status,
	}

	list, err := l.core.Store().QRShareStore().List(l.ctx, opts, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("QRShareLogic.ListQRShares.QRShareStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().QRShareStore().Total(l.ctx, opts)
	if err != nil {
		return nil, 0, errors.New("QRShareLogic.ListQRShares.QRShareStore.Total", i18n.ERROR_INTERNAL, err)
	}

	return list, total, nil
}
