package v1_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/neodocs/neodocs/app/core"
	v1 "github.com/neodocs/neodocs/app/logic/v1"
	"github.com/neodocs/neodocs/app/store"
	"github.com/neodocs/neodocs/pkg/security"
	"github.com/neodocs/neodocs/pkg/types"
)

// memStore 内存仓储，按接口语义模拟持久层，仅供逻辑层测试使用
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users      map[string]types.User // appid/id
	tokens     []types.AccessToken
	documents  map[string]types.Document // appid/id
	accesses   []types.DocumentAccess
	shares     map[int64]types.DocumentShare
	requests   map[string]types.DocumentRequest
	qrShares   map[string]types.QRShare
	sessions   map[string]types.ShareSession // keyed by token
	activities []types.Activity
	notices    []types.Notification

	nextID int64

	activityErr error // 注入审计写入失败
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[string]types.User),
		documents: make(map[string]types.Document),
		shares:    make(map[int64]types.DocumentShare),
		requests:  make(map[string]types.DocumentRequest),
		qrShares:  make(map[string]types.QRShare),
		sessions:  make(map[string]types.ShareSession),
	}
}

func (s *memStore) autoID() int64 {
	s.nextID++
	return s.nextID
}

// Transaction 模拟事务语义：整个事务串行执行，出错时回滚到进入前的快照
func (s *memStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	users      map[string]types.User
	tokens     []types.AccessToken
	documents  map[string]types.Document
	accesses   []types.DocumentAccess
	shares     map[int64]types.DocumentShare
	requests   map[string]types.DocumentRequest
	qrShares   map[string]types.QRShare
	sessions   map[string]types.ShareSession
	activities []types.Activity
	notices    []types.Notification
	nextID     int64
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		users:      copyMap(s.users),
		tokens:     append([]types.AccessToken(nil), s.tokens...),
		documents:  copyMap(s.documents),
		accesses:   append([]types.DocumentAccess(nil), s.accesses...),
		shares:     copyMap(s.shares),
		requests:   copyMap(s.requests),
		qrShares:   copyMap(s.qrShares),
		sessions:   copyMap(s.sessions),
		activities: append([]types.Activity(nil), s.activities...),
		notices:    append([]types.Notification(nil), s.notices...),
		nextID:     s.nextID,
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.tokens = snap.tokens
	s.documents = snap.documents
	s.accesses = snap.accesses
	s.shares = snap.shares
	s.requests = snap.requests
	s.qrShares = snap.qrShares
	s.sessions = snap.sessions
	s.activities = snap.activities
	s.notices = snap.notices
	s.nextID = snap.nextID
}

func (s *memStore) UserStore() store.UserStore                     { return &memUserStore{s: s} }
func (s *memStore) AccessTokenStore() store.AccessTokenStore       { return &memAccessTokenStore{s: s} }
func (s *memStore) DocumentStore() store.DocumentStore             { return &memDocumentStore{s: s} }
func (s *memStore) DocumentAccessStore() store.DocumentAccessStore { return &memDocumentAccessStore{s: s} }
func (s *memStore) DocumentShareStore() store.DocumentShareStore   { return &memDocumentShareStore{s: s} }
func (s *memStore) DocumentRequestStore() store.DocumentRequestStore {
	return &memDocumentRequestStore{s: s}
}
func (s *memStore) QRShareStore() store.QRShareStore           { return &memQRShareStore{s: s} }
func (s *memStore) ShareSessionStore() store.ShareSessionStore { return &memShareSessionStore{s: s} }
func (s *memStore) ActivityStore() store.ActivityStore         { return &memActivityStore{s: s} }
func (s *memStore) NotificationStore() store.NotificationStore { return &memNotificationStore{s: s} }

func (s *memStore) countActivities(activityType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, a := range s.activities {
		if a.ActivityType == activityType {
			n++
		}
	}
	return n
}

func (s *memStore) qrShare(id string) types.QRShare {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qrShares[id]
}

func (s *memStore) session(token string) types.ShareSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[token]
}

type memTable struct{}

func (memTable) GetTable(...interface{}) string { return "" }

type memUserStore struct {
	memTable
	s *memStore
}

func (m *memUserStore) Create(ctx context.Context, data types.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[data.Appid+"/"+data.ID] = data
	return nil
}

func (m *memUserStore) GetUser(ctx context.Context, appid, id string) (*types.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[appid+"/"+id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *memUserStore) GetByEmail(ctx context.Context, appid, email string) (*types.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Appid == appid && u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) ListUsers(ctx context.Context, appid string, ids []string) ([]types.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []types.User
	for _, id := range ids {
		if u, ok := m.s.users[appid+"/"+id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserStore) UpdateUserProfile(ctx context.Context, appid, id, userName, avatar string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u := m.s.users[appid+"/"+id]
	u.Name = userName
	u.Avatar = avatar
	m.s.users[appid+"/"+id] = u
	return nil
}

func (m *memUserStore) UpdateUserPassword(ctx context.Context, appid, id, salt, password string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u := m.s.users[appid+"/"+id]
	u.Salt = salt
	u.Password = password
	m.s.users[appid+"/"+id] = u
	return nil
}

func (m *memUserStore) Delete(ctx context.Context, appid, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.users, appid+"/"+id)
	return nil
}

type memAccessTokenStore struct {
	memTable
	s *memStore
}

func (m *memAccessTokenStore) Create(ctx context.Context, data types.AccessToken) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	data.ID = m.s.autoID()
	m.s.tokens = append(m.s.tokens, data)
	return nil
}

func (m *memAccessTokenStore) GetAccessToken(ctx context.Context, appid, token string) (*types.AccessToken, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, t := range m.s.tokens {
		if t.Appid == appid && t.Token == token {
			return &t, nil
		}
	}
	return nil, nil
}

func (m *memAccessTokenStore) Delete(ctx context.Context, appid, userID string, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, t := range m.s.tokens {
		if t.Appid == appid && t.UserID == userID && t.ID == id {
			m.s.tokens = append(m.s.tokens[:i], m.s.tokens[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memAccessTokenStore) ListAccessTokens(ctx context.Context, appid, userID string, page, pageSize uint64) ([]types.AccessToken, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []types.AccessToken
	for _, t := range m.s.tokens {
		if t.Appid == appid && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memAccessTokenStore) ClearUserTokens(ctx context.Context, appid, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var kept []types.AccessToken
	for _, t := range m.s.tokens {
		if !(t.Appid == appid && t.UserID == userID) {
			kept = append(kept, t)
		}
	}
	m.s.tokens = kept
	return nil
}

type memDocumentStore struct {
	memTable
	s *memStore
}

func (m *memDocumentStore) Create(ctx context.Context, data types.Document) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.documents[data.Appid+"/"+data.ID] = data
	return nil
}

func (m *memDocumentStore) GetDocument(ctx context.Context, appid, id string) (*types.Document, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if d, ok := m.s.documents[appid+"/"+id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (m *memDocumentStore) Update(ctx context.Context, appid, id string, args types.UpdateDocumentArgs) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	d := m.s.documents[appid+"/"+id]
	d.Title = args.Title
	d.Description = args.Description
	d.Tags = args.Tags
	m.s.documents[appid+"/"+id] = d
	return nil
}

func (m *memDocumentStore) UpdateStatus(ctx context.Context, appid, id, status string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	d := m.s.documents[appid+"/"+id]
	d.Status = status
	m.s.documents[appid+"/"+id] = d
	return nil
}

func (m *memDocumentStore) Delete(ctx context.Context, appid, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.documents, appid+"/"+id)
	return nil
}

func (m *memDocumentStore) matched(opts types.GetDocumentOptions) []types.Document {
	var out []types.Document
	for _, d := range m.s.documents {
		if opts.Appid != "" && d.Appid != opts.Appid {
			continue
		}
		if opts.OwnerID != "" && d.OwnerID != opts.OwnerID {
			continue
		}
		if opts.Status != "" && d.Status != opts.Status {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memDocumentStore) ListDocuments(ctx context.Context, opts types.GetDocumentOptions, page, pageSize uint64) ([]types.Document, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.matched(opts), nil
}

func (m *memDocumentStore) Total(ctx context.Context, opts types.GetDocumentOptions) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.matched(opts))), nil
}

type memDocumentAccessStore struct {
	memTable
	s *memStore
}

func (m *memDocumentAccessStore) Create(ctx context.Context, data types.DocumentAccess) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	data.ID = m.s.autoID()
	m.s.accesses = append(m.s.accesses, data)
	return nil
}

func (m *memDocumentAccessStore) GetAccess(ctx context.Context, documentID, userID string) (*types.DocumentAccess, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, a := range m.s.accesses {
		if a.DocumentID == documentID && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, nil
}

func (m *memDocumentAccessStore) UpdatePermission(ctx context.Context, documentID, userID, permission string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, a := range m.s.accesses {
		if a.DocumentID == documentID && a.UserID == userID {
			m.s.accesses[i].Permission = permission
		}
	}
	return nil
}

func (m *memDocumentAccessStore) Delete(ctx context.Context, documentID, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var kept []types.DocumentAccess
	for _, a := range m.s.accesses {
		if !(a.DocumentID == documentID && a.UserID == userID) {
			kept = append(kept, a)
		}
	}
	m.s.accesses = kept
	return nil
}

func (m *memDocumentAccessStore) DeleteAll(ctx context.Context, documentID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var kept []types.DocumentAccess
	for _, a := range m.s.accesses {
		if a.DocumentID != documentID {
			kept = append(kept, a)
		}
	}
	m.s.accesses = kept
	return nil
}

func (m *memDocumentAccessStore) ListByDocument(ctx context.Context, documentID string) ([]types.DocumentAccess, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []types.DocumentAccess
	for _, a := range m.s.accesses {
		if a.DocumentID == documentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memDocumentAccessStore) ListByUser(ctx context.Context, userID string, page, pageSize uint64) ([]types.DocumentAccess, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []types.DocumentAccess
	for _, a := range m.s.accesses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memDocumentShareStore struct {
	memTable
	s *memStore
}

func (m *memDocumentShareStore) Create(ctx context.Context, data types.DocumentShare) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	data.ID = m.s.autoID()
	m.s.shares[data.ID] = data
	return data.ID, nil
}

func (m *memDocumentShareStore) GetShare(ctx context.Context, id int64) (*types.DocumentShare, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if sh, ok := m.s.shares[id]; ok {
		return &sh, nil
	}
	return nil, nil
}

func (m *memDocumentShareStore) GetByDocumentAndUser(ctx context.Context, documentID, sharedWith string) (*types.DocumentShare, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, sh := range m.s.shares {
		if sh.DocumentID == documentID && sh.SharedWith == sharedWith {
			return &sh, nil
		}
	}
	return nil, nil
}

func (m *memDocumentShareStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	sh := m.s.shares[id]
	sh.Status = status
	m.s.shares[id] = sh
	return nil
}

func (m *memDocumentShareStore) matched(opts types.GetDocumentShareOptions) []types.DocumentShare {
	var out []types.DocumentShare
	for _, sh := range m.s.shares {
		if opts.DocumentID != "" && sh.DocumentID != opts.DocumentID {
			continue
		}
		if opts.SharedBy != "" && sh.SharedBy != opts.SharedBy {
			continue
		}
		if opts.SharedWith != "" && sh.SharedWith != opts.SharedWith {
			continue
		}
		if opts.Status != "" && sh.Status != opts.Status {
			continue
		}
		out = append(out, sh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memDocumentShareStore) List(ctx context.Context, opts types.GetDocumentShareOptions, page, pageSize uint64) ([]types.DocumentShare, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.matched(opts), nil
}

func (m *memDocumentShareStore) Total(ctx context.Context, opts types.GetDocumentShareOptions) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.matched(opts))), nil
}

type memDocumentRequestStore struct {
	memTable
	s *memStore
}

func (m *memDocumentRequestStore) Create(ctx context.Context, data types.DocumentRequest) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.requests[data.Appid+"/"+data.ID] = data
	return nil
}

func (m *memDocumentRequestStore) GetRequest(ctx context.Context, appid, id string) (*types.DocumentRequest, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if r, ok := m.s.requests[appid+"/"+id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (m *memDocumentRequestStore) Respond(ctx context.Context, appid, id, status, responseMessage string, respondedAt int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r := m.s.requests[appid+"/"+id]
	r.Status = status
	r.ResponseMessage = responseMessage
	r.RespondedAt = respondedAt
	m.s.requests[appid+"/"+id] = r
	return nil
}

func (m *memDocumentRequestStore) matched(opts types.GetDocumentRequestOptions) []types.DocumentRequest {
	var out []types.DocumentRequest
	for _, r := range m.s.requests {
		if opts.Appid != "" && r.Appid != opts.Appid {
			continue
		}
		if opts.RequesterID != "" && r.RequesterID != opts.RequesterID {
			continue
		}
		if opts.RequesteeID != "" && r.RequesteeID != opts.RequesteeID {
			continue
		}
		if opts.Status != "" && r.Status != opts.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memDocumentRequestStore) List(ctx context.Context, opts types.GetDocumentRequestOptions, page, pageSize uint64) ([]types.DocumentRequest, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.matched(opts), nil
}

func (m *memDocumentRequestStore) Total(ctx context.Context, opts types.GetDocumentRequestOptions) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.matched(opts))), nil
}

type memQRShareStore struct {
	memTable
	s *memStore
}

func (m *memQRShareStore) Create(ctx context.Context, data types.QRShare) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.qrShares[data.ID] = data
	return nil
}

func (m *memQRShareStore) GetQRShare(ctx context.Context, id string) (*types.QRShare, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if sh, ok := m.s.qrShares[id]; ok {
		return &sh, nil
	}
	return nil, nil
}

func (m *memQRShareStore) UpdateStatus(ctx context.Context, id, status string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	sh := m.s.qrShares[id]
	sh.Status = status
	sh.UpdatedAt = time.Now().Unix()
	m.s.qrShares[id] = sh
	return nil
}

func (m *memQRShareStore) UpdateQRCodeURL(ctx context.Context, id, url string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	sh := m.s.qrShares[id]
	sh.QRCodeURL = url
	m.s.qrShares[id] = sh
	return nil
}

// IncrementViews 与 SQL 实现一致：条件与自增在同一临界区内完成
func (m *memQRShareStore) IncrementViews(ctx context.Context, id string, now int64) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	sh, ok := m.s.qrShares[id]
	if !ok {
		return false, nil
	}
	if sh.Status != types.QR_SHARE_STATUS_ACTIVE || now > sh.ExpiresAt || sh.CurrentViews >= sh.MaxViews {
		return false, nil
	}
	sh.CurrentViews++
	m.s.qrShares[id] = sh
	return true, nil
}

func (m *memQRShareStore) matched(opts types.GetQRShareOptions) []types.QRShare {
	var out []types.QRShare
	for _, sh := range m.s.qrShares {
		if opts.Appid != "" && sh.Appid != opts.Appid {
			continue
		}
		if opts.CreatedBy != "" && sh.CreatedBy != opts.CreatedBy {
			continue
		}
		if opts.DocumentID != "" && sh.DocumentID != opts.DocumentID {
			continue
		}
		if opts.Status != "" && sh.Status != opts.Status {
			continue
		}
		out = append(out, sh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memQRShareStore) List(ctx context.Context, opts types.GetQRShareOptions, page, pageSize uint64) ([]types.QRShare, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.matched(opts), nil
}

func (m *memQRShareStore) Total(ctx context.Context, opts types.GetQRShareOptions) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.matched(opts))), nil
}

func (m *memQRShareStore) ListExpiredActive(ctx context.Context, now int64, limit uint64) ([]types.QRShare, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []types.QRShare
	for _, sh := range m.s.qrShares {
		if sh.Status == types.QR_SHARE_STATUS_ACTIVE && now > sh.ExpiresAt {
			out = append(out, sh)
		}
		if uint64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

type memShareSessionStore struct {
	memTable
	s *memStore
}

func (m *memShareSessionStore) Create(ctx context.Context, data types.ShareSession) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.sessions[data.SessionToken] = data
	return nil
}

func (m *memShareSessionStore) GetByToken(ctx context.Context, token string) (*types.ShareSession, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if sess, ok := m.s.sessions[token]; ok {
		return &sess, nil
	}
	return nil, nil
}

func (m *memShareSessionStore) UpdateStatus(ctx context.Context, id, status string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for token, sess := range m.s.sessions {
		if sess.ID == id {
			sess.Status = status
			m.s.sessions[token] = sess
		}
	}
	return nil
}

func (m *memShareSessionStore) ListByQRShare(ctx context.Context, qrShareID string) ([]types.ShareSession, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []types.ShareSession
	for _, sess := range m.s.sessions {
		if sess.QRShareID == qrShareID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (m *memShareSessionStore) DeleteExpired(ctx context.Context, before int64) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for token, sess := range m.s.sessions {
		if sess.ExpiresAt < before {
			delete(m.s.sessions, token)
			n++
		}
	}
	return n, nil
}

type memActivityStore struct {
	memTable
	s *memStore
}

func (m *memActivityStore) Create(ctx context.Context, data types.Activity) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.activityErr != nil {
		return m.s.activityErr
	}
	data.ID = m.s.autoID()
	m.s.activities = append(m.s.activities, data)
	return nil
}

func (m *memActivityStore) matched(opts types.GetActivityOptions) []types.Activity {
	var out []types.Activity
	for _, a := range m.s.activities {
		if opts.Appid != "" && a.Appid != opts.Appid {
			continue
		}
		if opts.UserID != "" && a.UserID != opts.UserID {
			continue
		}
		if opts.ActivityType != "" && a.ActivityType != opts.ActivityType {
			continue
		}
		if opts.DocumentID != "" && a.DocumentID != opts.DocumentID {
			continue
		}
		if opts.QRShareID != "" && a.QRShareID != opts.QRShareID {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (m *memActivityStore) List(ctx context.Context, opts types.GetActivityOptions, page, pageSize uint64) ([]types.Activity, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.matched(opts), nil
}

func (m *memActivityStore) Total(ctx context.Context, opts types.GetActivityOptions) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.matched(opts))), nil
}

type memNotificationStore struct {
	memTable
	s *memStore
}

func (m *memNotificationStore) Create(ctx context.Context, data types.Notification) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	data.ID = m.s.autoID()
	m.s.notices = append(m.s.notices, data)
	return nil
}

func (m *memNotificationStore) GetNotification(ctx context.Context, appid, userID string, id int64) (*types.Notification, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, n := range m.s.notices {
		if n.Appid == appid && n.UserID == userID && n.ID == id {
			return &n, nil
		}
	}
	return nil, nil
}

func (m *memNotificationStore) MarkRead(ctx context.Context, appid, userID string, id int64, readAt int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, n := range m.s.notices {
		if n.Appid == appid && n.UserID == userID && n.ID == id {
			m.s.notices[i].IsRead = true
			m.s.notices[i].ReadAt = readAt
		}
	}
	return nil
}

func (m *memNotificationStore) MarkAllRead(ctx context.Context, appid, userID string, readAt int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, n := range m.s.notices {
		if n.Appid == appid && n.UserID == userID && !n.IsRead {
			m.s.notices[i].IsRead = true
			m.s.notices[i].ReadAt = readAt
		}
	}
	return nil
}

func (m *memNotificationStore) matched(opts types.GetNotificationOptions) []types.Notification {
	var out []types.Notification
	for _, n := range m.s.notices {
		if opts.Appid != "" && n.Appid != opts.Appid {
			continue
		}
		if opts.UserID != "" && n.UserID != opts.UserID {
			continue
		}
		if opts.Type != "" && n.Type != opts.Type {
			continue
		}
		if opts.UnreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (m *memNotificationStore) List(ctx context.Context, opts types.GetNotificationOptions, page, pageSize uint64) ([]types.Notification, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.matched(opts), nil
}

func (m *memNotificationStore) TotalUnread(ctx context.Context, appid, userID string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.matched(types.GetNotificationOptions{Appid: appid, UserID: userID, UnreadOnly: true}))), nil
}

func newTestCore() (*core.Core, *memStore) {
	s := newMemStore()
	cfg := core.CoreConfig{}
	cfg.Site.Domain = "https://vault.example.com"
	return core.MustSetupCoreWithStore(cfg, s), s
}

func userContext(appid, userID string) context.Context {
	claims := security.NewTokenClaims(appid, types.DEFAULT_APPID, userID, time.Now().Add(time.Hour).Unix())
	return context.WithValue(context.Background(), v1.TOKEN_CONTEXT_KEY, claims)
}
