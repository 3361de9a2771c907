package core

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/neodocs/neodocs/app/core/srv"
	"github.com/neodocs/neodocs/app/store"
	"github.com/neodocs/neodocs/app/store/sqlstore"
	"github.com/neodocs/neodocs/pkg/qrcode"
	"github.com/neodocs/neodocs/pkg/types"
	"github.com/neodocs/neodocs/pkg/utils"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	stores     func() store.Store
	httpClient *http.Client
	httpEngine *gin.Engine

	redis       RedisClient
	cache       types.Cache
	fileStorage FileStorage
	qrEncoder   *qrcode.Encoder

	metrics *Metrics
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28,   //days
				Compress:   true, // disabled by default
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	utils.SetupIDWorker(1)

	core := &Core{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Second * 3},
		metrics:    NewMetrics("neodocs", "core"),
		httpEngine: gin.New(),
		qrEncoder:  qrcode.NewEncoder(cfg.Share.QRCodeSize),
	}

	// setup store
	setupSqlStore(core)

	setupRedis(core)

	core.fileStorage = SetupObjectStorage(cfg.ObjectStorage)

	core.srv = srv.SetupSrvs()

	return core
}

// MustSetupCoreWithStore 使用给定的仓储实现组装 core，逻辑层测试用。
func MustSetupCoreWithStore(cfg CoreConfig, s store.Store) *Core {
	cfg.Share.ApplyDefaults()
	utils.SetupIDWorker(1)
	return &Core{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: time.Second * 3},
		httpEngine:  gin.New(),
		metrics:     NewMetrics("neodocs", "core"),
		qrEncoder:   qrcode.NewEncoder(cfg.Share.QRCodeSize),
		stores:      func() store.Store { return s },
		cache:       newLocalCache(),
		fileStorage: &NoneFileStorage{},
		srv:         srv.SetupSrvs(),
	}
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func setupSqlStore(core *Core) {
	provider := sqlstore.MustSetup(core.cfg.Postgres)
	core.stores = func() store.Store { return provider() }
	// 执行数据库表初始化
	if err := provider().Install(); err != nil {
		panic(err)
	}
}

func (s *Core) Store() store.Store {
	return s.stores()
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

func (s *Core) FileStorage() FileStorage {
	return s.fileStorage
}

func (s *Core) QREncoder() *qrcode.Encoder {
	return s.qrEncoder
}

func (s *Core) DefaultAppid() string {
	return types.DEFAULT_APPID
}
