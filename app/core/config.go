package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	conf.SetConfigBytes(raw)

	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	conf.Share.ApplyDefaults()
	return *conf
}

func (c CoreConfig) LoadCustomConfig(cfg any) error {
	if len(c.bytes) == 0 {
		return nil
	}
	if err := toml.Unmarshal(c.bytes, cfg); err != nil {
		return err
	}
	return nil
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	c.Share.ApplyDefaults()
	return c
}

type CoreConfig struct {
	Addr          string              `toml:"addr"`
	Log           Log                 `toml:"log"`
	Postgres      PGConfig            `toml:"postgres"`
	Redis         RedisConfig         `toml:"redis"`
	Site          Site                `toml:"site"`
	ObjectStorage ObjectStorageDriver `toml:"object_storage"`

	Share QRShareConfig `toml:"share"`

	Security Security `toml:"security"`

	bytes []byte `toml:"-"`
}

type ObjectStorageDriver struct {
	StaticDomain string    `toml:"static_domain"`
	Driver       string    `toml:"driver"`
	S3           *S3Config `toml:"s3"`
}

type S3Config struct {
	Bucket       string `toml:"bucket"`
	Region       string `toml:"region"`
	Endpoint     string `toml:"endpoint"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
	UsePathStyle bool   `toml:"use_path_style"`
}

type Site struct {
	DefaultAvatar string `toml:"default_avatar"`
	Domain        string `toml:"domain"`
	SiteTitle     string `toml:"site_title"`
}

// QRShareConfig 二维码分享相关参数。
// 有效期与次数上限的边界与移动端约定保持一致，调整前先对齐客户端。
type QRShareConfig struct {
	MinExpiryHours  int `toml:"min_expiry_hours"`  // 分享最短有效期（小时），默认1
	MaxExpiryHours  int `toml:"max_expiry_hours"`  // 分享最长有效期（小时），默认168（7天）
	MaxViewsCeiling int `toml:"max_views_ceiling"` // 单个分享访问次数上限的上限，默认100
	SessionTTLHours int `toml:"session_ttl_hours"` // 会话有效期（小时），默认1
	QRCodeSize      int `toml:"qrcode_size"`       // 二维码图片边长（像素），默认512
}

func (c *QRShareConfig) ApplyDefaults() {
	if c.MinExpiryHours <= 0 {
		c.MinExpiryHours = 1
	}
	if c.MaxExpiryHours <= 0 {
		c.MaxExpiryHours = 168
	}
	if c.MaxViewsCeiling <= 0 {
		c.MaxViewsCeiling = 100
	}
	if c.SessionTTLHours <= 0 {
		c.SessionTTLHours = 1
	}
	if c.QRCodeSize <= 0 {
		c.QRCodeSize = 512
	}
}

func (c *CoreConfig) SetConfigBytes(raw []byte) {
	c.bytes = raw
}

type Security struct {
	EncryptKey string `toml:"encrypt_key"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("NEODOCS_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.Redis.FromENV()
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("NEODOCS_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type RedisConfig struct {
	// 单机模式配置
	Addr     string `toml:"addr"`     // Redis地址，格式: host:port
	Password string `toml:"password"` // Redis密码
	DB       int    `toml:"db"`       // Redis数据库索引 (0-15)

	// 集群模式配置
	Cluster       bool     `toml:"cluster"`        // 是否启用集群模式
	ClusterAddrs  []string `toml:"cluster_addrs"`  // 集群节点地址列表
	ClusterPasswd string   `toml:"cluster_passwd"` // 集群密码

	// 连接池配置
	PoolSize     int `toml:"pool_size"`      // 连接池大小，默认10
	MinIdleConns int `toml:"min_idle_conns"` // 最小空闲连接数，默认0
	MaxRetries   int `toml:"max_retries"`    // 最大重试次数，默认3
	DialTimeout  int `toml:"dial_timeout"`   // 连接超时(秒)，默认5
	ReadTimeout  int `toml:"read_timeout"`   // 读超时(秒)，默认3
	WriteTimeout int `toml:"write_timeout"`  // 写超时(秒)，默认3

	KeyPrefix string `toml:"key_prefix"` // Redis键前缀，用于隔离不同环境/应用
}

func (r *RedisConfig) FromENV() {
	r.Addr = os.Getenv("NEODOCS_REDIS_ADDR")
	r.Password = os.Getenv("NEODOCS_REDIS_PASSWORD")
	if dbStr := os.Getenv("NEODOCS_REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			r.DB = db
		}
	}
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("NEODOCS_LOG_LEVEL")
	l.Path = os.Getenv("NEODOCS_LOG_PATH")
}

func (l Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
