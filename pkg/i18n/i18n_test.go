package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neodocs/neodocs/pkg/i18n"
)

func TestLocalizer(t *testing.T) {
	l := i18n.NewLocalizer("en", "zh-CN")
	assert.Equal(t, "This share link is invalid", l.Get("en", i18n.ERROR_SHARE_INVALID))
	assert.Equal(t, "分享链接无效", l.Get("zh-CN", i18n.ERROR_SHARE_INVALID))
	// unknown keys fall back to the key itself
	assert.Equal(t, "error.unknown.key", l.Get("en", "error.unknown.key"))
	// unknown language falls back too
	assert.Equal(t, i18n.ERROR_INTERNAL, l.Get("fr", i18n.ERROR_INTERNAL))
}
