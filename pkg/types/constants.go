package types

const (
	DEFAULT_APPID = "neodocs"

	LANGUAGE_EN_KEY = "en"
	LANGUAGE_CN_KEY = "zh-CN"
)

const NO_PAGINATION = 0

// DEFAULT_PAGE_SIZE 列表接口默认分页大小
const DEFAULT_PAGE_SIZE = 20
