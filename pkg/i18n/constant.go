package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOT_FOUND         = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_PERMISSION_DENIED = "error.permission.denied"
	ERROR_UNAUTHORIZED      = "error.unauthorized"
	ERROR_EXIST             = "error.exist"
	ERROR_FORBIDDEN         = "error.forbidden"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"
	ERROR_MORE_TAHN_MAX     = "error.moreThanMax"

	ERROR_INVALID_TOKEN           = "error.invalid.token"
	ERROR_INVALID_ACCOUNT         = "error.invalid.account"
	ERROR_LOGIN_ACCOUNT_INCORRECT = "error.login.account.incorrect"
	ERROR_EMAIL_ALREADY_REGISTED  = "error.email_has_already_registed"

	ERROR_SHARE_INVALID         = "error.share.invalid"
	ERROR_SHARE_INACTIVE        = "error.share.inactive"
	ERROR_SHARE_SESSION_EXPIRED = "error.share.session.expired"
	ERROR_SHARE_EXPIRY_RANGE    = "error.share.expiry.range"
	ERROR_SHARE_VIEWS_RANGE     = "error.share.views.range"

	ERROR_DOCUMENT_NOT_FOUND        = "error.document.notfound"
	ERROR_REQUEST_ALREADY_RESPONDED = "error.request.already_responded"
	ERROR_ALREADY_SHARED            = "error.already_shared"
)
