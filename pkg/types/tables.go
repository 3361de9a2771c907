package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "neodocs_"

const (
	TABLE_USER             = TableName("user")
	TABLE_ACCESS_TOKEN     = TableName("access_token")
	TABLE_DOCUMENT         = TableName("document")
	TABLE_DOCUMENT_ACCESS  = TableName("document_access")
	TABLE_DOCUMENT_SHARE   = TableName("document_share")
	TABLE_DOCUMENT_REQUEST = TableName("document_request")
	TABLE_QR_SHARE         = TableName("qr_share")
	TABLE_SHARE_SESSION    = TableName("share_session")
	TABLE_ACTIVITY         = TableName("activity")
	TABLE_NOTIFICATION     = TableName("notification")
)
