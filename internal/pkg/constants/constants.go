package constants

import "time"

const (
	ViperServerAddrKey        = "server.addr"
	ViperSecretKey            = "server.secret"
	ViperCORSOriginsKey       = "server.cors_origins"
	ViperLogLevelKey          = "log.level"
	ViperLogDevelopmentKey    = "log.development"
	ViperRecordsSourceKey     = "records.source"
	ViperRecordsPathKey       = "records.path"
	ViperRecordsSheetKey      = "records.sheet"
	ViperPostgresDSNKey       = "postgres.dsn"
	ViperBoundaryURLKey       = "boundary.url"
	ViperFetchRetriesKey      = "http.retries"
	ViperHTTPTimeoutKey       = "http.timeout"
	ViperGoldPriceURLKey      = "gold_price.url"
	ViperGoldPriceModeKey     = "gold_price.mode"
	ViperGoldPricePathKey     = "gold_price.path"
	ViperGoldPriceSelectorKey = "gold_price.selector"
	ViperChatDefaultKey       = "chat.default_backend"
	ViperAssistantURLKey      = "chat.assistant.base_url"
	ViperAssistantNameKey     = "chat.assistant.name"
	ViperAssistantAPIKey      = "chat.assistant.api_key"
	ViperGenerativeURLKey     = "chat.generative.base_url"
	ViperGenerativeModelKey   = "chat.generative.model"
	ViperGenerativeAPIKey     = "chat.generative.api_key"
)

const (
	RecordsSourceFile     = "file"
	RecordsSourcePostgres = "postgres"
)

const (
	CookieKeySession = "amil_session"
	CtxKeySessionID  = "session_id"
)

// SessionTTL bounds both the session cookie and how long an idle chat log is kept.
const SessionTTL = 30 * 24 * time.Hour

const DefaultBoundaryURL = "https://raw.githubusercontent.com/ans-4175/peta-indonesia-geojson/master/indonesia-prov.geojson"
