package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetStoreDriver() string
	GetDatabaseURL() string
}

type ContextConfig interface {
	GetMaxTurns() int
	GetMaxTokens() int
	IsCacheEnabled() bool
	GetCacheSize() int
}

type DialogueConfig interface {
	IsSubjectLockEnabled() bool
	GetPersistTimeout() time.Duration
}

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetBaseURL() string
	GetAPIKey() string
	GetTimeout() time.Duration
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
