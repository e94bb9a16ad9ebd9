package config

const (
	TypeBroadcastReleaseNote = "broadcast:release-note"
	TypeSendEmail            = "email:send"
	TypeCacheWarm            = "cache:warm"
)

var DefinedTasks = map[string]struct{}{
	TypeBroadcastReleaseNote: {},
	TypeSendEmail:            {},
	TypeCacheWarm:            {},
}
