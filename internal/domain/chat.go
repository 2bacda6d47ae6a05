package domain

type ChatKind string

const (
	ChatPrivate    ChatKind = "private"
	ChatGroup      ChatKind = "group"
	ChatSupergroup ChatKind = "supergroup"
	ChatChannel    ChatKind = "channel"
)

func (k ChatKind) IsGroup() bool {
	return k == ChatGroup || k == ChatSupergroup
}
