package sqlite

import "fmt"

const (
	tableTracked = "tracked_messages"

	colChatID    = "chat_id"
	colMessageID = "message_id"
	colUpdatedAt = "updated_at"
)

var createTable = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  %s INTEGER PRIMARY KEY,
  %s INTEGER NOT NULL,
  %s INTEGER NOT NULL
);`, tableTracked, colChatID, colMessageID, colUpdatedAt)

var upsert = fmt.Sprintf(`
INSERT INTO %s (%s, %s, %s)
VALUES (?, ?, ?)
ON CONFLICT(%s) DO UPDATE SET
  %s = excluded.%s,
  %s = excluded.%s;
`, tableTracked,
	colChatID, colMessageID, colUpdatedAt,
	colChatID,
	colMessageID, colMessageID,
	colUpdatedAt, colUpdatedAt,
)

var selectByChatID = fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ?;`,
	colMessageID, colUpdatedAt, tableTracked, colChatID)
