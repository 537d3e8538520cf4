package storage

// Export schema
const (
	queryCreateConversationsTable = `CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		file_path TEXT,
		model TEXT NOT NULL,
		total_tokens INTEGER NOT NULL DEFAULT 0,
		message_count INTEGER NOT NULL DEFAULT 0,
		created_at TEXT,
		last_activity TEXT,
		status TEXT NOT NULL,
		project_context TEXT NOT NULL
	)`

	queryCreateMessagesTable = `CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp TEXT,
		tokens INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
	)`

	queryCreateDailyUsageTable = `CREATE TABLE IF NOT EXISTS daily_usage (
		day TEXT PRIMARY KEY,
		conversations INTEGER NOT NULL,
		tokens INTEGER NOT NULL
	)`

	queryCreateBreakdownsTable = `CREATE TABLE IF NOT EXISTS breakdowns (
		kind TEXT NOT NULL,
		label TEXT NOT NULL,
		conversations INTEGER NOT NULL,
		tokens INTEGER,
		PRIMARY KEY (kind, label)
	)`

	queryCreateIndexMessagesConversation = `CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, position)`
	queryCreateIndexConversationsModel   = `CREATE INDEX IF NOT EXISTS idx_conversations_model ON conversations(model)`
	queryCreateIndexConversationsCreated = `CREATE INDEX IF NOT EXISTS idx_conversations_created ON conversations(created_at)`
)

// Inserts
const (
	queryInsertConversation = `INSERT INTO conversations
		(id, file_path, model, total_tokens, message_count, created_at, last_activity, status, project_context)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryInsertMessage = `INSERT INTO messages (conversation_id, position, role, content, timestamp, tokens)
		VALUES (?, ?, ?, ?, ?, ?)`

	queryInsertDailyUsage = `INSERT INTO daily_usage (day, conversations, tokens) VALUES (?, ?, ?)`

	queryInsertBreakdown = `INSERT INTO breakdowns (kind, label, conversations, tokens) VALUES (?, ?, ?, ?)`
)

// Summary queries
const (
	queryCountConversations = `SELECT COUNT(*) FROM conversations`
	queryCountMessages      = `SELECT COUNT(*) FROM messages`
	querySumTokens          = `SELECT COALESCE(SUM(total_tokens), 0) FROM conversations`
)
