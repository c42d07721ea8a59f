package notification

type migration struct {
	version int
	sql     string
}

// sqliteMigrations must stay ordered by version, starting from 1.
var sqliteMigrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id          TEXT PRIMARY KEY,
	tenant_id   TEXT NOT NULL,
	type        TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL DEFAULT '',
	target_role TEXT NOT NULL DEFAULT 'all',
	status      TEXT NOT NULL DEFAULT 'unread',
	module      TEXT NOT NULL DEFAULT '',
	entity_id   TEXT NOT NULL DEFAULT '',
	action_url  TEXT NOT NULL DEFAULT '',
	actor_name  TEXT NOT NULL DEFAULT 'System',
	actor_role  TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_tenant_status ON notifications(tenant_id, status);
CREATE INDEX IF NOT EXISTS idx_notifications_tenant_created ON notifications(tenant_id, created_at);
`,
	},
}
