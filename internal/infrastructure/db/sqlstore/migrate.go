package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// TrackedTables are the tables whose writes are recorded in table_activities.
var TrackedTables = []string{"clients", "mobiles", "users"}

const postgresActivityFunc = `
CREATE OR REPLACE FUNCTION bilemo_touch_table_activity() RETURNS trigger AS $$
BEGIN
	INSERT INTO table_activities (table_name, last_write_at, revision)
	VALUES (TG_TABLE_NAME, clock_timestamp(), 1)
	ON CONFLICT (table_name) DO UPDATE
		SET last_write_at = EXCLUDED.last_write_at,
		    revision      = table_activities.revision + 1;
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`

// Migrate creates or updates the schema and installs the triggers that keep
// table_activities current. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&clientModel{},
		&mobileModel{},
		&userModel{},
		&tableActivityModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var stmts []string
	switch name := db.Dialector.Name(); name {
	case DriverPostgres:
		stmts = postgresTriggers()
	case DriverSQLite:
		stmts = sqliteTriggers()
	default:
		return fmt.Errorf("no activity triggers for dialect %q", name)
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install activity triggers: %w", err)
		}
	}
	return nil
}

func postgresTriggers() []string {
	stmts := []string{postgresActivityFunc}
	for _, table := range TrackedTables {
		trigger := table + "_touch_activity"
		stmts = append(stmts,
			fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, trigger, table),
			fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE OR TRUNCATE ON %s
	FOR EACH STATEMENT EXECUTE FUNCTION bilemo_touch_table_activity()`, trigger, table),
		)
	}
	return stmts
}

// sqliteTriggers installs row-level triggers; SQLite has no statement-level
// triggers. strftime keeps millisecond precision.
func sqliteTriggers() []string {
	var stmts []string
	for _, table := range TrackedTables {
		for _, op := range []string{"insert", "update", "delete"} {
			stmts = append(stmts, fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %[1]s_touch_%[2]s AFTER %[3]s ON %[1]s
BEGIN
	INSERT OR IGNORE INTO table_activities (table_name, last_write_at, revision)
	VALUES ('%[1]s', strftime('%%Y-%%m-%%d %%H:%%M:%%f', 'now'), 0);
	UPDATE table_activities
	SET last_write_at = strftime('%%Y-%%m-%%d %%H:%%M:%%f', 'now'), revision = revision + 1
	WHERE table_name = '%[1]s';
END`, table, op, strings.ToUpper(op)))
		}
	}
	return stmts
}
