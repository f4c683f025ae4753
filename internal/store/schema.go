package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableLLMEvents  = "llm_request_events"
	tableQuizEvents = "quiz_events"
)

// builder renders statements in the SQLite dialect.
var builder = entsql.Dialect(dialect.SQLite)

func idColumn() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
}

func timestampColumn() *schema.Column {
	return &schema.Column{Name: "timestamp", Type: field.TypeInt64}
}

func intColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt64, Default: 0}
}

func textColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Default: ""}
}

func newTable(name string, cols ...*schema.Column) *schema.Table {
	t := schema.NewTable(name).AddPrimary(idColumn())
	for _, c := range cols {
		t.AddColumn(c)
	}
	return t
}

// eventTables declares the append-only event tables.
func eventTables() []*schema.Table {
	llmEvents := newTable(tableLLMEvents,
		timestampColumn(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		intColumn("input_tokens"),
		intColumn("output_tokens"),
		intColumn("latency_ms"),
		&schema.Column{Name: "success", Type: field.TypeBool},
		textColumn("error_message"),
		textColumn("request_body"),
		textColumn("response_body"),
	)
	llmEvents.AddIndex("llmrequestevent_purpose", false, []string{"purpose"})
	llmEvents.AddIndex("llmrequestevent_model", false, []string{"model"})

	quizEvents := newTable(tableQuizEvents,
		timestampColumn(),
		&schema.Column{Name: "run_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		intColumn("question_index"),
		&schema.Column{Name: "correct", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "seconds", Type: field.TypeFloat64, Default: 0},
		&schema.Column{Name: "score", Type: field.TypeFloat64, Default: 0},
	)
	quizEvents.AddIndex("quizevent_run_id", false, []string{"run_id"})

	return []*schema.Table{llmEvents, quizEvents}
}

// migrate creates missing tables and indexes through ent's migration
// engine. Tables are append-only and never altered.
func migrate(ctx context.Context, db *sql.DB) error {
	m, err := schema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, eventTables()...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
