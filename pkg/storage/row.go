package storage

import (
	"strings"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MongoIDKey is the document key the primary column is stored under in BSON.
const MongoIDKey = "_id"

// Column is one encoded field value.
type Column struct {
	Name    string
	Value   any
	Primary bool
}

// Row is an ordered list of encoded columns.
type Row struct {
	Columns []Column
}

func (r Row) Len() int { return len(r.Columns) }

// Names returns the column names in order.
func (r Row) Names() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// Get returns the value of the named column.
func (r Row) Get(name string) (any, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// Primary returns the primary column, if the row has one.
func (r Row) Primary() (Column, bool) {
	for _, c := range r.Columns {
		if c.Primary {
			return c, true
		}
	}
	return Column{}, false
}

func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Columns))
	for _, c := range r.Columns {
		m[c.Name] = c.Value
	}
	return m
}

// BSON returns the row as an ordered MongoDB document. The primary column is
// keyed MongoIDKey and placed first.
func (r Row) BSON() bson.D {
	doc := make(bson.D, 0, len(r.Columns))
	if pk, ok := r.Primary(); ok {
		doc = append(doc, bson.E{Key: MongoIDKey, Value: pk.Value})
	}
	for _, c := range r.Columns {
		if c.Primary {
			continue
		}
		doc = append(doc, bson.E{Key: c.Name, Value: c.Value})
	}
	return doc
}

// NamedArgs returns the row as pgx named arguments, one per column.
func (r Row) NamedArgs() pgx.NamedArgs {
	return pgx.NamedArgs(r.Map())
}

// InsertSQL returns an INSERT statement for table whose placeholders match
// NamedArgs. The table name may be schema-qualified ("app.articles"). Column
// names are used as placeholder names verbatim; field.New only accepts ASCII
// identifiers, which is what pgx recognizes after "@".
func (r Row) InsertSQL(table string) string {
	cols := make([]string, len(r.Columns))
	args := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		cols[i] = pgx.Identifier{c.Name}.Sanitize()
		args[i] = "@" + c.Name
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier(strings.Split(table, ".")).Sanitize())
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(args, ", "))
	b.WriteString(")")
	return b.String()
}
