package recipe

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hashicorp-forge/recipe-builder/pkg/models"
)

// TenantPlaceholder is written in place of every tenant column value. The
// importer substitutes the target tenant when it replays the scripts.
const TenantPlaceholder = "<<|TENANT-ID|>>"

const (
	sqlNull  = "NULL"
	sqlTrue  = "TRUE"
	sqlFalse = "FALSE"

	// Matches the ISO-8601 form with microsecond precision and numeric
	// offset that PostgreSQL accepts for timestamptz.
	timestampLayout = "2006-01-02T15:04:05.999999-07:00"
)

// insert accumulates the columns of one INSERT statement in a fixed order.
type insert struct {
	table  string
	cols   []string
	values []string
}

func newInsert(table string) *insert {
	return &insert{table: table}
}

func (s *insert) set(col, value string) *insert {
	s.cols = append(s.cols, col)
	s.values = append(s.values, value)
	return s
}

func (s *insert) tenant() *insert {
	return s.set("tenant_uuid", TenantPlaceholder)
}

func (s *insert) String() string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);\n",
		s.table,
		strings.Join(s.cols, ", "),
		strings.Join(s.values, ", "),
	)
}

// quote renders a text literal, doubling embedded single quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func optText(s *string) string {
	if s == nil {
		return sqlNull
	}
	return quote(*s)
}

func boolean(b bool) string {
	if b {
		return sqlTrue
	}
	return sqlFalse
}

func integer[T ~int | ~int64](n T) string {
	return strconv.FormatInt(int64(n), 10)
}

func optInteger(n *int64) string {
	if n == nil {
		return sqlNull
	}
	return integer(*n)
}

func timestamp(t time.Time) string {
	return quote(t.Format(timestampLayout))
}

func optTimestamp(t *time.Time) string {
	if t == nil {
		return sqlNull
	}
	return timestamp(*t)
}

func uuidText(id uuid.UUID) string {
	return quote(id.String())
}

func optUUID(id *uuid.UUID) string {
	if id == nil {
		return sqlNull
	}
	return uuidText(*id)
}

// jsonText renders a JSON column as a quoted literal of its compact text.
// An absent value is written as the JSON literal null.
func jsonText(j models.JSON) (string, error) {
	if j.IsNull() {
		return quote("null"), nil
	}
	text, err := j.Compact()
	if err != nil {
		return "", err
	}
	return quote(text), nil
}

// optJSON renders a nullable JSON column; absent values become SQL NULL.
func optJSON(j models.JSON) (string, error) {
	if j.IsNull() {
		return sqlNull, nil
	}
	return jsonText(j)
}

// array renders an array literal, e.g. ARRAY['a', 'b']::uuid[]. Empty
// arrays are written as NULL.
func array(values []string, cast string) string {
	if len(values) == 0 {
		return sqlNull
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]" + cast
}
