package models

import (
	"database/sql/driver"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringArray maps a PostgreSQL text[] column. On other dialects it is
// stored as the array literal text, which keeps SQLite-backed tests working.
type StringArray []string

// Value implements driver.Valuer.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return pq.StringArray(a).Value()
}

// Scan implements sql.Scanner.
func (a *StringArray) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*a = StringArray(arr)
	return nil
}

// GormDataType implements schema.GormDataTypeInterface.
func (StringArray) GormDataType() string {
	return "text_array"
}

// GormDBDataType picks the column type per dialect.
func (StringArray) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// UUIDArray maps a PostgreSQL uuid[] column.
type UUIDArray []uuid.UUID

// Value implements driver.Valuer.
func (a UUIDArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return pq.StringArray(a.Strings()).Value()
}

// Scan implements sql.Scanner.
func (a *UUIDArray) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	if arr == nil {
		*a = nil
		return nil
	}

	ids := make(UUIDArray, 0, len(arr))
	for _, s := range arr {
		id, err := uuid.Parse(s)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	*a = ids
	return nil
}

// Strings returns the canonical string form of every element.
func (a UUIDArray) Strings() []string {
	out := make([]string, len(a))
	for i, id := range a {
		out[i] = id.String()
	}
	return out
}

// GormDataType implements schema.GormDataTypeInterface.
func (UUIDArray) GormDataType() string {
	return "uuid_array"
}

// GormDBDataType picks the column type per dialect.
func (UUIDArray) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "uuid[]"
	}
	return "text"
}
