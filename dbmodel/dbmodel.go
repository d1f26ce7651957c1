// Package dbmodel derives edm models from live database schemas. It inspects
// tables and columns through GORM's migrator, so any dialect GORM supports can
// serve as a model source.
package dbmodel

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gorm.io/gorm"

	edm "github.com/nlstn/go-edm"
)

// Config controls how the database schema maps onto the model.
type Config struct {
	// Namespace for the generated schema elements. Defaults to "DB".
	Namespace string
	// ContainerName for the generated entity container. Defaults to "Default".
	ContainerName string
	// IncludeTable filters tables. Nil includes every table.
	IncludeTable func(table string) bool
	// Logger receives warnings about skipped tables and columns. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

func (c Config) namespace() string {
	if c.Namespace != "" {
		return c.Namespace
	}
	return "DB"
}

func (c Config) containerName() string {
	if c.ContainerName != "" {
		return c.ContainerName
	}
	return "Default"
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// FromDB builds a model describing the database schema behind db. Every table
// with a primary key becomes an entity type and an entity set; tables without
// a primary key are skipped with a warning, as are columns whose database type
// has no primitive counterpart.
func FromDB(db *gorm.DB, cfg Config) (*edm.Model, error) {
	tables, err := db.Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("dbmodel: failed to list tables: %w", err)
	}
	sort.Strings(tables)

	logger := cfg.logger()
	model := edm.NewModel()
	container := model.AddEntityContainer(cfg.namespace(), cfg.containerName())

	for _, table := range tables {
		if cfg.IncludeTable != nil && !cfg.IncludeTable(table) {
			continue
		}
		columns, err := db.Migrator().ColumnTypes(table)
		if err != nil {
			return nil, fmt.Errorf("dbmodel: failed to describe table %s: %w", table, err)
		}

		entity := edm.NewEntityType(cfg.namespace(), entityTypeName(table))
		var keys []*edm.StructuralProperty
		for _, column := range columns {
			typ := primitiveFor(column.DatabaseTypeName())
			if typ == nil {
				logger.Warn("skipping column with unmapped database type",
					"table", table, "column", column.Name(), "databaseType", column.DatabaseTypeName())
				continue
			}
			prop := entity.AddStructuralProperty(column.Name(), typ)
			if nullable, ok := column.Nullable(); ok {
				prop.SetNullable(nullable)
			}
			if length, ok := column.Length(); ok && length > 0 {
				prop.SetMaxLength(int(length))
			}
			if precision, scale, ok := column.DecimalSize(); ok && precision > 0 {
				prop.SetPrecision(int(precision), int(scale))
			}
			if isPK, ok := column.PrimaryKey(); ok && isPK {
				prop.SetNullable(false)
				keys = append(keys, prop)
			}
		}
		if len(keys) == 0 {
			logger.Warn("skipping table without a primary key", "table", table)
			continue
		}
		entity.AddKey(keys...)
		model.AddElement(entity)
		container.AddEntitySet(entityTypeName(table), entity)
	}
	return model, nil
}

// primitiveFor maps a database type name to its primitive counterpart, nil
// when no sensible mapping exists.
func primitiveFor(databaseType string) *edm.PrimitiveType {
	name := strings.ToUpper(databaseType)
	// Strip length qualifiers such as VARCHAR(255).
	if idx := strings.IndexByte(name, '('); idx >= 0 {
		name = name[:idx]
	}
	switch name {
	case "TEXT", "VARCHAR", "CHAR", "CHARACTER", "NVARCHAR", "CLOB":
		return edm.PrimitiveString
	case "INTEGER", "INT", "BIGINT", "INT8", "SERIAL", "BIGSERIAL":
		return edm.PrimitiveInt64
	case "SMALLINT", "INT2":
		return edm.PrimitiveInt16
	case "MEDIUMINT", "INT4":
		return edm.PrimitiveInt32
	case "REAL", "FLOAT", "DOUBLE", "DOUBLE PRECISION", "FLOAT8":
		return edm.PrimitiveDouble
	case "NUMERIC", "DECIMAL", "MONEY":
		return edm.PrimitiveDecimal
	case "BOOLEAN", "BOOL":
		return edm.PrimitiveBoolean
	case "BLOB", "BYTEA", "BINARY", "VARBINARY":
		return edm.PrimitiveBinary
	case "DATE":
		return edm.PrimitiveDate
	case "DATETIME", "TIMESTAMP", "TIMESTAMPTZ":
		return edm.PrimitiveDateTimeOffset
	case "TIME":
		return edm.PrimitiveTimeOfDay
	case "UUID":
		return edm.PrimitiveGuid
	default:
		return nil
	}
}

// entityTypeName converts a snake_case table name to a CamelCase type name.
func entityTypeName(table string) string {
	parts := strings.Split(table, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
