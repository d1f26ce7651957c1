package dbmodel

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	edm "github.com/nlstn/go-edm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("Failed to open the test database: %v", err)
	}
	return db
}

func mustExec(t *testing.T, db *gorm.DB, sql string) {
	t.Helper()
	if err := db.Exec(sql).Error; err != nil {
		t.Fatalf("Failed to execute %q: %v", sql, err)
	}
}

func TestFromDB(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, `CREATE TABLE products (
		id INTEGER PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		price NUMERIC(10,2),
		in_stock BOOLEAN,
		created_at DATETIME
	)`)
	mustExec(t, db, `CREATE TABLE order_items (
		id INTEGER PRIMARY KEY,
		quantity INTEGER NOT NULL
	)`)

	model, err := FromDB(db, Config{Namespace: "Shop"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	products, ok := model.FindDeclaredType("Shop.Products").(*edm.EntityType)
	if !ok {
		t.Fatal("Expected a Shop.Products entity type")
	}
	if len(products.Key()) != 1 || products.Key()[0].Name() != "id" {
		t.Errorf("Expected the id column as key, got %v", products.Key())
	}

	name, ok := products.FindProperty("name").(*edm.StructuralProperty)
	if !ok {
		t.Fatal("Expected a structural name property")
	}
	if name.Type() != edm.Type(edm.PrimitiveString) {
		t.Errorf("Expected Edm.String for VARCHAR, got %v", name.Type())
	}
	if name.Nullable() {
		t.Error("Expected NOT NULL to map to a non-nullable property")
	}

	price, ok := products.FindProperty("price").(*edm.StructuralProperty)
	if !ok {
		t.Fatal("Expected a structural price property")
	}
	if price.Type() != edm.Type(edm.PrimitiveDecimal) {
		t.Errorf("Expected Edm.Decimal for NUMERIC, got %v", price.Type())
	}

	if _, ok := model.FindDeclaredType("Shop.OrderItems").(*edm.EntityType); !ok {
		t.Error("Expected snake_case table names to become CamelCase type names")
	}

	if model.EntityContainer() == nil {
		t.Fatal("Expected an entity container")
	}
	if model.FindDeclaredNavigationSource("Products") == nil {
		t.Error("Expected a Products entity set")
	}
}

func TestFromDBSkipsKeylessTables(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, `CREATE TABLE metrics (value REAL)`)
	mustExec(t, db, `CREATE TABLE events (id INTEGER PRIMARY KEY, kind TEXT)`)

	model, err := FromDB(db, Config{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if model.FindDeclaredType("DB.Metrics") != nil {
		t.Error("Expected the keyless table to be skipped")
	}
	if model.FindDeclaredType("DB.Events") == nil {
		t.Error("Expected the keyed table to be kept")
	}
}

func TestFromDBIncludeTable(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, `CREATE TABLE keep (id INTEGER PRIMARY KEY)`)
	mustExec(t, db, `CREATE TABLE drop_me (id INTEGER PRIMARY KEY)`)

	model, err := FromDB(db, Config{
		IncludeTable: func(table string) bool { return table == "keep" },
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if model.FindDeclaredType("DB.Keep") == nil {
		t.Error("Expected the included table to be present")
	}
	if model.FindDeclaredType("DB.DropMe") != nil {
		t.Error("Expected the excluded table to be absent")
	}
}

func TestEntityTypeName(t *testing.T) {
	cases := map[string]string{
		"products":      "Products",
		"order_items":   "OrderItems",
		"a_b_c":         "ABC",
		"users":         "Users",
		"__sqlite_temp": "SqliteTemp",
	}
	for table, want := range cases {
		if got := entityTypeName(table); got != want {
			t.Errorf("entityTypeName(%q): Expected %q, got %q", table, want, got)
		}
	}
}
