// Package reflection builds edm models from Go struct definitions. Each
// registered struct becomes an entity type with an entity set; fields become
// structural properties, and fields referencing other registered structs
// become navigation properties with default bindings.
package reflection

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	edm "github.com/nlstn/go-edm"
)

// BuildModel builds a model from the given entity structs. Pointer and value
// arguments are equivalent. Field behavior is controlled with `odata` struct
// tags:
//
//	odata:"key"            marks the field as (part of) the entity key
//	odata:"-"              skips the field
//	odata:"contains"       marks a navigation property as containment
//	odata:"nullable=false" overrides the inferred nullability
//
// A field named ID is the key when no field carries the key tag.
func BuildModel(namespace string, entities ...any) (*edm.Model, error) {
	model := edm.NewModel()
	container := model.AddEntityContainer(namespace, "Default")

	types := make(map[reflect.Type]*edm.EntityType, len(entities))
	sets := make(map[*edm.EntityType]*edm.EntitySet, len(entities))

	// Declare all entity types first so navigation properties can target any
	// registered struct regardless of registration order.
	structTypes := make([]reflect.Type, 0, len(entities))
	for _, entity := range entities {
		st, err := structTypeOf(entity)
		if err != nil {
			return nil, err
		}
		if _, ok := types[st]; ok {
			continue
		}
		et := edm.NewEntityType(namespace, st.Name())
		types[st] = et
		model.AddElement(et)
		sets[et] = container.AddEntitySet(pluralize(st.Name()), et)
		structTypes = append(structTypes, st)
	}

	b := modelBuilder{types: types}
	for _, st := range structTypes {
		if err := b.buildProperties(st); err != nil {
			return nil, err
		}
	}

	// Default bindings: every navigation property of every set binds to the
	// set of its target type.
	for et, set := range sets {
		for _, prop := range et.Properties() {
			nav, ok := prop.(*edm.NavigationProperty)
			if !ok || nav.ContainsTarget() {
				continue
			}
			if target, ok := sets[nav.TargetEntityType()]; ok {
				set.AddNavigationPropertyBinding(nav, target)
			}
		}
	}
	return model, nil
}

type modelBuilder struct {
	types map[reflect.Type]*edm.EntityType
}

func (b modelBuilder) buildProperties(st reflect.Type) error {
	entity := b.types[st]
	var keys []*edm.StructuralProperty
	var idProp *edm.StructuralProperty

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := parseTag(field.Tag.Get("odata"))
		if tag.skip {
			continue
		}

		fieldType := field.Type
		nullable := false
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
			nullable = true
		}

		// Navigation: the field references another registered entity struct.
		if target, collection, ok := b.navigationTarget(fieldType); ok {
			nav := entity.AddNavigationProperty(field.Name, target, collection)
			nav.SetContainsTarget(tag.contains)
			if tag.nullable != nil {
				nav.SetNullable(*tag.nullable)
			}
			continue
		}

		typ := primitiveFor(fieldType)
		if typ == nil {
			return fmt.Errorf("reflection: field %s.%s has unsupported type %s", st.Name(), field.Name, field.Type)
		}
		prop := entity.AddStructuralProperty(field.Name, typ)
		prop.SetNullable(nullable)
		if tag.nullable != nil {
			prop.SetNullable(*tag.nullable)
		}
		if tag.key {
			prop.SetNullable(false)
			keys = append(keys, prop)
		}
		if field.Name == "ID" {
			idProp = prop
		}
	}

	if len(keys) == 0 {
		if idProp == nil {
			return fmt.Errorf("reflection: entity %s has no key: tag a field with `odata:\"key\"` or name it ID", st.Name())
		}
		idProp.SetNullable(false)
		keys = append(keys, idProp)
	}
	entity.AddKey(keys...)
	return nil
}

// navigationTarget reports whether t (possibly a slice) refers to a
// registered entity struct.
func (b modelBuilder) navigationTarget(t reflect.Type) (*edm.EntityType, bool, bool) {
	collection := false
	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 {
		t = t.Elem()
		collection = true
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	target, ok := b.types[t]
	return target, collection, ok
}

type fieldTag struct {
	key      bool
	skip     bool
	contains bool
	nullable *bool
}

func parseTag(raw string) fieldTag {
	var tag fieldTag
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case "key":
			tag.key = true
		case "-":
			tag.skip = true
		case "contains":
			tag.contains = true
		case "nullable":
			v := true
			tag.nullable = &v
		case "nullable=false":
			v := false
			tag.nullable = &v
		}
	}
	return tag
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	decimalType  = reflect.TypeOf(decimal.Decimal{})
)

// primitiveFor maps a Go type to its primitive counterpart, nil when no
// sensible mapping exists.
func primitiveFor(t reflect.Type) *edm.PrimitiveType {
	switch t {
	case timeType:
		return edm.PrimitiveDateTimeOffset
	case durationType:
		return edm.PrimitiveDuration
	case uuidType:
		return edm.PrimitiveGuid
	case decimalType:
		return edm.PrimitiveDecimal
	}
	switch t.Kind() {
	case reflect.String:
		return edm.PrimitiveString
	case reflect.Bool:
		return edm.PrimitiveBoolean
	case reflect.Int, reflect.Int64:
		return edm.PrimitiveInt64
	case reflect.Int32, reflect.Uint16:
		return edm.PrimitiveInt32
	case reflect.Int16:
		return edm.PrimitiveInt16
	case reflect.Int8:
		return edm.PrimitiveSByte
	case reflect.Uint8:
		return edm.PrimitiveByte
	case reflect.Uint32, reflect.Uint, reflect.Uint64:
		return edm.PrimitiveInt64
	case reflect.Float64:
		return edm.PrimitiveDouble
	case reflect.Float32:
		return edm.PrimitiveSingle
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return edm.PrimitiveBinary
		}
	}
	return nil
}

func structTypeOf(entity any) (reflect.Type, error) {
	t := reflect.TypeOf(entity)
	if t == nil {
		return nil, fmt.Errorf("reflection: nil entity")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("reflection: entity must be a struct, got %s", t.Kind())
	}
	return t, nil
}

// pluralize derives an entity set name from an entity type name.
func pluralize(word string) string {
	switch {
	case word == "":
		return word
	case strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(rune(word[len(word)-2])):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "s") || strings.HasSuffix(word, "x") || strings.HasSuffix(word, "z") ||
		strings.HasSuffix(word, "ch") || strings.HasSuffix(word, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}
