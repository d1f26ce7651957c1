// Package csdl decodes OData CSDL XML ($metadata) documents into edm models.
//
// The decoder is lenient where the specification allows it: elements it cannot
// resolve (unknown property types, dangling binding targets) are logged and
// skipped rather than failing the whole document, so partially understood
// metadata still yields a usable model.
package csdl

import "encoding/xml"

// document is the root edmx:Edmx element.
type document struct {
	XMLName      xml.Name     `xml:"Edmx"`
	Version      string       `xml:"Version,attr"`
	References   []reference  `xml:"Reference"`
	DataServices dataServices `xml:"DataServices"`
}

type reference struct {
	URI      string    `xml:"Uri,attr"`
	Includes []include `xml:"Include"`
}

type include struct {
	Namespace string `xml:"Namespace,attr"`
	Alias     string `xml:"Alias,attr"`
}

type dataServices struct {
	Schemas []schema `xml:"Schema"`
}

type schema struct {
	Namespace    string            `xml:"Namespace,attr"`
	Alias        string            `xml:"Alias,attr"`
	EntityTypes  []entityType      `xml:"EntityType"`
	ComplexTypes []complexType     `xml:"ComplexType"`
	EnumTypes    []enumType        `xml:"EnumType"`
	Functions    []operationDef    `xml:"Function"`
	Actions      []operationDef    `xml:"Action"`
	Containers   []entityContainer `xml:"EntityContainer"`
}

type entityType struct {
	Name                 string               `xml:"Name,attr"`
	BaseType             string               `xml:"BaseType,attr"`
	Abstract             bool                 `xml:"Abstract,attr"`
	Key                  *key                 `xml:"Key"`
	Properties           []property           `xml:"Property"`
	NavigationProperties []navigationProperty `xml:"NavigationProperty"`
}

type complexType struct {
	Name                 string               `xml:"Name,attr"`
	BaseType             string               `xml:"BaseType,attr"`
	Abstract             bool                 `xml:"Abstract,attr"`
	Properties           []property           `xml:"Property"`
	NavigationProperties []navigationProperty `xml:"NavigationProperty"`
}

type key struct {
	PropertyRefs []propertyRef `xml:"PropertyRef"`
}

type propertyRef struct {
	Name string `xml:"Name,attr"`
}

type property struct {
	Name         string `xml:"Name,attr"`
	Type         string `xml:"Type,attr"`
	Nullable     *bool  `xml:"Nullable,attr"`
	MaxLength    int    `xml:"MaxLength,attr"`
	Precision    int    `xml:"Precision,attr"`
	Scale        int    `xml:"Scale,attr"`
	DefaultValue string `xml:"DefaultValue,attr"`
}

type navigationProperty struct {
	Name           string `xml:"Name,attr"`
	Type           string `xml:"Type,attr"`
	Nullable       *bool  `xml:"Nullable,attr"`
	Partner        string `xml:"Partner,attr"`
	ContainsTarget bool   `xml:"ContainsTarget,attr"`
}

type enumType struct {
	Name           string   `xml:"Name,attr"`
	UnderlyingType string   `xml:"UnderlyingType,attr"`
	IsFlags        bool     `xml:"IsFlags,attr"`
	Members        []member `xml:"Member"`
}

type member struct {
	Name  string `xml:"Name,attr"`
	Value *int64 `xml:"Value,attr"`
}

type operationDef struct {
	Name          string      `xml:"Name,attr"`
	IsBound       bool        `xml:"IsBound,attr"`
	EntitySetPath string      `xml:"EntitySetPath,attr"`
	Parameters    []parameter `xml:"Parameter"`
	ReturnType    *returnType `xml:"ReturnType"`
}

type parameter struct {
	Name     string `xml:"Name,attr"`
	Type     string `xml:"Type,attr"`
	Nullable *bool  `xml:"Nullable,attr"`
}

type returnType struct {
	Type     string `xml:"Type,attr"`
	Nullable *bool  `xml:"Nullable,attr"`
}

type entityContainer struct {
	Name            string           `xml:"Name,attr"`
	EntitySets      []entitySet      `xml:"EntitySet"`
	Singletons      []singleton      `xml:"Singleton"`
	FunctionImports []functionImport `xml:"FunctionImport"`
	ActionImports   []actionImport   `xml:"ActionImport"`
}

type entitySet struct {
	Name       string               `xml:"Name,attr"`
	EntityType string               `xml:"EntityType,attr"`
	Bindings   []navPropertyBinding `xml:"NavigationPropertyBinding"`
}

type singleton struct {
	Name     string               `xml:"Name,attr"`
	Type     string               `xml:"Type,attr"`
	Bindings []navPropertyBinding `xml:"NavigationPropertyBinding"`
}

type navPropertyBinding struct {
	Path   string `xml:"Path,attr"`
	Target string `xml:"Target,attr"`
}

type functionImport struct {
	Name     string `xml:"Name,attr"`
	Function string `xml:"Function,attr"`
}

type actionImport struct {
	Name   string `xml:"Name,attr"`
	Action string `xml:"Action,attr"`
}
