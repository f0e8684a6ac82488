// Copyright 2025-2026 Contentloop

package connector

// SourceAttributeType is the tag on a Strapi attribute definition. The tag
// fully determines which shape fields of SourceAttribute are populated.
type SourceAttributeType string

const (
	AttrBoolean     SourceAttributeType = "boolean"
	AttrInteger     SourceAttributeType = "integer"
	AttrFloat       SourceAttributeType = "float"
	AttrString      SourceAttributeType = "string"
	AttrDatetime    SourceAttributeType = "datetime"
	AttrJSON        SourceAttributeType = "json"
	AttrMedia       SourceAttributeType = "media"
	AttrRichText    SourceAttributeType = "richtext"
	AttrText        SourceAttributeType = "text"
	AttrEnumeration SourceAttributeType = "enumeration"
	AttrComponent   SourceAttributeType = "component"
	AttrRelation    SourceAttributeType = "relation"
)

// RelationKind is the cardinality of a relation attribute.
type RelationKind string

const (
	RelationOneToOne   RelationKind = "oneToOne"
	RelationOneToMany  RelationKind = "oneToMany"
	RelationManyToOne  RelationKind = "manyToOne"
	RelationManyToMany RelationKind = "manyToMany"
)

// SourceAttribute is one entry in a content type's attribute map. Scalar
// attributes carry Required and Default, component attributes carry Component
// and Repeatable, relation attributes carry Relation and Target.
type SourceAttribute struct {
	Name       string
	Type       SourceAttributeType
	Required   bool
	Default    any
	Component  string
	Repeatable bool
	Relation   RelationKind
	Target     string
}

// SourceModel is a Strapi content type or component definition. Attributes
// keep their declaration order; field order in the normalized model follows
// it.
type SourceModel struct {
	APIID           string
	UID             string
	SingularName    string
	PluralName      string
	DraftAndPublish bool
	Attributes      []SourceAttribute
}

// TypeSettings is the per-type content-manager configuration. MainField names
// the attribute used as the display label; it is joined to the model by exact
// UID match.
type TypeSettings struct {
	UID       string
	MainField string
}

// SourceDocument is one raw entry fetched from a Strapi collection endpoint.
// Type is the model's apiID, not yet normalized. Relation values inside
// Attributes are wrapped as {data: ...}; component values are plain nested
// objects or arrays of them.
type SourceDocument struct {
	ID         string
	Type       string
	Attributes map[string]any
}

// ModelType distinguishes top-level content types from embeddable components
// in the normalized model set.
type ModelType string

const (
	ModelTypeData   ModelType = "data"
	ModelTypeObject ModelType = "object"
)

// FieldType is the normalized field vocabulary exposed to the host platform.
type FieldType string

const (
	FieldString    FieldType = "string"
	FieldText      FieldType = "text"
	FieldEnum      FieldType = "enum"
	FieldNumber    FieldType = "number"
	FieldBoolean   FieldType = "boolean"
	FieldDatetime  FieldType = "datetime"
	FieldJSON      FieldType = "json"
	FieldFile      FieldType = "file"
	FieldReference FieldType = "reference"
	FieldList      FieldType = "list"
	FieldModel     FieldType = "model"
)

// FieldSpec describes the shape of a normalized field. Reference and model
// fields name the model(s) they may point to in Models; list fields carry
// their element shape in Items. Items never nests another list.
type FieldSpec struct {
	Type     FieldType  `json:"type"`
	Required bool       `json:"required,omitempty"`
	Default  any        `json:"default,omitempty"`
	Models   []string   `json:"models,omitempty"`
	Items    *FieldSpec `json:"items,omitempty"`
}

// Field is a named field in a normalized model.
type Field struct {
	Name string `json:"name"`
	FieldSpec
}

// ModelContext carries source-side details the write path needs.
type ModelContext struct {
	DraftAndPublish bool   `json:"draftAndPublish"`
	APIEndpoint     string `json:"apiEndpoint"`
}

// Model is a normalized model. Name is the apiID with hyphens normalized to
// underscores and is the join key used everywhere downstream; cross-model
// references never use the original apiID or UID.
type Model struct {
	Type       ModelType    `json:"type"`
	Name       string       `json:"name"`
	LabelField string       `json:"labelField,omitempty"`
	Context    ModelContext `json:"context"`
	Fields     []Field      `json:"fields"`
}

// DocumentStatus is the publish state inferred for a normalized document.
type DocumentStatus string

const (
	StatusPublished DocumentStatus = "published"
	StatusAdded     DocumentStatus = "added"
)

// RefType distinguishes document references from asset references.
type RefType string

const (
	RefDocument RefType = "document"
	RefAsset    RefType = "asset"
)

// FieldValue is one mapped field of a normalized document. Exactly one of
// Value, RefID, Items, or Fields is meaningful depending on Type.
type FieldValue struct {
	Type    FieldType             `json:"type"`
	Value   any                   `json:"value,omitempty"`
	RefType RefType               `json:"refType,omitempty"`
	RefID   string                `json:"refId,omitempty"`
	Items   []FieldValue          `json:"items,omitempty"`
	Fields  map[string]FieldValue `json:"fields,omitempty"`
}

// Document is a normalized document. ID is the composite id produced by
// MakeDocumentID; ModelName is the normalized model name.
type Document struct {
	ID        string                `json:"id"`
	ModelName string                `json:"modelName"`
	Status    DocumentStatus        `json:"status"`
	Fields    map[string]FieldValue `json:"fields"`
}

// EditOpType is the mutation vocabulary accepted from the host: whole-value
// replacement and clearing, nothing else.
type EditOpType string

const (
	OpSet   EditOpType = "set"
	OpUnset EditOpType = "unset"
)

// EditOperation is one host-issued field edit. Set operations carry the new
// value in Value; unset operations carry the model's declared field type for
// the path, used only to decide whether clearing is supported.
type EditOperation struct {
	Op        EditOpType
	FieldPath []string
	Value     *FieldValue
	FieldType FieldType
}
