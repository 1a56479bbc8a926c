package domain

// Section identifiers form a closed set: every top-level field of a tech
// pack document is one of these. The edit extractor rejects anything else.
const (
	SectionProductName          = "productName"
	SectionProductOverview      = "productOverview"
	SectionPrice                = "price"
	SectionMaterials            = "materials"
	SectionDimensions           = "dimensions"
	SectionConstructionDetails  = "constructionDetails"
	SectionHardwareComponents   = "hardwareComponents"
	SectionColors               = "colors"
	SectionCostStructure        = "costStructure"
	SectionCostIncomeEstimation = "costIncomeEstimation"
	SectionSizeRange            = "sizeRange"
	SectionPackaging            = "packaging"
	SectionCareInstructions     = "careInstructions"
	SectionQualityStandards     = "qualityStandards"
	SectionProductionNotes      = "productionNotes"
	SectionEstimatedLeadTime    = "estimatedLeadTime"
	SectionProductionLogistics  = "productionLogistics"
	SectionCategorySubcategory  = "category_Subcategory"
	SectionIntendedMarket       = "intendedMarket_AgeRange"
)

// sectionSpec is the static description of one recognised section.
type sectionSpec struct {
	shape SectionShape

	// recordFields lists the required fields of each record, in display
	// order, for list-shaped sections.
	recordFields []string

	// primaryField is the record field a bare string coerces into for
	// list-shaped sections.
	primaryField string

	// listFields names the fields of an object-shaped section that are
	// themselves lists.
	listFields []string

	// defaultValue builds the fallback value for object-shaped sections.
	defaultValue func() Value
}

// sections is the schema registry. It is never mutated after init.
var sections = map[string]sectionSpec{
	SectionProductName:         {shape: ShapeScalar},
	SectionProductOverview:     {shape: ShapeScalar},
	SectionPrice:               {shape: ShapeScalar},
	SectionSizeRange:           {shape: ShapeScalar},
	SectionPackaging:           {shape: ShapeScalar},
	SectionCareInstructions:    {shape: ShapeScalar},
	SectionQualityStandards:    {shape: ShapeScalar},
	SectionProductionNotes:     {shape: ShapeScalar},
	SectionEstimatedLeadTime:   {shape: ShapeScalar},
	SectionProductionLogistics: {shape: ShapeScalar},
	SectionCategorySubcategory: {shape: ShapeScalar},
	SectionIntendedMarket:      {shape: ShapeScalar},

	SectionMaterials: {
		shape:        ShapeList,
		recordFields: []string{"component", "material", "specification", "quantityPerUnit", "unitCost", "notes"},
		primaryField: "material",
	},
	SectionConstructionDetails: {
		shape:        ShapeList,
		recordFields: []string{"detail", "specification", "notes"},
		primaryField: "detail",
	},
	SectionHardwareComponents: {
		shape:        ShapeList,
		recordFields: []string{"component", "specification", "quantity", "supplier", "notes"},
		primaryField: "component",
	},
	SectionCostStructure: {
		shape:        ShapeList,
		recordFields: []string{"item", "cost", "notes"},
		primaryField: "item",
	},

	SectionColors: {
		shape:      ShapeObject,
		listFields: []string{"primaryColors", "accentColors"},
		defaultValue: func() Value {
			return Object{
				"primaryColors": List{},
				"accentColors":  List{},
				"colorNotes":    Scalar(""),
			}
		},
	},
	SectionDimensions: {
		shape: ShapeObject,
		defaultValue: func() Value {
			dim := func() Value {
				return Object{"value": Scalar(""), "unit": Scalar("cm")}
			}
			return Object{
				"length": dim(),
				"width":  dim(),
				"height": dim(),
				"weight": Object{"value": Scalar(""), "unit": Scalar("g")},
			}
		},
	},
	SectionCostIncomeEstimation: {
		shape: ShapeObject,
		defaultValue: func() Value {
			return Object{
				"unitCost":        Scalar(""),
				"wholesalePrice":  Scalar(""),
				"retailPrice":     Scalar(""),
				"estimatedMargin": Scalar(""),
			}
		},
	},
}

// sectionOrder fixes the display order of sections in summaries and the CLI.
var sectionOrder = []string{
	SectionProductName,
	SectionProductOverview,
	SectionCategorySubcategory,
	SectionIntendedMarket,
	SectionPrice,
	SectionMaterials,
	SectionDimensions,
	SectionConstructionDetails,
	SectionHardwareComponents,
	SectionColors,
	SectionSizeRange,
	SectionCostStructure,
	SectionCostIncomeEstimation,
	SectionPackaging,
	SectionCareInstructions,
	SectionQualityStandards,
	SectionProductionNotes,
	SectionEstimatedLeadTime,
	SectionProductionLogistics,
}

// KnownSection reports whether the identifier names a recognised section.
func KnownSection(section string) bool {
	_, ok := sections[section]
	return ok
}

// SectionNames returns all recognised section identifiers in display order.
func SectionNames() []string {
	out := make([]string, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// ShapeOf returns the declared shape of a section. Calling it with an
// unknown section is a caller error; it returns ShapeScalar so misuse
// stays shape-valid, but callers must gate on KnownSection first.
func ShapeOf(section string) SectionShape {
	spec, ok := sections[section]
	if !ok {
		return ShapeScalar
	}
	return spec.shape
}

// ListFieldsOf returns the fields of an object-shaped section that are
// themselves lists. The result is empty for non-object sections.
func ListFieldsOf(section string) []string {
	spec, ok := sections[section]
	if !ok {
		return nil
	}
	out := make([]string, len(spec.listFields))
	copy(out, spec.listFields)
	return out
}

// IsListField reports whether field is a list-valued field of section.
func IsListField(section, field string) bool {
	spec, ok := sections[section]
	if !ok {
		return false
	}
	for _, f := range spec.listFields {
		if f == field {
			return true
		}
	}
	return false
}

// RecordFieldsOf returns the required record fields of a list-shaped
// section, in display order.
func RecordFieldsOf(section string) []string {
	spec, ok := sections[section]
	if !ok {
		return nil
	}
	out := make([]string, len(spec.recordFields))
	copy(out, spec.recordFields)
	return out
}

// PrimaryRecordField returns the record field a bare string coerces into
// for a list-shaped section.
func PrimaryRecordField(section string) string {
	spec, ok := sections[section]
	if !ok {
		return ""
	}
	return spec.primaryField
}

// DefaultValueOf returns a fresh value matching the section's declared
// shape: an empty Scalar, an empty List, or the section's default Object.
func DefaultValueOf(section string) Value {
	spec, ok := sections[section]
	if !ok {
		return Scalar("")
	}
	switch spec.shape {
	case ShapeList:
		return List{}
	case ShapeObject:
		return spec.defaultValue()
	default:
		return Scalar("")
	}
}
