package taxonomy

import "slices"

// Category is a top-level civic problem category.
type Category string

const (
	CategoryTourism            Category = "Tourism"
	CategoryHealth             Category = "Health"
	CategoryDisasterPrevention Category = "DisasterPrevention"
	CategoryEducation          Category = "Education"
	CategoryOther              Category = "Other"
)

// SubCategory refines a Category. A value is only meaningful together with
// the category that owns it.
type SubCategory string

const (
	SubNature           SubCategory = "Nature"
	SubCulture          SubCategory = "Culture"
	SubEvent            SubCategory = "Event"
	SubCaregiving       SubCategory = "Caregiving"
	SubHealthPromotion  SubCategory = "HealthPromotion"
	SubEvacuation       SubCategory = "Evacuation"
	SubInfrastructure   SubCategory = "Infrastructure"
	SubSchool           SubCategory = "School"
	SubLifelongLearning SubCategory = "LifelongLearning"
	SubOther            SubCategory = "Other"
)

// CatchAll is the fallback category for events whose category is unknown.
const CatchAll = CategoryOther

// CatchAllSub is the fallback sub-category present in every category.
const CatchAllSub = SubOther

// categories lists every category in display order.
var categories = []Category{
	CategoryTourism,
	CategoryHealth,
	CategoryDisasterPrevention,
	CategoryEducation,
	CategoryOther,
}

// subCategories is the Category → SubCategory table. Every set ends with the
// catch-all so display order keeps "Other" last.
var subCategories = map[Category][]SubCategory{
	CategoryTourism:            {SubNature, SubCulture, SubEvent, SubOther},
	CategoryHealth:             {SubCaregiving, SubHealthPromotion, SubOther},
	CategoryDisasterPrevention: {SubEvacuation, SubInfrastructure, SubOther},
	CategoryEducation:          {SubSchool, SubLifelongLearning, SubOther},
	CategoryOther:              {SubOther},
}

// allSubCategories lists every declared sub-category value.
var allSubCategories = []SubCategory{
	SubNature,
	SubCulture,
	SubEvent,
	SubCaregiving,
	SubHealthPromotion,
	SubEvacuation,
	SubInfrastructure,
	SubSchool,
	SubLifelongLearning,
	SubOther,
}

func init() {
	if err := validate(categories, subCategories, allSubCategories); err != nil {
		panic(err)
	}
}

// Categories returns all categories in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// SubCategoriesOf returns the sub-categories owned by c, or nil if c is not
// a known category.
func SubCategoriesOf(c Category) []SubCategory {
	return slices.Clone(subCategories[c])
}

// AllSubCategories returns every distinct sub-category value.
func AllSubCategories() []SubCategory {
	return slices.Clone(allSubCategories)
}

// IsCategory reports whether c belongs to the taxonomy.
func IsCategory(c Category) bool {
	_, ok := subCategories[c]
	return ok
}

// IsSubCategoryOf reports whether s is a member of c's sub-category set.
// A sub-category that is valid under a different category does not count.
func IsSubCategoryOf(c Category, s SubCategory) bool {
	return slices.Contains(subCategories[c], s)
}

// Normalize maps an untrusted (category, sub-category) pair onto the
// taxonomy. An unknown category reroutes the whole pair to the catch-all;
// an unknown sub-category falls back to the catch-all of the same category.
func Normalize(c Category, s SubCategory) (Category, SubCategory) {
	if !IsCategory(c) {
		return CatchAll, CatchAllSub
	}
	if !IsSubCategoryOf(c, s) {
		return c, CatchAllSub
	}
	return c, s
}
