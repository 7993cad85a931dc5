package taxonomy

// Label returns a human-readable name for a category.
func (c Category) Label() string {
	switch c {
	case CategoryTourism:
		return "Tourism"
	case CategoryHealth:
		return "Health & Care"
	case CategoryDisasterPrevention:
		return "Disaster Prevention"
	case CategoryEducation:
		return "Education"
	case CategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

// Label returns a human-readable name for a sub-category.
func (s SubCategory) Label() string {
	switch s {
	case SubHealthPromotion:
		return "Health Promotion"
	case SubLifelongLearning:
		return "Lifelong Learning"
	default:
		return string(s)
	}
}
