package domain

import "sort"

// Tag taxonomies shared by the model prompt and the keyword fallback.
// Keys are canonical tags as stored on recipes; values are surface forms
// matched as substrings of a lower-cased query.

// DietarySynonyms maps dietary tags to query synonyms.
var DietarySynonyms = map[string][]string{
	"vegan":         {"vegan", "plant-based", "plant based"},
	"vegetarian":    {"vegetarian", "veggie", "meatless", "meat-free"},
	"keto":          {"keto", "ketogenic"},
	"low-carb":      {"low-carb", "low carb", "keto", "no carbs"},
	"paleo":         {"paleo"},
	"gluten-free":   {"gluten-free", "gluten free", "no gluten", "celiac"},
	"dairy-free":    {"dairy-free", "dairy free", "no dairy", "lactose-free", "lactose free"},
	"pescatarian":   {"pescatarian", "pescetarian"},
	"mediterranean": {"mediterranean"},
	"whole30":       {"whole30", "whole 30"},
}

// HealthSynonyms maps health tags to query synonyms.
var HealthSynonyms = map[string][]string{
	"high-protein": {"high-protein", "high protein", "protein-rich", "protein rich", "protein-packed", "protein packed"},
	"low-calorie":  {"low-calorie", "low calorie", "low-cal", "light meal"},
	"low-fat":      {"low-fat", "low fat"},
	"low-sodium":   {"low-sodium", "low sodium", "low salt"},
	"high-fiber":   {"high-fiber", "high fiber", "fiber-rich", "fiber rich"},
	"low-sugar":    {"low-sugar", "low sugar", "sugar-free", "sugar free", "no sugar"},
	"iron-rich":    {"iron-rich", "iron rich", "high iron"},
}

// BenefitSynonyms maps health-benefit tags to query synonyms.
var BenefitSynonyms = map[string][]string{
	"heart-health":      {"heart-health", "heart health", "heart-healthy", "heart healthy", "cardiovascular", "cholesterol"},
	"weight-loss":       {"weight-loss", "weight loss", "lose weight", "slimming"},
	"muscle-building":   {"muscle-building", "muscle building", "muscle gain", "bulking"},
	"gut-health":        {"gut-health", "gut health", "digestion", "digestive", "probiotic"},
	"immune-support":    {"immune-support", "immune support", "immunity", "immune boost"},
	"energy-boost":      {"energy-boost", "energy boost", "energizing", "energy"},
	"brain-health":      {"brain-health", "brain health", "cognitive", "focus"},
	"anti-inflammatory": {"anti-inflammatory", "anti inflammatory", "inflammation"},
}

// TaxonomyTags returns the canonical tags of a synonym map in sorted
// order, for stable prompt construction.
func TaxonomyTags(synonyms map[string][]string) []string {
	tags := make([]string, 0, len(synonyms))
	for tag := range synonyms {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
