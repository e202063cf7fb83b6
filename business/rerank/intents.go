package rerank

import "strings"

// Intent is a coarse query category detected from a fixed lexicon. A query
// may match several intents at once.
type Intent string

const (
	IntentPhone    Intent = "phone"
	IntentWatch    Intent = "watch"
	IntentLaptop   Intent = "laptop"
	IntentTablet   Intent = "tablet"
	IntentClothing Intent = "clothing"
	IntentShoes    Intent = "shoes"
	IntentHome     Intent = "home"
	IntentBooks    Intent = "books"
)

// intentOrder fixes iteration order so detection is deterministic.
var intentOrder = []Intent{
	IntentPhone,
	IntentWatch,
	IntentLaptop,
	IntentTablet,
	IntentClothing,
	IntentShoes,
	IntentHome,
	IntentBooks,
}

var intentLexicons = map[Intent][]string{
	IntentPhone:    {"phone", "smartphone", "mobile", "iphone", "android", "samsung", "pixel", "galaxy"},
	IntentWatch:    {"watch", "smartwatch", "wristwatch", "garmin", "fitbit"},
	IntentLaptop:   {"laptop", "notebook", "macbook", "ultrabook", "chromebook"},
	IntentTablet:   {"tablet", "ipad"},
	IntentClothing: {"clothing", "shirt", "tshirt", "jacket", "dress", "jeans", "hoodie"},
	IntentShoes:    {"shoe", "shoes", "sneaker", "sneakers", "boots", "sandals"},
	IntentHome:     {"sofa", "lamp", "kitchen", "furniture", "vacuum", "blender"},
	IntentBooks:    {"book", "books", "novel", "paperback", "hardcover"},
}

// intentConflicts maps an intent to categories that should be pushed down
// hard when that intent fires, e.g. televisions on a phone query.
var intentConflicts = map[Intent][]string{
	IntentPhone:    {"tv", "television", "home", "appliance"},
	IntentWatch:    {"tv", "television"},
	IntentLaptop:   {"phone", "tv", "television"},
	IntentTablet:   {"tv", "television"},
	IntentClothing: {"electronics"},
	IntentShoes:    {"electronics"},
	IntentHome:     {"phone", "laptop"},
	IntentBooks:    {"electronics"},
}

// brandRelations lists competitor/complementary brands per known brand.
// Small and static; same-brand matches are handled separately.
var brandRelations = map[string][]string{
	"apple":   {"samsung", "google"},
	"samsung": {"apple", "google"},
	"google":  {"apple", "samsung"},
	"sony":    {"bose", "jbl"},
	"bose":    {"sony", "jbl"},
	"jbl":     {"sony", "bose"},
	"nike":    {"adidas", "puma"},
	"adidas":  {"nike", "puma"},
	"puma":    {"nike", "adidas"},
	"dell":    {"lenovo", "hp"},
	"hp":      {"dell", "lenovo"},
	"lenovo":  {"dell", "hp"},
}

// DetectIntents classifies the query against every lexicon. The result is
// ordered by intentOrder; empty when nothing matches.
func DetectIntents(query string) []Intent {
	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	var detected []Intent
	for _, intent := range intentOrder {
		for _, term := range intentLexicons[intent] {
			if tokens[term] {
				detected = append(detected, intent)
				break
			}
		}
	}

	return detected
}

// queryBrand returns the first known brand mentioned in the query, scanning
// tokens left to right so the answer is deterministic.
func queryBrand(query string) (string, bool) {
	for _, f := range strings.Fields(strings.ToLower(query)) {
		if _, ok := brandRelations[f]; ok {
			return f, true
		}
	}
	return "", false
}

func relatedBrands(a, b string) bool {
	for _, rel := range brandRelations[a] {
		if rel == b {
			return true
		}
	}
	return false
}

func queryTokens(query string) map[string]bool {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		tokens[f] = true
	}
	return tokens
}
