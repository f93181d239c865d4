package openfoodfacts

import (
	"math"
	"strconv"
	"strings"

	"github.com/macrolens/bakecalc/internal/domain"
)

// UnknownProductName is used when a product carries neither a product nor a generic name
const UnknownProductName = "Unknown product"

// nutrimentKeys lists the Open Food Facts per-100g fields for each nutrient, preferred first.
var nutrimentKeys = map[domain.Nutrient][]string{
	domain.EnergyKJ:           {"energy-kj_100g", "energy_100g"},
	domain.EnergyKcal:         {"energy-kcal_100g"},
	domain.Fat:                {"fat_100g"},
	domain.SaturatedFat:       {"saturated-fat_100g"},
	domain.MonounsaturatedFat: {"monounsaturated-fat_100g"},
	domain.PolyunsaturatedFat: {"polyunsaturated-fat_100g"},
	domain.TransFat:           {"trans-fat_100g"},
	domain.Cholesterol:        {"cholesterol_100g"},
	domain.Carbs:              {"carbohydrates_100g"},
	domain.Sugar:              {"sugars_100g"},
	domain.Starch:             {"starch_100g"},
	domain.Fiber:              {"fiber_100g"},
	domain.Protein:            {"proteins_100g"},
	domain.Salt:               {"salt_100g"},
	domain.Sodium:             {"sodium_100g"},
	domain.VitaminA:           {"vitamin-a_100g"},
	domain.VitaminC:           {"vitamin-c_100g"},
	domain.VitaminD:           {"vitamin-d_100g"},
	domain.VitaminE:           {"vitamin-e_100g"},
	domain.VitaminK:           {"vitamin-k_100g"},
	domain.VitaminB1:          {"vitamin-b1_100g"},
	domain.VitaminB2:          {"vitamin-b2_100g"},
	domain.VitaminB3:          {"vitamin-pp_100g", "vitamin-b3_100g"},
	domain.VitaminB6:          {"vitamin-b6_100g"},
	domain.VitaminB12:         {"vitamin-b12_100g"},
	domain.Folate:             {"folates_100g", "vitamin-b9_100g"},
	domain.Calcium:            {"calcium_100g"},
	domain.Iron:               {"iron_100g"},
	domain.Magnesium:          {"magnesium_100g"},
	domain.Phosphorus:         {"phosphorus_100g"},
	domain.Potassium:          {"potassium_100g"},
	domain.Zinc:               {"zinc_100g"},
}

// MapToProduct converts an Open Food Facts record to a domain.Product.
// Unreported nutrients are zero.
func MapToProduct(off *domain.OFFProduct) domain.Product {
	return domain.Product{
		Code:    off.Code,
		Name:    productName(off),
		Brand:   firstBrand(off.Brands),
		Profile: MapToProfile(off.Nutriments),
	}
}

// MapToProfile reads the per-100g nutriments. Open Food Facts reports masses in
// grams, so milligram and microgram nutrients are converted to their own unit.
func MapToProfile(nutriments map[string]any) domain.Profile {
	var p domain.Profile
	for n, keys := range nutrimentKeys {
		v, ok := firstValue(nutriments, keys)
		if !ok {
			continue
		}
		if perGram := n.Unit().GramsPerUnit(); perGram > 0 {
			v *= perGram
		}
		// Set rejects negative and non-finite values; those stay zero.
		_ = p.Set(n, v)
	}
	return p
}

func firstValue(nutriments map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		if v, ok := FindNutrimentValue(nutriments, key); ok {
			return v, true
		}
	}
	return 0, false
}

// FindNutrimentValue coerces a nutriments entry to float64.
// Numbers and numeric strings are accepted; anything else is reported as absent.
func FindNutrimentValue(nutriments map[string]any, key string) (float64, bool) {
	raw, ok := nutriments[key]
	if !ok {
		return 0, false
	}

	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case int:
		v = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func productName(off *domain.OFFProduct) string {
	if name := strings.TrimSpace(off.ProductName); name != "" {
		return name
	}
	if name := strings.TrimSpace(off.GenericName); name != "" {
		return name
	}
	return UnknownProductName
}

func firstBrand(brands string) string {
	if idx := strings.Index(brands, ","); idx >= 0 {
		brands = brands[:idx]
	}
	return strings.TrimSpace(brands)
}
