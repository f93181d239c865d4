package domain

import "fmt"

// Nutrient identifies one field of a nutrient profile.
type Nutrient int

// The closed nutrient key set. Order is the display order.
const (
	EnergyKJ Nutrient = iota
	EnergyKcal
	Fat
	SaturatedFat
	MonounsaturatedFat
	PolyunsaturatedFat
	TransFat
	Cholesterol
	Carbs
	Sugar
	Starch
	Fiber
	Protein
	Salt
	Sodium
	VitaminA
	VitaminC
	VitaminD
	VitaminE
	VitaminK
	VitaminB1
	VitaminB2
	VitaminB3
	VitaminB6
	VitaminB12
	Folate
	Calcium
	Iron
	Magnesium
	Phosphorus
	Potassium
	Zinc

	nutrientCount
)

// NutrientCount is the number of keys in every profile
const NutrientCount = int(nutrientCount)

// Unit is the fixed measurement unit of a nutrient, per 100g of food
type Unit string

const (
	UnitKilojoule   Unit = "kJ"
	UnitKilocalorie Unit = "kcal"
	UnitGram        Unit = "g"
	UnitMilligram   Unit = "mg"
	UnitMicrogram   Unit = "µg"
)

// GramsPerUnit returns how many of this unit make up one gram.
// Energy units are not masses and return 0.
func (u Unit) GramsPerUnit() float64 {
	switch u {
	case UnitGram:
		return 1
	case UnitMilligram:
		return 1e3
	case UnitMicrogram:
		return 1e6
	default:
		return 0
	}
}

type nutrientInfo struct {
	key   string
	label string
	unit  Unit
}

var nutrientTable = [nutrientCount]nutrientInfo{
	EnergyKJ:           {"energy_kj", "Energy", UnitKilojoule},
	EnergyKcal:         {"energy_kcal", "Energy", UnitKilocalorie},
	Fat:                {"fat", "Fat", UnitGram},
	SaturatedFat:       {"saturated_fat", "Saturated fat", UnitGram},
	MonounsaturatedFat: {"monounsaturated_fat", "Monounsaturated fat", UnitGram},
	PolyunsaturatedFat: {"polyunsaturated_fat", "Polyunsaturated fat", UnitGram},
	TransFat:           {"trans_fat", "Trans fat", UnitGram},
	Cholesterol:        {"cholesterol", "Cholesterol", UnitMilligram},
	Carbs:              {"carbs", "Carbohydrates", UnitGram},
	Sugar:              {"sugar", "Sugars", UnitGram},
	Starch:             {"starch", "Starch", UnitGram},
	Fiber:              {"fiber", "Fiber", UnitGram},
	Protein:            {"protein", "Protein", UnitGram},
	Salt:               {"salt", "Salt", UnitGram},
	Sodium:             {"sodium", "Sodium", UnitMilligram},
	VitaminA:           {"vitamin_a", "Vitamin A", UnitMicrogram},
	VitaminC:           {"vitamin_c", "Vitamin C", UnitMilligram},
	VitaminD:           {"vitamin_d", "Vitamin D", UnitMicrogram},
	VitaminE:           {"vitamin_e", "Vitamin E", UnitMilligram},
	VitaminK:           {"vitamin_k", "Vitamin K", UnitMicrogram},
	VitaminB1:          {"vitamin_b1", "Vitamin B1 (thiamine)", UnitMilligram},
	VitaminB2:          {"vitamin_b2", "Vitamin B2 (riboflavin)", UnitMilligram},
	VitaminB3:          {"vitamin_b3", "Vitamin B3 (niacin)", UnitMilligram},
	VitaminB6:          {"vitamin_b6", "Vitamin B6", UnitMilligram},
	VitaminB12:         {"vitamin_b12", "Vitamin B12", UnitMicrogram},
	Folate:             {"folate", "Folate", UnitMicrogram},
	Calcium:            {"calcium", "Calcium", UnitMilligram},
	Iron:               {"iron", "Iron", UnitMilligram},
	Magnesium:          {"magnesium", "Magnesium", UnitMilligram},
	Phosphorus:         {"phosphorus", "Phosphorus", UnitMilligram},
	Potassium:          {"potassium", "Potassium", UnitMilligram},
	Zinc:               {"zinc", "Zinc", UnitMilligram},
}

var nutrientsByKey = func() map[string]Nutrient {
	m := make(map[string]Nutrient, nutrientCount)
	for n := Nutrient(0); n < nutrientCount; n++ {
		m[nutrientTable[n].key] = n
	}
	return m
}()

// Valid reports whether n is one of the known nutrients
func (n Nutrient) Valid() bool {
	return n >= 0 && n < nutrientCount
}

// Key returns the stable wire key, e.g. "saturated_fat"
func (n Nutrient) Key() string {
	if !n.Valid() {
		return fmt.Sprintf("nutrient(%d)", int(n))
	}
	return nutrientTable[n].key
}

// Label returns a human readable name
func (n Nutrient) Label() string {
	if !n.Valid() {
		return n.Key()
	}
	return nutrientTable[n].label
}

// Unit returns the unit the nutrient is stored in
func (n Nutrient) Unit() Unit {
	if !n.Valid() {
		return ""
	}
	return nutrientTable[n].unit
}

func (n Nutrient) String() string {
	return n.Key()
}

// ParseNutrient resolves a wire key. Unknown keys are an error rather than a silent zero.
func ParseNutrient(key string) (Nutrient, error) {
	n, ok := nutrientsByKey[key]
	if !ok {
		return 0, fmt.Errorf("%w: unknown nutrient %q", ErrMalformedInput, key)
	}
	return n, nil
}

// AllNutrients returns every nutrient in display order
func AllNutrients() []Nutrient {
	out := make([]Nutrient, nutrientCount)
	for i := range out {
		out[i] = Nutrient(i)
	}
	return out
}
