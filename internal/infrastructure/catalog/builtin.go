package catalog

import "github.com/macrolens/bakecalc/internal/domain"

// Built-in ingredient names
const (
	Flour            = "Flour"
	Water            = "Water"
	Salt             = "Salt"
	SourdoughStarter = "Sourdough starter"
	Sugar            = "Sugar"
	Butter           = "Butter"
	Egg              = "Egg"
	WholeWheatFlour  = "Whole-wheat flour"
	Yeast            = "Yeast"
)

// Entry is one reference ingredient, values per 100g
type Entry struct {
	Name    string
	Profile domain.Profile
}

// Builtin returns a fresh copy of the reference ingredients the database is seeded with.
func Builtin() []Entry {
	// BL80 white bread flour
	flour := domain.MustProfile(map[domain.Nutrient]float64{
		domain.EnergyKJ:     1470,
		domain.EnergyKcal:   347,
		domain.Fat:          1.3,
		domain.SaturatedFat: 0.2,
		domain.Carbs:        70.6,
		domain.Sugar:        1.3,
		domain.Fiber:        3.2,
		domain.Protein:      10.1,
		domain.Salt:         0.01,
		domain.Iron:         1.3,
		domain.Magnesium:    25,
		domain.Potassium:    130,
		domain.Calcium:      15,
		domain.VitaminB1:    0.3,
		domain.VitaminB3:    3.0,
	})

	return []Entry{
		{Name: Flour, Profile: flour},
		{Name: Water, Profile: domain.Profile{}},
		{Name: Salt, Profile: domain.MustProfile(map[domain.Nutrient]float64{
			domain.Salt:   100,
			domain.Sodium: 39000,
		})},
		{Name: SourdoughStarter, Profile: sourdoughStarter(flour)},
		{Name: Sugar, Profile: domain.MustProfile(map[domain.Nutrient]float64{
			domain.EnergyKJ:   1700,
			domain.EnergyKcal: 400,
			domain.Carbs:      100,
			domain.Sugar:      100,
		})},
		{Name: Butter, Profile: domain.MustProfile(map[domain.Nutrient]float64{
			domain.EnergyKJ:           3050,
			domain.EnergyKcal:         735,
			domain.Fat:                81,
			domain.SaturatedFat:       50.5,
			domain.MonounsaturatedFat: 21,
			domain.PolyunsaturatedFat: 3,
			domain.TransFat:           3.3,
			domain.Cholesterol:        215,
			domain.Carbs:              0.6,
			domain.Sugar:              0.6,
			domain.Protein:            0.7,
			domain.Salt:               0.1,
			domain.VitaminA:           750,
			domain.VitaminD:           1.3,
			domain.VitaminE:           2.3,
		})},
		{Name: Egg, Profile: domain.MustProfile(map[domain.Nutrient]float64{
			domain.EnergyKJ:           606,
			domain.EnergyKcal:         145,
			domain.Fat:                10.3,
			domain.SaturatedFat:       3.1,
			domain.MonounsaturatedFat: 4.1,
			domain.PolyunsaturatedFat: 1.4,
			domain.Cholesterol:        372,
			domain.Carbs:              0.4,
			domain.Sugar:              0.4,
			domain.Protein:            12.6,
			domain.Salt:               0.37,
			domain.VitaminA:           160,
			domain.VitaminD:           1.8,
			domain.VitaminE:           1.1,
			domain.VitaminB12:         1.3,
			domain.Iron:               1.9,
		})},
		{Name: WholeWheatFlour, Profile: domain.MustProfile(map[domain.Nutrient]float64{
			domain.EnergyKJ:     1420,
			domain.EnergyKcal:   339,
			domain.Fat:          2.5,
			domain.SaturatedFat: 0.4,
			domain.Carbs:        63,
			domain.Sugar:        2.3,
			domain.Fiber:        10.7,
			domain.Protein:      13.2,
			domain.Salt:         0.01,
			domain.Iron:         3.9,
			domain.Magnesium:    120,
			domain.Zinc:         2.9,
		})},
		{Name: Yeast, Profile: domain.MustProfile(map[domain.Nutrient]float64{
			domain.EnergyKJ:   412,
			domain.EnergyKcal: 98,
			domain.Fat:        1.1,
			domain.Carbs:      3.9,
			domain.Protein:    16.9,
			domain.Salt:       0.04,
			domain.VitaminB1:  1.5,
			domain.VitaminB2:  1.9,
			domain.VitaminB3:  12.0,
			domain.VitaminB6:  0.6,
			domain.Folate:     1250,
		})},
	}
}

// sourdoughStarter is half flour, half water by weight. Only the label
// macronutrients are carried over; micronutrients of the starter are not tracked.
func sourdoughStarter(flour domain.Profile) domain.Profile {
	var p domain.Profile
	for _, n := range []domain.Nutrient{
		domain.EnergyKJ,
		domain.EnergyKcal,
		domain.Fat,
		domain.SaturatedFat,
		domain.Carbs,
		domain.Sugar,
		domain.Fiber,
		domain.Protein,
		domain.Salt,
	} {
		_ = p.Set(n, flour.Get(n)*0.5)
	}
	return p
}
