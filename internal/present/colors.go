package present

// DefaultColor is used for categories outside the palette.
const DefaultColor = "#868E96"

var palette = map[string]string{
	"Alimentação":    "#FF6B6B",
	"Transporte":     "#4ECDC4",
	"Moradia":        "#45B7D1",
	"Casa":           "#45B7D1",
	"Lazer":          "#96CEB4",
	"Entretenimento": "#96CEB4",
	"Saúde":          "#FECA57",
	"Educação":       "#FF9FF3",
	"Vestuário":      "#54A0FF",
	"Outros":         "#5F27CD",
	"Tecnologia":     "#4ECDC4",
	"Trabalho":       "#45B7D1",
}

// CategoryColor returns the chart color of category.
func CategoryColor(category string) string {
	if c, ok := palette[category]; ok {
		return c
	}
	return DefaultColor
}
