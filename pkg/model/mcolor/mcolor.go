package mcolor

import (
	"strings"

	"github.com/goccy/go-json"
)

// Color is the structured triple persisted for columns and groups.
type Color struct {
	ColumnColor string `json:"columnColor"`
	ItemColor   string `json:"itemColor"`
	ButtonColor string `json:"buttonColor"`
}

// FromSingle promotes a single hex value to all three sub-colors. Legacy
// rows stored a bare string instead of the triple.
func FromSingle(hex string) Color {
	return Color{
		ColumnColor: hex,
		ItemColor:   hex,
		ButtonColor: hex,
	}
}

// Parse decodes a stored color value in either shape: the JSON triple or a
// legacy plain string.
func Parse(raw string) Color {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var c Color
		if err := json.Unmarshal([]byte(trimmed), &c); err == nil {
			return c
		}
	}
	return FromSingle(trimmed)
}

func (c Color) Encode() string {
	data, err := json.Marshal(c)
	if err != nil {
		// Color is a plain struct of strings; marshal cannot fail.
		panic(err)
	}
	return string(data)
}

// Palette holds the stock board colors. Order matters: DefaultColumn and
// PickDistinct walk it front to back.
var Palette = []Color{
	{ColumnColor: "#CFE8CF", ItemColor: "#B3DBB3", ButtonColor: "#77C377"},
	{ColumnColor: "#F8D7DA", ItemColor: "#F2B8BE", ButtonColor: "#E37B87"},
	{ColumnColor: "#CFE2FF", ItemColor: "#A9CCFE", ButtonColor: "#5B9BFD"},
	{ColumnColor: "#FFF3CD", ItemColor: "#FFE69C", ButtonColor: "#FFCD39"},
	{ColumnColor: "#E2D9F3", ItemColor: "#C5B3E6", ButtonColor: "#8C68CD"},
	{ColumnColor: "#FFE5D0", ItemColor: "#FECBA1", ButtonColor: "#FD9843"},
}

// DefaultColumn picks a palette color for the n-th column of a board.
func DefaultColumn(n int) Color {
	if n < 0 {
		n = 0
	}
	return Palette[n%len(Palette)]
}

// PickDistinct returns the first palette color that visually differs from
// avoid, so a group never blends into its column.
func PickDistinct(avoid Color) Color {
	for _, c := range Palette {
		if c.ColumnColor != avoid.ColumnColor {
			return c
		}
	}
	return Palette[0]
}
