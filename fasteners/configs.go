package fasteners

import "github.com/shopspring/decimal"

var (
	materialMetal = []Option{
		{ID: "copper", Name: "Copper"},
		{ID: "mild-steel", Name: "Mild Steel"},
		{ID: "brass", Name: "Brass"},
		{ID: "stainless-steel", Name: "Stainless Steel"},
	}
	coating = []Option{
		{ID: "blackened", Name: "Blackened"},
		{ID: "zinc-coated", Name: "Zinc Coated"},
		{ID: "nickel-coated", Name: "Nickel Coated"},
	}
	driveTypes = []Option{
		{ID: "phillip", Name: "Phillip"},
		{ID: "slotted", Name: "Slotted"},
		{ID: "combination", Name: "Combination"},
		{ID: "allen", Name: "Allen"},
		{ID: "torx", Name: "Torx"},
		{ID: "hex", Name: "Hex"},
	}
)

func sizes(ids ...string) []Option {
	out := make([]Option, len(ids))
	for i, id := range ids {
		out[i] = Option{ID: "m" + id, Name: "M" + id}
	}
	return out
}

func lengths(ids ...string) []Option {
	out := make([]Option, len(ids))
	for i, id := range ids {
		out[i] = Option{ID: id, Name: id}
	}
	return out
}

var configs = []Config{
	{
		Slug:      "bolts",
		Type:      "Bolt",
		Image:     "/images/fasteners/bolts.jpg",
		BasePrice: decimal.RequireFromString("0.50"),
		Groups: []Group{
			{Key: "headType", Label: "Head Type", Required: true, Options: []Option{
				{ID: "flat", Name: "Flat"},
				{ID: "pan", Name: "Pan"},
				{ID: "hex", Name: "Hex"},
				{ID: "hex-washer", Name: "Hex Washer"},
				{ID: "spring-washer", Name: "Spring Washer"},
				{ID: "button", Name: "Button"},
				{ID: "socket", Name: "Socket"},
				{ID: "hex-flange", Name: "Hex Flange"},
				{ID: "serrated-head", Name: "Serrated Head"},
			}},
			{Key: "driveType", Label: "Drive Type", Required: true, Options: driveTypes},
			{Key: "size", Label: "Size", Required: true, Options: sizes("2.5", "3", "4", "5", "6", "8")},
			{Key: "length", Label: "Length (mm)", Required: true, Options: lengths("5", "6", "8", "10", "12", "15", "18", "20", "25", "30")},
			{Key: "material", Label: "Material Type", Required: true, Options: materialMetal},
			{Key: "coating", Label: "Coating Type", Required: true, Options: coating},
		},
	},
	{
		Slug:      "nuts",
		Type:      "Nut",
		Image:     "/images/fasteners/nut.jpg",
		BasePrice: decimal.RequireFromString("0.30"),
		Groups: []Group{
			{Key: "type", Label: "Type", Required: true, Options: []Option{
				{ID: "hex", Name: "Hex"},
				{ID: "nylon", Name: "Nylon"},
				{ID: "jam", Name: "Jam"},
				{ID: "wing", Name: "Wing"},
				{ID: "cap", Name: "Cap"},
				{ID: "flange", Name: "Flange"},
			}},
			{Key: "driveType", Label: "Drive Type", Options: driveTypes},
			{Key: "size", Label: "Size", Required: true, Options: sizes("3", "4", "5", "6", "8")},
			{Key: "material", Label: "Material Type", Required: true, Options: materialMetal},
			{Key: "coating", Label: "Coating Type", Required: true, Options: coating},
		},
	},
	{
		Slug:      "washers",
		Type:      "Washer",
		Image:     "/images/fasteners/washer.jpg",
		BasePrice: decimal.RequireFromString("0.15"),
		Groups: []Group{
			{Key: "type", Label: "Type", Required: true, Options: []Option{
				{ID: "flat", Name: "Flat"},
				{ID: "spring", Name: "Spring"},
			}},
			{Key: "size", Label: "Size", Required: true, Options: sizes("3", "4", "5", "6", "8")},
			{Key: "material", Label: "Material Type", Required: true, Options: []Option{
				{ID: "nylon", Name: "Nylon"},
				{ID: "ms", Name: "MS"},
				{ID: "stainless-steel", Name: "Stainless Steel"},
			}},
		},
	},
	{
		Slug:      "brass-inserts",
		Type:      "Brass Insert",
		Image:     "/images/fasteners/brass-insert.png",
		BasePrice: decimal.RequireFromString("0.40"),
		Groups: []Group{
			{Key: "size", Label: "Size", Required: true, Options: sizes("3", "4", "5", "6")},
		},
	},
	{
		Slug:      "rev-nuts",
		Type:      "Rev Nuts",
		Image:     "/images/fasteners/rev-nuts.jpeg",
		BasePrice: decimal.RequireFromString("0.35"),
		Groups: []Group{
			{Key: "size", Label: "Size", Required: true, Options: sizes("3", "4", "5", "6", "8")},
		},
	},
	{
		Slug:      "stand-offs",
		Type:      "Stand Offs",
		Image:     "/images/fasteners/sand-offs.webp",
		BasePrice: decimal.RequireFromString("0.45"),
		Groups: []Group{
			{Key: "size", Label: "Size", Required: true, HelpText: "Email us for more sizes which are not available here", Options: sizes("3", "4", "5", "6")},
			{Key: "length", Label: "Length (mm)", Required: true, Options: lengths("5", "10", "12", "15", "20")},
			{Key: "threadLength", Label: "Thread Length (mm)", Required: true, Options: lengths("5", "10")},
			{Key: "material", Label: "Material Type", Required: true, Options: []Option{
				{ID: "blackened", Name: "Blackened"},
				{ID: "zinc-coated", Name: "Zinc Coated"},
				{ID: "brass", Name: "Brass"},
				{ID: "stainless-steel", Name: "Stainless Steel"},
			}},
		},
	},
	{
		Slug:      "screws",
		Type:      "Screw",
		Image:     "/images/fasteners/screw.jpg",
		BasePrice: decimal.RequireFromString("0.25"),
		Groups: []Group{
			{Key: "headType", Label: "Head Type", Required: true, Options: []Option{
				{ID: "flat", Name: "Flat"},
				{ID: "pan", Name: "Pan"},
				{ID: "flange", Name: "Flange"},
			}},
			{Key: "driveType", Label: "Drive Type", Required: true, Options: []Option{
				{ID: "phillip", Name: "Phillip"},
				{ID: "flat", Name: "Flat"},
				{ID: "combination", Name: "Combination"},
				{ID: "hex", Name: "Hex"},
			}},
			{Key: "feature", Label: "Feature", Required: true, Options: []Option{
				{ID: "normal", Name: "Normal"},
				{ID: "self-tapping", Name: "Self Tapping"},
				{ID: "self-drilling", Name: "Self Drilling"},
			}},
			{Key: "size", Label: "Size", Required: true, Options: lengths("3", "4", "5")},
			{Key: "length", Label: "Length (mm)", Required: true, Options: lengths("5", "6", "8", "10", "12")},
			{Key: "material", Label: "Material Type", Required: true, Options: []Option{
				{ID: "ms", Name: "MS"},
				{ID: "stainless-steel", Name: "Stainless Steel"},
			}},
		},
	},
}
