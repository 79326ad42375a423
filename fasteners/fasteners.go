// Package fasteners holds the configurable fastener catalog and prices a
// selection of options server-side.
package fasteners

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 100
)

type Option struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
}

// Group is one selectable attribute, e.g. head type or size.
type Group struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Required    bool     `json:"required"`
	MultiSelect bool     `json:"multiSelect,omitempty"`
	HelpText    string   `json:"helpText,omitempty"`
	Options     []Option `json:"options"`
}

type Config struct {
	Slug      string          `json:"slug"`
	Type      string          `json:"type"`
	Image     string          `json:"image"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Groups    []Group         `json:"options"`
}

func All() []Config {
	out := make([]Config, len(configs))
	copy(out, configs)
	return out
}

// Lookup finds a config by slug ("bolts") or type name ("Bolt"),
// case-insensitively.
func Lookup(name string) (Config, bool) {
	name = strings.TrimSpace(name)
	for _, c := range configs {
		if strings.EqualFold(c.Slug, name) || strings.EqualFold(c.Type, name) {
			return c, true
		}
	}
	return Config{}, false
}

func (c Config) group(key string) (Group, bool) {
	for _, g := range c.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}

type Selection struct {
	Options  map[string]string `json:"options"`
	Quantity int               `json:"quantity"`
	Remarks  string            `json:"remarks"`
}

// ValidationError lists every problem found in a Selection.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}

type Quote struct {
	FastenerType string            `json:"fastenerType"`
	Image        string            `json:"image"`
	Options      map[string]string `json:"options"`
	Quantity     int               `json:"quantity"`
	Remarks      string            `json:"remarks,omitempty"`
	UnitPrice    decimal.Decimal   `json:"unitPrice"`
	TotalPrice   decimal.Decimal   `json:"totalPrice"`
}

// Quote validates sel and prices it: the unit price is the base price plus
// every selected option's modifier, and the total is unit price × quantity.
func (c Config) Quote(sel Selection) (*Quote, error) {
	var problems []string

	if sel.Quantity < MinQuantity {
		problems = append(problems, "Quantity must be at least 1")
	} else if sel.Quantity > MaxQuantity {
		problems = append(problems, "Maximum quantity is 100")
	}

	unit := c.BasePrice
	chosen := make(map[string]string, len(sel.Options))

	for _, g := range c.Groups {
		id := strings.TrimSpace(sel.Options[g.Key])
		if id == "" {
			if g.Required {
				problems = append(problems, g.Label+" is required")
			}
			continue
		}
		opt, ok := findOption(g.Options, id)
		if !ok {
			problems = append(problems, fmt.Sprintf("%q is not a valid %s", id, g.Label))
			continue
		}
		chosen[g.Key] = opt.ID
		if opt.Price != 0 {
			unit = unit.Add(decimal.NewFromFloat(opt.Price))
		}
	}

	var unknown []string
	for key := range sel.Options {
		if _, ok := c.group(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		problems = append(problems, fmt.Sprintf("unknown option %q", key))
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	return &Quote{
		FastenerType: c.Type,
		Image:        c.Image,
		Options:      chosen,
		Quantity:     sel.Quantity,
		Remarks:      strings.TrimSpace(sel.Remarks),
		UnitPrice:    unit,
		TotalPrice:   unit.Mul(decimal.NewFromInt(int64(sel.Quantity))),
	}, nil
}

func findOption(opts []Option, id string) (Option, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// CustomProduct renders the quote as the cart's customProduct payload.
// One cart line is one batch, so basePrice and offerPrice carry the batch
// total and options.unitPrice the per-piece price.
func (q Quote) CustomProduct() map[string]interface{} {
	total := q.TotalPrice.InexactFloat64()

	options := make(map[string]interface{}, len(q.Options)+6)
	for k, v := range q.Options {
		options[k] = v
	}
	options["quantity"] = q.Quantity
	options["remarks"] = q.Remarks
	options["unitPrice"] = q.UnitPrice.InexactFloat64()
	options["totalPrice"] = total
	options["fastenerType"] = q.FastenerType
	options["image"] = q.Image

	return map[string]interface{}{
		"title":      "Custom " + q.FastenerType,
		"image":      q.Image,
		"basePrice":  total,
		"offerPrice": total,
		"options":    options,
	}
}
