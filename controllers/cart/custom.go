package cartControllers

import (
	"github.com/junaidrashid-git/storefront-api/fasteners"
	"github.com/junaidrashid-git/storefront-api/models"
)

// normalizeCustomProduct fills the display fields the cart view relies on
// and reprices known fastener types from the server-side catalog. Cable and
// connector builders post their own payloads, which are kept as sent.
func normalizeCustomProduct(cp models.JSONMap) (models.JSONMap, error) {
	options := cp.Map("options")

	if cfg, ok := fastenerConfig(options); ok {
		sel := fasteners.Selection{Options: map[string]string{}}
		for _, g := range cfg.Groups {
			if v, ok := options.String(g.Key); ok {
				sel.Options[g.Key] = v
			}
		}
		if q, ok := options.Float("quantity"); ok {
			sel.Quantity = int(q)
		}
		sel.Remarks, _ = options.String("remarks")

		quote, err := cfg.Quote(sel)
		if err != nil {
			return nil, err
		}
		priced := models.JSONMap(quote.CustomProduct())
		if title, ok := cp.String("title"); ok {
			priced["title"] = title
		}
		return priced, nil
	}

	if _, ok := cp.String("title"); !ok {
		kind, ok := options.String("fastenerType")
		if !ok {
			kind = "Fastener"
		}
		cp["title"] = "Custom " + kind
	}
	if total, ok := options.Float("totalPrice"); ok {
		if v, _ := cp.Float("basePrice"); v == 0 {
			cp["basePrice"] = total
		}
		if v, _ := cp.Float("offerPrice"); v == 0 {
			cp["offerPrice"] = total
		}
	}
	if _, ok := cp.String("image"); !ok {
		if img, ok := options.String("image"); ok {
			cp["image"] = img
		}
	}
	return cp, nil
}

func fastenerConfig(options models.JSONMap) (fasteners.Config, bool) {
	kind, ok := options.String("fastenerType")
	if !ok {
		return fasteners.Config{}, false
	}
	return fasteners.Lookup(kind)
}
