package cartControllers

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/junaidrashid-git/storefront-api/models"
)

const placeholderImage = "/placeholder.svg"

type itemView struct {
	ItemID        string          `json:"itemId"`
	PID           string          `json:"pid"`
	Slug          string          `json:"slug,omitempty"`
	Title         string          `json:"title"`
	Image         string          `json:"image"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	OfferPrice    decimal.Decimal `json:"offerPrice"`
	Color         *string         `json:"color"`
	Quantity      int             `json:"quantity"`
	URL           string          `json:"url"`
	CustomProduct models.JSONMap  `json:"customProduct,omitempty"`
}

func presentItems(items []models.CartItem) []itemView {
	out := make([]itemView, 0, len(items))
	for _, item := range items {
		out = append(out, presentItem(item))
	}
	return out
}

func presentItem(item models.CartItem) itemView {
	if item.IsCustom() {
		cp := item.CustomProduct
		title, ok := cp.String("title")
		if !ok {
			title = "Custom Fastener"
		}
		image, ok := cp.String("image")
		if !ok {
			image = placeholderImage
		}
		base, _ := cp.Float("basePrice")
		offer, _ := cp.Float("offerPrice")
		return itemView{
			ItemID:        item.ID,
			PID:           "custom-" + item.ID,
			Title:         title,
			Image:         image,
			BasePrice:     decimal.NewFromFloat(base),
			OfferPrice:    decimal.NewFromFloat(offer),
			Quantity:      item.Quantity,
			URL:           "/fasteners",
			CustomProduct: cp,
		}
	}

	v := itemView{
		ItemID:   item.ID,
		Color:    item.Color,
		Quantity: item.Quantity,
	}
	if item.ProductID != nil {
		v.PID = *item.ProductID
	}
	if p := item.Product; p != nil {
		v.Slug = p.Slug
		v.Title = p.Title
		v.Image = thumbnail(p.Images, item.Color)
		v.BasePrice = p.BasePrice
		v.OfferPrice = p.OfferPrice
		v.URL = productURL(p.Slug, p.ID, item.Color)
	}
	return v
}

// UnitPrice is what one unit of the line costs at checkout. ok is false
// when the line's product no longer exists.
func UnitPrice(item models.CartItem) (price decimal.Decimal, ok bool) {
	if item.IsCustom() {
		offer, _ := item.CustomProduct.Float("offerPrice")
		return decimal.NewFromFloat(offer), true
	}
	if item.Product == nil {
		return decimal.Zero, false
	}
	return item.Product.OfferPrice, true
}

// thumbnail prefers an image tagged with the chosen color.
func thumbnail(images []models.ProductImage, color *string) string {
	if color != nil {
		for _, img := range images {
			if img.Color != nil && strings.EqualFold(*img.Color, *color) {
				return img.URL
			}
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return placeholderImage
}

func productURL(slug, productID string, color *string) string {
	u := "/product/" + url.PathEscape(slug) + "?pid=" + url.QueryEscape(productID)
	if color != nil && *color != "" {
		u += "&color=" + url.QueryEscape(*color)
	}
	return u
}
