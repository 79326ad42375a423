package productcontroller

import (
	"context"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/storefront-api/cache"
)

// Slugify transliterates s to ASCII and joins its lowercased words with
// dashes. It returns "" when nothing printable survives.
func Slugify(s string) string {
	return slug.Make(s)
}

func productCacheKey(store cache.Cache, productSlug string) string {
	return store.GenerateKey("product", productSlug)
}

// InvalidateProducts drops cached product pages; a failure only costs
// freshness until the entry expires.
func InvalidateProducts(ctx context.Context, store cache.Cache, log *zap.Logger, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, productCacheKey(store, s))
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := store.Delete(ctx, keys...); err != nil {
		log.Warn("invalidate product cache", zap.Strings("slugs", slugs), zap.Error(err))
	}
}
