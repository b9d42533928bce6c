package editor

import "strings"

// HasUnsavedChanges reports whether leaving the editor would lose work.
//
// A new product counts as dirty once any identifying field is filled in or a
// variant exists. An existing one is dirty when a scalar field, the variant
// count, any variant or one of the auxiliary lists differs from original.
func HasUnsavedChanges(current, original *Product, isNew bool) bool {
	if current == nil {
		return false
	}
	if isNew || original == nil {
		return hasIdentity(current) || len(current.Variants) > 0
	}
	if ProductFieldsChanged(current, original) {
		return true
	}
	if len(current.Variants) != len(original.Variants) {
		return true
	}
	for i := range current.Variants {
		if VariantChanged(&current.Variants[i], matchOriginal(&current.Variants[i], i, original.Variants)) {
			return true
		}
	}
	if !Equal(cleanBullets(current.BulletPoints), cleanBullets(original.BulletPoints)) {
		return true
	}
	return !Equal(cleanRecommendations(current.Recommendations), cleanRecommendations(original.Recommendations))
}

func hasIdentity(p *Product) bool {
	for _, s := range []string{p.Title, p.Slug, p.SKU, p.ShortDescription, p.Description, p.Brand} {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return p.CategoryID != nil
}
