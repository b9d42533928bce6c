package editor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mytheresa/catalog-editor/attributes"
	"github.com/mytheresa/catalog-editor/document"
)

// Variant field keys accepted by SetVariantField.
const (
	VariantColorID       = "color_id"
	VariantSKU           = "sku"
	VariantSize          = "size"
	VariantPattern       = "pattern"
	VariantQuality       = "quality"
	VariantPrice         = "price"
	VariantDiscountPrice = "discount_price"
	VariantStock         = "stock"
	VariantIsActive      = "is_active"
	VariantInStock       = "in_stock"
	VariantMainImage     = "main_image"
	VariantVideoURL      = "video_url"
)

// Attribute entry field keys accepted by SetAttributeEntry.
const (
	EntryName      = "name"
	EntryValue     = "value"
	EntrySortOrder = "sort_order"
	EntryIsActive  = "is_active"
)

// SetScalarField sets one scalar product field from form input. Id fields
// accept "" to clear them.
func (s *Session) SetScalarField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.working

	switch field {
	case document.FieldTitle:
		p.Title = value
	case document.FieldSlug:
		p.Slug = value
	case document.FieldSKU:
		p.SKU = value
	case document.FieldShortDescription:
		p.ShortDescription = value
	case document.FieldDescription:
		p.Description = value
	case document.FieldBrand:
		p.Brand = value
	case document.FieldDimensions:
		p.Dimensions = value
	case document.FieldWeight:
		p.Weight = value
	case document.FieldWarranty:
		p.Warranty = value
	case document.FieldDeliveryEstimate:
		p.DeliveryEstimate = value
	case document.FieldSubcategoryID, document.FieldMaterialID:
		id, err := parseID(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if field == document.FieldSubcategoryID {
			p.SubcategoryID = id
		} else {
			p.MaterialID = id
		}
	case document.FieldAssemblyRequired, document.FieldIsFeatured, document.FieldIsActive:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		switch field {
		case document.FieldAssemblyRequired:
			p.AssemblyRequired = b
		case document.FieldIsFeatured:
			p.IsFeatured = b
		default:
			p.IsActive = b
		}
	case document.FieldCategoryID:
		return fmt.Errorf("%w: use SelectCategory to change %s", ErrUnknownField, field)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// SetMarketingOffers replaces the marketing offer list.
func (s *Session) SetMarketingOffers(offers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.MarketingOffers = slices.Clone(offers)
}

// SetBulletPoints replaces the bullet point list.
func (s *Session) SetBulletPoints(texts []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bullets := make([]document.BulletPoint, 0, len(texts))
	for i, t := range texts {
		var id *int64
		if i < len(s.working.BulletPoints) {
			id = cloneID(s.working.BulletPoints[i].ID)
		}
		bullets = append(bullets, document.BulletPoint{ID: id, Text: t, SortOrder: i})
	}
	s.working.BulletPoints = bullets
}

// SetRecommendations replaces the cross-sell product ids.
func (s *Session) SetRecommendations(productIDs []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.Recommendations = slices.Clone(productIDs)
}

// AddVariant appends an empty variant carrying the current category's
// default attributes and returns its index.
func (s *Session) AddVariant() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, inStock := true, true
	v := Variant{IsActive: &active, InStock: &inStock}
	applyTemplates(&v, s.index, s.defaults)
	s.working.Variants = append(s.working.Variants, v)
	return len(s.working.Variants) - 1
}

func (s *Session) RemoveVariant(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.working.Variants) {
		return fmt.Errorf("variant %d: %w", i, ErrOutOfRange)
	}
	s.working.Variants = slices.Delete(s.working.Variants, i, i+1)
	return nil
}

// SetVariantField sets one field of variant i from form input.
func (s *Session) SetVariantField(i int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variant(i)
	if err != nil {
		return err
	}

	switch field {
	case VariantColorID:
		id, perr := parseID(value)
		if perr != nil {
			return fmt.Errorf("variant %d %s: %w", i, field, perr)
		}
		v.ColorID = id
	case VariantSKU:
		v.SKU = value
	case VariantSize:
		v.Size = value
	case VariantPattern:
		v.Pattern = value
	case VariantQuality:
		v.Quality = value
	case VariantPrice:
		v.Price = value
	case VariantDiscountPrice:
		v.DiscountPrice = value
	case VariantStock:
		v.Stock = value
	case VariantIsActive, VariantInStock:
		b, perr := parseBool(value)
		if perr != nil {
			return fmt.Errorf("variant %d %s: %w", i, field, perr)
		}
		if field == VariantIsActive {
			v.IsActive = &b
		} else {
			v.InStock = &b
		}
	case VariantMainImage:
		v.MainImage = value
	case VariantVideoURL:
		v.VideoURL = value
	default:
		return fmt.Errorf("%w: variant %s", ErrUnknownField, field)
	}
	return nil
}

// SetVariantImages replaces the ordered image list of variant i.
func (s *Session) SetVariantImages(i int, images []Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variant(i)
	if err != nil {
		return err
	}
	v.Images = make([]Image, len(images))
	for j, img := range images {
		v.Images[j] = Image{ID: cloneID(img.ID), URL: img.URL}
	}
	return nil
}

// SetVariantSubcategories replaces the subcategory ids of variant i.
func (s *Session) SetVariantSubcategories(i int, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variant(i)
	if err != nil {
		return err
	}
	v.SubcategoryIDs = slices.Clone(ids)
	return nil
}

// AddAttributeEntry appends a blank entry to a section of variant i and
// returns its index.
func (s *Session) AddAttributeEntry(i int, section document.Section) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variant(i)
	if err != nil {
		return 0, err
	}
	if !section.Valid() {
		return 0, fmt.Errorf("%w: section %q", ErrUnknownField, section)
	}
	entries := v.Section(section)
	active := true
	entries = append(entries, document.AttributeEntry{SortOrder: len(entries), IsActive: &active})
	v.SetSection(section, entries)
	return len(entries) - 1, nil
}

func (s *Session) RemoveAttributeEntry(i int, section document.Section, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variant(i)
	if err != nil {
		return err
	}
	entries := v.Section(section)
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("%s entry %d: %w", section, index, ErrOutOfRange)
	}
	v.SetSection(section, slices.Delete(slices.Clone(entries), index, index+1))
	return nil
}

// SetAttributeEntry sets one field of an attribute entry. Renaming an entry
// to a templated name gives it the template's sort order; the list itself is
// not reordered until the next reconciliation so rows do not jump while the
// user types.
func (s *Session) SetAttributeEntry(i int, section document.Section, index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variant(i)
	if err != nil {
		return err
	}
	entries := v.Section(section)
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("%s entry %d: %w", section, index, ErrOutOfRange)
	}
	e := &entries[index]

	switch field {
	case EntryName:
		e.Name = value
		if t, ok := document.Lookup(s.index.Template(section), value); ok {
			e.SortOrder = t.SortOrder
		}
	case EntryValue:
		e.Value = value
	case EntrySortOrder:
		n, perr := strconv.Atoi(strings.TrimSpace(value))
		if perr != nil {
			return fmt.Errorf("%s entry %d sort_order: %w", section, index, ErrInvalidValue)
		}
		e.SortOrder = n
	case EntryIsActive:
		b, perr := parseBool(value)
		if perr != nil {
			return fmt.Errorf("%s entry %d is_active: %w", section, index, perr)
		}
		e.IsActive = &b
	default:
		return fmt.Errorf("%w: attribute %s", ErrUnknownField, field)
	}
	return nil
}

// ReconcileAttributes reorders every section of variant i against the
// installed templates.
func (s *Session) ReconcileAttributes(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variant(i)
	if err != nil {
		return err
	}
	for _, sec := range document.Sections {
		v.SetSection(sec, attributes.Reconcile(v.Section(sec), sec, s.index.Template(sec)))
	}
	return nil
}

// RecommendedFields lists, per section, the template fields variant i does
// not carry yet. Sections with nothing missing are left out.
func (s *Session) RecommendedFields(i int) (map[document.Section][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variant(i)
	if err != nil {
		return nil, err
	}
	out := make(map[document.Section][]string)
	for _, sec := range document.Sections {
		if missing := attributes.Recommended(v.Section(sec), s.index.Template(sec)); len(missing) > 0 {
			out[sec] = missing
		}
	}
	return out, nil
}

func (s *Session) variant(i int) (*Variant, error) {
	if i < 0 || i >= len(s.working.Variants) {
		return nil, fmt.Errorf("variant %d: %w", i, ErrOutOfRange)
	}
	return &s.working.Variants[i], nil
}

func parseID(value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidValue
	}
	return &id, nil
}

func parseBool(value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, ErrInvalidValue
	}
	return b, nil
}
