package document

import (
	"encoding/json"
	"fmt"
)

// ChangeStatus classifies a variant against its last saved state.
type ChangeStatus int

const (
	StatusNew ChangeStatus = iota
	StatusUnchanged
	StatusModified
)

func (s ChangeStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	}
	return fmt.Sprintf("ChangeStatus(%d)", int(s))
}

// VariantProjection is the outbound form of one variant. Unchanged variants carry
// only Minimal; new and modified ones carry Full.
type VariantProjection struct {
	Status  ChangeStatus
	Full    *VariantDocument
	Minimal *VariantCore
}

func (p VariantProjection) MarshalJSON() ([]byte, error) {
	if p.Status == StatusUnchanged && p.Minimal != nil {
		return json.Marshal(p.Minimal)
	}
	if p.Full == nil {
		return nil, fmt.Errorf("variant projection %s has no full document", p.Status)
	}
	return json.Marshal(p.Full)
}

// SaveDocument is the body of a create or partial update call.
// Fields holds only the scalar fields being sent; nil lists are omitted.
type SaveDocument struct {
	Fields          map[string]any
	Variants        []VariantProjection
	BulletPoints    *[]BulletPoint
	Recommendations *[]int64
}

func (d SaveDocument) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	variants := d.Variants
	if variants == nil {
		variants = []VariantProjection{}
	}
	out["variants"] = variants
	if d.BulletPoints != nil {
		out["bullet_points"] = *d.BulletPoints
	}
	if d.Recommendations != nil {
		out["recommendations"] = *d.Recommendations
	}
	return json.Marshal(out)
}

// VariantInput is a variant as received in a save call. Media and attribute
// lists are nil when the client sent a minimal document.
type VariantInput struct {
	VariantCore
	DiscountPrice    *float64             `json:"discount_price"`
	Images           *[]ImageDocument     `json:"images"`
	MainImage        *string              `json:"main_image"`
	VideoURL         *string              `json:"video_url"`
	Specifications   *[]AttributeDocument `json:"specifications"`
	MeasurementSpecs *[]AttributeDocument `json:"measurement_specs"`
	StyleSpecs       *[]AttributeDocument `json:"style_specs"`
	Features         *[]AttributeDocument `json:"features"`
	UserGuide        *[]AttributeDocument `json:"user_guide"`
	ItemDetails      *[]AttributeDocument `json:"item_details"`
}

// Full reports whether the input carried the full variant projection.
func (v *VariantInput) Full() bool {
	return v.Images != nil || v.Specifications != nil
}

// Section returns the attribute list sent for s, or nil when it was not sent.
func (v *VariantInput) Section(s Section) *[]AttributeDocument {
	switch s {
	case SectionSpecifications:
		return v.Specifications
	case SectionMeasurementSpecs:
		return v.MeasurementSpecs
	case SectionStyleSpecs:
		return v.StyleSpecs
	case SectionFeatures:
		return v.Features
	case SectionUserGuide:
		return v.UserGuide
	case SectionItemDetails:
		return v.ItemDetails
	}
	return nil
}

// SaveRequest is the server-side decoding of a SaveDocument.
type SaveRequest struct {
	Fields          map[string]any
	Variants        []VariantInput
	BulletPoints    *[]BulletPoint
	Recommendations *[]int64
}

func (r *SaveRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Fields = make(map[string]any)
	for k, v := range raw {
		switch k {
		case "variants":
			if err := json.Unmarshal(v, &r.Variants); err != nil {
				return fmt.Errorf("variants: %w", err)
			}
		case "bullet_points":
			var bullets []BulletPoint
			if err := json.Unmarshal(v, &bullets); err != nil {
				return fmt.Errorf("bullet_points: %w", err)
			}
			r.BulletPoints = &bullets
		case "recommendations":
			var recs []int64
			if err := json.Unmarshal(v, &recs); err != nil {
				return fmt.Errorf("recommendations: %w", err)
			}
			r.Recommendations = &recs
		default:
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			r.Fields[k] = val
		}
	}
	return nil
}
