package editor

import (
	"github.com/mytheresa/catalog-editor/document"
)

// --- Helpers ---

func boolPtr(b bool) *bool { return &b }

func idPtr(id int64) *int64 { return &id }

func attr(name, value string, order int) document.AttributeEntry {
	return document.AttributeEntry{Name: name, Value: value, SortOrder: order}
}

// sampleProduct returns a saved product with two fully populated variants.
func sampleProduct() *Product {
	return &Product{
		ID:               idPtr(10),
		Title:            "Oak Side Table",
		Slug:             "oak-side-table",
		SKU:              "OST-1",
		ShortDescription: "Solid oak",
		Description:      "A small solid oak side table.",
		CategoryID:       idPtr(3),
		MaterialID:       idPtr(4),
		Brand:            "Woodwork",
		Dimensions:       "40x40x55",
		Weight:           "7.5",
		Warranty:         "2 years",
		AssemblyRequired: true,
		DeliveryEstimate: "3-5 days",
		IsActive:         true,
		MarketingOffers:  []string{"Free delivery"},
		BulletPoints:     []document.BulletPoint{{ID: idPtr(1), Text: "FSC certified", SortOrder: 0}},
		Recommendations:  []int64{11, 12},
		Variants: []Variant{
			{
				ID:             idPtr(100),
				ColorID:        idPtr(5),
				SKU:            "OST-1-NAT",
				Size:           "S",
				Price:          "129.90",
				Stock:          "12",
				IsActive:       boolPtr(true),
				InStock:        boolPtr(true),
				SubcategoryIDs: []int64{7},
				Images: []Image{
					{ID: idPtr(1000), URL: "https://cdn.example.com/a.jpg"},
					{ID: idPtr(1001), URL: "https://cdn.example.com/b.jpg"},
				},
				MainImage:      "https://cdn.example.com/a.jpg",
				Specifications: []document.AttributeEntry{attr("Depth", "40 cm", 0), attr("Finish", "Oiled", 1)},
				Features:       []document.AttributeEntry{attr("Foldable", "No", 0)},
			},
			{
				ID:             idPtr(101),
				ColorID:        idPtr(6),
				SKU:            "OST-1-BLK",
				Size:           "S",
				Price:          "139.90",
				Stock:          "3",
				IsActive:       boolPtr(true),
				InStock:        boolPtr(true),
				Images:         []Image{{ID: idPtr(1002), URL: "https://cdn.example.com/c.jpg"}},
				Specifications: []document.AttributeEntry{attr("Depth", "40 cm", 0)},
			},
		},
	}
}
