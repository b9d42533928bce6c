package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/catalog-editor/document"
	"github.com/mytheresa/catalog-editor/logger"
)

// --- Mock Catalog ---

type MockCatalog struct {
	Product  *document.ProductDocument
	Response *document.ProductDocument
	FetchErr error
	SaveErr  error

	saveCalls       int
	lastSavedID     *int64
	lastSavePayload document.SaveDocument
}

func (m *MockCatalog) FetchProduct(_ context.Context, id int64) (*document.ProductDocument, error) {
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	if m.Product == nil || m.Product.ID != id {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return m.Product, nil
}

func (m *MockCatalog) SaveProduct(_ context.Context, id *int64, doc document.SaveDocument) (*document.ProductDocument, error) {
	m.saveCalls++
	m.lastSavedID = id
	m.lastSavePayload = doc
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	return m.Response, nil
}

// --- Mock Templates ---

type MockTemplates struct {
	Indexes  map[int64]document.TemplateIndex
	Defaults map[int64]document.CategoryDefaults

	mu      sync.Mutex
	gates   map[int64]chan struct{}
	started chan int64
}

func (m *MockTemplates) Load(ctx context.Context, categoryID int64) document.TemplateIndex {
	m.mu.Lock()
	gate := m.gates[categoryID]
	m.mu.Unlock()
	if m.started != nil {
		m.started <- categoryID
	}
	if gate != nil {
		<-gate
	}
	if idx, ok := m.Indexes[categoryID]; ok {
		return idx
	}
	return document.EmptyIndex()
}

func (m *MockTemplates) LoadDefaults(_ context.Context, categoryID int64) document.CategoryDefaults {
	return m.Defaults[categoryID]
}

// --- Helpers ---

func specIndex(fields ...string) document.TemplateIndex {
	rows := make([]document.TemplateRow, len(fields))
	for i, f := range fields {
		rows[i] = document.TemplateRow{Section: document.SectionSpecifications, FieldName: f, SortOrder: i}
	}
	return document.BuildIndex(rows)
}

func attrDoc(name, value string, order int) document.AttributeDocument {
	return document.AttributeDocument{Name: name, Value: value, SortOrder: order, IsActive: true}
}

func savedDocument() *document.ProductDocument {
	price, weight := 49.5, 2.0
	return &document.ProductDocument{
		ID:         10,
		Title:      "Linen Shirt",
		CategoryID: idPtr(3),
		Weight:     &weight,
		IsActive:   true,
		Variants: []document.VariantDocument{
			{
				VariantCore: document.VariantCore{
					ID: idPtr(100), ColorID: idPtr(5), SKU: "LS-1", Price: &price, Stock: 4, IsActive: true, InStock: true,
				},
				Images: []document.ImageDocument{{ID: idPtr(1), URL: "a.jpg", SortOrder: 0}},
				Specifications: []document.AttributeDocument{
					attrDoc("Weight", "200g", 0),
					attrDoc("Size", "M", 5),
				},
			},
		},
	}
}

func openSession(t *testing.T, catalog *MockCatalog, tpl *MockTemplates) *Session {
	t.Helper()
	s := NewSession(catalog, tpl, logger.Nop())
	require.NoError(t, s.Open(context.Background(), 10))
	return s
}

// --- Tests ---

func TestSessionOpen(t *testing.T) {
	catalog := &MockCatalog{Product: savedDocument()}
	tpl := &MockTemplates{Indexes: map[int64]document.TemplateIndex{3: specIndex("Color", "Size")}}

	s := openSession(t, catalog, tpl)

	w := s.Working()
	require.Len(t, w.Variants, 1)
	specs := w.Variants[0].Specifications
	assert.Equal(t, "Size", specs[0].Name)
	assert.Equal(t, 1, specs[0].SortOrder, "templated entries adopt the template order")
	assert.Equal(t, "Weight", specs[1].Name)
	assert.False(t, s.IsNew())
	assert.False(t, s.HasUnsavedChanges())
	require.NotNil(t, s.Snapshot())
	assert.Equal(t, w, s.Snapshot())
}

func TestSessionOpenFetchError(t *testing.T) {
	catalog := &MockCatalog{FetchErr: errors.New("boom")}
	s := NewSession(catalog, &MockTemplates{}, logger.Nop())

	err := s.Open(context.Background(), 10)

	assert.Error(t, err)
	assert.True(t, s.IsNew())
	assert.Nil(t, s.Snapshot())
}

func TestSessionNewProductUnsavedChanges(t *testing.T) {
	s := NewSession(&MockCatalog{}, &MockTemplates{}, logger.Nop())
	assert.False(t, s.HasUnsavedChanges())

	require.NoError(t, s.SetScalarField(document.FieldTitle, "L"))
	assert.True(t, s.HasUnsavedChanges())
}

func TestSessionSelectCategoryMergesDefaults(t *testing.T) {
	tpl := &MockTemplates{
		Indexes: map[int64]document.TemplateIndex{4: specIndex("Color", "Size")},
		Defaults: map[int64]document.CategoryDefaults{4: {
			document.SectionSpecifications: {{FieldName: "Color"}, {FieldName: "Size"}},
			document.SectionFeatures:       {{FieldName: "Washable"}},
		}},
	}
	s := NewSession(&MockCatalog{}, tpl, logger.Nop())
	vi := s.AddVariant()
	idx, err := s.AddAttributeEntry(vi, document.SectionSpecifications)
	require.NoError(t, err)
	require.NoError(t, s.SetAttributeEntry(vi, document.SectionSpecifications, idx, EntryName, "size"))
	require.NoError(t, s.SetAttributeEntry(vi, document.SectionSpecifications, idx, EntryValue, "L"))

	require.NoError(t, s.SelectCategory(context.Background(), 4))

	v := s.Working().Variants[0]
	require.Len(t, v.Specifications, 2)
	assert.Equal(t, "Color", v.Specifications[0].Name)
	assert.Equal(t, "", v.Specifications[0].Value)
	assert.Equal(t, "size", v.Specifications[1].Name)
	assert.Equal(t, "L", v.Specifications[1].Value)
	require.Len(t, v.Features, 1)
	assert.Equal(t, "Washable", v.Features[0].Name)
	assert.Equal(t, specIndex("Color", "Size"), s.Templates())
	assert.Equal(t, int64(4), *s.Working().CategoryID)

	// variants added afterwards carry the defaults too
	vi = s.AddVariant()
	assert.Len(t, s.Working().Variants[vi].Specifications, 2)
}

func TestSessionSelectCategoryDiscardsStaleTemplates(t *testing.T) {
	tpl := &MockTemplates{
		Indexes: map[int64]document.TemplateIndex{
			1: specIndex("Old"),
			2: specIndex("New"),
		},
		gates:   map[int64]chan struct{}{1: make(chan struct{})},
		started: make(chan int64, 4),
	}
	s := NewSession(&MockCatalog{}, tpl, logger.Nop())
	s.AddVariant()

	errCh := make(chan error, 1)
	go func() { errCh <- s.SelectCategory(context.Background(), 1) }()

	select {
	case id := <-tpl.started:
		require.Equal(t, int64(1), id)
	case <-time.After(2 * time.Second):
		t.Fatal("template load for category 1 never started")
	}

	require.NoError(t, s.SelectCategory(context.Background(), 2))
	close(tpl.gates[1])

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("stale category load never returned")
	}
	assert.Equal(t, specIndex("New"), s.Templates())
	assert.Equal(t, int64(2), *s.Working().CategoryID)
}

func TestSessionSelectCategoryCancelled(t *testing.T) {
	tpl := &MockTemplates{Indexes: map[int64]document.TemplateIndex{1: specIndex("Color")}}
	s := NewSession(&MockCatalog{}, tpl, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.SelectCategory(ctx, 1)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, s.Templates().Empty())
}

func TestSessionSaveValidation(t *testing.T) {
	catalog := &MockCatalog{}
	s := NewSession(catalog, &MockTemplates{}, logger.Nop())
	s.AddVariant()

	_, err := s.Save(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"title is required", "category is required", "variant 1: color is required"}, verr.Problems)
	assert.Equal(t, 0, catalog.saveCalls)
}

func TestSessionSaveNewProduct(t *testing.T) {
	catalog := &MockCatalog{Response: savedDocument()}
	s := NewSession(catalog, &MockTemplates{}, logger.Nop())
	require.NoError(t, s.SetScalarField(document.FieldTitle, "Linen Shirt"))
	require.NoError(t, s.SelectCategory(context.Background(), 3))
	vi := s.AddVariant()
	require.NoError(t, s.SetVariantField(vi, VariantColorID, "5"))
	require.NoError(t, s.SetVariantField(vi, VariantPrice, "49.5"))

	saved, err := s.Save(context.Background())

	require.NoError(t, err)
	assert.Nil(t, catalog.lastSavedID)
	assert.Len(t, catalog.lastSavePayload.Fields, len(document.ProductFields))
	require.Len(t, catalog.lastSavePayload.Variants, 1)
	assert.Equal(t, document.StatusNew, catalog.lastSavePayload.Variants[0].Status)

	assert.Equal(t, int64(10), *saved.ID)
	assert.Equal(t, int64(100), *saved.Variants[0].ID)
	assert.False(t, s.IsNew())
	assert.False(t, s.HasUnsavedChanges())
	assert.Equal(t, int64(10), *s.Snapshot().ID)
}

func TestSessionSaveSendsOnlyChangedFields(t *testing.T) {
	resp := savedDocument()
	weight := 2.5
	resp.Weight = &weight
	catalog := &MockCatalog{Product: savedDocument(), Response: resp}
	s := openSession(t, catalog, &MockTemplates{})

	require.NoError(t, s.SetScalarField(document.FieldWeight, "2.5"))
	assert.True(t, s.HasUnsavedChanges())

	_, err := s.Save(context.Background())

	require.NoError(t, err)
	require.NotNil(t, catalog.lastSavedID)
	assert.Equal(t, int64(10), *catalog.lastSavedID)
	assert.Equal(t, map[string]any{document.FieldWeight: ptrFloat(2.5)}, catalog.lastSavePayload.Fields)
	require.Len(t, catalog.lastSavePayload.Variants, 1)
	assert.Equal(t, document.StatusUnchanged, catalog.lastSavePayload.Variants[0].Status)
	assert.False(t, s.HasUnsavedChanges())
	assert.Equal(t, "2.5", s.Snapshot().Weight)
}

func TestSessionSaveFailureLeavesStateUntouched(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		wantTimeout bool
	}{
		{name: "Server error", err: errors.New("500 internal"), wantTimeout: false},
		{name: "Deadline exceeded", err: fmt.Errorf("post: %w", context.DeadlineExceeded), wantTimeout: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			catalog := &MockCatalog{Product: savedDocument(), SaveErr: tc.err}
			s := openSession(t, catalog, &MockTemplates{})
			snapBefore := s.Snapshot()
			require.NoError(t, s.SetScalarField(document.FieldBrand, "Atelier"))
			workingBefore := s.Working()

			_, err := s.Save(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.wantTimeout, errors.Is(err, ErrSaveTimeout))
			assert.Same(t, snapBefore, s.Snapshot())
			assert.Equal(t, workingBefore, s.Working())
			assert.True(t, s.HasUnsavedChanges())
		})
	}
}

func TestSessionMutationErrors(t *testing.T) {
	s := NewSession(&MockCatalog{}, &MockTemplates{}, logger.Nop())
	vi := s.AddVariant()

	assert.ErrorIs(t, s.SetScalarField("colour", "red"), ErrUnknownField)
	assert.ErrorIs(t, s.SetScalarField(document.FieldCategoryID, "3"), ErrUnknownField)
	assert.ErrorIs(t, s.SetScalarField(document.FieldMaterialID, "x"), ErrInvalidValue)
	assert.ErrorIs(t, s.SetScalarField(document.FieldIsFeatured, "maybe"), ErrInvalidValue)
	assert.ErrorIs(t, s.SetVariantField(5, VariantSKU, "A"), ErrOutOfRange)
	assert.ErrorIs(t, s.SetVariantField(vi, "weight", "A"), ErrUnknownField)
	assert.ErrorIs(t, s.SetVariantField(vi, VariantColorID, "-2"), ErrInvalidValue)
	assert.ErrorIs(t, s.RemoveVariant(3), ErrOutOfRange)
	assert.ErrorIs(t, s.RemoveAttributeEntry(vi, document.SectionFeatures, 0), ErrOutOfRange)
	assert.ErrorIs(t, s.SetAttributeEntry(vi, document.SectionFeatures, 0, EntryName, "x"), ErrOutOfRange)
	_, err := s.AddAttributeEntry(vi, "colour_swatches")
	assert.ErrorIs(t, err, ErrUnknownField)

	ei, err := s.AddAttributeEntry(vi, document.SectionFeatures)
	require.NoError(t, err)
	assert.ErrorIs(t, s.SetAttributeEntry(vi, document.SectionFeatures, ei, EntrySortOrder, "first"), ErrInvalidValue)
	assert.ErrorIs(t, s.SetAttributeEntry(vi, document.SectionFeatures, ei, "label", "x"), ErrUnknownField)
}

func TestSessionMutations(t *testing.T) {
	s := NewSession(&MockCatalog{}, &MockTemplates{}, logger.Nop())

	require.NoError(t, s.SetScalarField(document.FieldMaterialID, "12"))
	require.NoError(t, s.SetScalarField(document.FieldAssemblyRequired, "true"))
	s.SetMarketingOffers([]string{"Free returns"})
	s.SetBulletPoints([]string{"Soft", "Breathable"})
	s.SetRecommendations([]int64{4, 5})

	first := s.AddVariant()
	second := s.AddVariant()
	require.NoError(t, s.SetVariantField(second, VariantSKU, "B"))
	require.NoError(t, s.SetVariantField(second, VariantInStock, "false"))
	require.NoError(t, s.SetVariantImages(second, []Image{{URL: "b.jpg"}}))
	require.NoError(t, s.SetVariantSubcategories(second, []int64{8}))
	require.NoError(t, s.RemoveVariant(first))

	e0, _ := s.AddAttributeEntry(0, document.SectionItemDetails)
	e1, _ := s.AddAttributeEntry(0, document.SectionItemDetails)
	require.NoError(t, s.SetAttributeEntry(0, document.SectionItemDetails, e0, EntryName, "Origin"))
	require.NoError(t, s.SetAttributeEntry(0, document.SectionItemDetails, e1, EntryIsActive, "false"))
	require.NoError(t, s.RemoveAttributeEntry(0, document.SectionItemDetails, e1))

	w := s.Working()
	assert.Equal(t, int64(12), *w.MaterialID)
	assert.True(t, w.AssemblyRequired)
	assert.Equal(t, []string{"Free returns"}, w.MarketingOffers)
	assert.Equal(t, []document.BulletPoint{{Text: "Soft", SortOrder: 0}, {Text: "Breathable", SortOrder: 1}}, w.BulletPoints)
	assert.Equal(t, []int64{4, 5}, w.Recommendations)
	require.Len(t, w.Variants, 1)
	v := w.Variants[0]
	assert.Equal(t, "B", v.SKU)
	assert.False(t, *v.InStock)
	assert.Equal(t, []Image{{URL: "b.jpg"}}, v.Images)
	assert.Equal(t, []int64{8}, v.SubcategoryIDs)
	require.Len(t, v.ItemDetails, 1)
	assert.Equal(t, "Origin", v.ItemDetails[0].Name)

	require.NoError(t, s.SetScalarField(document.FieldMaterialID, ""))
	assert.Nil(t, s.Working().MaterialID)
}

func TestSessionRecommendedFieldsAndReconcile(t *testing.T) {
	catalog := &MockCatalog{Product: savedDocument()}
	tpl := &MockTemplates{Indexes: map[int64]document.TemplateIndex{3: specIndex("Color", "Size")}}
	s := openSession(t, catalog, tpl)

	recommended, err := s.RecommendedFields(0)
	require.NoError(t, err)
	assert.Equal(t, map[document.Section][]string{document.SectionSpecifications: {"Color"}}, recommended)

	ei, err := s.AddAttributeEntry(0, document.SectionSpecifications)
	require.NoError(t, err)
	require.NoError(t, s.SetAttributeEntry(0, document.SectionSpecifications, ei, EntryName, "color"))
	require.NoError(t, s.SetAttributeEntry(0, document.SectionSpecifications, ei, EntryValue, "Blue"))
	assert.Equal(t, []string{"Size", "Weight", "color"}, entryNames(s.Working().Variants[0].Specifications),
		"rows stay in place while editing")

	require.NoError(t, s.ReconcileAttributes(0))
	assert.Equal(t, []string{"color", "Size", "Weight"}, entryNames(s.Working().Variants[0].Specifications))

	recommended, err = s.RecommendedFields(0)
	require.NoError(t, err)
	assert.Empty(t, recommended)

	assert.ErrorIs(t, s.ReconcileAttributes(4), ErrOutOfRange)
	_, err = s.RecommendedFields(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func entryNames(entries []document.AttributeEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSessionPayloadMatchesBuilder(t *testing.T) {
	catalog := &MockCatalog{Product: savedDocument()}
	s := openSession(t, catalog, &MockTemplates{})
	require.NoError(t, s.SetVariantField(0, VariantStock, "9"))

	doc := s.Payload()

	assert.Empty(t, doc.Fields)
	require.Len(t, doc.Variants, 1)
	assert.Equal(t, document.StatusModified, doc.Variants[0].Status)
	assert.Equal(t, []document.ChangeStatus{document.StatusModified}, s.VariantStatuses())
}
