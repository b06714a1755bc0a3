package skipool

import (
	"context"
	"fmt"
	"time"

	"github.com/skipool/skipool/internal/domain"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	"github.com/skipool/skipool/internal/domain/search/request"
	"github.com/skipool/skipool/internal/seed"
	resortuc "github.com/skipool/skipool/internal/usecase/resort"
)

// ResortService searches and manages the resort catalogue.
type ResortService struct {
	search    searchUseCase
	catalogue resortUseCase
	obs       *observer
}

// Search runs a fuzzy name lookup with optional distance ranking.
func (s *ResortService) Search(ctx context.Context, q SearchQuery) (_ SearchResponse, err error) {
	start := time.Now()
	defer func() { s.obs.observe("resort.search", start, err) }()

	var lat, lng *float64
	if q.Near != nil {
		lat, lng = &q.Near.Lat, &q.Near.Lng
	}
	req, err := request.New(q.Text, q.Threshold, lat, lng)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search resorts: %w", err)
	}

	resp, err := s.search.Search(ctx, &req)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search resorts: %w", err)
	}

	out := SearchResponse{
		Query:   resp.Query,
		Count:   resp.Count,
		Results: make([]SearchResult, len(resp.Results)),
	}
	for i := range resp.Results {
		out.Results[i] = fromInternalResult(resp.Results[i])
	}
	return out, nil
}

// List returns active resorts ordered by name.
func (s *ResortService) List(ctx context.Context, f ResortFilter) (_ []Resort, err error) {
	start := time.Now()
	defer func() { s.obs.observe("resort.list", start, err) }()

	resorts, err := s.catalogue.List(ctx, resortuc.Filter{
		Region: domresort.Region(f.Region),
		Name:   f.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("list resorts: %w", err)
	}
	out := make([]Resort, len(resorts))
	for i := range resorts {
		out[i] = fromInternalResort(resorts[i])
	}
	return out, nil
}

// Get returns an active resort by id.
func (s *ResortService) Get(ctx context.Context, id string) (_ Resort, err error) {
	start := time.Now()
	defer func() { s.obs.observe("resort.get", start, err) }()

	r, err := s.catalogue.Get(ctx, id)
	if err != nil {
		return Resort{}, fmt.Errorf("get resort %s: %w", id, err)
	}
	return fromInternalResort(r), nil
}

// Import upserts resorts by name. With clearFirst, the catalogue and every
// ride offer are emptied first.
// Nothing is written when any input fails validation.
func (s *ResortService) Import(ctx context.Context, in []ResortInput, clearFirst bool) (_ ImportStats, err error) {
	start := time.Now()
	defer func() { s.obs.observe("resort.import", start, err) }()

	resorts := make([]domresort.Resort, 0, len(in))
	for i := range in {
		r, err := toInternalResort(in[i])
		if err != nil {
			return ImportStats{}, fmt.Errorf("import resorts: %w: %q: %w", domain.ErrInvalidResort, in[i].Name, err)
		}
		resorts = append(resorts, r)
	}
	return s.importResorts(ctx, resorts, clearFirst)
}

// ImportCatalogue loads the bundled catalogue of Alpine and Apennine resorts.
func (s *ResortService) ImportCatalogue(ctx context.Context, clearFirst bool) (_ ImportStats, err error) {
	start := time.Now()
	defer func() { s.obs.observe("resort.import_catalogue", start, err) }()

	resorts, err := seed.Default()
	if err != nil {
		return ImportStats{}, fmt.Errorf("import catalogue: %w", err)
	}
	return s.importResorts(ctx, resorts, clearFirst)
}

func (s *ResortService) importResorts(ctx context.Context, resorts []domresort.Resort, clearFirst bool) (ImportStats, error) {
	st, err := s.catalogue.Import(ctx, resorts, clearFirst)
	if err != nil {
		return ImportStats{}, fmt.Errorf("import resorts: %w", err)
	}
	return ImportStats{
		Created:      st.Created,
		Updated:      st.Updated,
		Deleted:      st.Deleted,
		RidesDeleted: st.RidesDeleted,
		Total:        st.Total,
	}, nil
}
