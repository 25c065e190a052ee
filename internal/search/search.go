package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"golang.org/x/sync/errgroup"

	"github.com/agrolink/farmmarket/internal/models"
)

// Service wraps the Elasticsearch product index. A nil Service (no
// ES_URL configured) disables indexing and full-text search without
// touching the substring search served by the store.
type Service struct {
	ES    *elasticsearch.Client
	Index string
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return client, nil
}

func (s *Service) Enabled() bool {
	return s != nil && s.ES != nil
}

// IndexProduct upserts one product document, keyed by its store id.
func (s *Service) IndexProduct(ctx context.Context, product *models.Product) error {
	if !s.Enabled() {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(product); err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	res, err := s.ES.Index(
		s.Index,
		&buf,
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(product.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product: %s", res.Status())
	}
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	if !s.Enabled() {
		return nil
	}

	res, err := s.ES.Delete(
		s.Index,
		strconv.FormatUint(uint64(id), 10),
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product: %s", res.Status())
	}
	return nil
}

// searchResponse is the slice of the ES search reply we care about.
// The _source key needs an explicit tag: encoding/json's case-folding
// match does not cover the leading underscore.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Product `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a fuzzy multi-match over name, category and description.
func (s *Service) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if !s.Enabled() {
		return 0, nil, fmt.Errorf("search backend is not configured")
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"productName^2", "productCategory", "productDescription"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}

const reindexWorkers = 4

// Reindex pushes the whole catalog into the index, a handful of
// documents at a time.
func (s *Service) Reindex(ctx context.Context, products []models.Product) error {
	if !s.Enabled() {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(reindexWorkers)
	for i := range products {
		p := &products[i]
		g.Go(func() error {
			return s.IndexProduct(ctx, p)
		})
	}
	return g.Wait()
}
