package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
)

// ProjectIndex keeps projects searchable in Elasticsearch.
type ProjectIndex struct {
	ES      *elasticsearch.Client
	Name    string
	Timeout time.Duration
}

func NewProjectIndex(es *elasticsearch.Client, index string) *ProjectIndex {
	return &ProjectIndex{ES: es, Name: index, Timeout: 3 * time.Second}
}

type projectDoc struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Skills      []int64   `json:"skills"`
	Visible     bool      `json:"visible"`
	Highlight   bool      `json:"highlight"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toDoc(p *entity.Project) projectDoc {
	d := projectDoc{
		ID: p.ID, Title: p.Title, Category: p.Category, Skills: p.Skills,
		Visible: p.Visible, Highlight: p.Highlight, UpdatedAt: p.UpdatedAt,
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	return d
}

func (x *ProjectIndex) Index(ctx context.Context, p *entity.Project) error {
	b, err := json.Marshal(toDoc(p))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.Name,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *ProjectIndex) Delete(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: x.Name, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// SearchQuery is the request body of Search.
func SearchQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"title^3", "category^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"_source": []string{"id"},
		"size":    size,
	}
}

func (x *ProjectIndex) Search(ctx context.Context, q string, size int) ([]int64, error) {
	b, err := json.Marshal(SearchQuery(q, size))
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Name),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}
