package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
)

const productIndex = "products"

// IndexProduct indexe (ou réindexe) un produit dans Elasticsearch.
// L'indexation est best-effort : la fiche produit reste la source de vérité.
func IndexProduct(ctx context.Context, p models.Product) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}

	res, err := database.Elastic.Index(
		productIndex,
		bytes.NewReader(doc),
		database.Elastic.Index.WithDocumentID(p.ID.String()),
		database.Elastic.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexation produit %s: %s", p.ID, res.String())
	}
	return nil
}

// DeleteProductFromIndex retire un produit de l'index.
func DeleteProductFromIndex(ctx context.Context, id string) {
	res, err := database.Elastic.Delete(productIndex, id,
		database.Elastic.Delete.WithContext(ctx))
	if err != nil {
		log.Printf("⚠️ Suppression index produit %s: %v", id, err)
		return
	}
	res.Body.Close()
}

// SearchProducts interroge l'index produits (nom, description, tags de
// catégorie) et retourne les documents trouvés.
func SearchProducts(ctx context.Context, query string, size int) ([]models.Product, error) {
	if size <= 0 || size > 50 {
		size = 20
	}

	body := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^3", "description", "category"},
				"fuzziness": "AUTO",
			},
		},
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	res, err := database.Elastic.Search(
		database.Elastic.Search.WithContext(ctx),
		database.Elastic.Search.WithIndex(productIndex),
		database.Elastic.Search.WithBody(bytes.NewReader(buf)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("recherche produits: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
