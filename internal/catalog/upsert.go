package catalog

import (
	"fmt"
	"strings"

	"github.com/pfaustino/boycott-evil/internal/model"
)

// buildUpsert renders one multi-row INSERT ... ON CONFLICT statement for
// the given products.
func buildUpsert(products []model.Product) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO products (code, product_name, brands, normalized_brand, url) VALUES `)

	args := make([]any, 0, len(products)*5)
	for i, p := range products {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, p.Code, p.ProductName, p.Brands, p.NormalizedBrand, p.URL)
	}

	sb.WriteString(` ON CONFLICT (code) DO UPDATE SET
		product_name = EXCLUDED.product_name,
		brands = EXCLUDED.brands,
		normalized_brand = EXCLUDED.normalized_brand,
		url = EXCLUDED.url`)

	return sb.String(), args
}
