package fileio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/names"
	"padel-catalog/internal/utils"
)

// Canonical feed fields.
const (
	colURL           = "url"
	colName          = "name"
	colBrand         = "brand"
	colPrice         = "price"
	colOriginalPrice = "original_price"
	colImage         = "image"
	colImages        = "images"
	colDescription   = "description"
)

// headerAliases maps a normalized header (see headerKey) to a feed field.
// Every other non-empty column becomes a spec label.
var headerAliases = map[string]string{
	"url": colURL, "link": colURL, "enlace": colURL, "product_url": colURL,
	"name": colName, "nombre": colName, "title": colName, "titulo": colName, "product_name": colName,
	"brand": colBrand, "marca": colBrand,
	"price": colPrice, "precio": colPrice, "pvp": colPrice, "sale_price": colPrice,
	"original_price": colOriginalPrice, "precio_original": colOriginalPrice, "regular_price": colOriginalPrice, "precio_anterior": colOriginalPrice,
	"image": colImage, "imagen": colImage, "image_url": colImage,
	"images": colImages, "imagenes": colImages, "gallery": colImages, "galeria": colImages,
	"description": colDescription, "descripcion": colDescription,
}

var reHeaderJunk = regexp.MustCompile(`[^a-z0-9]+`)

// Feed is the parsed content of one store file.
type Feed struct {
	Products []model.ScrapedProduct
	Skipped  []Skipped
}

// Skipped records a data row that could not become a product. Row is
// 1-based among non-empty data rows.
type Skipped struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ReadFeed picks the parser by extension. JSON feeds are an array of products
// or an object with a "products" array; tabular feeds have headers on row 1.
func ReadFeed(r io.Reader, filename string) (Feed, error) {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		ps, err := readJSONFeed(r)
		if err != nil {
			return Feed{}, err
		}
		return Feed{Products: ps}, nil
	}

	rows, err := ReadAnyMaps(r, filename, 1)
	if err != nil {
		return Feed{}, err
	}
	var f Feed
	for i, rec := range rows {
		p, err := ProductFromRow(rec)
		if err != nil {
			f.Skipped = append(f.Skipped, Skipped{Row: i + 1, Reason: err.Error()})
			continue
		}
		f.Products = append(f.Products, p)
	}
	return f, nil
}

// ProductFromRow maps one tabular record onto a ScrapedProduct. Headers are
// visited in sorted order and the first non-empty value wins when several
// columns alias the same field ("Nombre" and "Title"), so a file always maps
// the same way.
func ProductFromRow(rec map[string]string) (model.ScrapedProduct, error) {
	p := model.ScrapedProduct{Specs: map[string]string{}}
	fields := map[string]string{}
	hasPrice := false

	headers := make([]string, 0, len(rec))
	for h := range rec {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	for _, header := range headers {
		v := rec[header]
		field, known := headerAliases[headerKey(header)]
		if !known {
			if v != "" && !strings.HasPrefix(header, "Column ") {
				p.Specs[header] = v
			}
			continue
		}
		if field == colPrice {
			hasPrice = true
		}
		if v != "" && fields[field] == "" {
			fields[field] = v
		}
	}

	p.URL = fields[colURL]
	p.Name = fields[colName]
	p.Brand = fields[colBrand]
	p.Image = fields[colImage]
	p.Images = splitList(fields[colImages])
	p.Description = fields[colDescription]
	priceRaw, origRaw := fields[colPrice], fields[colOriginalPrice]

	if !hasPrice || priceRaw == "" {
		return p, errors.New("missing price")
	}
	price, ok := utils.ParsePrice(priceRaw)
	if !ok {
		return p, fmt.Errorf("bad price %q", priceRaw)
	}
	p.Price = price
	if op, ok := utils.ParsePrice(origRaw); ok && op > 0 {
		p.OriginalPrice = &op
	}
	return p, nil
}

// headerKey: "Precio Original" -> "precio_original", "Imágenes" -> "imagenes".
func headerKey(h string) string {
	h = names.FoldASCII(strings.ToLower(strings.TrimSpace(h)))
	return strings.Trim(reHeaderJunk.ReplaceAllString(h, "_"), "_")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func readJSONFeed(r io.Reader) ([]model.ScrapedProduct, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	switch first {
	case '[':
		var ps []model.ScrapedProduct
		if err := dec.Decode(&ps); err != nil {
			return nil, fmt.Errorf("json feed: %w", err)
		}
		return ps, nil
	case '{':
		var wrapped struct {
			Products []model.ScrapedProduct `json:"products"`
		}
		if err := dec.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("json feed: %w", err)
		}
		return wrapped.Products, nil
	default:
		return nil, fmt.Errorf("json feed: expected array or object, got %q", first)
	}
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if bytes.IndexByte([]byte(" \t\r\n\xEF\xBB\xBF"), b) >= 0 {
			continue
		}
		return b, br.UnreadByte()
	}
}
