package handler

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"padel-catalog/internal/catalog/model"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// bodyError maps a read/decode failure to 413 or 400.
func bodyError(w http.ResponseWriter, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "bad request body: "+err.Error())
}

// reqLogger prefers the request-scoped logger set by the logging middleware.
func reqLogger(r *http.Request, base zerolog.Logger) zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return base
}

// decodeProducts accepts one product object or an array of them.
func decodeProducts(r io.Reader) (products []model.ScrapedProduct, single bool, err error) {
	br := bufio.NewReader(r)
	var first byte
	for {
		first, err = br.ReadByte()
		if err == io.EOF {
			return nil, false, errors.New("empty body")
		}
		if err != nil {
			return nil, false, err
		}
		if !strings.ContainsRune(" \t\r\n", rune(first)) {
			break
		}
	}
	_ = br.UnreadByte()

	dec := json.NewDecoder(br)
	switch first {
	case '{':
		var p model.ScrapedProduct
		if err := dec.Decode(&p); err != nil {
			return nil, false, err
		}
		return []model.ScrapedProduct{p}, true, nil
	case '[':
		if err := dec.Decode(&products); err != nil {
			return nil, false, err
		}
		return products, false, nil
	default:
		return nil, false, fmt.Errorf("expected object or array, got %q", first)
	}
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
