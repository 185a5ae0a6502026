// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/tablematch/internal/models"
)

// Supported text encodings for the restaurant CSV.
const (
	EncodingLatin1 = "latin-1"
	EncodingUTF8   = "utf-8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileSource reads the restaurant CSV and country table from disk.
type FileSource struct {
	RestaurantsPath string
	CountriesPath   string

	// Encoding of the restaurant CSV: latin-1 (default) or utf-8.
	Encoding string
}

// NewFileSource creates a FileSource. An empty encoding means latin-1.
func NewFileSource(restaurantsPath, countriesPath, encoding string) *FileSource {
	if encoding == "" {
		encoding = EncodingLatin1
	}
	return &FileSource{
		RestaurantsPath: restaurantsPath,
		CountriesPath:   countriesPath,
		Encoding:        encoding,
	}
}

// String describes the source for logs.
func (s *FileSource) String() string {
	return fmt.Sprintf("file(%s, %s)", s.RestaurantsPath, s.CountriesPath)
}

// Load reads both files.
func (s *FileSource) Load(ctx context.Context) (*RawDataset, error) {
	restaurantsRaw, err := os.ReadFile(s.RestaurantsPath)
	if err != nil {
		return nil, fmt.Errorf("read restaurants: %w", err)
	}
	countriesRaw, err := os.ReadFile(s.CountriesPath)
	if err != nil {
		return nil, fmt.Errorf("read countries: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := s.parseRestaurants(restaurantsRaw)
	if err != nil {
		return nil, fmt.Errorf("parse restaurants %s: %w", s.RestaurantsPath, err)
	}

	lookup, err := parseCountries(s.CountriesPath, countriesRaw)
	if err != nil {
		return nil, fmt.Errorf("parse countries %s: %w", s.CountriesPath, err)
	}

	h := sha256.New()
	h.Write(restaurantsRaw)
	h.Write([]byte{0})
	h.Write(countriesRaw)

	return &RawDataset{
		Records:     records,
		Countries:   lookup,
		Fingerprint: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

func (s *FileSource) decode(data []byte) ([]byte, error) {
	switch strings.ToLower(s.Encoding) {
	case EncodingUTF8, "utf8":
		return bytes.TrimPrefix(data, utf8BOM), nil
	case EncodingLatin1, "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Bytes(data)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", s.Encoding)
	}
}

func (s *FileSource) parseRestaurants(data []byte) ([]models.RawRecord, error) {
	decoded, err := s.decode(data)
	if err != nil {
		return nil, err
	}
	header, rows, err := readCSV(decoded)
	if err != nil {
		return nil, err
	}
	return tableToRecords(header, rows), nil
}

func readCSV(data []byte) (header []string, rows [][]string, err error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}
	header = make([]string, len(all[0]))
	for i, h := range all[0] {
		header[i] = strings.TrimSpace(h)
	}
	return header, all[1:], nil
}

// parseCountries reads the first sheet of an .xlsx workbook, or a CSV file
// for any other extension.
func parseCountries(path string, data []byte) (lookup models.CountryLookup, err error) {
	var table [][]string
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, openErr := excelize.OpenReader(bytes.NewReader(data))
		if openErr != nil {
			return nil, openErr
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		table, err = f.GetRows(sheets[0])
		if err != nil {
			return nil, err
		}
	} else {
		header, rows, csvErr := readCSV(bytes.TrimPrefix(data, utf8BOM))
		if csvErr != nil {
			return nil, csvErr
		}
		table = append([][]string{header}, rows...)
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("empty country table")
	}
	return buildLookup(table[0], table[1:])
}
