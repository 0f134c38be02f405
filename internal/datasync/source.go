package datasync

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Record is one row of a vocabulary source.
type Record struct {
	Word            string `yaml:"word"`
	Level           string `yaml:"level"`
	Definition      string `yaml:"definition"`
	Translation     string `yaml:"translation"`
	ExampleSentence string `yaml:"example_sentence"`
	PartOfSpeech    string `yaml:"part_of_speech"`
	RelatedForms    string `yaml:"related_forms"`
	Synonyms        string `yaml:"synonyms"`
	Antonyms        string `yaml:"antonyms"`
	Collocations    string `yaml:"collocations"`
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
)

var errMissingWordColumn = errors.New("source has no word column")

// Source reads every record of a vocabulary source.
type Source interface {
	Read(ctx context.Context) ([]Record, error)
}

// NewSource returns a source for a local file path or an http(s) URL.
// The format is taken from the file extension.
func NewSource(location string) (Source, error) {
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		format, err := DetectFormat(u.Path)
		if err != nil {
			return nil, err
		}
		return NewRemoteSource(location, format), nil
	}

	format, err := DetectFormat(location)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: location, format: format}, nil
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(path.Ext(filepath.ToSlash(name))) {
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported vocabulary source: %s", name)
	}
}

// DecodeRecords parses r according to format.
func DecodeRecords(format Format, r io.Reader) ([]Record, error) {
	switch format {
	case FormatCSV:
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("csv.Reader.ReadAll() > %w", err)
		}
		return recordsFromRows(rows)
	case FormatXLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("excelize.OpenReader() > %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("f.GetRows(%s) > %w", sheets[0], err)
		}
		return recordsFromRows(rows)
	case FormatYAML:
		var records []Record
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("yaml.Decoder.Decode() > %w", err)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

// columnAliases maps normalized header names, including the headers of the
// Oxford 3000 dataset, to record fields.
var columnAliases = map[string]string{
	"word":                "word",
	"level":               "level",
	"cefr":                "level",
	"definition":          "definition",
	"translation":         "translation",
	"turkish_translation": "translation",
	"example_sentence":    "example_sentence",
	"example":             "example_sentence",
	"part_of_speech":      "part_of_speech",
	"pos":                 "part_of_speech",
	"related_forms":       "related_forms",
	"synonyms":            "synonyms",
	"antonyms":            "antonyms",
	"collocations":        "collocations",
}

func normalizeHeader(header string) string {
	header = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	return strings.Join(strings.Fields(header), "_")
}

// recordsFromRows treats the first row as the header.
func recordsFromRows(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		if field, ok := columnAliases[normalizeHeader(header)]; ok {
			if _, seen := columns[field]; !seen {
				columns[field] = i
			}
		}
	}
	if _, ok := columns["word"]; !ok {
		return nil, errMissingWordColumn
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(field string) string {
			i, ok := columns[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		records = append(records, Record{
			Word:            cell("word"),
			Level:           cell("level"),
			Definition:      cell("definition"),
			Translation:     cell("translation"),
			ExampleSentence: cell("example_sentence"),
			PartOfSpeech:    cell("part_of_speech"),
			RelatedForms:    cell("related_forms"),
			Synonyms:        cell("synonyms"),
			Antonyms:        cell("antonyms"),
			Collocations:    cell("collocations"),
		})
	}
	return records, nil
}

// FileSource reads records from a local file.
type FileSource struct {
	path   string
	format Format
}

func (s *FileSource) Read(_ context.Context) ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", s.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := DecodeRecords(s.format, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return records, nil
}

// RemoteSource downloads records over HTTP. Server errors are retried.
type RemoteSource struct {
	url      string
	format   Format
	client   *resty.Client
	attempts uint
	delay    time.Duration
}

func NewRemoteSource(rawURL string, format Format) *RemoteSource {
	return &RemoteSource{
		url:      rawURL,
		format:   format,
		client:   resty.New().SetTimeout(30 * time.Second),
		attempts: 3,
		delay:    500 * time.Millisecond,
	}
}

func (s *RemoteSource) Read(ctx context.Context) ([]Record, error) {
	var body []byte
	if err := retry.Do(
		func() error {
			res, err := s.client.R().
				SetContext(ctx).
				Get(s.url)
			if err != nil {
				return fmt.Errorf("client.R.Get > %w", err)
			}
			if res.StatusCode() >= http.StatusInternalServerError {
				return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
			}
			if res.StatusCode() != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body())))
			}
			body = res.Body()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	); err != nil {
		return nil, fmt.Errorf("download %s: %w", s.url, err)
	}

	records, err := DecodeRecords(s.format, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.url, err)
	}
	return records, nil
}
