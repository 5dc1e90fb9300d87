// Package responses loads questionnaire answers from JSON, YAML and CSV files.
package responses

import (
	"bytes"
	"cmp"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a response file.
type Format string

// Supported response file formats.
const (
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
	CSVFormat  Format = "csv"
)

// stdinName is the respondent name used for answers read from standard input.
const stdinName = "stdin"

// stdin is where StdinPath reads from.
var stdin io.Reader = os.Stdin

var validate = validator.New()

// document is the shape of a JSON or YAML response file.
// Question ids are map keys, so they are decoded as strings and parsed afterwards.
type document struct {
	Respondent string                    `json:"respondent" yaml:"respondent"`
	Baseline   map[string]int            `json:"baseline" yaml:"baseline"`
	Contexts   map[string]map[string]int `json:"contexts" yaml:"contexts"`
}

// answer is a single rating checked by the validator.
type answer struct {
	ID     int `validate:"min=1"`
	Rating int `validate:"min=1,max=7"`
}

// LoadFile reads and validates one response file. StdinPath reads standard input.
// With strict set, out-of-range ratings and unknown ids are errors; otherwise they
// are dropped with a warning.
func LoadFile(path string, bank contract.QuestionBank, strict bool) (schema.ResponseSet, error) {
	var data []byte
	var err error
	if path == contract.StdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return schema.ResponseSet{}, fmt.Errorf("failed to read responses: %w", err)
	}

	rs, err := Parse(data, DetectFormat(path, data), bank, strict)
	if err != nil {
		return schema.ResponseSet{}, fmt.Errorf("%s: %w", path, err)
	}
	rs.Source = path
	return rs, nil
}

// DetectFormat picks the format from the file extension, sniffing the content
// when the extension is missing or unknown.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFormat
	case ".yaml", ".yml":
		return YAMLFormat
	case ".csv":
		return CSVFormat
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		return JSONFormat
	case bytes.Contains(trimmed, []byte(":")):
		return YAMLFormat
	default:
		return CSVFormat
	}
}

// Parse decodes response data of the given format.
func Parse(data []byte, format Format, bank contract.QuestionBank, strict bool) (schema.ResponseSet, error) {
	l := newLoader(bank, strict)

	switch format {
	case JSONFormat, YAMLFormat:
		var doc document
		var err error
		if format == JSONFormat {
			err = json.Unmarshal(data, &doc)
		} else {
			err = yaml.Unmarshal(data, &doc)
		}
		if err != nil {
			return schema.ResponseSet{}, fmt.Errorf("invalid %s response file: %w", format, err)
		}
		if err := l.addDocument(doc); err != nil {
			return schema.ResponseSet{}, err
		}
	case CSVFormat:
		if err := l.addCSV(data); err != nil {
			return schema.ResponseSet{}, err
		}
	default:
		return schema.ResponseSet{}, fmt.Errorf("unsupported response format %q", format)
	}

	if l.answers == 0 {
		return schema.ResponseSet{}, errors.New("response file contains no answers")
	}
	return l.rs, nil
}

// RespondentFromPath derives a respondent name from a file name.
func RespondentFromPath(path string) string {
	if path == contract.StdinPath || path == "" {
		return stdinName
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// loader accumulates validated answers into a response set.
type loader struct {
	bank      contract.QuestionBank
	strict    bool
	sentinels map[int]int // baseline sentinel id -> index in the context block
	rs        schema.ResponseSet
	answers   int
}

func newLoader(bank contract.QuestionBank, strict bool) *loader {
	sentinels := make(map[int]int)
	for i, q := range bank.Sentinels() {
		sentinels[q.ID] = i
	}
	return &loader{
		bank:      bank,
		strict:    strict,
		sentinels: sentinels,
		rs:        schema.ResponseSet{Baseline: schema.Responses{}},
	}
}

// reject fails in strict mode and warns otherwise.
func (l *loader) reject(err error) error {
	if l.strict {
		return err
	}
	contract.LogWarn("Dropping answer", err)
	return nil
}

// addDocument adds the blocks of a JSON or YAML document in a fixed order: the
// baseline block first, then the context blocks in WORK, STRESS, INTIMACY, PUBLIC
// order, each block by ascending question id. When two keys land on the same
// question, the later one in that order wins.
func (l *loader) addDocument(doc document) error {
	l.rs.Respondent = strings.TrimSpace(doc.Respondent)

	for _, key := range orderedKeys(doc.Baseline) {
		if err := l.add(schema.BaselineContext, key, doc.Baseline[key]); err != nil {
			return err
		}
	}

	type namedBlock struct {
		name string
		ctx  schema.ContextType
	}
	blocks := make([]namedBlock, 0, len(doc.Contexts))
	for name := range doc.Contexts {
		ctx, ok := parseContext(name)
		if !ok {
			return fmt.Errorf("unknown context %q (expected WORK, STRESS, INTIMACY or PUBLIC)", name)
		}
		blocks = append(blocks, namedBlock{name: name, ctx: ctx})
	}
	slices.SortFunc(blocks, func(a, b namedBlock) int {
		return cmp.Or(
			cmp.Compare(slices.Index(schema.AllContexts, a.ctx), slices.Index(schema.AllContexts, b.ctx)),
			strings.Compare(a.name, b.name),
		)
	})

	for _, b := range blocks {
		block := doc.Contexts[b.name]
		for _, key := range orderedKeys(block) {
			if err := l.add(b.ctx, key, block[key]); err != nil {
				return err
			}
		}
	}
	return nil
}

// orderedKeys returns the keys of a block by ascending numeric id. Keys that are
// not numbers sort first so that their error is reported deterministically.
func orderedKeys(block map[string]int) []string {
	keyID := func(k string) int {
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return -1
		}
		return id
	}
	keys := slices.Collect(maps.Keys(block))
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(cmp.Compare(keyID(a), keyID(b)), strings.Compare(a, b))
	})
	return keys
}

// addCSV adds "id,rating" records. A header row and blank lines are skipped.
func (l *loader) addCSV(data []byte) error {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("invalid csv response file: %w", err)
	}

	for i, rec := range records {
		if len(rec) < 2 {
			return fmt.Errorf("line %d: expected id,rating", i+1)
		}
		rating, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			if i == 0 {
				continue // header
			}
			return fmt.Errorf("line %d: invalid rating %q", i+1, rec[1])
		}
		if err := l.add(schema.BaselineContext, rec[0], rating); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// add validates one answer and stores it in the block it belongs to.
func (l *loader) add(ctx schema.ContextType, key string, rating int) error {
	id, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return fmt.Errorf("invalid question id %q", key)
	}

	if err := validate.Struct(answer{ID: id, Rating: rating}); err != nil {
		return l.reject(fmt.Errorf("question %d: rating %d is outside 1-7", id, rating))
	}

	target, id, ok := l.resolve(ctx, id)
	if !ok {
		return l.reject(fmt.Errorf("unknown question id %d for %s", id, ctx))
	}

	set := l.block(target)
	if prev, dup := set[id]; dup {
		err := fmt.Errorf("duplicate answer for question %d (%d replaced by %d)", id, prev, rating)
		if l.strict {
			return err
		}
		contract.LogWarn("Overwriting answer", err)
	} else {
		l.answers++
	}
	set[id] = rating
	return nil
}

// resolve maps an id given in block ctx to the block and id it is stored under.
// Context items listed among baseline answers move to their own block, and
// baseline sentinel ids inside a context block become that context's item id.
func (l *loader) resolve(ctx schema.ContextType, id int) (schema.ContextType, int, bool) {
	q, known := l.bank.Lookup(id)

	if ctx == schema.BaselineContext {
		if !known {
			return ctx, id, false
		}
		if q.Module == schema.ContextModule {
			return q.Context, id, true
		}
		return ctx, id, true
	}

	if known && q.Module == schema.ContextModule {
		return ctx, id, q.Context == ctx
	}
	if idx, ok := l.sentinels[id]; ok {
		return ctx, schema.ContextStart[ctx] + idx, true
	}
	return ctx, id, false
}

// block returns the answer map of a context, creating it on first use.
func (l *loader) block(ctx schema.ContextType) schema.Responses {
	if ctx == schema.BaselineContext {
		return l.rs.Baseline
	}
	if l.rs.Contexts == nil {
		l.rs.Contexts = make(map[schema.ContextType]schema.Responses)
	}
	set, ok := l.rs.Contexts[ctx]
	if !ok {
		set = schema.Responses{}
		l.rs.Contexts[ctx] = set
	}
	return set
}

// parseContext reads a context name case-insensitively.
func parseContext(name string) (schema.ContextType, bool) {
	ctx := schema.ContextType(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range schema.AllContexts {
		if ctx == known {
			return ctx, true
		}
	}
	return "", false
}
