package survey

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ess-tools/atlas-cli/internal/model"
)

// LoadOptions configures the survey CSV loader.
type LoadOptions struct {
	Delimiter  rune   // default ','
	Charset    string // "", "windows-1250", "windows-1252", "iso-8859-2"
	RegionCol  string // header name of the region-code column, default "region"
	JoinPolicy string // PolicyStrict or PolicyLenient, default strict
}

// Dataset is the loaded, cleaned, joined observation set.
type Dataset struct {
	Source       string
	Observations []model.Observation
	Dropped      int // rows dropped under the lenient join policy
}

// Load reads a survey CSV export, resolves region codes against the region
// map, and cleans answers against the catalog's declared scales. Values
// outside a variable's bounds (ESS refusal and don't-know codes) become
// missing; blank cells are missing; any other non-numeric cell is a
// load-time error. Candidate variables absent from the header are a
// load-time error as well, so downstream statistics never silently change.
func Load(path string, catalog *model.Catalog, vars []string, regions *RegionMap, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "survey: open csv")
	}
	defer f.Close() //nolint:errcheck

	ds, err := load(f, path, catalog, vars, regions, opts)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func load(r io.Reader, source string, catalog *model.Catalog, vars []string, regions *RegionMap, opts LoadOptions) (*Dataset, error) {
	log := zap.L().With(zap.String("component", "survey.loader"), zap.String("source", source))

	if opts.Charset != "" {
		enc, err := lookupCharset(opts.Charset)
		if err != nil {
			return nil, err
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "survey: read header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	regionCol := opts.RegionCol
	if regionCol == "" {
		regionCol = "region"
	}
	regionIdx := columnIndex(header, regionCol)
	if regionIdx < 0 {
		return nil, eris.Errorf("survey: region column %q not found in header", regionCol)
	}

	varIdx := make(map[string]int, len(vars))
	for _, v := range vars {
		idx := columnIndex(header, v)
		if idx < 0 {
			return nil, eris.Errorf("survey: variable %q missing from header", v)
		}
		varIdx[v] = idx
	}

	policy := opts.JoinPolicy
	if policy == "" {
		policy = PolicyStrict
	}
	if _, err := ParseJoinPolicy(policy); err != nil {
		return nil, err
	}

	ds := &Dataset{Source: source}
	rowNum := 1
	nextID := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "survey: read row %d", rowNum+1)
		}
		rowNum++

		if regionIdx >= len(record) {
			return nil, eris.Errorf("survey: row %d: too few fields (%d) for region column %q", rowNum, len(record), regionCol)
		}
		code := strings.TrimSpace(record[regionIdx])
		name, ok := regions.Resolve(code)
		if !ok {
			if policy == PolicyStrict {
				return nil, eris.Errorf("survey: row %d: region code %q has no matching region name", rowNum, code)
			}
			log.Warn("dropping row with unmatched region code",
				zap.Int("row", rowNum),
				zap.String("code", code),
			)
			ds.Dropped++
			continue
		}

		values := make(map[string]float64, len(vars))
		for _, v := range vars {
			idx := varIdx[v]
			if idx >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[idx])
			if cell == "" {
				continue
			}
			val, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, eris.Errorf("survey: row %d: malformed numeric value %q for %s", rowNum, cell, v)
			}
			if spec := catalog.ByName(v); spec != nil && !spec.InBounds(val) {
				continue // refusal / don't-know code, treated as missing
			}
			values[v] = val
		}

		ds.Observations = append(ds.Observations, model.Observation{
			ID:         nextID,
			RegionCode: code,
			Region:     name,
			Values:     values,
		})
		nextID++
	}

	log.Info("survey data loaded",
		zap.Int("rows", len(ds.Observations)),
		zap.Int("dropped", ds.Dropped),
		zap.Strings("variables", vars),
	)
	return ds, nil
}

func lookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "windows-1250":
		return charmap.Windows1250, nil
	case "windows-1252":
		return charmap.Windows1252, nil
	case "iso-8859-2":
		return charmap.ISO8859_2, nil
	default:
		return nil, eris.Errorf("survey: unsupported charset %q", name)
	}
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}
