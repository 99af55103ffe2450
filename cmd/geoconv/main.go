// Command geoconv converts coordinates between WGS84, GCJ02, and BD09.
//
// It reads CSV rows of "lng,lat[,extra...]" or a GeoJSON document, converts
// every position, and writes the same shape back out:
//
//	geoconv -from wgs84 -to gcj02 -format csv <points.csv >converted.csv
//	geoconv -from bd09 -to wgs84 -format geojson -in city.json -out city-wgs.json
//
// Defaults for -from, -to, and -format come from the GEOCONV_FROM,
// GEOCONV_TO, and GEOCONV_FORMAT environment variables, loaded from a .env
// file when one exists. GEOCONV_LOG_LEVEL tunes logging.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	orbjson "github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/evanfang0054/geoshift"
	shiftjson "github.com/evanfang0054/geoshift/geojson"
)

func main() {
	_ = godotenv.Load()

	var (
		fromTag = flag.String("from", envOr("GEOCONV_FROM", "wgs84"), "source system: wgs84, gcj02, or bd09")
		toTag   = flag.String("to", envOr("GEOCONV_TO", "gcj02"), "target system: wgs84, gcj02, or bd09")
		format  = flag.String("format", envOr("GEOCONV_FORMAT", "csv"), "input format: csv or geojson")
		inPath  = flag.String("in", "", "input file (default stdin)")
		outPath = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()

	from, err := geoshift.ParseSystem(*fromTag)
	if err != nil {
		logger.Fatalw("bad -from flag", "err", err)
	}
	to, err := geoshift.ParseSystem(*toTag)
	if err != nil {
		logger.Fatalw("bad -to flag", "err", err)
	}

	var in io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			logger.Fatalw("open input", "err", err)
		}
		defer f.Close()
		in = f
	}
	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logger.Fatalw("create output", "err", err)
		}
		defer f.Close()
		out = f
	}

	switch strings.ToLower(*format) {
	case "csv":
		n, err := convertCSV(in, out, from, to)
		if err != nil {
			logger.Fatalw("csv conversion failed", "err", err)
		}
		logger.Infow("converted", "rows", n, "from", from.String(), "to", to.String())
	case "geojson":
		if err := convertGeoJSON(in, out, from, to); err != nil {
			logger.Fatalw("geojson conversion failed", "err", err)
		}
		logger.Infow("converted", "from", from.String(), "to", to.String())
	default:
		logger.Fatalw("unsupported -format flag", "format", *format)
	}
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl := os.Getenv("GEOCONV_LOG_LEVEL"); lvl != "" {
		if parsed, err := zap.ParseAtomicLevel(lvl); err == nil {
			cfg.Level = parsed
		}
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "geoconv: logger:", err)
		os.Exit(1)
	}
	return logger.Sugar()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// convertCSV rewrites rows of "lng,lat[,extra...]" and reports how many rows
// it converted. Columns past the first two ride along untouched.
func convertCSV(r io.Reader, w io.Writer, from, to geoshift.System) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	writer := csv.NewWriter(w)

	n := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("row %d: %w", n+1, err)
		}
		if len(record) < 2 {
			return n, fmt.Errorf("row %d: need at least lng,lat columns, got %d", n+1, len(record))
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return n, fmt.Errorf("row %d: longitude: %w", n+1, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return n, fmt.Errorf("row %d: latitude: %w", n+1, err)
		}
		c, err := geoshift.Transform(geoshift.FromLngLat(lng, lat), from, to)
		if err != nil {
			return n, fmt.Errorf("row %d: %w", n+1, err)
		}
		record[0] = strconv.FormatFloat(c.Longitude, 'f', -1, 64)
		record[1] = strconv.FormatFloat(c.Latitude, 'f', -1, 64)
		if err := writer.Write(record); err != nil {
			return n, err
		}
		n++
	}
	writer.Flush()
	return n, writer.Error()
}

// convertGeoJSON accepts a FeatureCollection, a single Feature, or a bare
// Geometry document and emits the converted document in the same shape.
func convertGeoJSON(r io.Reader, w io.Writer, from, to geoshift.System) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if fc, err := orbjson.UnmarshalFeatureCollection(data); err == nil {
		converted, err := shiftjson.FeatureCollection(fc, from, to)
		if err != nil {
			return err
		}
		return writeJSON(w, converted)
	}
	if f, err := orbjson.UnmarshalFeature(data); err == nil {
		converted, err := shiftjson.Feature(f, from, to)
		if err != nil {
			return err
		}
		return writeJSON(w, converted)
	}
	g, err := orbjson.UnmarshalGeometry(data)
	if err != nil {
		return fmt.Errorf("not a GeoJSON document: %w", err)
	}
	converted, err := shiftjson.Geometry(g.Geometry(), from, to)
	if err != nil {
		return err
	}
	return writeJSON(w, orbjson.NewGeometry(converted))
}

func writeJSON(w io.Writer, v any) error {
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
