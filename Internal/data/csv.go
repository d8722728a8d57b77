package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// CSVProvider loads candle series from per-symbol CSV files in a directory:
// SYMBOL.csv with a "date,open,high,low,close,volume" header, ISO dates,
// rows ascending by date.
type CSVProvider struct {
	Dir string
}

// Bars reads and parses the symbol's file.
func (p *CSVProvider) Bars(_ context.Context, symbol string) ([]types.Candle, error) {
	path := filepath.Join(p.Dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candle file for %s: %w", symbol, err)
	}
	defer f.Close()
	return ParseCandleCSV(f, symbol)
}

// ParseCandleCSV parses one candle file. The header row is required; a
// malformed data row fails the whole file so partial series never reach the
// engine.
func ParseCandleCSV(r io.Reader, symbol string) ([]types.Candle, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header for %s: %w", symbol, err)
	}
	if len(header) < 6 || !strings.EqualFold(strings.TrimSpace(header[0]), "date") {
		return nil, fmt.Errorf("unexpected csv header for %s: %v", symbol, header)
	}

	var candles []types.Candle
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv row %d for %s: %w", line, symbol, err)
		}
		c, err := parseCandleRecord(record)
		if err != nil {
			return nil, fmt.Errorf("csv row %d for %s: %w", line, symbol, err)
		}
		if n := len(candles); n > 0 && c.Date <= candles[n-1].Date {
			return nil, fmt.Errorf("csv row %d for %s: dates not strictly ascending", line, symbol)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func parseCandleRecord(record []string) (types.Candle, error) {
	if len(record) < 6 {
		return types.Candle{}, fmt.Errorf("expected 6 fields, got %d", len(record))
	}
	date := strings.TrimSpace(record[0])
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return types.Candle{}, fmt.Errorf("bad date %q", date)
	}
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return types.Candle{}, fmt.Errorf("bad %s %q", []string{"open", "high", "low", "close"}[i], record[i+1])
		}
		vals[i] = v
	}
	volume, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
	if err != nil {
		return types.Candle{}, fmt.Errorf("bad volume %q", record[5])
	}
	return types.Candle{
		Date: date, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3], Volume: volume,
	}, nil
}

// LoadMetaCSV reads a metadata file with header
// "symbol,name,sector,industry,market_cap,next_earnings" into a StaticMeta.
func LoadMetaCSV(path string) (StaticMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read metadata header: %w", err)
	}

	meta := make(StaticMeta)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read metadata row: %w", err)
		}
		if len(record) < 5 {
			return nil, fmt.Errorf("metadata row too short: %v", record)
		}
		cap, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad market cap %q for %s", record[4], record[0])
		}
		m := types.TickerMeta{
			Symbol:    strings.TrimSpace(record[0]),
			Name:      strings.TrimSpace(record[1]),
			Sector:    strings.TrimSpace(record[2]),
			Industry:  strings.TrimSpace(record[3]),
			MarketCap: cap,
		}
		if len(record) > 5 {
			m.NextEarnings = strings.TrimSpace(record[5])
		}
		meta[m.Symbol] = m
	}
	return meta, nil
}
