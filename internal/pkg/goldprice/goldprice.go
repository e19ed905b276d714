package goldprice

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/zakatkuy/amil/internal/pkg/constants"
	"github.com/zakatkuy/amil/internal/pkg/fetch"
)

type Mode string

const (
	ModeJSON Mode = "json"
	ModeHTML Mode = "html"
)

const DefaultPath = "data.sell"

// NisabGrams is the gold weight threshold for zakat on wealth.
var NisabGrams = decimal.NewFromInt(85)

type Config struct {
	URL  string
	Mode Mode
	// Path is a dotted JSON path to the sell price, numeric segments index arrays.
	Path string
	// Selector is the CSS selector of the price element in html mode.
	Selector string
}

// Feed reads the current gold sell price per gram, in rupiah.
type Feed struct {
	client *fetch.Client
	cfg    Config
}

func NewFeed(client *fetch.Client, cfg Config) *Feed {
	if cfg.Mode == "" {
		cfg.Mode = ModeJSON
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	return &Feed{client: client, cfg: cfg}
}

func (f *Feed) SellPrice(ctx context.Context) (decimal.Decimal, error) {
	body, err := f.client.Get(ctx, f.cfg.URL)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("client.Get: %w", err)
	}

	var price decimal.Decimal
	switch f.cfg.Mode {
	case ModeHTML:
		price, err = fromHTML(body, f.cfg.Selector)
	default:
		price, err = fromJSON(body, f.cfg.Path)
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: gold price %s: %s", constants.ErrNetworkFetch, f.cfg.URL, err.Error())
	}
	if !price.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: gold price %s: non-positive price %s", constants.ErrNetworkFetch, f.cfg.URL, price.String())
	}

	return price, nil
}

// Nisab returns the zakat threshold for a per-gram gold price.
func Nisab(pricePerGram decimal.Decimal) decimal.Decimal {
	return pricePerGram.Mul(NisabGrams)
}

func fromJSON(body []byte, path string) (decimal.Decimal, error) {
	segments := strings.Split(path, ".")
	keys := make([]interface{}, 0, len(segments))
	for _, s := range segments {
		if i, err := strconv.Atoi(s); err == nil {
			keys = append(keys, i)
			continue
		}
		keys = append(keys, s)
	}

	node, err := sonic.Get(body, keys...)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sonic.Get, path-%s: %w", path, err)
	}

	raw, err := node.Raw()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("node.Raw, path-%s: %w", path, err)
	}

	return ParsePrice(strings.Trim(raw, `"`))
}

func fromHTML(body []byte, selector string) (decimal.Decimal, error) {
	if selector == "" {
		return decimal.Decimal{}, fmt.Errorf("empty price selector")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return decimal.Decimal{}, fmt.Errorf("selector %q matched nothing", selector)
	}

	return ParsePrice(sel.Text())
}

// ParsePrice accepts plain decimals ("1234000.5") and Indonesian money text ("Rp 1.234.000,50").
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if d, err := decimal.NewFromString(s); err == nil {
		return d, nil
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a price: %q", s)
	}
	return d, nil
}
